package irc

import (
	"bufio"
	"crypto/tls"
	"fmt"
	"net"
	"strings"
	"sync"

	"streamoverlay/internal/app/domain/message"
	"streamoverlay/pkg/logger"
)

const defaultAddr = "irc.chat.twitch.tv:6697"

// Credentials carries what the IRC handshake needs.
type Credentials struct {
	OAuth   string
	Nick    string
	Channel string
}

// Client is one TLS connection to the chat server. Reconnect policy lives
// with the owning ingestion client; Client only connects, listens, closes.
type Client struct {
	log  logger.Logger
	addr string

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
}

func New(log logger.Logger) *Client {
	return &Client{
		log:  log,
		addr: defaultAddr,
	}
}

// Connect dials the chat server and performs the tag-capability handshake.
func (c *Client) Connect(creds Credentials) error {
	conn, err := tls.Dial("tcp", c.addr, &tls.Config{MinVersion: tls.VersionTLS12})
	if err != nil {
		return fmt.Errorf("dial irc: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	c.mu.Unlock()

	c.write("CAP REQ :twitch.tv/tags")
	c.write("PASS oauth:" + strings.TrimPrefix(creds.OAuth, "oauth:"))
	c.write("NICK " + creds.Nick)
	c.write("JOIN #" + strings.TrimPrefix(creds.Channel, "#"))

	return nil
}

// Listen reads lines until the connection dies, answering keep-alive pings
// and handing parsed chat messages to sink. bufio reassembles lines split
// across TCP reads, so sink always sees complete lines.
func (c *Client) Listen(sink func(*message.ChatMessage)) error {
	c.mu.Lock()
	reader := c.reader
	c.mu.Unlock()

	if reader == nil {
		return fmt.Errorf("listen called before connect")
	}

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read irc line: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "PING") {
			c.write("PONG :tmi.twitch.tv")
			continue
		}

		if msg := ParseLine(line); msg != nil {
			sink(msg)
		}
	}
}

// Close tears the connection down; a Listen in flight returns with an error.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
		c.reader = nil
	}
}

func (c *Client) write(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		if _, err := c.conn.Write([]byte(msg + "\r\n")); err != nil {
			c.log.Error("Failed to write IRC line", err)
		}
	}
}
