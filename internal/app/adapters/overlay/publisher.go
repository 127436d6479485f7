package overlay

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"streamoverlay/internal/app/domain/message"
)

// Publisher throttles the highlighted-message slot to one publish per
// window. Publishes inside the window overwrite the pending message, and a
// single deferred timer flushes whatever is pending when the window elapses.
// Bursts therefore collapse to the latest message per window.
type Publisher struct {
	mu         sync.Mutex
	limiter    *rate.Limiter
	pending    *message.ChatMessage
	timer      *time.Timer
	deliver    func(*message.ChatMessage)
	onDisplace func()
	stopped    bool
}

func NewPublisher(window time.Duration, deliver func(*message.ChatMessage)) *Publisher {
	return &Publisher{
		limiter: rate.NewLimiter(rate.Every(window), 1),
		deliver: deliver,
	}
}

// OnDisplace registers a hook fired whenever a pending message loses the
// slot to a newer one. Set it before the first Publish.
func (p *Publisher) OnDisplace(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.onDisplace = fn
}

func (p *Publisher) Publish(m *message.ChatMessage) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}

	if p.pending != nil {
		// Timer already armed; latest message wins.
		p.pending = m
		displaced := p.onDisplace
		p.mu.Unlock()
		if displaced != nil {
			displaced()
		}
		return
	}

	if p.limiter.Allow() {
		p.mu.Unlock()
		p.deliver(m)
		return
	}

	res := p.limiter.Reserve()
	p.pending = m
	p.timer = time.AfterFunc(res.Delay(), p.flush)
	p.mu.Unlock()
}

func (p *Publisher) flush() {
	p.mu.Lock()
	if p.stopped || p.pending == nil {
		p.mu.Unlock()
		return
	}
	m := p.pending
	p.pending = nil
	p.timer = nil
	p.mu.Unlock()

	p.deliver(m)
}

// Stop cancels any pending flush. Publishes after Stop are dropped until
// Resume is called by a restarting client.
func (p *Publisher) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopped = true
	p.pending = nil
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *Publisher) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopped = false
}
