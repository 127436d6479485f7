package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"streamoverlay/internal/app/adapters/bttv"
	"streamoverlay/internal/app/adapters/chat"
	router "streamoverlay/internal/app/adapters/http"
	"streamoverlay/internal/app/adapters/overlay"
	"streamoverlay/internal/app/adapters/seventv"
	"streamoverlay/internal/app/adapters/twitch/api"
	"streamoverlay/internal/app/domain/badges"
	"streamoverlay/internal/app/domain/emotes"
	"streamoverlay/internal/app/infrastructure/config"
	"streamoverlay/pkg/logger"
)

const configPath = "config.json"

func New() error {
	log := logger.New()

	manager, err := config.New(configPath)
	if err != nil {
		log.Fatal("Error loading config", err)
	}

	cfg := manager.Get()
	log.SetLogLevel(cfg.App.LogLevel)

	client := &http.Client{
		Timeout:   10 * time.Second,
		Transport: http.DefaultTransport,
	}

	state := overlay.NewState(cfg.Chat.HistoryLimit, badges.NewCatalog(), emotes.NewResolver())
	publisher := overlay.NewPublisher(cfg.Chat.ThrottleWindow, state.SetLastMessage)

	chatLog := logger.NewPrefixedLogger(log, cfg.App.Channel)
	ingest := chat.New(chatLog, cfg, api.NewTwitch(log, manager, client), state, publisher,
		seventv.New(log, client), bttv.New(log, client))

	ingest.Start()
	log.Info("Chat ingestion started", slog.String("channel", cfg.App.Channel))

	r := router.NewRouter(log, manager, state)
	go func() {
		if err := r.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server stopped", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ingest.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.Shutdown(ctx)
}
