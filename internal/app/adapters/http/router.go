package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"streamoverlay/internal/app/adapters/http/handlers"
	"streamoverlay/internal/app/adapters/http/middlewares"
	"streamoverlay/internal/app/infrastructure/config"
	"streamoverlay/internal/app/ports"
	"streamoverlay/pkg/logger"
)

type Router struct {
	router      *gin.Engine
	handlers    *handlers.Handlers
	middlewares *middlewares.Middlewares

	log     logger.Logger
	manager *config.Manager
	srv     *http.Server
}

func NewRouter(log logger.Logger, manager *config.Manager, state ports.OverlayStatePort) *Router {
	cfg := manager.Get()
	gin.SetMode(cfg.App.GinMode)

	r := &Router{
		router:      gin.New(),
		handlers:    handlers.New(log, state),
		middlewares: middlewares.New(),
		log:         log,
		manager:     manager,
	}
	r.router.Use(gin.Recovery())

	local := r.middlewares.LocalOnly()
	r.router.GET("/healthz", r.handlers.HealthzHandler)
	r.router.GET("/metrics", local, gin.WrapH(promhttp.Handler()))
	r.router.GET("/state", local, r.handlers.StateHandler)

	return r
}

func (r *Router) Run() error {
	r.srv = r.newServer(r.manager.Get().App.ListenAddr, r.router)
	return r.srv.ListenAndServe()
}

func (r *Router) Shutdown(ctx context.Context) error {
	if r.srv == nil {
		return nil
	}
	return r.srv.Shutdown(ctx)
}

func (r *Router) newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
}
