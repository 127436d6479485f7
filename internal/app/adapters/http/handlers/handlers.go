package handlers

import (
	"streamoverlay/internal/app/ports"
	"streamoverlay/pkg/logger"
)

type Handlers struct {
	log   logger.Logger
	state ports.OverlayStatePort
}

func New(log logger.Logger, state ports.OverlayStatePort) *Handlers {
	return &Handlers{
		log:   log,
		state: state,
	}
}
