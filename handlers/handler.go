package handlers

import (
	"go.uber.org/zap"

	"flipvault-web/clients"
	"flipvault-web/config"
	"flipvault-web/plancache"
)

// Handler carries the dependencies shared by every route handler.
type Handler struct {
	cfg     *config.Config
	backend *clients.Backend
	plans   *plancache.Factory
	log     *zap.Logger
}

func New(cfg *config.Config, backend *clients.Backend, plans *plancache.Factory, log *zap.Logger) *Handler {
	return &Handler{cfg: cfg, backend: backend, plans: plans, log: log}
}
