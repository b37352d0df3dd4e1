package http

import (
	"sync/atomic"
	"time"

	"github.com/MKhiriev/cardsync/internal/config"
	"github.com/MKhiriev/cardsync/internal/logger"
	"github.com/MKhiriev/cardsync/internal/service"
)

type Handler struct {
	services *service.Services

	limiter *ipRateLimiter
	started time.Time

	// requests counts every request that reached the router; errors
	// counts responses that carried an {"error": code} body. Both feed
	// GET /metrics.
	requests atomic.Int64
	errors   atomic.Int64

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		limiter:  newIPRateLimiter(cfg.RateLimitPerMinute),
		started:  time.Now(),
		logger:   logger,
	}
}
