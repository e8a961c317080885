// File: internal/handlers/health_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/iyunix/chat-api/internal/dtos"
	"github.com/iyunix/chat-api/internal/logger"
)

// Pinger checks that the store answers.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	service string
	ping    Pinger
	logger  logger.Logger
}

func NewHealthHandler(service string, ping Pinger, log logger.Logger) *HealthHandler {
	if log == nil {
		log = &logger.NoOpLogger{}
	}
	return &HealthHandler{service: service, ping: ping, logger: log}
}

// Health is a liveness probe and never touches the store.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dtos.HealthResponseDTO{Status: "healthy", Service: h.service})
}

// Ready reports 503 when the database does not answer within two seconds.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			h.logger.Warn("Readiness check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, dtos.HealthResponseDTO{Status: "unavailable", Service: h.service})
			return
		}
	}
	writeJSON(w, http.StatusOK, dtos.HealthResponseDTO{Status: "ready", Service: h.service})
}
