// File: internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iyunix/chat-api/internal/logger"
	"github.com/iyunix/chat-api/internal/middleware"
)

type RouterConfig struct {
	ChatHandler   *ChatHandler
	HealthHandler *HealthHandler
	Logger        logger.Logger
	// Registry backs GET /metrics. Nil disables metrics.
	Registry          *prometheus.Registry
	CORSAllowedOrigin string
}

// NewRouter wires every route and wraps them in the middleware chain.
// Routes are registered without trailing slashes; StripSlashes makes the
// slash optional for callers.
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = &logger.NoOpLogger{}
	}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, "Not Found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	if cfg.HealthHandler != nil {
		r.HandleFunc("/health", cfg.HealthHandler.Health).Methods(http.MethodGet)
		r.HandleFunc("/health/ready", cfg.HealthHandler.Ready).Methods(http.MethodGet)
	}
	if cfg.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	if ch := cfg.ChatHandler; ch != nil {
		r.HandleFunc("/chats", ch.CreateChat).Methods(http.MethodPost)
		r.HandleFunc("/chats/{chat_id}/messages", ch.CreateMessage).Methods(http.MethodPost)
		r.HandleFunc("/chats/{chat_id}", ch.GetChat).Methods(http.MethodGet)
		r.HandleFunc("/chats/{chat_id}", ch.DeleteChat).Methods(http.MethodDelete)
	}

	var handler http.Handler = r
	if cfg.Registry != nil {
		handler = middleware.NewMetrics(cfg.Registry).Middleware(r)(handler)
	}
	handler = middleware.CORS(cfg.CORSAllowedOrigin)(handler)
	handler = middleware.RecoverPanic(log)(handler)
	handler = middleware.LoggingMiddleware(log)(handler)
	handler = middleware.RequestID(handler)
	return middleware.StripSlashes(handler)
}
