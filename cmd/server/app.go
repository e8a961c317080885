// File: cmd/server/app.go
package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"

	"github.com/iyunix/chat-api/internal/config"
	"github.com/iyunix/chat-api/internal/database"
	"github.com/iyunix/chat-api/internal/handlers"
	"github.com/iyunix/chat-api/internal/logger"
	"github.com/iyunix/chat-api/internal/repository"
	"github.com/iyunix/chat-api/internal/services"
	chatservice "github.com/iyunix/chat-api/internal/services/chat"
)

// Application aggregates all services and handlers
type Application struct {
	Config        *config.Config
	Logger        logger.Logger
	DB            *gorm.DB
	ChatService   *services.ChatService
	ChatHandler   *handlers.ChatHandler
	HealthHandler *handlers.HealthHandler
	Registry      *prometheus.Registry
	Handler       http.Handler
}

// NewApplication builds every component on top of an open database.
func NewApplication(cfg *config.Config, db *gorm.DB, log logger.Logger) (*Application, error) {
	chatCfg := chatservice.DefaultConfig()
	chatCfg.Timeout = cfg.RequestTimeout

	chatService, err := services.NewChatService(repository.NewUnitOfWork(db), chatCfg, log)
	if err != nil {
		return nil, fmt.Errorf("init chat service: %w", err)
	}

	chatHandler, err := handlers.NewChatHandler(chatService, chatCfg, log)
	if err != nil {
		return nil, fmt.Errorf("init chat handler: %w", err)
	}

	healthHandler := handlers.NewHealthHandler(cfg.ServiceName, func(ctx context.Context) error {
		return database.Ping(ctx, db, cfg.RequestTimeout)
	}, log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler := handlers.NewRouter(handlers.RouterConfig{
		ChatHandler:       chatHandler,
		HealthHandler:     healthHandler,
		Logger:            log,
		Registry:          registry,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
	})

	return &Application{
		Config:        cfg,
		Logger:        log,
		DB:            db,
		ChatService:   chatService,
		ChatHandler:   chatHandler,
		HealthHandler: healthHandler,
		Registry:      registry,
		Handler:       handler,
	}, nil
}

// Server returns the HTTP server for the application with the configured timeouts.
func (a *Application) Server() *http.Server {
	return &http.Server{
		Addr:         a.Config.Addr(),
		Handler:      a.Handler,
		ReadTimeout:  a.Config.ReadTimeout,
		WriteTimeout: a.Config.WriteTimeout,
		IdleTimeout:  a.Config.IdleTimeout,
	}
}

func (a *Application) Close() error {
	return database.Close(a.DB)
}
