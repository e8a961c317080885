// File: cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/iyunix/chat-api/internal/config"
	"github.com/iyunix/chat-api/internal/database"
	"github.com/iyunix/chat-api/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "chat-api",
		Short: "REST service for chats and their messages",
		Long: `chat-api serves a small REST API to create chats, post messages into them,
read a chat with a page of its newest messages and delete a chat with everything in it.

Configuration comes from the environment or a .env file.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context())
		},
	})
	return root
}

func bootstrap(ctx context.Context) (*config.Config, *logger.SlogLogger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.ServiceName, cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(log.Slog())

	log.Info("Connecting to database",
		"dialect", database.DialectOf(cfg.Database.URL),
		"url", cfg.RedactedDatabaseURL(),
	)
	if cfg.IsProduction() && database.DialectOf(cfg.Database.URL) == database.DialectSQLite {
		log.Warn("Production is running on SQLite; writes are serialized on one connection")
	}
	db, err := database.Open(ctx, cfg.Database, log, database.GormLogLevel(cfg.LogLevel))
	if err != nil {
		log.Error("Database connection failed", "error", err)
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}

func runMigrate(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	_, log, db, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(ctx, db); err != nil {
		log.Error("Migration failed", "error", err)
		return err
	}
	log.Info("Migration completed")
	return nil
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, db, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.Error("Migration failed", "error", err)
			_ = database.Close(db)
			return err
		}
	}

	app, err := NewApplication(cfg, db, log)
	if err != nil {
		_ = database.Close(db)
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error("Database close failed", "error", err)
		}
	}()

	srv := app.Server()
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", "addr", srv.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Error("Server startup failed", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server gracefully", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		return err
	}
	log.Info("Server stopped gracefully")
	return nil
}
