// File: internal/database/database.go
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/iyunix/chat-api/internal/config"
	"github.com/iyunix/chat-api/internal/domain"
	"github.com/iyunix/chat-api/internal/logger"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DialectOf picks the driver for a DATABASE_URL. Anything that is not a
// PostgreSQL URL or keyword DSN is treated as a SQLite path.
func DialectOf(url string) Dialect {
	lower := strings.ToLower(strings.TrimSpace(url))
	switch {
	case strings.HasPrefix(lower, "postgres://"),
		strings.HasPrefix(lower, "postgresql://"),
		strings.HasPrefix(lower, "host="):
		return DialectPostgres
	default:
		return DialectSQLite
	}
}

// SQLiteDSN strips a sqlite:// scheme and turns on foreign key enforcement,
// which SQLite leaves off per connection by default.
func SQLiteDSN(url string) string {
	dsn := strings.TrimSpace(url)
	for _, prefix := range []string{"sqlite:///", "sqlite://"} {
		if strings.HasPrefix(dsn, prefix) {
			dsn = strings.TrimPrefix(dsn, prefix)
			break
		}
	}
	if dsn == "" {
		dsn = "chat.db"
	}
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// Open connects to the configured database, retrying PostgreSQL with
// RetryWithBackoff, and tunes the pool for the chosen dialect.
func Open(ctx context.Context, cfg config.DatabaseConfig, log logger.Logger, gormLevel gormlogger.LogLevel) (*gorm.DB, error) {
	if log == nil {
		log = &logger.NoOpLogger{}
	}

	gormCfg := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormLevel),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}

	switch DialectOf(cfg.URL) {
	case DialectPostgres:
		return openPostgres(ctx, cfg, gormCfg, log)
	default:
		return openSQLite(ctx, cfg, gormCfg, log)
	}
}

// GormLogLevel maps the service LOG_LEVEL onto GORM's logger. SQL is only
// traced at DEBUG.
func GormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return gormlogger.Info
	case "ERROR":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}

func openSQLite(ctx context.Context, cfg config.DatabaseConfig, gormCfg *gorm.Config, log logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(SQLiteDSN(cfg.URL)), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// One connection keeps writes serialized and an in-memory database alive.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.WithContext(ctx).Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
	}

	log.Info("Database connected", "dialect", DialectSQLite)
	return db, nil
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig, gormCfg *gorm.Config, log logger.Logger) (*gorm.DB, error) {
	retry := DefaultRetryConfig()
	retry.MaxAttempts = cfg.ConnectAttempts

	var db *gorm.DB
	err := RetryWithBackoff(ctx, retry, log, func(ctx context.Context, attempt int) error {
		candidate, err := gorm.Open(postgres.Open(cfg.URL), gormCfg)
		if err != nil {
			return err
		}
		if err := Ping(ctx, candidate, 2*time.Second); err != nil {
			_ = Close(candidate)
			return err
		}
		db = candidate
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	configurePool(db, cfg)
	log.Info("Database connected", "dialect", DialectPostgres)
	return db, nil
}

func configurePool(db *gorm.DB, cfg config.DatabaseConfig) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
}

// Migrate creates or updates the chats and messages tables. Chats go first so
// the messages foreign key has a target.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&domain.Chat{}, &domain.Message{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Ping checks the connection within timeout.
func Ping(ctx context.Context, db *gorm.DB, timeout time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("db ping timeout after %s", timeout)
		}
		return err
	}
	return nil
}

func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
