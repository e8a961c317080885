package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV", "development")
	t.Setenv("SERVICE_NAME", "chat-api")
	t.Setenv("SERVER_PORT", "8000")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOG_LEVEL", "INFO")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	t.Setenv("DB_CONNECT_ATTEMPTS", "")
	t.Setenv("DB_AUTO_MIGRATE", "")
	t.Setenv("READ_TIMEOUT", "")
	t.Setenv("REQUEST_TIMEOUT", "")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "chat-api", cfg.ServiceName)
	assert.Equal(t, ":8000", cfg.Addr())
	assert.Equal(t, "chat.db", cfg.Database.URL)
	assert.Equal(t, 40, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.ConnectAttempts)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://user:secret@db:5432/chats")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_CONNECT_ATTEMPTS", "2")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("REQUEST_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 2, cfg.Database.ConnectAttempts)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("READ_TIMEOUT", "soon")
	t.Setenv("DB_AUTO_MIGRATE", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Database.MaxOpenConns)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestLoad_ProductionRequiresDatabaseURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_RejectsUnknownLogLevel(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("LOG_LEVEL", "LOUD")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		ServerPort:      "8000",
		LogLevel:        "INFO",
		LogFormat:       "json",
		Database:        DatabaseConfig{URL: "chat.db", ConnectAttempts: 1},
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		IdleTimeout:     time.Second,
		ShutdownTimeout: time.Second,
		RequestTimeout:  time.Second,
	}
	require.NoError(t, cfg.Validate())

	cfg.RequestTimeout = 0
	cfg.LogFormat = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUEST_TIMEOUT")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestRedactedDatabaseURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"postgres://user:secret@db:5432/chats", "postgres://db:5432/chats"},
		{"host=db user=chat password=secret dbname=chats", "host=db user=chat password=*** dbname=chats"},
		{"chat.db", "chat.db"},
	}
	for _, tt := range tests {
		cfg := &Config{Database: DatabaseConfig{URL: tt.url}}
		got := cfg.RedactedDatabaseURL()
		assert.Equal(t, tt.want, got)
		assert.NotContains(t, got, "secret")
	}
}

func TestLoad_Production(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://db:5432/chats")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "postgres://db:5432/chats", cfg.Database.URL)
}
