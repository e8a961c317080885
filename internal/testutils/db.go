// File: internal/testutils/db.go
package testutils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/iyunix/chat-api/internal/config"
	"github.com/iyunix/chat-api/internal/database"
	"github.com/iyunix/chat-api/internal/logger"
)

// NewTestDB returns a migrated in-memory SQLite database with foreign keys
// enabled. It is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.DatabaseConfig{URL: ":memory:", ConnectAttempts: 1}
	db, err := database.Open(context.Background(), cfg, &logger.NoOpLogger{}, gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
