package testutil

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shubham-309/chatbot/internal/config"
	"github.com/shubham-309/chatbot/internal/database"
	"github.com/shubham-309/chatbot/internal/logger"
)

// SetupTestLogger returns a debug logger that writes into the returned buffer.
func SetupTestLogger(t *testing.T) (logger.Logger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	return logger.NewWriterLogger(&buf, config.LogLevelDebug), &buf
}

// SetupTestDB opens a private in-memory SQLite database with the schema
// migrated. It is closed when the test ends.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(config.SqliteDriver, dsn)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		database.CloseDB(db)
	})

	require.NoError(t, database.Migrate(db), "Failed to migrate schema")
	return db
}
