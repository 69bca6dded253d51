package database

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shubham-309/chatbot/internal/config"
	"github.com/shubham-309/chatbot/internal/logger"
	"github.com/shubham-309/chatbot/internal/models"
)

// InitDB opens the configured database and migrates the schema.
func InitDB(cfg *config.Config, log logger.Logger) (*gorm.DB, error) {
	db, err := Open(cfg.DBDriver, dsnFor(cfg))
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		CloseDB(db)
		return nil, err
	}

	log.Info("Connected to ", cfg.DBDriver, " database")
	return db, nil
}

// Open connects to a postgres or sqlite database.
func Open(driver, dsn string) (*gorm.DB, error) {
	return open(driver, dsn, newGormLogger(os.Stdout))
}

// newGormLogger reports slow queries and errors. A missing row is an
// expected lookup result and is not logged.
func newGormLogger(w io.Writer) gormlogger.Interface {
	return gormlogger.New(stdlog.New(w, "\r\n", stdlog.LstdFlags), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

func open(driver, dsn string, log gormlogger.Interface) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         log,
		TranslateError: true,
	}

	switch driver {
	case config.PostgresDriver:
		db, err := gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		return db, nil
	case config.SqliteDriver:
		if dsn == "" {
			dsn = ":memory:"
		}
		db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
		}
		// every new connection to :memory: would see an empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get raw DB connection: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// Migrate creates or updates the users, chats and messages tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Chat{}, &models.Message{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// CloseDB closes the underlying connection pool.
func CloseDB(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func dsnFor(cfg *config.Config) string {
	if cfg.DBDriver == config.SqliteDriver {
		return cfg.DBDSN
	}
	return cfg.GetDSN()
}
