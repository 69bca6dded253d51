package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "freezone")
	t.Setenv("DB_NAME", "freezone")
	t.Setenv("JWT_SECRET_KEY", "secret")
}

func TestParseDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIChatModel)
	assert.Equal(t, "test", cfg.PineconeIndexName)
	assert.Equal(t, LogLevelInfo, cfg.Logger.LogLevel)
	assert.Equal(t, LogTypeConsole, cfg.Logger.LogType)
	assert.Equal(t, "host=localhost port=5432 user=freezone password= dbname=freezone sslmode=disable", cfg.GetDSN())
}

func TestParseMissingRequired(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
}

func TestParseSqliteNeedsNoPostgresSettings(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_HOST", "")
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, SqliteDriver, cfg.DBDriver)
}

func TestParseRejectsUnknownDriver(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Parse()
	assert.Error(t, err)
}

func TestAdminAndFeatureFlags(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_EMAILS", "Ops@Example.com, root@example.com")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PINECONE_API_KEY", "pc-test")
	t.Setenv("REDIS_HOST", "cache")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.True(t, cfg.IsAdmin("ops@example.com"))
	assert.True(t, cfg.IsAdmin("root@example.com"))
	assert.False(t, cfg.IsAdmin("user@example.com"))
	assert.False(t, cfg.IsAdmin(""))
	assert.True(t, cfg.LLMEnabled())
	assert.True(t, cfg.VectorStoreEnabled())
	assert.False(t, cfg.GoogleEnabled())
	assert.Equal(t, "cache:6379", cfg.GetRedisAddr())
	assert.Len(t, cfg.Warnings(), 2)
}

func TestLoggerSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings LoggerSettings
		wantErr  bool
	}{
		{"console", LoggerSettings{LogLevel: LogLevelDebug, LogType: LogTypeConsole}, false},
		{"file", LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeFile, FilePath: "app.log", MaxSize: 10, MaxBackups: 3, MaxAge: 28}, false},
		{"file without path", LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeFile, MaxSize: 10, MaxBackups: 3, MaxAge: 28}, true},
		{"file with huge size", LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeFile, FilePath: "app.log", MaxSize: 500, MaxBackups: 3, MaxAge: 28}, true},
		{"bad level", LoggerSettings{LogLevel: "loud", LogType: LogTypeConsole}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadCLIConfigSkipsServerSettings(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "")
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("VECTOR_STORE", "memory")

	cfg, err := LoadCLIConfig()
	require.NoError(t, err)
	assert.True(t, cfg.VectorStoreEnabled())

	t.Setenv("VECTOR_STORE", "qdrant")
	_, err = LoadCLIConfig()
	assert.Error(t, err)
}
