package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Vector store backends accepted in VECTOR_STORE.
const (
	VectorStorePinecone = "pinecone"
	VectorStoreMemory   = "memory"
)

// Database driver names accepted in DB_DRIVER.
const (
	PostgresDriver = "postgres"
	SqliteDriver   = "sqlite"
)

// Config stores all the configuration of the application.
// Values are loaded from environment variables with optional
// loading from a .env file via godotenv.
type Config struct {
	// Database settings
	DBDriver   string `env:"DB_DRIVER" envDefault:"postgres" validate:"oneof=postgres sqlite"`
	DBHost     string `env:"DB_HOST"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	// DBDSN is only used by the sqlite driver; empty means in-memory.
	DBDSN string `env:"DB_DSN"`

	// Redis settings
	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisUsername string `env:"REDIS_USERNAME"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Server settings
	ServerPort   string        `env:"PORT" envDefault:"5000"`
	FrontendURL  string        `env:"FRONTEND_URL"`
	CookieSecure bool          `env:"JWT_COOKIE_SECURE" envDefault:"true"`
	JWTSecret    string        `env:"JWT_SECRET_KEY"`
	JWTTTL       time.Duration `env:"JWT_ACCESS_TOKEN_TTL" envDefault:"1h" validate:"gt=0"`

	// OpenAI settings
	OpenAIAPIKey         string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL        string        `env:"OPENAI_BASE_URL"`
	OpenAIChatModel      string        `env:"OPENAI_CHAT_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIEmbeddingModel string        `env:"OPENAI_EMBEDDING_MODEL" envDefault:"text-embedding-ada-002"`
	OpenAITimeout        time.Duration `env:"OPENAI_TIMEOUT" envDefault:"60s"`

	// Vector store settings. The memory backend is for local runs only.
	VectorStore       string `env:"VECTOR_STORE" envDefault:"pinecone" validate:"oneof=pinecone memory"`
	PineconeAPIKey    string `env:"PINECONE_API_KEY"`
	PineconeIndexName string `env:"PINECONE_INDEX_NAME" envDefault:"test"`
	PineconeNamespace string `env:"PINECONE_NAMESPACE"`

	// Google OAuth settings
	GoogleClientID     string `env:"GOOGLE_OAUTH_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_OAUTH_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_OAUTH_REDIRECT_URL"`

	// AdminEmails may extract and ingest freezone documents.
	AdminEmails []string `env:"ADMIN_EMAILS" envSeparator:","`

	Logger LoggerSettings `envPrefix:"LOG_"`
}

// LoadConfig reads configuration from environment variables and .env file.
// It returns the loaded configuration or an error if required values are missing.
func LoadConfig() (*Config, error) {
	// Try to load .env file, but proceed even if it doesn't exist
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	return Parse()
}

// LoadCLIConfig is LoadConfig for the admin tool, which talks to the
// language model and vector store only. Database and JWT settings are
// not required.
func LoadCLIConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := parseEnv()
	if err != nil {
		return nil, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed for Config: %w", err)
	}
	return cfg, nil
}

// Parse builds the configuration from the current process environment only.
func Parse() (*Config, error) {
	cfg, err := parseEnv()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks if the required configuration values are set.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validation failed for Config: %w", err)
	}

	var missingEnvs []string

	// Check required database configuration
	if c.DBDriver == PostgresDriver {
		if c.DBHost == "" {
			missingEnvs = append(missingEnvs, "DB_HOST")
		}
		if c.DBUser == "" {
			missingEnvs = append(missingEnvs, "DB_USER")
		}
		if c.DBName == "" {
			missingEnvs = append(missingEnvs, "DB_NAME")
		}
	}

	// JWT secret is required
	if c.JWTSecret == "" {
		missingEnvs = append(missingEnvs, "JWT_SECRET_KEY")
	}

	// Return error if any required env vars are missing
	if len(missingEnvs) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missingEnvs, ", "))
	}

	return nil
}

// Warnings lists optional integrations that are not configured. The caller
// logs them once the logger is up.
func (c *Config) Warnings() []string {
	var warnings []string

	if c.RedisHost == "" || c.RedisPort == "" {
		warnings = append(warnings, "Redis configuration is incomplete, chat history caching will be disabled")
	}
	if c.FrontendURL == "" {
		warnings = append(warnings, "FRONTEND_URL is not set, CORS might not be configured correctly")
	}
	if !c.LLMEnabled() {
		warnings = append(warnings, "OPENAI_API_KEY is not set, chatbot replies and document extraction will be disabled")
	}
	if !c.VectorStoreEnabled() {
		warnings = append(warnings, "vector store is not configured, freezone suggestions and ingestion will be disabled")
	}
	if !c.GoogleEnabled() {
		warnings = append(warnings, "Google OAuth is not configured, /auth/google_login is disabled")
	}
	if len(c.AdminEmails) == 0 {
		warnings = append(warnings, "ADMIN_EMAILS is empty, document administration is unavailable")
	}

	return warnings
}

// GetDSN returns the PostgreSQL data source name (connection string)
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// GetRedisAddr returns the Redis address in the format host:port
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// LLMEnabled reports whether an OpenAI key is configured.
func (c *Config) LLMEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// VectorStoreEnabled reports whether the vector store and the embedding model are usable.
func (c *Config) VectorStoreEnabled() bool {
	if !c.LLMEnabled() {
		return false
	}
	if c.VectorStore == VectorStoreMemory {
		return true
	}
	return c.PineconeAPIKey != "" && c.PineconeIndexName != ""
}

// GoogleEnabled reports whether Google sign-in is configured.
func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.GoogleRedirectURL != ""
}

// IsAdmin reports whether the e-mail belongs to the admin allow-list.
func (c *Config) IsAdmin(email string) bool {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return false
	}
	for _, admin := range c.AdminEmails {
		if strings.TrimSpace(strings.ToLower(admin)) == email {
			return true
		}
	}
	return false
}
