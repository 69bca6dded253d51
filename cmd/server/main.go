package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/shubham-309/chatbot/internal/api"
	"github.com/shubham-309/chatbot/internal/api/handlers"
	"github.com/shubham-309/chatbot/internal/app"
	"github.com/shubham-309/chatbot/internal/auth"
	"github.com/shubham-309/chatbot/internal/config"
	"github.com/shubham-309/chatbot/internal/database"
	"github.com/shubham-309/chatbot/internal/logger"
	"github.com/shubham-309/chatbot/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}
	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}

	ctx := context.Background()

	// Initialize database connections
	db, err := database.InitDB(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.CloseDB(db)

	redisClient := database.InitRedis(ctx, cfg, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	services, err := app.NewServices(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer services.Close()

	r := api.SetupRouter(handlerDeps(cfg, log, db, redisClient, services))
	return startServerWithGracefulShutdown(cfg, r, log)
}

// handlerDeps leaves optional dependencies as untyped nils so the handlers
// can detect them.
func handlerDeps(cfg *config.Config, log logger.Logger, db *gorm.DB, redisClient *redis.Client, services *app.Services) handlers.Deps {
	deps := handlers.Deps{
		Config: cfg,
		Logger: log,
		Users:  store.NewUserStore(db, log),
		Chats:  store.NewChatStore(db, store.NewHistoryCache(redisClient, store.DefaultHistoryTTL), log),
		Tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL),
	}

	if cfg.GoogleEnabled() {
		deps.Google = auth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	}
	if services.Agent != nil {
		deps.Responder = services.Agent
	}
	if services.Extractor != nil {
		deps.Extractor = services.Extractor
	}
	if services.Ingester != nil {
		deps.Ingester = services.Ingester
	}
	return deps
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.Config, r *gin.Engine, log logger.Logger) error {
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server starting on port ", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
