package main

import (
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically

	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kapirun-api/api/routes"
	"kapirun-api/internal/auth"
	"kapirun-api/internal/chatbot"
	"kapirun-api/internal/config"
	"kapirun-api/internal/database"
	"kapirun-api/internal/events"
	"kapirun-api/internal/score"
	"kapirun-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger := logger.New(cfg.Server.Environment)
	defer appLogger.Sync()

	// Get the underlying zap logger for services
	zapLogger := appLogger.SugaredLogger.Desugar()

	// Initialize database; the API degrades to 503s on score routes when
	// it is disabled, which keeps the bot and static assets usable
	var db *gorm.DB
	if cfg.Database.Enabled {
		db, err = database.NewPostgresConnection(cfg.Database)
		if err != nil {
			appLogger.Fatal("Failed to connect to database", "error", err)
		}

		if err := score.RunMigrations(db); err != nil {
			appLogger.Fatal("Failed to run score migrations", "error", err)
		}
	} else {
		appLogger.Warn("Database disabled; score store unavailable")
	}

	// Initialize event bus
	eventBus := events.NewEventBus(zapLogger)

	// Initialize services
	var scoreRepository score.Repository
	if db != nil {
		scoreRepository = score.NewGormScoreRepository(db, zapLogger)
	}
	scoreService := score.NewScoreService(scoreRepository, eventBus, zapLogger, cfg.Leaderboard.MaxLimit)

	verifier := auth.NewVerifier(zapLogger,
		auth.NewInitDataStrategy(cfg.Telegram.Token),
		auth.NewLegacyHMACStrategy(cfg.Auth.ScoreSecret))

	var chatbotService chatbot.ChatbotService
	if cfg.Telegram.Token != "" {
		chatbotService, err = chatbot.NewChatbotService(eventBus, zapLogger, cfg.Telegram, cfg.Admin.Secret, scoreService)
		if err != nil {
			appLogger.Fatal("Failed to initialize chatbot service", "error", err)
		}
	} else {
		appLogger.Warn("Telegram token not configured; webhook route disabled")
	}

	// Setup Gin router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	routes.SetupRoutes(router, db, cfg, appLogger, verifier, scoreService, chatbotService)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	if err := eventBus.Close(); err != nil {
		appLogger.Error("Failed to close event bus", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server exited")
}
