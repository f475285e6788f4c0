package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"kapirun-api/api/handlers"
	"kapirun-api/api/middleware"
	"kapirun-api/internal/auth"
	"kapirun-api/internal/chatbot"
	"kapirun-api/internal/config"
	"kapirun-api/internal/score"
	"kapirun-api/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// assetMaxAge is the Cache-Control lifetime for immutable game assets.
// The index itself is served with no-cache so new releases reach players.
const assetMaxAge = 86400

func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, appLogger *logger.Logger,
	verifier *auth.Verifier, scoreService score.Service, chatbotService chatbot.ChatbotService) {
	// Add middleware
	router.Use(middleware.RequestLogging(appLogger))
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, appLogger)
	scoreHandler := handlers.NewScoreHandler(verifier, scoreService, appLogger)
	leaderboardHandler := handlers.NewLeaderboardHandler(scoreService, cfg.Leaderboard.MaxLimit, appLogger)
	adminHandler := handlers.NewAdminHandler(scoreService, appLogger)
	staticHandler := handlers.NewStaticHandler(cfg.Static.Root, appLogger)

	// Setup routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.Check)
		v1.POST("/score", scoreHandler.Submit)
		v1.GET("/leaderboard", leaderboardHandler.Get)

		admin := v1.Group("/admin", middleware.AdminAuth(cfg.Admin.Secret, appLogger))
		{
			admin.POST("/reset", adminHandler.Reset)
			admin.POST("/reset-all", adminHandler.ResetAll)
		}

		// Telegram webhook endpoint; absent when the bot is not configured
		if chatbotService != nil {
			webhookHandler := handlers.NewWebhookHandler(chatbotService, appLogger)
			v1.POST("/telegram/webhook", webhookHandler.HandleTelegramWebhook)
		}
	}

	// Root health check and game entry page
	router.GET("/health", healthHandler.Check)
	router.GET("/", staticHandler.Index)

	// Debug listing of every registered route, handy when checking what a
	// deployment actually exposes.
	router.GET("/__routes", listRoutes(router))

	mountAssetDirs(router, cfg.Static, appLogger)
}

// listRoutes renders the registered routes as sorted "METHOD path" lines.
func listRoutes(router *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines := make([]string, 0, len(router.Routes()))
		for _, route := range router.Routes() {
			lines = append(lines, route.Method+" "+route.Path)
		}
		sort.Strings(lines)
		c.JSON(http.StatusOK, gin.H{"routes": lines})
	}
}

func corsConfig(allowedOrigins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(allowedOrigins) == 0 ||
		(len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
	}
	config.AllowHeaders = append(config.AllowHeaders,
		handlers.InitDataHeader, "X-Admin-Secret")
	return config
}

// mountAssetDirs serves each asset directory that actually exists on disk
// with a long-lived Cache-Control header.
func mountAssetDirs(router *gin.Engine, cfg config.StaticConfig, appLogger *logger.Logger) {
	for _, dir := range cfg.Dirs {
		path := filepath.Join(cfg.Root, dir)
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}

		appLogger.Info("Serving static assets", "dir", dir, "path", path)
		group := router.Group("/"+dir, middleware.CacheControl(assetMaxAge))
		group.Static("/", path)
	}
}
