package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"kapirun-api/internal/auth"
	"kapirun-api/internal/config"
	"kapirun-api/internal/events"
	"kapirun-api/internal/score"
	"kapirun-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func setupTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	zapLogger := zaptest.NewLogger(t)
	appLogger := &logger.Logger{SugaredLogger: zapLogger.Sugar()}

	verifier := auth.NewVerifier(zapLogger,
		auth.NewInitDataStrategy("1234567:test-bot-token"),
		auth.NewLegacyHMACStrategy("test-secret"))
	scoreService := score.NewScoreService(
		score.NewMockRepository(), events.NewMockEventBus(), zapLogger, cfg.Leaderboard.MaxLimit)

	SetupRoutes(router, nil, cfg, appLogger, verifier, scoreService, nil)
	return router
}

func testConfig(staticRoot string) *config.Config {
	return &config.Config{
		Server:      config.ServerConfig{AllowedOrigins: []string{"*"}},
		Admin:       config.AdminConfig{Secret: "admin-secret"},
		Leaderboard: config.LeaderboardConfig{MaxLimit: 200},
		Static: config.StaticConfig{
			Root: staticRoot,
			Dirs: []string{"images", "scripts", "media", "icons"},
		},
	}
}

func perform(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSetupRoutes_CoreEndpoints(t *testing.T) {
	router := setupTestRouter(t, testConfig(t.TempDir()))

	assert.Equal(t, http.StatusOK, perform(router, http.MethodGet, "/health").Code)
	assert.Equal(t, http.StatusOK, perform(router, http.MethodGet, "/api/v1/health").Code)
	assert.Equal(t, http.StatusOK, perform(router, http.MethodGet, "/api/v1/leaderboard").Code)
}

func TestSetupRoutes_RouteListing(t *testing.T) {
	router := setupTestRouter(t, testConfig(t.TempDir()))

	w := perform(router, http.MethodGet, "/__routes")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Routes []string `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, sort.StringsAreSorted(body.Routes))
	assert.Contains(t, body.Routes, "POST /api/v1/score")
	assert.Contains(t, body.Routes, "GET /api/v1/leaderboard")
	assert.Contains(t, body.Routes, "GET /__routes")
}

func TestSetupRoutes_AdminGuarded(t *testing.T) {
	router := setupTestRouter(t, testConfig(t.TempDir()))

	w := perform(router, http.MethodPost, "/api/v1/admin/reset-all")
	assert.Equal(t, http.StatusForbidden, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/reset-all", nil)
	req.Header.Set("X-Admin-Secret", "admin-secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetupRoutes_WebhookAbsentWithoutBot(t *testing.T) {
	router := setupTestRouter(t, testConfig(t.TempDir()))

	w := perform(router, http.MethodPost, "/api/v1/telegram/webhook")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetupRoutes_StaticAssetsCached(t *testing.T) {
	root := t.TempDir()
	imagesDir := filepath.Join(root, "images")
	require.NoError(t, os.MkdirAll(imagesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(imagesDir, "kapi.png"), []byte("png"), 0o644))

	router := setupTestRouter(t, testConfig(root))

	w := perform(router, http.MethodGet, "/images/kapi.png")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))

	// directories absent on disk are simply not mounted
	assert.Equal(t, http.StatusNotFound, perform(router, http.MethodGet, "/media/x.mp3").Code)
}
