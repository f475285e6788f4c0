package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"kapirun-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// StaticHandler serves the game's entry page. The asset directories
// themselves are mounted in the routes package; this handler only owns
// the index, which must never be cached so game updates reach players.
type StaticHandler struct {
	root   string
	logger *logger.Logger
}

// NewStaticHandler creates a new StaticHandler instance
func NewStaticHandler(root string, logger *logger.Logger) *StaticHandler {
	return &StaticHandler{
		root:   root,
		logger: logger,
	}
}

// Index handles GET /. When no index.html is deployed alongside the
// server it answers with a small JSON hint instead of a 404.
func (h *StaticHandler) Index(c *gin.Context) {
	indexPath := filepath.Join(h.root, "index.html")
	if _, err := os.Stat(indexPath); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"ok":   true,
			"hint": "game assets not deployed; API is up",
		})
		return
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.File(indexPath)
}
