package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"kapirun-api/internal/score"
	"kapirun-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// resetRequest picks out one record: a numeric Telegram user id or a
// username handle (leading @ accepted). Exactly one should be set.
type resetRequest struct {
	UserID   *int64 `json:"user_id"`
	Username string `json:"username"`
}

// AdminHandler exposes the reset operations. Authentication lives in the
// admin middleware, not here.
type AdminHandler struct {
	scoreService score.Service
	logger       *logger.Logger
}

// NewAdminHandler creates a new AdminHandler instance
func NewAdminHandler(scoreService score.Service, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		scoreService: scoreService,
		logger:       logger,
	}
}

// Reset handles POST /api/v1/admin/reset
func (h *AdminHandler) Reset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ref := req.Username
	if req.UserID != nil {
		ref = strconv.FormatInt(*req.UserID, 10)
	}
	if ref == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id or username required"})
		return
	}

	affected, err := h.scoreService.ResetUser(ref)
	if err != nil {
		h.respondResetError(c, err)
		return
	}

	h.logger.Info("Admin reset", "ref", ref, "affected", affected)
	c.JSON(http.StatusOK, gin.H{"ok": true, "affected": affected})
}

// ResetAll handles POST /api/v1/admin/reset-all
func (h *AdminHandler) ResetAll(c *gin.Context) {
	affected, err := h.scoreService.ResetAll()
	if err != nil {
		h.respondResetError(c, err)
		return
	}

	h.logger.Info("Admin reset all", "affected", affected)
	c.JSON(http.StatusOK, gin.H{"ok": true, "affected": affected})
}

func (h *AdminHandler) respondResetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, score.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "score store unavailable"})
	case errors.Is(err, score.ErrRecordNotFound):
		c.JSON(http.StatusOK, gin.H{"ok": true, "affected": 0})
	default:
		h.logger.Error("Reset failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
