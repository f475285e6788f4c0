package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"kapirun-api/internal/score"
	"kapirun-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// LeaderboardHandler serves the public leaderboard
type LeaderboardHandler struct {
	scoreService score.Service
	defaultLimit int
	logger       *logger.Logger
}

// NewLeaderboardHandler creates a new LeaderboardHandler instance
func NewLeaderboardHandler(scoreService score.Service, defaultLimit int, logger *logger.Logger) *LeaderboardHandler {
	if defaultLimit <= 0 {
		defaultLimit = score.DefaultMaxLimit
	}
	return &LeaderboardHandler{
		scoreService: scoreService,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

// Get handles GET /api/v1/leaderboard?limit=N. An absent or unparsable
// limit falls back to the configured maximum; an explicit limit is passed
// through and clamped into [1, max] by the score service.
func (h *LeaderboardHandler) Get(c *gin.Context) {
	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	records, err := h.scoreService.TopScores(limit)
	if err != nil {
		if errors.Is(err, score.ErrStoreUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "score store unavailable"})
			return
		}
		h.logger.Error("Failed to query leaderboard", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if records == nil {
		records = []score.ScoreRecord{}
	}
	c.JSON(http.StatusOK, records)
}
