package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"kapirun-api/internal/auth"
	"kapirun-api/internal/score"
	"kapirun-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// InitDataHeader carries the WebApp init-data string; it takes precedence
// over the init_data body field.
const InitDataHeader = "X-Telegram-Init-Data"

// FlexScore tolerates the loose typing of game clients. Numbers, numeric
// strings and fractional values all decode; anything unparsable coerces to
// zero instead of rejecting the whole submission.
type FlexScore int

func (s *FlexScore) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		*s = 0
		return nil
	}
	switch v := raw.(type) {
	case float64:
		*s = FlexScore(int(v))
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			*s = FlexScore(int(n))
		} else {
			*s = 0
		}
	default:
		*s = 0
	}
	return nil
}

// scoreRequest is the submission body. user_id stays a pointer so a missing
// field is distinguishable from a literal zero; a non-integer user_id is a
// malformed request, not a zero.
type scoreRequest struct {
	InitData string    `json:"init_data"`
	UserID   *int64    `json:"user_id"`
	Username string    `json:"username"`
	Score    FlexScore `json:"score"`
	Sig      string    `json:"sig"`
}

// ScoreHandler accepts score submissions from the game client. Verification
// always runs before the store is touched; a rejected submission never
// reaches the database.
type ScoreHandler struct {
	verifier     *auth.Verifier
	scoreService score.Service
	logger       *logger.Logger
}

// NewScoreHandler creates a new ScoreHandler instance
func NewScoreHandler(verifier *auth.Verifier, scoreService score.Service, logger *logger.Logger) *ScoreHandler {
	return &ScoreHandler{
		verifier:     verifier,
		scoreService: scoreService,
		logger:       logger,
	}
}

// Submit handles POST /api/v1/score
func (h *ScoreHandler) Submit(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Malformed score submission", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	initData := c.GetHeader(InitDataHeader)
	if initData == "" {
		initData = req.InitData
	}

	sub := auth.Submission{
		InitData: initData,
		Username: req.Username,
		Score:    int(req.Score),
		Sig:      req.Sig,
	}
	if req.UserID != nil {
		sub.UserID = *req.UserID
		sub.HasUserID = true
	}

	identity, err := h.verifier.Verify(sub)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	// The signed init-data username wins over the client-asserted one.
	username := identity.Username
	if username == "" {
		username = req.Username
	}

	record, err := h.scoreService.SubmitScore(identity.UserID, username, int(req.Score))
	if err != nil {
		if errors.Is(err, score.ErrStoreUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "score store unavailable"})
			return
		}
		h.logger.Error("Failed to store score",
			"user_id", identity.UserID,
			"error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"user_id":  record.UserID,
		"username": record.Username,
		"score":    record.BestScore,
	})
}
