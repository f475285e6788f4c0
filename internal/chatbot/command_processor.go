package chatbot

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"kapirun-api/internal/config"
	"kapirun-api/internal/score"

	"go.uber.org/zap"
)

// Telegram rejects messages above 4096 characters; leave headroom for the
// header line when truncating the leaderboard.
const maxLeaderboardChars = 3500

// CommandProcessor handles bot command processing
type CommandProcessor struct {
	scoreService score.Service
	logger       *zap.Logger
	config       config.TelegramConfig
	adminSecret  string
}

// NewCommandProcessor creates a new CommandProcessor instance
func NewCommandProcessor(scoreService score.Service, logger *zap.Logger, cfg config.TelegramConfig, adminSecret string) *CommandProcessor {
	return &CommandProcessor{
		scoreService: scoreService,
		logger:       logger,
		config:       cfg,
		adminSecret:  adminSecret,
	}
}

// ProcessStartCommand handles the /start command
func (cp *CommandProcessor) ProcessStartCommand(userID int64) string {
	cp.logger.Info("Processing start command", zap.Int64("user_id", userID))

	return "Welcome to <b>Kapi Run</b>! 🏃\nTap the button to play. Your scores are saved automatically."
}

// ProcessTopCommand handles the /top command
func (cp *CommandProcessor) ProcessTopCommand() (string, error) {
	records, err := cp.scoreService.TopScores(score.DefaultMaxLimit)
	if err != nil {
		if errors.Is(err, score.ErrStoreUnavailable) {
			return "The leaderboard is unavailable right now.", nil
		}
		return "", fmt.Errorf("failed to load leaderboard: %w", err)
	}

	if len(records) == 0 {
		return "No scores yet. Claim the first one! 🏆", nil
	}

	var b strings.Builder
	b.WriteString("🏆 TOP SCORES\n")
	for i, record := range records {
		line := fmt.Sprintf("%d. @%s — %d\n", i+1, record.Username, record.BestScore)
		if b.Len()+len(line) > maxLeaderboardChars {
			b.WriteString("…")
			break
		}
		b.WriteString(line)
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

// ProcessHelpCommand handles the /help command
func (cp *CommandProcessor) ProcessHelpCommand() string {
	return `🎮 <b>Kapi Run</b>

/start - Get the game button
/top - Show the top scores
/help - Show this help message`
}

// ProcessResetCommand handles the admin /reset command:
// /reset <admin-secret> <user_id|@handle|all>
func (cp *CommandProcessor) ProcessResetCommand(userID int64, args []string) (string, error) {
	if len(args) != 2 {
		return "Usage: /reset <secret> <user_id|@handle|all>", nil
	}

	if cp.adminSecret == "" ||
		subtle.ConstantTimeCompare([]byte(args[0]), []byte(cp.adminSecret)) != 1 {
		cp.logger.Warn("Reset command rejected", zap.Int64("user_id", userID))
		return "Not authorized.", nil
	}

	var affected int64
	var err error
	if strings.EqualFold(args[1], "all") {
		affected, err = cp.scoreService.ResetAll()
	} else {
		affected, err = cp.scoreService.ResetUser(args[1])
	}
	if err != nil {
		if errors.Is(err, score.ErrStoreUnavailable) {
			return "The score store is unavailable right now.", nil
		}
		return "", fmt.Errorf("failed to reset scores: %w", err)
	}

	return fmt.Sprintf("Reset complete: %d record(s) affected.", affected), nil
}
