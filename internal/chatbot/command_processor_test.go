package chatbot

import (
	"strings"
	"testing"

	"kapirun-api/internal/config"
	"kapirun-api/internal/events"
	"kapirun-api/internal/score"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestProcessor(t *testing.T, repo score.Repository, adminSecret string) *CommandProcessor {
	service := score.NewScoreService(repo, events.NewMockEventBus(), zaptest.NewLogger(t), 200)
	cfg := config.TelegramConfig{GameShortName: "kapi_run", PublicGameURL: "https://game.example.com/"}
	return NewCommandProcessor(service, zaptest.NewLogger(t), cfg, adminSecret)
}

func seedScores(t *testing.T, repo *score.MockRepository, entries map[int64]int) {
	t.Helper()
	for userID, best := range entries {
		_, _, err := repo.Upsert(&score.ScoreRecord{
			UserID:    userID,
			Username:  score.NormalizeUsername("", userID),
			BestScore: best,
		})
		require.NoError(t, err)
	}
}

func TestProcessTopCommand_FormatsLeaderboard(t *testing.T) {
	repo := score.NewMockRepository()
	seedScores(t, repo, map[int64]int{1: 300, 2: 100})

	processor := newTestProcessor(t, repo, "")

	text, err := processor.ProcessTopCommand()
	require.NoError(t, err)
	assert.Contains(t, text, "TOP SCORES")
	assert.Contains(t, text, "1. @user_1 — 300")
	assert.Contains(t, text, "2. @user_2 — 100")
}

func TestProcessTopCommand_Empty(t *testing.T) {
	processor := newTestProcessor(t, score.NewMockRepository(), "")

	text, err := processor.ProcessTopCommand()
	require.NoError(t, err)
	assert.Contains(t, text, "No scores yet")
}

func TestProcessTopCommand_StoreUnavailable(t *testing.T) {
	processor := newTestProcessor(t, nil, "")

	text, err := processor.ProcessTopCommand()
	require.NoError(t, err)
	assert.Contains(t, text, "unavailable")
}

func TestProcessTopCommand_TruncatesLongBoard(t *testing.T) {
	repo := score.NewMockRepository()
	entries := make(map[int64]int, 200)
	for i := int64(1); i <= 200; i++ {
		entries[i] = int(1000000 + i)
	}
	seedScores(t, repo, entries)

	processor := newTestProcessor(t, repo, "")

	text, err := processor.ProcessTopCommand()
	require.NoError(t, err)
	assert.LessOrEqual(t, len(text), maxLeaderboardChars+len("…"))
	assert.True(t, strings.HasSuffix(text, "…"))
}

func TestProcessResetCommand(t *testing.T) {
	repo := score.NewMockRepository()
	seedScores(t, repo, map[int64]int{1: 300, 2: 100})

	processor := newTestProcessor(t, repo, "admin-secret")

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"missing args", []string{"admin-secret"}, "Usage:"},
		{"wrong secret", []string{"wrong", "1"}, "Not authorized"},
		{"reset by id", []string{"admin-secret", "1"}, "1 record(s) affected"},
		{"reset unknown", []string{"admin-secret", "999"}, "0 record(s) affected"},
		{"reset all", []string{"admin-secret", "all"}, "2 record(s) affected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := processor.ProcessResetCommand(42, tt.args)
			require.NoError(t, err)
			assert.Contains(t, text, tt.expected)
		})
	}
}

func TestProcessResetCommand_NoSecretConfigured(t *testing.T) {
	repo := score.NewMockRepository()
	seedScores(t, repo, map[int64]int{1: 300})

	processor := newTestProcessor(t, repo, "")

	// With no admin secret configured the command never authorizes
	text, err := processor.ProcessResetCommand(42, []string{"", "1"})
	require.NoError(t, err)
	assert.Contains(t, text, "Not authorized")
}
