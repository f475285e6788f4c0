package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"

	"kapirun-api/internal/score"
	"kapirun-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"
)

const (
	testBotToken    = "1234567:test-bot-token"
	testScoreSecret = "288e7f80d1204fea9bdc2749450bc4bc"
)

func newTestLogger(t *testing.T) *logger.Logger {
	return &logger.Logger{SugaredLogger: zaptest.NewLogger(t).Sugar()}
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// mockScoreService records calls and serves canned results
type mockScoreService struct {
	submitted   []score.ScoreRecord
	resetRefs   []string
	resetAllHit bool

	record    *score.ScoreRecord
	top       []score.ScoreRecord
	topLimit  int
	affected  int64
	submitErr error
	topErr    error
	resetErr  error
}

func (m *mockScoreService) SubmitScore(userID int64, username string, scoreValue int) (*score.ScoreRecord, error) {
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	m.submitted = append(m.submitted, score.ScoreRecord{
		UserID:    userID,
		Username:  username,
		BestScore: scoreValue,
	})
	if m.record != nil {
		return m.record, nil
	}
	return &score.ScoreRecord{
		UserID:    userID,
		Username:  score.NormalizeUsername(username, userID),
		BestScore: score.ClampScore(scoreValue),
	}, nil
}

func (m *mockScoreService) TopScores(limit int) ([]score.ScoreRecord, error) {
	m.topLimit = limit
	if m.topErr != nil {
		return nil, m.topErr
	}
	return m.top, nil
}

func (m *mockScoreService) ResetUser(ref string) (int64, error) {
	if m.resetErr != nil {
		return 0, m.resetErr
	}
	m.resetRefs = append(m.resetRefs, ref)
	return m.affected, nil
}

func (m *mockScoreService) ResetAll() (int64, error) {
	if m.resetErr != nil {
		return 0, m.resetErr
	}
	m.resetAllHit = true
	return m.affected, nil
}

// mockChatbotService stubs webhook dispatch
type mockChatbotService struct {
	webhookErr   error
	secretOK     bool
	handledBody  []byte
	handledCalls int
}

func (m *mockChatbotService) HandleWebhook(webhookData []byte) error {
	m.handledCalls++
	m.handledBody = webhookData
	return m.webhookErr
}

func (m *mockChatbotService) VerifyWebhookSecret(headerSecret string) bool {
	return m.secretOK
}

// legacySig computes the shared-secret signature the game client sends
func legacySig(secret string, userID int64, scoreValue int) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d:%d", userID, scoreValue)
	return hex.EncodeToString(mac.Sum(nil))
}

// buildInitData assembles a signed WebApp init-data string
func buildInitData(botToken string, pairs map[string]string) string {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+pairs[k])
	}

	secretMAC := hmac.New(sha256.New, []byte("WebAppData"))
	secretMAC.Write([]byte(botToken))
	secret := secretMAC.Sum(nil)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(strings.Join(parts, "\n")))
	hash := hex.EncodeToString(mac.Sum(nil))

	values := url.Values{}
	for k, v := range pairs {
		values.Set(k, v)
	}
	values.Set("hash", hash)
	return values.Encode()
}

var errBoom = errors.New("boom")
