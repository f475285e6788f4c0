package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// LegacyHMACStrategy accepts the single-stage HMAC older game clients
// compute over "{user_id}:{score}" with a pre-shared secret. The identity
// is client-asserted, which is why this strategy runs after init-data.
type LegacyHMACStrategy struct {
	secret string
}

func NewLegacyHMACStrategy(secret string) *LegacyHMACStrategy {
	return &LegacyHMACStrategy{secret: secret}
}

func (s *LegacyHMACStrategy) Name() string {
	return "legacy-hmac"
}

func (s *LegacyHMACStrategy) Verify(sub Submission) (*Identity, error) {
	if !sub.HasUserID || sub.Sig == "" {
		return nil, ErrNotAttempted
	}
	if s.secret == "" {
		return nil, ErrSecretNotConfigured
	}

	mac := hmac.New(sha256.New, []byte(s.secret))
	fmt.Fprintf(mac, "%d:%d", sub.UserID, sub.Score)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(sub.Sig))) {
		return nil, ErrSignatureMismatch
	}

	return &Identity{UserID: sub.UserID, Username: sub.Username}, nil
}
