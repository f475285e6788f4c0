package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// initDataKey is the constant HMAC key Telegram prescribes for deriving
// the WebApp secret from the bot token.
const initDataKey = "WebAppData"

// InitDataStrategy verifies Telegram WebApp init-data signed with the bot
// token. The submitter's identity travels inside the signed payload, so a
// client-asserted user_id is never trusted on this path.
type InitDataStrategy struct {
	botToken string
}

func NewInitDataStrategy(botToken string) *InitDataStrategy {
	return &InitDataStrategy{botToken: botToken}
}

func (s *InitDataStrategy) Name() string {
	return "webapp-init-data"
}

func (s *InitDataStrategy) Verify(sub Submission) (*Identity, error) {
	initData := strings.TrimSpace(sub.InitData)
	if initData == "" {
		return nil, ErrNotAttempted
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInitData, err)
	}

	claimed := values.Get("hash")
	if claimed == "" {
		return nil, ErrMissingHash
	}
	values.Del("hash")

	calculated := s.sign(canonicalString(values))
	// Case-insensitive hex comparison, constant time.
	if !hmac.Equal([]byte(calculated), []byte(strings.ToLower(claimed))) {
		return nil, ErrHashMismatch
	}

	// A valid hash is not enough: the user payload must parse too.
	userRaw := values.Get("user")
	if userRaw == "" {
		return nil, ErrBadUserPayload
	}

	var user struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal([]byte(userRaw), &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadUserPayload, err)
	}
	if user.ID == 0 {
		return nil, ErrBadUserPayload
	}

	return &Identity{UserID: user.ID, Username: user.Username}, nil
}

// canonicalString builds the data-check string: pairs sorted by key and
// joined with newlines. Only hash is excluded; a signature pair, when
// present, participates per Telegram's published scheme.
func canonicalString(values url.Values) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	return strings.Join(pairs, "\n")
}

func (s *InitDataStrategy) sign(canonical string) string {
	secret := hmac.New(sha256.New, []byte(initDataKey))
	secret.Write([]byte(s.botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil))
}
