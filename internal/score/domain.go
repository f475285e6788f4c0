package score

import (
	"fmt"
	"strings"
	"time"
)

// ScoreRecord is one row per distinct user. best_score never decreases as
// a result of a submission; updated_at refreshes on every successful write
// and breaks leaderboard ties (earlier update ranks higher).
type ScoreRecord struct {
	UserID    int64     `gorm:"column:user_id;primaryKey" json:"user_id"`
	Username  string    `gorm:"column:username" json:"username"`
	BestScore int       `gorm:"column:best_score;not null;default:0" json:"best_score"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (ScoreRecord) TableName() string {
	return "scores"
}

// NormalizeUsername strips a leading @ and whitespace; an empty handle is
// replaced with a placeholder derived from the user id.
func NormalizeUsername(username string, userID int64) string {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Sprintf("user_%d", userID)
	}
	return strings.TrimPrefix(username, "@")
}

// ClampScore coerces a submitted score to a non-negative value. Negative
// input is stored as zero rather than rejecting the request.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	return score
}
