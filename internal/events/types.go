package events

import (
	"time"

	"github.com/google/uuid"
)

// Event represents the base event structure with common fields
type Event struct {
	CorrelationID string    `json:"correlation_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewEvent creates a new base event with generated correlation ID
func NewEvent() Event {
	return Event{
		CorrelationID: uuid.New().String(),
		Timestamp:     time.Now(),
	}
}

// ScoreSubmitted is published after a score submission has been verified
// and stored. Improved is true when best_score actually increased.
type ScoreSubmitted struct {
	Event
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Score     int    `json:"score"`
	BestScore int    `json:"best_score"`
	Improved  bool   `json:"improved"`
}

// ScoresReset is published after an administrative reset.
type ScoresReset struct {
	Event
	UserID   int64 `json:"user_id,omitempty"`
	Affected int64 `json:"affected"`
	All      bool  `json:"all"`
}

// Event topics constants
const (
	TopicScoreSubmitted = "score.submitted"
	TopicScoresReset    = "score.reset"
)
