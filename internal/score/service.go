package score

import (
	"strconv"
	"strings"

	"kapirun-api/internal/events"

	"go.uber.org/zap"
)

// DefaultMaxLimit caps leaderboard queries when no maximum is configured.
const DefaultMaxLimit = 200

// Service defines the score operations exposed to handlers and the bot.
type Service interface {
	// SubmitScore records a verified submission for the given identity.
	// The score is clamped to be non-negative and merged with max-wins
	// semantics; username and updated_at always take the new value.
	SubmitScore(userID int64, username string, score int) (*ScoreRecord, error)

	// TopScores returns the leaderboard, limit clamped to [1, max].
	TopScores(limit int) ([]ScoreRecord, error)

	// ResetUser zeroes one record; ref is a numeric user id or a handle
	// (leading @ accepted). Returns the number of affected records.
	ResetUser(ref string) (int64, error)

	// ResetAll zeroes every record.
	ResetAll() (int64, error)
}

// scoreService implements Service on top of a Repository. A nil repository
// means the persistent store was never configured; operations then return
// ErrStoreUnavailable rather than an authentication failure.
type scoreService struct {
	repo     Repository
	eventBus events.EventBus
	logger   *zap.Logger
	maxLimit int
}

// NewScoreService creates a new score service. repo may be nil when the
// database is disabled.
func NewScoreService(repo Repository, eventBus events.EventBus, logger *zap.Logger, maxLimit int) Service {
	if maxLimit <= 0 {
		maxLimit = DefaultMaxLimit
	}
	return &scoreService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		maxLimit: maxLimit,
	}
}

func (s *scoreService) SubmitScore(userID int64, username string, score int) (*ScoreRecord, error) {
	if s.repo == nil {
		return nil, ErrStoreUnavailable
	}

	record := &ScoreRecord{
		UserID:    userID,
		Username:  NormalizeUsername(username, userID),
		BestScore: ClampScore(score),
	}

	stored, improved, err := s.repo.Upsert(record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Score submitted",
		zap.Int64("user_id", stored.UserID),
		zap.String("username", stored.Username),
		zap.Int("submitted", record.BestScore),
		zap.Int("best_score", stored.BestScore),
		zap.Bool("improved", improved))

	if s.eventBus != nil {
		event := events.ScoreSubmitted{
			Event:     events.NewEvent(),
			UserID:    stored.UserID,
			Username:  stored.Username,
			Score:     record.BestScore,
			BestScore: stored.BestScore,
			Improved:  improved,
		}
		if err := s.eventBus.Publish(events.TopicScoreSubmitted, event); err != nil {
			s.logger.Warn("Failed to publish score event", zap.Error(err))
		}
	}

	return stored, nil
}

func (s *scoreService) TopScores(limit int) ([]ScoreRecord, error) {
	if s.repo == nil {
		return nil, ErrStoreUnavailable
	}

	// Clamp into [1, max]: an explicit zero or negative limit asks for
	// one row, not the full board.
	if limit < 1 {
		limit = 1
	} else if limit > s.maxLimit {
		limit = s.maxLimit
	}

	return s.repo.Top(limit)
}

func (s *scoreService) ResetUser(ref string) (int64, error) {
	if s.repo == nil {
		return 0, ErrStoreUnavailable
	}

	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, ErrRecordNotFound
	}

	var affected int64
	var err error
	if userID, parseErr := strconv.ParseInt(ref, 10, 64); parseErr == nil {
		affected, err = s.repo.ResetByUserID(userID)
	} else {
		affected, err = s.repo.ResetByUsername(strings.TrimPrefix(ref, "@"))
	}
	if err != nil {
		return 0, err
	}

	if s.eventBus != nil && affected > 0 {
		event := events.ScoresReset{Event: events.NewEvent(), Affected: affected}
		if err := s.eventBus.Publish(events.TopicScoresReset, event); err != nil {
			s.logger.Warn("Failed to publish reset event", zap.Error(err))
		}
	}

	return affected, nil
}

func (s *scoreService) ResetAll() (int64, error) {
	if s.repo == nil {
		return 0, ErrStoreUnavailable
	}

	affected, err := s.repo.ResetAll()
	if err != nil {
		return 0, err
	}

	if s.eventBus != nil {
		event := events.ScoresReset{Event: events.NewEvent(), Affected: affected, All: true}
		if err := s.eventBus.Publish(events.TopicScoresReset, event); err != nil {
			s.logger.Warn("Failed to publish reset event", zap.Error(err))
		}
	}

	return affected, nil
}
