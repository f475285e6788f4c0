package score

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormScoreRepository implements the Repository interface using GORM
type gormScoreRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormScoreRepository creates a new GORM-based score repository
func NewGormScoreRepository(db *gorm.DB, logger *zap.Logger) Repository {
	return &gormScoreRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert performs the atomic max-merge write. Serialization of concurrent
// submissions for the same user is delegated to Postgres: the whole merge
// is one INSERT ... ON CONFLICT statement inside a single transaction.
func (r *gormScoreRepository) Upsert(record *ScoreRecord) (*ScoreRecord, bool, error) {
	r.logger.Debug("Upserting score",
		zap.Int64("user_id", record.UserID),
		zap.Int("score", record.BestScore))

	var stored ScoreRecord
	var previous int

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing ScoreRecord
		err := tx.Where("user_id = ?", record.UserID).First(&existing).Error
		switch {
		case err == nil:
			previous = existing.BestScore
		case errors.Is(err, gorm.ErrRecordNotFound):
			previous = -1 // no row yet; any non-negative score is an improvement
		default:
			return fmt.Errorf("failed to read existing score: %w", err)
		}

		// updated_at comes from the database clock on both paths; mixing
		// in the app clock would perturb the tie-break ordering.
		err = tx.Model(&ScoreRecord{}).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"username":   gorm.Expr("excluded.username"),
				"best_score": gorm.Expr("GREATEST(scores.best_score, excluded.best_score)"),
				"updated_at": gorm.Expr("now()"),
			}),
		}).Create(map[string]interface{}{
			"user_id":    record.UserID,
			"username":   record.Username,
			"best_score": record.BestScore,
			"updated_at": gorm.Expr("now()"),
		}).Error
		if err != nil {
			return fmt.Errorf("failed to upsert score: %w", err)
		}

		return tx.Where("user_id = ?", record.UserID).First(&stored).Error
	})
	if err != nil {
		return nil, false, err
	}

	improved := stored.BestScore > previous
	return &stored, improved, nil
}

func (r *gormScoreRepository) Top(limit int) ([]ScoreRecord, error) {
	var records []ScoreRecord
	err := r.db.
		Order("best_score DESC").
		Order("updated_at ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	return records, nil
}

func (r *gormScoreRepository) ResetByUserID(userID int64) (int64, error) {
	result := r.db.Model(&ScoreRecord{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"best_score": 0,
			"updated_at": gorm.Expr("now()"),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to reset score: %w", result.Error)
	}

	r.logger.Info("Score reset",
		zap.Int64("user_id", userID),
		zap.Int64("affected", result.RowsAffected))
	return result.RowsAffected, nil
}

func (r *gormScoreRepository) ResetByUsername(username string) (int64, error) {
	result := r.db.Model(&ScoreRecord{}).
		Where("username = ?", username).
		Updates(map[string]interface{}{
			"best_score": 0,
			"updated_at": gorm.Expr("now()"),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to reset score: %w", result.Error)
	}

	r.logger.Info("Score reset",
		zap.String("username", username),
		zap.Int64("affected", result.RowsAffected))
	return result.RowsAffected, nil
}

func (r *gormScoreRepository) ResetAll() (int64, error) {
	result := r.db.Model(&ScoreRecord{}).
		Where("1 = 1").
		Updates(map[string]interface{}{
			"best_score": 0,
			"updated_at": gorm.Expr("now()"),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to reset all scores: %w", result.Error)
	}

	r.logger.Info("All scores reset", zap.Int64("affected", result.RowsAffected))
	return result.RowsAffected, nil
}
