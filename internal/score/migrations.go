package score

import (
	"fmt"

	"gorm.io/gorm"
)

// RunMigrations creates the scores table and its leaderboard index.
// Safe to invoke on every process start.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&ScoreRecord{}); err != nil {
		return fmt.Errorf("failed to auto-migrate scores table: %w", err)
	}

	// Secondary index backing the leaderboard ordering
	index := "CREATE INDEX IF NOT EXISTS idx_scores_best ON scores (best_score DESC)"
	if err := db.Exec(index).Error; err != nil {
		return fmt.Errorf("failed to create leaderboard index: %w", err)
	}

	return nil
}

// DropTables drops the scores table (for testing cleanup)
func DropTables(db *gorm.DB) error {
	if err := db.Exec("DROP TABLE IF EXISTS scores CASCADE").Error; err != nil {
		return fmt.Errorf("failed to drop scores table: %w", err)
	}
	return nil
}
