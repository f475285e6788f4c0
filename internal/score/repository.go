package score

import "errors"

// Repository errors
var (
	ErrStoreUnavailable = errors.New("score store is not available")
	ErrRecordNotFound   = errors.New("score record not found")
)

// Repository defines the interface for score data access.
type Repository interface {
	// Upsert inserts the record or merges it into the existing row:
	// best_score becomes max(current, submitted), username and updated_at
	// are always overwritten. Returns the stored row and whether
	// best_score actually increased.
	Upsert(record *ScoreRecord) (*ScoreRecord, bool, error)

	// Top returns up to limit records ordered by best_score descending,
	// ties broken by updated_at ascending.
	Top(limit int) ([]ScoreRecord, error)

	// ResetByUserID zeroes a single record's best_score.
	ResetByUserID(userID int64) (int64, error)

	// ResetByUsername zeroes the record with the given normalized handle.
	ResetByUsername(username string) (int64, error)

	// ResetAll zeroes every record. Records are never deleted.
	ResetAll() (int64, error)
}
