package score

import (
	"sort"
	"sync"
	"time"
)

// MockRepository provides an in-memory implementation for testing
type MockRepository struct {
	records     map[int64]*ScoreRecord
	upsertError error
	topError    error
	resetError  error
	clock       time.Time
	mutex       sync.Mutex
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{
		records: make(map[int64]*ScoreRecord),
		clock:   time.Now(),
	}
}

// SetUpsertError injects an error for Upsert calls
func (m *MockRepository) SetUpsertError(err error) { m.upsertError = err }

// SetTopError injects an error for Top calls
func (m *MockRepository) SetTopError(err error) { m.topError = err }

// SetResetError injects an error for reset calls
func (m *MockRepository) SetResetError(err error) { m.resetError = err }

// tick advances the mock clock so successive writes get distinct timestamps
func (m *MockRepository) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *MockRepository) Upsert(record *ScoreRecord) (*ScoreRecord, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.upsertError != nil {
		return nil, false, m.upsertError
	}

	existing, ok := m.records[record.UserID]
	if !ok {
		stored := &ScoreRecord{
			UserID:    record.UserID,
			Username:  record.Username,
			BestScore: record.BestScore,
			UpdatedAt: m.tick(),
		}
		m.records[record.UserID] = stored
		copied := *stored
		return &copied, true, nil
	}

	improved := record.BestScore > existing.BestScore
	if improved {
		existing.BestScore = record.BestScore
	}
	existing.Username = record.Username
	existing.UpdatedAt = m.tick()

	copied := *existing
	return &copied, improved, nil
}

func (m *MockRepository) Top(limit int) ([]ScoreRecord, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.topError != nil {
		return nil, m.topError
	}

	records := make([]ScoreRecord, 0, len(m.records))
	for _, record := range m.records {
		records = append(records, *record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].BestScore != records[j].BestScore {
			return records[i].BestScore > records[j].BestScore
		}
		return records[i].UpdatedAt.Before(records[j].UpdatedAt)
	})

	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (m *MockRepository) ResetByUserID(userID int64) (int64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.resetError != nil {
		return 0, m.resetError
	}

	record, ok := m.records[userID]
	if !ok {
		return 0, nil
	}
	record.BestScore = 0
	record.UpdatedAt = m.tick()
	return 1, nil
}

func (m *MockRepository) ResetByUsername(username string) (int64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.resetError != nil {
		return 0, m.resetError
	}

	var affected int64
	for _, record := range m.records {
		if record.Username == username {
			record.BestScore = 0
			record.UpdatedAt = m.tick()
			affected++
		}
	}
	return affected, nil
}

func (m *MockRepository) ResetAll() (int64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.resetError != nil {
		return 0, m.resetError
	}

	var affected int64
	for _, record := range m.records {
		record.BestScore = 0
		record.UpdatedAt = m.tick()
		affected++
	}
	return affected, nil
}
