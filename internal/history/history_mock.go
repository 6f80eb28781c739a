package history

import (
	"time"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetHistoryStore implements the StoreManager interface.
func (m *MockStoreManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(startTime time.Time, rubricVersion string, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, rubricVersion, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// RecordScore implements the HistoryStore interface.
func (m *MockHistoryStore) RecordScore(runID int64, scored schema.ScoredSubmission) error {
	args := m.Called(runID, scored)
	return args.Error(0)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(runID int64, endTime time.Time, totalSubmissions int) error {
	args := m.Called(runID, endTime, totalSubmissions)
	return args.Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRuns() ([]schema.ScoringRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.ScoringRunRecord)
	return runs, args.Error(1)
}

// GetAllRecords implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRecords() ([]schema.ScoreHistoryRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.ScoreHistoryRecord)
	return records, args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
