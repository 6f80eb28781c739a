// Package history records scoring runs and per-organization score records.
package history

import (
	"sync"

	"github.com/huangsam/scorecard/internal/contract"
)

// HistoryStoreManager owns the HistoryStore used by the scoring commands.
type HistoryStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	history      contract.HistoryStore
}

var _ contract.StoreManager = &HistoryStoreManager{} // Compile-time check

// GetHistoryStore returns the HistoryStore, or nil when tracking was not initialized.
func (mgr *HistoryStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
