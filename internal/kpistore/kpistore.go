// Package kpistore persists finished aggregation runs to a SQL backend.
package kpistore

import (
	"sync"

	"rigkpi/internal/contract"
)

// StoreManagerImpl manages the configured RunStore instance.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointer during initialization
	runs         contract.RunStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetRunStore returns the configured RunStore.
func (mgr *StoreManagerImpl) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}
