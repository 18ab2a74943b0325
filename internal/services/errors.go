// Package services implements the offline core's behavior on top of the
// repo layer: the OfflineStore facade, the SyncCoordinator, and the
// cache-aware DataAccessor. This file centralizes the service-level
// error values so callers can classify failures consistently.
package services

import "errors"

var (
	// ErrStorageInit indicates the underlying storage engine could not
	// be opened or migrated. Fatal for offline features only: the app
	// must degrade to network-only mode, not crash.
	ErrStorageInit = errors.New("offline storage initialization failed")

	// ErrStorageWrite indicates a write against the underlying storage
	// failed (disk full, corruption). Transient: callers leave their
	// in-memory state unchanged and retry at the next natural trigger.
	ErrStorageWrite = errors.New("offline storage write failed")
)
