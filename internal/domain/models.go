// Package domain defines the persistence models for the offline core:
// cached remote entities, the pending-action outbox, and the analytics
// outbox. These types are mapped with GORM and form the durable state
// that survives process restarts.
package domain

import "time"

// Cached entity table names. The cache is deliberately un-normalized:
// each table holds self-contained JSON blobs keyed by id, with no
// foreign keys across tables.
const (
	TableValueBets = "cached_value_bets"
	TableLiveGames = "cached_live_games"
	TableUserBlobs = "user_blobs"
)

// CacheTables lists every cached-entity table, in a stable order.
// Used by schema migration, the retention sweep, and ClearAll.
var CacheTables = []string{TableValueBets, TableLiveGames, TableUserBlobs}

// KnownCacheTable reports whether name is one of the cached-entity tables.
func KnownCacheTable(name string) bool {
	for _, t := range CacheTables {
		if t == name {
			return true
		}
	}
	return false
}

// CachedEntity is one cached remote object (a value bet, a live game, or
// a generic user blob). The same row shape backs all cache tables; the
// table a row lives in determines its entity type.
//
// Fields:
//   - ID: unique within its table; overwritten in place on re-fetch.
//   - Payload: the domain object exactly as received from the remote
//     API, serialized to JSON.
//   - CreatedAt: timestamp of the most recent cache write.
//   - ExpiresAt: optional; when set and in the past the row is stale —
//     excluded from reads and eligible for the retention sweep.
type CachedEntity struct {
	ID        string     `json:"id"         gorm:"type:varchar(128);primaryKey"`
	Payload   string     `json:"payload"    gorm:"type:text;not null"`
	CreatedAt time.Time  `json:"created_at" gorm:"index"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" gorm:"index"`
}

// Expired reports whether the entity is stale at the given instant.
// Entities without an explicit ExpiresAt never expire on their own
// (the retention sweep still removes them past the hard max-age).
func (e CachedEntity) Expired(now time.Time) bool {
	return e.ExpiresAt != nil && !e.ExpiresAt.After(now)
}

// PendingAction is a durable record of a state-changing operation that
// could not be confirmed against the remote API, usually because it was
// issued while offline. Actions are replayed FIFO by CreatedAt when
// connectivity returns.
//
// Delivery is best-effort, not exactly-once: RetryCount only grows, and
// once it reaches the retry ceiling the action is permanently dropped.
type PendingAction struct {
	ID         string     `json:"id"          gorm:"type:varchar(64);primaryKey"`
	Type       ActionType `json:"type"        gorm:"type:varchar(32);not null;index"`
	Payload    string     `json:"payload"     gorm:"type:text;not null"`
	CreatedAt  time.Time  `json:"created_at"  gorm:"index"`
	RetryCount int        `json:"retry_count" gorm:"not null;default:0"`
}

// TableName returns the database table name for PendingAction.
func (PendingAction) TableName() string { return "pending_actions" }

// AnalyticsEvent is a fire-and-forget telemetry record. Unlike pending
// actions, events are uploaded in batches, carry no retry ceiling, and
// are marked synced rather than deleted on success; synced rows are
// purged by the retention sweep once they age out.
type AnalyticsEvent struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	EventType string    `json:"event_type" gorm:"type:varchar(64);not null;index"`
	Data      string    `json:"data"       gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	Synced    bool      `json:"synced"     gorm:"not null;default:false;index"`
}

// TableName returns the database table name for AnalyticsEvent.
func (AnalyticsEvent) TableName() string { return "analytics_events" }
