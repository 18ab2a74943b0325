// Package services – OfflineStore
//
// The OfflineStore is the facade presentation code and the other
// services talk to: entity caching with TTLs, the pending-action
// outbox, the analytics outbox, retention, stats, and reset. It owns
// the mapping from repo/driver errors to the service-level taxonomy
// (ErrStorageInit, ErrStorageWrite) so storage trouble never leaks raw
// driver errors upward.
package services

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sportsedge/offline-core/internal/domain"
	"github.com/sportsedge/offline-core/internal/repo"
)

// EntityInput is one item handed to StoreEntities. Payload is any
// JSON-serializable domain object; TTL of zero means no explicit
// expiry (the retention sweep's hard max-age still applies).
type EntityInput struct {
	ID      string
	Payload any
	TTL     time.Duration
}

// OfflineStore wraps the repo layer with policy: id/timestamp
// generation, payload serialization, TTL computation, and error
// classification.
type OfflineStore struct {
	// DB is the GORM handle opened by repo.OpenSQLite.
	DB *gorm.DB
	// Retention is the sweep policy applied by Initialize and Sweep.
	Retention repo.RetentionPolicy
	// Now returns the current instant; injectable for tests.
	Now func() time.Time
	// Log is the component logger.
	Log zerolog.Logger
}

// NewOfflineStore constructs a store with default retention and the
// real clock.
func NewOfflineStore(db *gorm.DB, log zerolog.Logger) *OfflineStore {
	return &OfflineStore{
		DB:        db,
		Retention: repo.DefaultRetention(),
		Now:       time.Now,
		Log:       log.With().Str("component", "store").Logger(),
	}
}

// Initialize migrates the schema and runs one retention sweep.
// Idempotent: safe to call on every startup. Failure wraps
// ErrStorageInit and means offline features are unavailable; the app
// should continue in network-only mode.
func (s *OfflineStore) Initialize(ctx context.Context) error {
	if err := repo.AutoMigrate(s.DB); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageInit, err)
	}
	res, err := repo.RunRetentionSweep(ctx, s.DB, s.Now(), s.Retention)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageInit, err)
	}
	if res.Total() > 0 {
		s.Log.Info().Int64("deleted", res.Total()).Msg("startup retention sweep")
	}
	return nil
}

// StoreEntities serializes and upserts items into table. Write failure
// wraps ErrStorageWrite; the caller's in-memory state should be left
// as-is since nothing is known to have persisted.
func (s *OfflineStore) StoreEntities(ctx context.Context, table string, items []EntityInput) error {
	now := s.Now()
	rows := make([]domain.CachedEntity, 0, len(items))
	for _, it := range items {
		payload, err := json.Marshal(it.Payload)
		if err != nil {
			return fmt.Errorf("%w: encode %s/%s: %v", ErrStorageWrite, table, it.ID, err)
		}
		row := domain.CachedEntity{
			ID:        it.ID,
			Payload:   string(payload),
			CreatedAt: now.UTC(),
		}
		if it.TTL > 0 {
			exp := now.Add(it.TTL).UTC()
			row.ExpiresAt = &exp
		}
		rows = append(rows, row)
	}
	if err := repo.StoreEntities(ctx, s.DB, table, rows); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrStorageWrite, table, err)
	}
	return nil
}

// CachedEntities returns the unexpired rows of table, newest first.
func (s *OfflineStore) CachedEntities(ctx context.Context, table string) ([]domain.CachedEntity, error) {
	return repo.CachedEntities(ctx, s.DB, table, s.Now())
}

// StoreOfflineAction validates the action type, serializes the payload,
// and enqueues it with retry count zero. Pure local write — callable
// while offline by construction.
func (s *OfflineStore) StoreOfflineAction(ctx context.Context, typ domain.ActionType, payload any) (*domain.PendingAction, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownActionType, typ)
	}
	encoded, err := domain.EncodeActionPayload(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	a, err := repo.AddPendingAction(ctx, s.DB, typ, encoded, s.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	s.Log.Debug().Str("action_id", a.ID).Str("type", string(typ)).Msg("queued offline action")
	return a, nil
}

// TrackEvent records one analytics event locally. Best-effort: a write
// failure is logged and swallowed, telemetry must never block or break
// user-visible functionality.
func (s *OfflineStore) TrackEvent(ctx context.Context, eventType string, data any) {
	encoded, err := json.Marshal(data)
	if err != nil {
		s.Log.Debug().Err(err).Str("event", eventType).Msg("drop unencodable analytics event")
		return
	}
	if _, err := repo.StoreAnalyticsEvent(ctx, s.DB, eventType, string(encoded), s.Now()); err != nil {
		s.Log.Debug().Err(err).Str("event", eventType).Msg("analytics write failed")
	}
}

// Sweep runs a retention pass now and reports what was removed.
func (s *OfflineStore) Sweep(ctx context.Context) (repo.SweepResult, error) {
	res, err := repo.RunRetentionSweep(ctx, s.DB, s.Now(), s.Retention)
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	return res, nil
}

// Stats reports per-table row counts and approximate byte usage.
// Diagnostics only; nothing in the sync path depends on it.
func (s *OfflineStore) Stats(ctx context.Context) (repo.StorageStats, error) {
	return repo.CollectStorageStats(ctx, s.DB)
}

// ClearAll wipes every offline table. Used on logout/reset; clearing an
// already-empty store succeeds.
func (s *OfflineStore) ClearAll(ctx context.Context) error {
	if err := repo.ClearAll(s.DB.WithContext(ctx)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	s.Log.Info().Msg("offline storage cleared")
	return nil
}
