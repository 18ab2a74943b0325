// Package services – DataAccessor
//
// The accessor is the read path presentation code uses. Its one policy
// is availability over freshness: a cached, possibly-stale answer is
// always preferred over an empty or error state. Load never returns a
// hard error — failure is observable only through the Err field that
// rides alongside the data.
package services

import (
	"context"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/sportsedge/offline-core/internal/connectivity"
	"github.com/sportsedge/offline-core/internal/domain"
)

// FetchFunc produces fresh entities for a cache table from the remote
// API. Implementations typically wrap one api.Client call plus decode.
type FetchFunc func(ctx context.Context) ([]EntityInput, error)

// LoadResult is what Load hands back to presentation code.
//
// Data is always usable (fresh, cached, or the caller's fallback).
// Err, when set, explains why fresh data was unavailable. FromCache and
// Offline let the UI badge staleness without inspecting errors.
type LoadResult struct {
	Data      []domain.CachedEntity
	Err       error
	FromCache bool
	Offline   bool
}

// DataAccessor serves reads cache-first when offline and
// network-first — with cache fallback — when online.
type DataAccessor struct {
	Store   *OfflineStore
	Monitor *connectivity.Monitor
	Log     zerolog.Logger
}

// NewDataAccessor wires an accessor over the given store and monitor.
func NewDataAccessor(store *OfflineStore, monitor *connectivity.Monitor, log zerolog.Logger) *DataAccessor {
	return &DataAccessor{
		Store:   store,
		Monitor: monitor,
		Log:     log.With().Str("component", "accessor").Logger(),
	}
}

// Load resolves table's data:
//
//  1. Offline: return unexpired cache rows; empty cache returns
//     fallback. fetch is never invoked.
//  2. Online: invoke fetch. Success writes through to the cache and
//     returns the fresh rows. Failure falls back to the cache
//     (stale-but-available), then to fallback.
//
// All failure paths resolve to data; Err is the only failure signal.
func (d *DataAccessor) Load(ctx context.Context, table string, fetch FetchFunc, fallback []domain.CachedEntity) LoadResult {
	if !d.Monitor.Online() {
		return d.fromCache(ctx, table, fallback, nil, true)
	}

	items, err := fetch(ctx)
	if err != nil {
		d.Log.Debug().Err(err).Str("table", table).Msg("fetch failed, falling back to cache")
		return d.fromCache(ctx, table, fallback, err, false)
	}

	// Opportunistic refresh: a failed cache write is not a failed
	// load — the fresh data still goes to the caller.
	if werr := d.Store.StoreEntities(ctx, table, items); werr != nil {
		d.Log.Warn().Err(werr).Str("table", table).Msg("cache refresh failed")
	}

	cacheLoads.WithLabelValues("network").Inc()
	return LoadResult{Data: entityRows(items, d.Store), FromCache: false, Offline: false}
}

// fromCache serves table from local storage, degrading to fallback when
// the cache is empty or unreadable. cause carries the original fetch
// error (nil on the pure-offline path).
func (d *DataAccessor) fromCache(ctx context.Context, table string, fallback []domain.CachedEntity, cause error, offline bool) LoadResult {
	cached, err := d.Store.CachedEntities(ctx, table)
	if err != nil {
		d.Log.Warn().Err(err).Str("table", table).Msg("cache read failed")
		cacheLoads.WithLabelValues("fallback").Inc()
		return LoadResult{Data: fallback, Err: firstErr(cause, err), FromCache: true, Offline: offline}
	}
	if len(cached) == 0 {
		cacheLoads.WithLabelValues("fallback").Inc()
		return LoadResult{Data: fallback, Err: cause, FromCache: true, Offline: offline}
	}
	cacheLoads.WithLabelValues("cache").Inc()
	return LoadResult{Data: cached, Err: cause, FromCache: true, Offline: offline}
}

// entityRows converts fetched inputs into the row shape callers see,
// matching what the cache write produced.
func entityRows(items []EntityInput, s *OfflineStore) []domain.CachedEntity {
	now := s.Now().UTC()
	rows := make([]domain.CachedEntity, 0, len(items))
	for _, it := range items {
		row := domain.CachedEntity{ID: it.ID, CreatedAt: now}
		if b, err := encodePayload(it.Payload); err == nil {
			row.Payload = b
		}
		if it.TTL > 0 {
			exp := now.Add(it.TTL)
			row.ExpiresAt = &exp
		}
		rows = append(rows, row)
	}
	return rows
}

func encodePayload(p any) (string, error) {
	b, err := json.Marshal(p)
	return string(b), err
}

func firstErr(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}
