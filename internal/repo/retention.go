// Package repo — the retention sweep. This is the maintenance pass that
// bounds storage growth independent of the read path's expiry filter:
// expired or aged-out rows are removed physically here, regardless of
// whether anything ever read them.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sportsedge/offline-core/internal/domain"
)

// RetentionPolicy carries the age limits applied by a sweep.
//
// EntityMaxAge is a hard ceiling on cached-entity age, applied even to
// rows that carry no explicit expires_at. ActionMaxAge bounds how long
// an unreplayed pending action can wait before it is treated as
// abandoned. AnalyticsMaxAge bounds how long synced analytics rows are
// retained for debugging before purge.
type RetentionPolicy struct {
	EntityMaxAge    time.Duration
	ActionMaxAge    time.Duration
	AnalyticsMaxAge time.Duration
}

// DefaultRetention matches the shipped client: cached bets/games live
// at most a day, pending actions and synced analytics a week.
func DefaultRetention() RetentionPolicy {
	return RetentionPolicy{
		EntityMaxAge:    24 * time.Hour,
		ActionMaxAge:    7 * 24 * time.Hour,
		AnalyticsMaxAge: 7 * 24 * time.Hour,
	}
}

// SweepResult reports how many rows each phase of a sweep removed.
type SweepResult struct {
	ExpiredEntities int64 `json:"expired_entities"`
	AgedEntities    int64 `json:"aged_entities"`
	StaleActions    int64 `json:"stale_actions"`
	PurgedAnalytics int64 `json:"purged_analytics"`
}

// Total returns the overall number of rows deleted by the sweep.
func (r SweepResult) Total() int64 {
	return r.ExpiredEntities + r.AgedEntities + r.StaleActions + r.PurgedAnalytics
}

// RunRetentionSweep deletes, across all tables:
//   - cached entities whose expires_at < now
//   - cached entities older than EntityMaxAge, TTL or not
//   - pending actions older than ActionMaxAge (abandoned)
//   - synced analytics events older than AnalyticsMaxAge
//
// Unsynced analytics events are never touched; they wait for the next
// flush however old they are.
func RunRetentionSweep(ctx context.Context, db *gorm.DB, now time.Time, p RetentionPolicy) (SweepResult, error) {
	var res SweepResult

	for _, table := range domain.CacheTables {
		tx := db.WithContext(ctx).Table(table).
			Where("expires_at IS NOT NULL AND expires_at < ?", now).
			Delete(&domain.CachedEntity{})
		if tx.Error != nil {
			return res, tx.Error
		}
		res.ExpiredEntities += tx.RowsAffected

		tx = db.WithContext(ctx).Table(table).
			Where("created_at < ?", now.Add(-p.EntityMaxAge)).
			Delete(&domain.CachedEntity{})
		if tx.Error != nil {
			return res, tx.Error
		}
		res.AgedEntities += tx.RowsAffected
	}

	tx := db.WithContext(ctx).
		Where("created_at < ?", now.Add(-p.ActionMaxAge)).
		Delete(&domain.PendingAction{})
	if tx.Error != nil {
		return res, tx.Error
	}
	res.StaleActions = tx.RowsAffected

	tx = db.WithContext(ctx).
		Where("synced = ? AND created_at < ?", true, now.Add(-p.AnalyticsMaxAge)).
		Delete(&domain.AnalyticsEvent{})
	if tx.Error != nil {
		return res, tx.Error
	}
	res.PurgedAnalytics = tx.RowsAffected

	return res, nil
}
