// Package repo — analytics-event outbox persistence. Events follow the
// relaxed synced-flag model: batch readers pick up unsynced rows, a
// successful upload flips synced, and the retention sweep purges old
// synced rows. Nothing here deletes on success.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sportsedge/offline-core/internal/domain"
)

// StoreAnalyticsEvent inserts one telemetry row with synced=false.
func StoreAnalyticsEvent(ctx context.Context, db *gorm.DB, eventType, data string, now time.Time) (*domain.AnalyticsEvent, error) {
	e := &domain.AnalyticsEvent{
		ID:        uuid.NewString(),
		EventType: eventType,
		Data:      data,
		CreatedAt: now.UTC(),
		Synced:    false,
	}
	if err := db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// UnsyncedAnalyticsEvents returns up to limit unsynced events, oldest
// first, so batches upload in arrival order.
func UnsyncedAnalyticsEvents(ctx context.Context, db *gorm.DB, limit int) ([]domain.AnalyticsEvent, error) {
	var out []domain.AnalyticsEvent
	q := db.WithContext(ctx).
		Where("synced = ?", false).
		Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// MarkAnalyticsEventsSynced flips synced=true for the given ids.
// Unknown ids are silently skipped.
func MarkAnalyticsEventsSynced(ctx context.Context, db *gorm.DB, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Model(&domain.AnalyticsEvent{}).
		Where("id IN ?", ids).
		UpdateColumn("synced", true).Error
}

// CountUnsyncedAnalyticsEvents returns the analytics backlog depth.
func CountUnsyncedAnalyticsEvents(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.AnalyticsEvent{}).
		Where("synced = ?", false).
		Count(&n).Error
	return n, err
}
