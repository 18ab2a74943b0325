// Package repo — cached-entity persistence. This file provides the
// upsert/read path for the cache tables. Reads filter expired rows but
// never delete them; physical removal is the retention sweep's job.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sportsedge/offline-core/internal/domain"
)

// StoreEntities upserts items into table by id. Existing rows have
// their payload, created_at, and expires_at overwritten; the table only
// grows or updates in place. A zero-length items slice is a no-op.
func StoreEntities(ctx context.Context, db *gorm.DB, table string, items []domain.CachedEntity) error {
	if !domain.KnownCacheTable(table) {
		return ErrUnknownTable
	}
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Table(table).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "created_at", "expires_at"}),
		}).
		Create(&items).Error
}

// CachedEntities returns every unexpired row in table, newest first.
// Rows whose expires_at is in the past stay in storage but are excluded
// here; rows with no expires_at never filter out.
func CachedEntities(ctx context.Context, db *gorm.DB, table string, now time.Time) ([]domain.CachedEntity, error) {
	if !domain.KnownCacheTable(table) {
		return nil, ErrUnknownTable
	}
	var out []domain.CachedEntity
	err := db.WithContext(ctx).
		Table(table).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("created_at DESC, id ASC").
		Find(&out).Error
	return out, err
}

// DeleteEntity removes a single cached row by id. Missing ids are a
// no-op, mirroring the outbox mutation semantics.
func DeleteEntity(ctx context.Context, db *gorm.DB, table, id string) error {
	if !domain.KnownCacheTable(table) {
		return ErrUnknownTable
	}
	return db.WithContext(ctx).Table(table).Where("id = ?", id).Delete(&domain.CachedEntity{}).Error
}
