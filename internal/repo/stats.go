// Package repo — storage diagnostics. These aggregates feed the debug
// surface only; nothing in the sync or read path depends on them.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/sportsedge/offline-core/internal/domain"
)

// StorageStats is a per-table row census plus an approximate total
// payload footprint in bytes. The byte figure sums payload column
// lengths, so it understates true file size (indexes, row overhead) —
// good enough for a debug overlay, not an accounting tool.
type StorageStats struct {
	Rows        map[string]int64 `json:"rows"`
	ApproxBytes int64            `json:"approx_bytes"`
}

// CollectStorageStats counts rows in every offline table and sums the
// payload/data column sizes of the blob-carrying tables.
func CollectStorageStats(ctx context.Context, db *gorm.DB) (StorageStats, error) {
	stats := StorageStats{Rows: make(map[string]int64)}

	for _, table := range domain.CacheTables {
		var n int64
		if err := db.WithContext(ctx).Table(table).Count(&n).Error; err != nil {
			return stats, err
		}
		stats.Rows[table] = n

		var bytes int64
		if err := db.WithContext(ctx).
			Raw("SELECT COALESCE(SUM(LENGTH(payload)), 0) FROM " + table).
			Scan(&bytes).Error; err != nil {
			return stats, err
		}
		stats.ApproxBytes += bytes
	}

	var n int64
	if err := db.WithContext(ctx).Model(&domain.PendingAction{}).Count(&n).Error; err != nil {
		return stats, err
	}
	stats.Rows["pending_actions"] = n

	var actionBytes int64
	if err := db.WithContext(ctx).
		Raw("SELECT COALESCE(SUM(LENGTH(payload)), 0) FROM pending_actions").
		Scan(&actionBytes).Error; err != nil {
		return stats, err
	}
	stats.ApproxBytes += actionBytes

	if err := db.WithContext(ctx).Model(&domain.AnalyticsEvent{}).Count(&n).Error; err != nil {
		return stats, err
	}
	stats.Rows["analytics_events"] = n

	var eventBytes int64
	if err := db.WithContext(ctx).
		Raw("SELECT COALESCE(SUM(LENGTH(data)), 0) FROM analytics_events").
		Scan(&eventBytes).Error; err != nil {
		return stats, err
	}
	stats.ApproxBytes += eventBytes

	return stats, nil
}
