// Package repo implements the Local Store: durable, crash-surviving
// persistence for cached entities, the pending-action outbox, and the
// analytics outbox, backed by GORM over SQLite (pure Go driver). This
// file contains database bootstrapping and schema migration.
package repo

import (
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/sportsedge/offline-core/internal/domain"
)

// OpenSQLite opens (or creates) the offline database and applies PRAGMAs.
// When trace is true the gorm OpenTelemetry plugin is attached so store
// operations show up as spans under the app's traces.
func OpenSQLite(path string, trace bool) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool: the store is embedded in a single client process.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(4)
		sqlDB.SetMaxIdleConns(4)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	if trace {
		if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// AutoMigrate creates the outbox tables and every cached-entity table.
// Idempotent: existing tables and indexes are left in place.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.PendingAction{},
		&domain.AnalyticsEvent{},
	); err != nil {
		return err
	}
	// The cache tables share one row shape, so they are migrated per
	// table name rather than per model type.
	for _, table := range domain.CacheTables {
		if err := db.Table(table).AutoMigrate(&domain.CachedEntity{}); err != nil {
			return err
		}
	}
	return nil
}

// ClearAll deletes every row from every offline table. Used on logout
// and reset; succeeds (with zero rows affected) when already empty.
func ClearAll(db *gorm.DB) error {
	for _, table := range domain.CacheTables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	if err := db.Exec("DELETE FROM pending_actions").Error; err != nil {
		return err
	}
	return db.Exec("DELETE FROM analytics_events").Error
}
