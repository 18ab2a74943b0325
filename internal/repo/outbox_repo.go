// Package repo — pending-action outbox persistence.
//
// The outbox is a FIFO queue keyed by created_at: ListPendingActions
// defines replay order, and the remove/increment mutations are
// idempotent so the sync loop can race a retention sweep without
// turning missing rows into errors.
package repo

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sportsedge/offline-core/internal/domain"
)

// NewActionID generates an outbox id from the creation instant plus a
// random suffix. The timestamp prefix keeps ids roughly sortable and
// the suffix guards against same-nanosecond collisions.
func NewActionID(now time.Time) string {
	var b [3]byte
	_, _ = rand.Read(b[:])
	return fmt.Sprintf("%d-%s", now.UnixNano(), hex.EncodeToString(b[:]))
}

// AddPendingAction inserts a new outbox row with retry_count 0 and
// returns it. This is a pure local write; it never touches the network
// and is safe to call while offline.
func AddPendingAction(ctx context.Context, db *gorm.DB, typ domain.ActionType, payload string, now time.Time) (*domain.PendingAction, error) {
	a := &domain.PendingAction{
		ID:         NewActionID(now),
		Type:       typ,
		Payload:    payload,
		CreatedAt:  now.UTC(),
		RetryCount: 0,
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// ListPendingActions returns the whole outbox ordered created_at ASC,
// id ASC. This ordering is the replay order.
func ListPendingActions(ctx context.Context, db *gorm.DB) ([]domain.PendingAction, error) {
	var out []domain.PendingAction
	err := db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&out).Error
	return out, err
}

// CountPendingActions returns the outbox depth.
func CountPendingActions(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.PendingAction{}).Count(&n).Error
	return n, err
}

// RemovePendingAction deletes an outbox row by id. Deleting an id that
// no longer exists is a no-op, not an error.
func RemovePendingAction(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.PendingAction{}).Error
}

// IncrementRetryCount bumps retry_count for id in place. Missing ids
// are a no-op. The counter is monotonically non-decreasing; nothing
// ever resets it.
func IncrementRetryCount(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).
		Model(&domain.PendingAction{}).
		Where("id = ?", id).
		UpdateColumn("retry_count", gorm.Expr("retry_count + 1")).Error
}
