package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sportsedge/offline-core/internal/domain"
)

func entity(id, payload string, created time.Time, exp *time.Time) domain.CachedEntity {
	return domain.CachedEntity{ID: id, Payload: payload, CreatedAt: created, ExpiresAt: exp}
}

func TestStoreEntities_UnknownTable(t *testing.T) {
	db := newTestDB(t)
	err := StoreEntities(context.Background(), db, "not_a_table", []domain.CachedEntity{entity("a", "{}", time.Now(), nil)})
	if !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("expected ErrUnknownTable, got %v", err)
	}
}

func TestStoreEntities_UpsertOverwrites(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := ts(t, "2026-08-30T10:00:00Z")

	if err := StoreEntities(ctx, db, domain.TableValueBets, []domain.CachedEntity{
		entity("b1", `{"v":1}`, now, nil),
	}); err != nil {
		t.Fatalf("first store: %v", err)
	}
	later := now.Add(time.Minute)
	if err := StoreEntities(ctx, db, domain.TableValueBets, []domain.CachedEntity{
		entity("b1", `{"v":2}`, later, nil),
	}); err != nil {
		t.Fatalf("second store: %v", err)
	}

	rows, err := CachedEntities(ctx, db, domain.TableValueBets, later)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row after upsert, got %d", len(rows))
	}
	if rows[0].Payload != `{"v":2}` {
		t.Fatalf("expected overwritten payload, got %s", rows[0].Payload)
	}
	if !rows[0].CreatedAt.Equal(later) {
		t.Fatalf("expected created_at refreshed to %v, got %v", later, rows[0].CreatedAt)
	}
}

func TestCachedEntities_ExcludesExpired(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := ts(t, "2026-08-30T10:00:00Z")

	past := now.Add(-time.Second)
	future := now.Add(time.Hour)
	if err := StoreEntities(ctx, db, domain.TableValueBets, []domain.CachedEntity{
		entity("expired", "{}", now.Add(-time.Minute), &past),
		entity("fresh", "{}", now, &future),
		entity("no-ttl", "{}", now.Add(-2*time.Minute), nil),
	}); err != nil {
		t.Fatalf("store: %v", err)
	}

	rows, err := CachedEntities(ctx, db, domain.TableValueBets, now)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected expired row excluded, got %d rows", len(rows))
	}
	for _, r := range rows {
		if r.ID == "expired" {
			t.Fatal("expired entity leaked into read results")
		}
	}

	// The expired row still physically exists until a sweep runs.
	var n int64
	db.Table(domain.TableValueBets).Count(&n)
	if n != 3 {
		t.Fatalf("expected 3 physical rows, got %d", n)
	}
}

func TestCachedEntities_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	base := ts(t, "2026-08-30T10:00:00Z")

	if err := StoreEntities(ctx, db, domain.TableLiveGames, []domain.CachedEntity{
		entity("old", "{}", base.Add(-2*time.Minute), nil),
		entity("mid", "{}", base.Add(-time.Minute), nil),
		entity("new", "{}", base, nil),
	}); err != nil {
		t.Fatalf("store: %v", err)
	}

	rows, err := CachedEntities(ctx, db, domain.TableLiveGames, base)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if rows[i].ID != id {
			t.Fatalf("position %d: want %s, got %s", i, id, rows[i].ID)
		}
	}
}

func TestDeleteEntity_MissingIsNoop(t *testing.T) {
	db := newTestDB(t)
	if err := DeleteEntity(context.Background(), db, domain.TableUserBlobs, "ghost"); err != nil {
		t.Fatalf("expected no error deleting missing id, got %v", err)
	}
}
