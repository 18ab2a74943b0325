package repo

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestAnalytics_StoreAndReadUnsynced(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	base := ts(t, "2026-08-30T10:00:00Z")

	for i, at := range []time.Time{base.Add(2 * time.Second), base, base.Add(time.Second)} {
		if _, err := StoreAnalyticsEvent(ctx, db, "tap", fmt.Sprintf(`{"n":%d}`, i), at); err != nil {
			t.Fatalf("store: %v", err)
		}
	}

	events, err := UnsyncedAnalyticsEvents(ctx, db, 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 unsynced, got %d", len(events))
	}
	// Oldest first.
	if !events[0].CreatedAt.Equal(base) {
		t.Fatalf("expected oldest event first, got %v", events[0].CreatedAt)
	}
}

func TestAnalytics_LimitAndMarkSynced(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Now()

	var ids []string
	for i := 0; i < 5; i++ {
		e, err := StoreAnalyticsEvent(ctx, db, "view", "{}", now.Add(time.Duration(i)*time.Second))
		if err != nil {
			t.Fatalf("store: %v", err)
		}
		ids = append(ids, e.ID)
	}

	batch, err := UnsyncedAnalyticsEvents(ctx, db, 2)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("expected batch of 2, got %d", len(batch))
	}

	if err := MarkAnalyticsEventsSynced(ctx, db, []string{batch[0].ID, batch[1].ID}); err != nil {
		t.Fatalf("mark: %v", err)
	}
	n, err := CountUnsyncedAnalyticsEvents(ctx, db)
	if err != nil || n != 3 {
		t.Fatalf("expected 3 left unsynced, got n=%d err=%v", n, err)
	}

	// Marking unknown ids (or none) is harmless.
	if err := MarkAnalyticsEventsSynced(ctx, db, []string{"ghost"}); err != nil {
		t.Fatalf("mark unknown: %v", err)
	}
	if err := MarkAnalyticsEventsSynced(ctx, db, nil); err != nil {
		t.Fatalf("mark empty: %v", err)
	}
	_ = ids
}
