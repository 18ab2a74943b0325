package repo

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sportsedge/offline-core/internal/domain"
)

func TestNewActionID_Unique(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewActionID(now)
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
		if !strings.Contains(id, "-") {
			t.Fatalf("id missing random suffix: %s", id)
		}
	}
}

func TestAddPendingAction_StartsAtZeroRetries(t *testing.T) {
	db := newTestDB(t)
	a, err := AddPendingAction(context.Background(), db, domain.ActionAddToBetslip, `{"bet_id":"b1"}`, time.Now())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if a.RetryCount != 0 {
		t.Fatalf("expected retry count 0, got %d", a.RetryCount)
	}
	if a.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestListPendingActions_FIFOOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	base := ts(t, "2026-08-30T10:00:00Z")

	// Inserted out of order on purpose; listing must sort by createdAt.
	for _, in := range []struct {
		payload string
		at      time.Time
	}{
		{`{"bet_id":"second"}`, base.Add(time.Second)},
		{`{"bet_id":"first"}`, base},
		{`{"bet_id":"third"}`, base.Add(2 * time.Second)},
	} {
		if _, err := AddPendingAction(ctx, db, domain.ActionAddToBetslip, in.payload, in.at); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	actions, err := ListPendingActions(ctx, db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(actions) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(actions))
	}
	for i, want := range []string{"first", "second", "third"} {
		if !strings.Contains(actions[i].Payload, want) {
			t.Fatalf("position %d: want payload containing %q, got %s", i, want, actions[i].Payload)
		}
	}
}

func TestRemovePendingAction_MissingIsNoop(t *testing.T) {
	db := newTestDB(t)
	if err := RemovePendingAction(context.Background(), db, "no-such-id"); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}

func TestIncrementRetryCount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a, err := AddPendingAction(ctx, db, domain.ActionRecordInteraction, "{}", time.Now())
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := IncrementRetryCount(ctx, db, a.ID); err != nil {
			t.Fatalf("increment %d: %v", i, err)
		}
	}

	actions, err := ListPendingActions(ctx, db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if actions[0].RetryCount != 3 {
		t.Fatalf("expected retry count 3, got %d", actions[0].RetryCount)
	}

	// Incrementing a removed id is a no-op, not an error.
	if err := RemovePendingAction(ctx, db, a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := IncrementRetryCount(ctx, db, a.ID); err != nil {
		t.Fatalf("expected no-op increment on missing id, got %v", err)
	}
}

func TestCountPendingActions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	n, err := CountPendingActions(ctx, db)
	if err != nil || n != 0 {
		t.Fatalf("expected empty outbox, got n=%d err=%v", n, err)
	}
	if _, err := AddPendingAction(ctx, db, domain.ActionUpdatePreference, "{}", time.Now()); err != nil {
		t.Fatalf("add: %v", err)
	}
	n, err = CountPendingActions(ctx, db)
	if err != nil || n != 1 {
		t.Fatalf("expected depth 1, got n=%d err=%v", n, err)
	}
}
