package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sportsedge/offline-core/internal/api"
	"github.com/sportsedge/offline-core/internal/connectivity"
	"github.com/sportsedge/offline-core/internal/repo"
)

// newTestStore opens a unique in-memory database per test and returns
// an initialized OfflineStore with a controllable clock.
func newTestStore(t *testing.T) (*OfflineStore, *time.Time) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store := NewOfflineStore(db, zerolog.Nop())
	store.Now = func() time.Time { return now }
	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return store, &now
}

func onlineMonitor() *connectivity.Monitor {
	m := connectivity.NewMonitor()
	m.Apply(connectivity.Signal{Connected: true})
	return m
}

// fakeAPI records calls in order and fails paths on demand. Block, when
// set, stalls every call until released — used to hold a sync cycle
// open while another trigger fires.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string // "METHOD path body"
	fail  map[string]error
	block chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{fail: make(map[string]error)}
}

func (f *fakeAPI) record(ctx context.Context, method, path string, body any) ([]byte, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	f.calls = append(f.calls, fmt.Sprintf("%s %s %s", method, path, bodyJSON(body)))
	err := f.fail[path]
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return []byte("{}"), nil
}

func bodyJSON(body any) string {
	if body == nil {
		return ""
	}
	s, err := encodePayload(body)
	if err != nil {
		return "<unencodable>"
	}
	return s
}

func (f *fakeAPI) Get(ctx context.Context, path string) ([]byte, error) {
	return f.record(ctx, "GET", path, nil)
}
func (f *fakeAPI) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return f.record(ctx, "POST", path, body)
}
func (f *fakeAPI) Put(ctx context.Context, path string, body any) ([]byte, error) {
	return f.record(ctx, "PUT", path, body)
}
func (f *fakeAPI) Delete(ctx context.Context, path string) ([]byte, error) {
	return f.record(ctx, "DELETE", path, nil)
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeAPI) callList() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

var _ api.Client = (*fakeAPI)(nil)

func pendingCount(t *testing.T, s *OfflineStore) int64 {
	t.Helper()
	n, err := repo.CountPendingActions(context.Background(), s.DB)
	if err != nil {
		t.Fatalf("count pending: %v", err)
	}
	return n
}
