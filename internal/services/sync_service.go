// Package services – SyncCoordinator
//
// The coordinator is the reconciliation protocol: when connectivity
// returns (or on demand) it drains the pending-action outbox and then
// the analytics outbox against the remote API.
//
// Guarantees:
//   - FIFO replay within a cycle (actions dispatch one at a time, in
//     created_at order, each call awaited before the next starts —
//     operations may be order-dependent).
//   - Single-flight: concurrent triggers coalesce into a no-op; the
//     outbox is never drained by two loops at once.
//   - Bounded retries: an action failing its third attempt is evicted.
//     Delivery is best-effort, not exactly-once; drops are surfaced
//     only through logs and the offline_actions_dropped_total metric.
//
// A cycle has no failed terminal state. Failures are per-action; the
// coordinator always returns to idle and tries again next trigger.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/sportsedge/offline-core/internal/api"
	"github.com/sportsedge/offline-core/internal/connectivity"
	"github.com/sportsedge/offline-core/internal/domain"
	"github.com/sportsedge/offline-core/internal/repo"
)

// Default policy constants. MaxRetries mirrors the retry ceiling the
// shipped client uses; the batch size keeps analytics uploads small
// enough for flaky links.
const (
	DefaultMaxRetries         = 3
	DefaultAnalyticsBatchSize = 50
)

// SyncReport summarizes one Sync call.
type SyncReport struct {
	Skipped       bool          `json:"skipped"`
	Reason        string        `json:"reason,omitempty"` // "offline" | "already-syncing"
	Replayed      int           `json:"replayed"`
	Failed        int           `json:"failed"`
	Dropped       int           `json:"dropped"`
	AnalyticsSent int           `json:"analytics_sent"`
	Duration      time.Duration `json:"duration"`
}

// SyncCoordinator drains both outboxes against the remote API.
type SyncCoordinator struct {
	Store   *OfflineStore
	API     api.Client
	Monitor *connectivity.Monitor

	// MaxRetries is the per-action attempt ceiling before eviction.
	MaxRetries int
	// AnalyticsBatchSize caps events per analytics upload.
	AnalyticsBatchSize int
	// Limiter optionally paces replay calls so a large backlog does
	// not hammer the backend the moment a connection appears.
	Limiter *rate.Limiter

	Log zerolog.Logger

	syncing atomic.Bool
}

// NewSyncCoordinator wires a coordinator with default policy.
func NewSyncCoordinator(store *OfflineStore, client api.Client, monitor *connectivity.Monitor, log zerolog.Logger) *SyncCoordinator {
	return &SyncCoordinator{
		Store:              store,
		API:                client,
		Monitor:            monitor,
		MaxRetries:         DefaultMaxRetries,
		AnalyticsBatchSize: DefaultAnalyticsBatchSize,
		Log:                log.With().Str("component", "sync").Logger(),
	}
}

// Start subscribes the coordinator to connectivity transitions: every
// offline→online edge kicks off a sync on its own goroutine. The
// returned function unsubscribes; ctx bounds the lifetime of triggered
// cycles.
func (s *SyncCoordinator) Start(ctx context.Context) (stop func()) {
	return s.Monitor.Subscribe(func(online bool) {
		if !online {
			return
		}
		go func() {
			if _, err := s.Sync(ctx); err != nil {
				s.Log.Warn().Err(err).Msg("connectivity-triggered sync failed")
			}
		}()
	})
}

// Sync runs one cycle: pending-action replay, then analytics flush.
// When offline, or when another cycle is already in flight, it returns
// a skipped report without touching the outbox. Storage read failures
// abort the cycle with an error ("skip this cycle, retry next
// trigger"); remote failures never do.
func (s *SyncCoordinator) Sync(ctx context.Context) (SyncReport, error) {
	start := time.Now()

	if !s.Monitor.Online() {
		syncCycles.WithLabelValues("skipped").Inc()
		return SyncReport{Skipped: true, Reason: "offline"}, nil
	}
	if !s.syncing.CompareAndSwap(false, true) {
		syncCycles.WithLabelValues("skipped").Inc()
		return SyncReport{Skipped: true, Reason: "already-syncing"}, nil
	}
	defer s.syncing.Store(false)

	report := SyncReport{}
	if err := s.replayPending(ctx, &report); err != nil {
		return report, err
	}
	s.flushAnalytics(ctx, &report)

	if depth, err := repo.CountPendingActions(ctx, s.Store.DB); err == nil {
		outboxDepth.Set(float64(depth))
	}
	syncCycles.WithLabelValues("completed").Inc()
	report.Duration = time.Since(start)

	s.Log.Info().
		Int("replayed", report.Replayed).
		Int("failed", report.Failed).
		Int("dropped", report.Dropped).
		Int("analytics", report.AnalyticsSent).
		Dur("took", report.Duration).
		Msg("sync cycle complete")
	return report, nil
}

// replayPending drains the action outbox strictly in createdAt order,
// one awaited call at a time.
func (s *SyncCoordinator) replayPending(ctx context.Context, report *SyncReport) error {
	actions, err := repo.ListPendingActions(ctx, s.Store.DB)
	if err != nil {
		return fmt.Errorf("%w: list pending actions: %v", ErrStorageWrite, err)
	}

	for _, a := range actions {
		if s.Limiter != nil {
			if err := s.Limiter.Wait(ctx); err != nil {
				return err
			}
		}

		err := s.dispatch(ctx, a)
		if err == nil {
			if err := repo.RemovePendingAction(ctx, s.Store.DB, a.ID); err != nil {
				s.Log.Warn().Err(err).Str("action_id", a.ID).Msg("remove after replay failed")
			}
			actionsReplayed.WithLabelValues(string(a.Type)).Inc()
			report.Replayed++
			continue
		}

		if errors.Is(err, domain.ErrUnknownActionType) {
			// A row this build cannot interpret will never replay;
			// drop it now instead of burning three attempts.
			s.Log.Warn().Str("action_id", a.ID).Str("type", string(a.Type)).Msg("dropping undecodable action")
			_ = repo.RemovePendingAction(ctx, s.Store.DB, a.ID)
			actionsDropped.WithLabelValues(string(a.Type)).Inc()
			report.Dropped++
			continue
		}

		actionFailures.WithLabelValues(string(a.Type)).Inc()
		report.Failed++
		if err := repo.IncrementRetryCount(ctx, s.Store.DB, a.ID); err != nil {
			s.Log.Warn().Err(err).Str("action_id", a.ID).Msg("retry increment failed")
			continue
		}
		if a.RetryCount+1 >= s.MaxRetries {
			// Lossy by design: forward progress beats reliability here.
			if err := repo.RemovePendingAction(ctx, s.Store.DB, a.ID); err != nil {
				s.Log.Warn().Err(err).Str("action_id", a.ID).Msg("drop after max retries failed")
				continue
			}
			actionsDropped.WithLabelValues(string(a.Type)).Inc()
			report.Dropped++
			s.Log.Warn().
				Str("action_id", a.ID).
				Str("type", string(a.Type)).
				Int("attempts", a.RetryCount+1).
				Msg("action dropped after max retries")
		} else {
			s.Log.Debug().
				Err(err).
				Str("action_id", a.ID).
				Int("retry_count", a.RetryCount+1).
				Msg("replay failed, will retry next cycle")
		}
	}
	return nil
}

// dispatch maps one action onto its REST call. The action id travels
// with every request so the backend can deduplicate a replay whose
// first acknowledgment was lost in transit.
func (s *SyncCoordinator) dispatch(ctx context.Context, a domain.PendingAction) error {
	payload, err := domain.DecodeActionPayload(a.Type, a.Payload)
	if err != nil {
		return err
	}

	switch p := payload.(type) {
	case domain.AddToBetslipPayload:
		body := struct {
			ActionID string `json:"action_id"`
			domain.AddToBetslipPayload
		}{a.ID, p}
		_, err = s.API.Post(ctx, "/v1/betslip", body)
	case domain.UpdatePreferencePayload:
		body := struct {
			ActionID string `json:"action_id"`
			domain.UpdatePreferencePayload
		}{a.ID, p}
		_, err = s.API.Put(ctx, "/v1/users/me/preferences", body)
	case domain.RecordInteractionPayload:
		body := struct {
			ActionID string `json:"action_id"`
			domain.RecordInteractionPayload
		}{a.ID, p}
		_, err = s.API.Post(ctx, "/v1/interactions", body)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownActionType, a.Type)
	}
	return err
}

// flushAnalytics uploads unsynced events in batches, oldest first. The
// first failed batch halts the flush for this cycle — later batches
// would otherwise land out of order and fragment the unsynced set.
// Failures are absorbed: events simply stay unsynced for next time.
func (s *SyncCoordinator) flushAnalytics(ctx context.Context, report *SyncReport) {
	for {
		events, err := repo.UnsyncedAnalyticsEvents(ctx, s.Store.DB, s.AnalyticsBatchSize)
		if err != nil {
			s.Log.Warn().Err(err).Msg("analytics read failed")
			return
		}
		if len(events) == 0 {
			return
		}

		if _, err := s.API.Post(ctx, "/v1/analytics/events", events); err != nil {
			s.Log.Debug().Err(err).Int("batch", len(events)).Msg("analytics batch failed, stopping flush")
			return
		}

		ids := make([]string, len(events))
		for i, e := range events {
			ids[i] = e.ID
		}
		if err := repo.MarkAnalyticsEventsSynced(ctx, s.Store.DB, ids); err != nil {
			s.Log.Warn().Err(err).Msg("mark synced failed")
			return
		}
		analyticsSynced.Add(float64(len(events)))
		report.AnalyticsSent += len(events)

		if len(events) < s.AnalyticsBatchSize {
			return
		}
	}
}
