// Package handlers — diagnostics endpoints over the offline core.
//
// Everything here is read-mostly plumbing for a debug overlay: inspect
// connectivity and storage, trigger a sync or a sweep by hand, browse
// and search the cache, wipe local state. None of it participates in
// the sync protocol itself.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sportsedge/offline-core/internal/connectivity"
	"github.com/sportsedge/offline-core/internal/domain"
	"github.com/sportsedge/offline-core/internal/repo"
	"github.com/sportsedge/offline-core/internal/search"
	"github.com/sportsedge/offline-core/internal/services"
	"github.com/sportsedge/offline-core/internal/utils"
)

// maxPageSize caps cache listing pages.
const maxPageSize = 200

// DebugHandler bundles the services the diagnostics routes expose.
type DebugHandler struct {
	Store   *services.OfflineStore
	Sync    *services.SyncCoordinator
	Monitor *connectivity.Monitor
}

// Status reports connectivity and outbox depth.
//
// GET /debug/status
func (h *DebugHandler) Status(c *gin.Context) {
	pending, err := repo.CountPendingActions(c.Request.Context(), h.Store.DB)
	if err != nil {
		fail(c, http.StatusInternalServerError, CodeInternal, "storage unavailable", err)
		return
	}
	unsynced, err := repo.CountUnsyncedAnalyticsEvents(c.Request.Context(), h.Store.DB)
	if err != nil {
		fail(c, http.StatusInternalServerError, CodeInternal, "storage unavailable", err)
		return
	}
	ok(c, gin.H{
		"online":             h.Monitor.Online(),
		"pending_actions":    pending,
		"unsynced_analytics": unsynced,
	})
}

// Storage reports per-table row counts and approximate byte usage.
//
// GET /debug/storage
func (h *DebugHandler) Storage(c *gin.Context) {
	stats, err := h.Store.Stats(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, CodeInternal, "storage unavailable", err)
		return
	}
	ok(c, stats)
}

// ClearStorage wipes all offline tables.
//
// POST /debug/storage/clear
func (h *DebugHandler) ClearStorage(c *gin.Context) {
	if err := h.Store.ClearAll(c.Request.Context()); err != nil {
		fail(c, http.StatusInternalServerError, CodeInternal, "clear failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Sweep runs a retention pass immediately.
//
// POST /debug/storage/sweep
func (h *DebugHandler) Sweep(c *gin.Context) {
	res, err := h.Store.Sweep(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, CodeInternal, "sweep failed", err)
		return
	}
	ok(c, res)
}

// TriggerSync starts a sync cycle (the pull-to-refresh path). A cycle
// already in flight, or an offline monitor, yields a skipped report,
// not an error.
//
// POST /debug/sync
func (h *DebugHandler) TriggerSync(c *gin.Context) {
	report, err := h.Sync.Sync(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, CodeInternal, "sync failed", err)
		return
	}
	ok(c, report)
}

// ListCache pages through the unexpired rows of one cache table.
//
// GET /debug/cache/:table?page=1&size=50
func (h *DebugHandler) ListCache(c *gin.Context) {
	table := c.Param("table")
	rows, err := h.Store.CachedEntities(c.Request.Context(), table)
	if err != nil {
		if errors.Is(err, repo.ErrUnknownTable) {
			fail(c, http.StatusNotFound, CodeNotFound, "unknown cache table", err)
			return
		}
		fail(c, http.StatusInternalServerError, CodeInternal, "storage unavailable", err)
		return
	}

	page := utils.AtoiDefault(c.Query("page"), 1)
	size := utils.AtoiDefault(c.Query("size"), 50)
	offset, limit := utils.ClampPage(page, size, maxPageSize)
	lo, hi := utils.PageBounds(offset, limit, len(rows))

	ok(c, gin.H{
		"table": table,
		"total": len(rows),
		"items": rows[lo:hi],
	})
}

// SearchCache runs an offline text search over a cache table snapshot.
//
// GET /debug/search?table=cached_value_bets&q=lakers&k=5
func (h *DebugHandler) SearchCache(c *gin.Context) {
	table := c.DefaultQuery("table", domain.TableValueBets)
	query := c.Query("q")
	if query == "" {
		fail(c, http.StatusBadRequest, CodeBadRequest, "missing query parameter q", nil)
		return
	}

	rows, err := h.Store.CachedEntities(c.Request.Context(), table)
	if err != nil {
		if errors.Is(err, repo.ErrUnknownTable) {
			fail(c, http.StatusNotFound, CodeNotFound, "unknown cache table", err)
			return
		}
		fail(c, http.StatusInternalServerError, CodeInternal, "storage unavailable", err)
		return
	}

	idx := search.NewCacheIndex(table, rows)
	results := idx.TopK(query, utils.AtoiDefault(c.Query("k"), 5))
	ok(c, gin.H{
		"table":   table,
		"query":   query,
		"results": results,
	})
}
