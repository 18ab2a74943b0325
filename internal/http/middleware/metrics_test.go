package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountersAndPathFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/debug/cache/:table", func(c *gin.Context) { c.Status(http.StatusOK) })

	// Baselines first: the registry is process-global.
	baseOK := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/debug/cache/:table", "200"))
	base404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/nope", "404"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/cache/cached_value_bets", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /debug/cache -> %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /nope -> %d", w.Code)
	}

	// Matched routes are labeled by route pattern, not raw URL, so
	// /cached_value_bets does not explode the label space.
	gotOK := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/debug/cache/:table", "200"))
	if gotOK != baseOK+1 {
		t.Fatalf("counter for route pattern = %v; want %v", gotOK, baseOK+1)
	}

	// Unmatched routes fall back to the raw URL path.
	got404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/nope", "404"))
	if got404 != base404+1 {
		t.Fatalf("counter 404 fallback = %v; want %v", got404, base404+1)
	}
}
