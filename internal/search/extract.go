// Package search — payload text extraction.
//
// Cached payloads are opaque JSON to the store, but the two betting
// tables have known shapes; this file turns a cached row into the flat
// text the index consumes. Unknown tables and undecodable payloads
// yield nothing rather than an error: a row the index cannot read is
// simply not searchable.
package search

import (
	json "github.com/goccy/go-json"

	"github.com/sportsedge/offline-core/internal/domain"
)

// entityText extracts searchable text from a cached row based on the
// table it came from.
func entityText(table string, e domain.CachedEntity) string {
	switch table {
	case domain.TableValueBets:
		var v domain.ValueBet
		if err := json.Unmarshal([]byte(e.Payload), &v); err != nil {
			return ""
		}
		return v.SearchText()
	case domain.TableLiveGames:
		var g domain.LiveGame
		if err := json.Unmarshal([]byte(e.Payload), &g); err != nil {
			return ""
		}
		return g.SearchText()
	default:
		// User blobs have no schema worth indexing.
		return ""
	}
}
