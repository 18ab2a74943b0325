// Package search provides a small, deterministic, concurrency-safe
// in-memory index over cached entities, so the UI can answer "find my
// game" while offline. Design points:
//
//   - No logging in the library (callers decide how/what to log)
//   - Immutable, read-only index after construction (safe for
//     concurrent use)
//   - Unicode-aware tokenization with case folding and optional
//     stop-word removal
//   - Deterministic scoring and sorting (stable order for ties)
//
// Scoring uses Jaccard similarity between the query token set and each
// document's token set: score = |Q ∩ D| / |Q ∪ D|.
package search

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/sportsedge/offline-core/internal/domain"
)

// Result is one ranked match.
type Result struct {
	// ID is the cached entity's id.
	ID string
	// Text is the indexed searchable text.
	Text string
	// Score is the Jaccard similarity against the query, in (0, 1].
	Score float64
}

// Index answers top-k queries over a fixed document set.
type Index interface {
	TopK(query string, k int) []Result
}

// Option tweaks index construction.
type Option func(*config)

type config struct {
	stopwords map[string]struct{}
	maxDocs   int
}

// WithStopwords removes the given words from documents and queries.
func WithStopwords(words []string) Option {
	return func(c *config) {
		m := make(map[string]struct{}, len(words))
		for _, w := range words {
			w = fold(strings.TrimSpace(w))
			if w != "" {
				m[w] = struct{}{}
			}
		}
		if len(m) > 0 {
			c.stopwords = m
		}
	}
}

// WithMaxDocs caps the number of indexed documents.
func WithMaxDocs(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDocs = n
		}
	}
}

// Doc is one searchable unit handed to the builder.
type Doc struct {
	ID   string
	Text string
}

type indexedDoc struct {
	id     string
	text   string
	tokens map[string]struct{}
}

type index struct {
	cfg  config
	docs []indexedDoc
}

// NewIndex builds a read-only index from pre-extracted documents.
func NewIndex(docs []Doc, opts ...Option) Index {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}

	out := make([]indexedDoc, 0, len(docs))
	for _, d := range docs {
		text := strings.TrimSpace(d.Text)
		if text == "" {
			continue
		}
		toks := tokenize(text, cfg.stopwords)
		if len(toks) == 0 {
			continue
		}
		out = append(out, indexedDoc{id: d.ID, text: text, tokens: toks})
		if cfg.maxDocs > 0 && len(out) >= cfg.maxDocs {
			break
		}
	}
	return &index{cfg: cfg, docs: out}
}

// NewCacheIndex builds an index over a cache snapshot, extracting a
// searchable text per entity from its JSON payload.
func NewCacheIndex(table string, entities []domain.CachedEntity, opts ...Option) Index {
	docs := make([]Doc, 0, len(entities))
	for _, e := range entities {
		text := entityText(table, e)
		if text == "" {
			continue
		}
		docs = append(docs, Doc{ID: e.ID, Text: text})
	}
	return NewIndex(docs, opts...)
}

// TopK returns up to k best matches by Jaccard similarity. Ties break
// by shorter text, then id, so output order is reproducible.
func (i *index) TopK(query string, k int) []Result {
	if len(i.docs) == 0 || strings.TrimSpace(query) == "" {
		return nil
	}
	if k <= 0 {
		k = 5
	}
	qTokens := tokenize(query, i.cfg.stopwords)
	if len(qTokens) == 0 {
		return nil
	}

	buf := make([]Result, 0, len(i.docs))
	for _, d := range i.docs {
		over := overlap(qTokens, d.tokens)
		if over == 0 {
			continue
		}
		union := float64(len(qTokens) + len(d.tokens) - over)
		buf = append(buf, Result{ID: d.id, Text: d.text, Score: float64(over) / union})
	}
	if len(buf) == 0 {
		return nil
	}

	sort.SliceStable(buf, func(a, b int) bool {
		if buf[a].Score != buf[b].Score {
			return buf[a].Score > buf[b].Score
		}
		if len(buf[a].Text) != len(buf[b].Text) {
			return len(buf[a].Text) < len(buf[b].Text)
		}
		return buf[a].ID < buf[b].ID
	})

	if k > len(buf) {
		k = len(buf)
	}
	return buf[:k]
}

// fold lower-cases with full Unicode case folding, so "İstanbul"
// matches "istanbul".
func fold(s string) string {
	return cases.Fold().String(s)
}

// tokenize splits on non-letter/non-digit runes, folds case, and
// returns the token set.
func tokenize(s string, stop map[string]struct{}) map[string]struct{} {
	fields := strings.FieldsFunc(fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, skip := stop[f]; skip {
			continue
		}
		set[f] = struct{}{}
	}
	return set
}

func overlap(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}
