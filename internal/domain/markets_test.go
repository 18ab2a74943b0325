package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func quote(book, odds string) BookmakerOdds {
	return BookmakerOdds{Bookmaker: book, Odds: decimal.RequireFromString(odds), LastUpdate: time.Now()}
}

func TestValueBet_BestOdds(t *testing.T) {
	v := ValueBet{Bookmakers: []BookmakerOdds{
		quote("alpha", "1.91"),
		quote("bravo", "2.05"),
		quote("charlie", "1.99"),
	}}
	best := v.BestOdds()
	if best == nil || best.Bookmaker != "bravo" {
		t.Fatalf("expected bravo as best, got %+v", best)
	}

	empty := ValueBet{}
	if empty.BestOdds() != nil {
		t.Fatal("expected nil best odds for empty quote list")
	}
}

func TestValueBet_ImpliedProbability(t *testing.T) {
	v := ValueBet{Bookmakers: []BookmakerOdds{quote("alpha", "2")}}
	got := v.ImpliedProbability()
	if !got.Equal(decimal.RequireFromString("0.5")) {
		t.Fatalf("expected 0.5, got %s", got)
	}
	if !(ValueBet{}).ImpliedProbability().IsZero() {
		t.Fatal("expected zero probability with no quotes")
	}
}

func TestSearchText_CoversTeamsAndBooks(t *testing.T) {
	v := ValueBet{
		Sport:      SportNBA,
		HomeTeam:   "Lakers",
		AwayTeam:   "Celtics",
		Market:     MarketMoneyline,
		Bookmakers: []BookmakerOdds{quote("pinnacle", "1.9")},
	}
	text := v.SearchText()
	for _, want := range []string{"Lakers", "Celtics", "basketball_nba", "pinnacle"} {
		if !strings.Contains(text, want) {
			t.Fatalf("search text missing %q: %s", want, text)
		}
	}

	g := LiveGame{Sport: SportNFL, HomeTeam: "Chiefs", AwayTeam: "Bills"}
	if !strings.Contains(g.SearchText(), "Chiefs") {
		t.Fatalf("live game search text missing team: %s", g.SearchText())
	}
}

func TestCachedEntity_Expired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Second)
	future := now.Add(time.Second)

	if (CachedEntity{}).Expired(now) {
		t.Fatal("entity without TTL must not expire")
	}
	if !(CachedEntity{ExpiresAt: &past}).Expired(now) {
		t.Fatal("entity past TTL must be expired")
	}
	if (CachedEntity{ExpiresAt: &future}).Expired(now) {
		t.Fatal("entity before TTL must not be expired")
	}
}
