// Package domain — betting-market shapes cached by the offline core.
//
// These mirror the remote API's value-bet and live-game responses. They
// are what actually lives inside CachedEntity.Payload for the
// cached_value_bets and cached_live_games tables. Monetary and
// probability fields use shopspring/decimal so odds survive round-trips
// without float drift.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SportKey identifies a sport in remote API notation.
type SportKey string

const (
	SportNFL    SportKey = "americanfootball_nfl"
	SportNBA    SportKey = "basketball_nba"
	SportMLB    SportKey = "baseball_mlb"
	SportNHL    SportKey = "icehockey_nhl"
	SportEPL    SportKey = "soccer_epl"
	SportUEFACL SportKey = "soccer_uefa_champs_league"
)

// MarketKey identifies a bet market in remote API notation.
type MarketKey string

const (
	MarketMoneyline MarketKey = "h2h"
	MarketSpread    MarketKey = "spreads"
	MarketTotals    MarketKey = "totals"
)

// BookmakerOdds is one bookmaker's decimal-odds quote for a market.
type BookmakerOdds struct {
	Bookmaker  string          `json:"bookmaker"`
	Odds       decimal.Decimal `json:"odds"`
	LastUpdate time.Time       `json:"last_update"`
}

// ValueBet is a detected value-betting opportunity as delivered by the
// remote API and cached locally for offline browsing.
type ValueBet struct {
	ID              string          `json:"id"`
	GameID          string          `json:"game_id"`
	Sport           SportKey        `json:"sport"`
	HomeTeam        string          `json:"home_team"`
	AwayTeam        string          `json:"away_team"`
	CommenceTime    time.Time       `json:"commence_time"`
	Market          MarketKey       `json:"market"`
	Bookmakers      []BookmakerOdds `json:"bookmakers"`
	Edge            decimal.Decimal `json:"edge"`
	ExpectedValue   decimal.Decimal `json:"expected_value"`
	ConfidenceScore decimal.Decimal `json:"confidence_score"`
	KellyFraction   decimal.Decimal `json:"kelly_fraction"`
	CreatedAt       time.Time       `json:"created_at"`
}

// BestOdds returns the bookmaker quote with the highest decimal odds,
// or nil when no quotes are present.
func (v ValueBet) BestOdds() *BookmakerOdds {
	var best *BookmakerOdds
	for i := range v.Bookmakers {
		if best == nil || v.Bookmakers[i].Odds.GreaterThan(best.Odds) {
			best = &v.Bookmakers[i]
		}
	}
	return best
}

// ImpliedProbability is 1/bestOdds, or zero when no quotes exist.
func (v ValueBet) ImpliedProbability() decimal.Decimal {
	best := v.BestOdds()
	if best == nil || best.Odds.IsZero() {
		return decimal.Zero
	}
	return decimal.NewFromInt(1).DivRound(best.Odds, 6)
}

// SearchText flattens the human-searchable fields of a value bet into a
// single string for the offline cache index.
func (v ValueBet) SearchText() string {
	s := v.HomeTeam + " " + v.AwayTeam + " " + string(v.Sport) + " " + string(v.Market)
	for _, b := range v.Bookmakers {
		s += " " + b.Bookmaker
	}
	return s
}

// LiveGame is an in-progress game snapshot cached for offline display.
type LiveGame struct {
	ID        string    `json:"id"`
	Sport     SportKey  `json:"sport"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
	Period    string    `json:"period"`
	Clock     string    `json:"clock"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SearchText flattens a live game's searchable fields for the cache index.
func (g LiveGame) SearchText() string {
	return g.HomeTeam + " " + g.AwayTeam + " " + string(g.Sport)
}
