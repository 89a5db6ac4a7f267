package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Side identifies one participant of a game
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
	SideNone Side = "none"
)

// IsValidWinner reports whether the side is a legal winner value
func (s Side) IsValidWinner() bool {
	return s == SideHome || s == SideAway
}

// IsValidFavorite reports whether the side is a legal favorite value
func (s Side) IsValidFavorite() bool {
	return s == SideHome || s == SideAway || s == SideNone
}

// GameRecord represents one settled game with its opening lines and final result.
// Records are read-only once loaded; derived values live on LabeledGame.
type GameRecord struct {
	GameID   string    `csv:"game_id" json:"game_id" validate:"required"`
	GameDate time.Time `csv:"game_date" json:"game_date" validate:"required"`
	HomeTeam string    `csv:"home_team" json:"home_team" validate:"required"`
	AwayTeam string    `csv:"away_team" json:"away_team" validate:"required"`

	HomeScore int `csv:"home_score" json:"home_score" validate:"gte=0"`
	AwayScore int `csv:"away_score" json:"away_score" validate:"gte=0"`

	// Lines are fixed at game open. The spread magnitude is what the
	// favorite must beat; the over/under is the posted total-runs line.
	OpeningPointSpread decimal.Decimal `csv:"opening_point_spread" json:"opening_point_spread"`
	OpeningOverUnder   decimal.Decimal `csv:"opening_over_under" json:"opening_over_under"`

	Winner      Side `csv:"winner" json:"winner" validate:"required,oneof=home away"`
	Favorite    Side `csv:"favorite" json:"favorite" validate:"required,oneof=home away none"`
	CorrectSide bool `csv:"correct_side" json:"correct_side"`

	TotalRuns int  `csv:"total_runs" json:"total_runs" validate:"gte=0"`
	OverHit   bool `csv:"over_hit" json:"over_hit"`
	UnderHit  bool `csv:"under_hit" json:"under_hit"`
	PushTotal bool `csv:"push_total" json:"push_total"`
}

// Matchup formats the game in away-at-home notation
func (g *GameRecord) Matchup() string {
	return fmt.Sprintf("%s @ %s", g.AwayTeam, g.HomeTeam)
}

// ActualSpread returns the final home-minus-away score margin
func (g *GameRecord) ActualSpread() int {
	return g.HomeScore - g.AwayScore
}

// TotalsFlagCount returns how many of the over/under/push flags are set.
// Exactly one must be true on a well-formed record.
func (g *GameRecord) TotalsFlagCount() int {
	n := 0
	if g.OverHit {
		n++
	}
	if g.UnderHit {
		n++
	}
	if g.PushTotal {
		n++
	}
	return n
}

// Validate checks the record against the data model invariants
func (g *GameRecord) Validate() error {
	if !g.Favorite.IsValidFavorite() {
		return fmt.Errorf("%w: game %s has favorite %q", ErrUnknownFavorite, g.GameID, g.Favorite)
	}
	if n := g.TotalsFlagCount(); n != 1 {
		return fmt.Errorf("%w: game %s has %d totals flags set", ErrContradictoryTotalsFlags, g.GameID, n)
	}
	if g.TotalRuns != g.HomeScore+g.AwayScore {
		return fmt.Errorf("%w: game %s recorded %d runs, scores sum to %d",
			ErrTotalRunsMismatch, g.GameID, g.TotalRuns, g.HomeScore+g.AwayScore)
	}
	return nil
}
