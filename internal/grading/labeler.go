// Package grading turns settled game records into outcome labels and
// rolls labeled games up into grouped accuracy summaries.
package grading

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yourusername/odds-tracker/internal/models"
)

// Label derives the outcome fields for a single game record. It is a pure
// function: no side effects, no dependency on other records, and calling it
// twice on the same record yields the same label.
func Label(g models.GameRecord) (models.DerivedLabel, error) {
	if err := g.Validate(); err != nil {
		return models.DerivedLabel{}, err
	}

	label := models.DerivedLabel{
		ActualSpread:   g.ActualSpread(),
		SpreadCoverage: spreadCoverage(g),
	}

	// The totals flags are graded upstream against the opening line; this is
	// a pass-through, not a re-derivation.
	switch {
	case g.OverHit:
		label.OUResult = models.OUOver
	case g.UnderHit:
		label.OUResult = models.OUUnder
	default:
		label.OUResult = models.OUPush
	}

	return label, nil
}

// spreadCoverage applies the favorite-must-beat-the-line rule. An exact tie
// with the opening spread grades as missed: unlike totals, the spread has no
// push state in this model.
func spreadCoverage(g models.GameRecord) models.SpreadCoverage {
	margin := decimal.NewFromInt(int64(g.ActualSpread()))

	switch g.Favorite {
	case models.SideHome:
		if margin.GreaterThan(g.OpeningPointSpread) {
			return models.SpreadHomeCovered
		}
		return models.SpreadHomeMissed
	case models.SideAway:
		if margin.Neg().GreaterThan(g.OpeningPointSpread) {
			return models.SpreadAwayCovered
		}
		return models.SpreadAwayMissed
	default:
		return models.SpreadNotApplicable
	}
}

// LabelAll labels every record in order, failing fast on the first invalid
// record. A malformed row is a data-quality problem for the caller to fix
// upstream; nothing is silently dropped here.
func LabelAll(records []models.GameRecord) ([]models.LabeledGame, error) {
	labeled := make([]models.LabeledGame, 0, len(records))
	for i, g := range records {
		label, err := Label(g)
		if err != nil {
			return nil, fmt.Errorf("labeling record %d: %w", i, err)
		}
		labeled = append(labeled, models.LabeledGame{GameRecord: g, Label: label})
	}
	return labeled, nil
}
