package grading

import (
	"cmp"
	"slices"

	"github.com/yourusername/odds-tracker/internal/models"
)

// SummaryRow is one aggregated slice of the input: one row per distinct
// group key, plus a single Total row with IsTotal set and a zero key.
type SummaryRow[K cmp.Ordered] struct {
	GroupKey          K       `json:"group_key"`
	GameCount         int     `json:"game_count"`
	MoneylineAccuracy float64 `json:"moneyline_accuracy"`
	OverCount         int     `json:"over_count"`
	UnderCount        int     `json:"under_count"`
	PushCount         int     `json:"push_count"`
	IsTotal           bool    `json:"is_total"`
}

// accumulator holds the running sums for one group. Merging two accumulators
// is plain addition, which is why partial aggregation stays exact under any
// partitioning of the input.
type accumulator struct {
	games   int
	correct int
	over    int
	under   int
	push    int
}

func (a *accumulator) add(g models.LabeledGame) {
	a.games++
	if g.CorrectSide {
		a.correct++
	}
	switch g.Label.OUResult {
	case models.OUOver:
		a.over++
	case models.OUUnder:
		a.under++
	case models.OUPush:
		a.push++
	}
}

// Aggregate reduces labeled games into per-group summary rows using the
// caller-supplied key function, sorted ascending by key, with a weighted
// Total row appended last.
//
// The Total row is deliberately computed from the group rows rather than the
// raw records: totalAccuracy = sum(acc_g * n_g) / sum(n_g). That makes the
// group rows alone sufficient to reconstruct the whole-set numbers, and it is
// numerically identical to grading the ungrouped set directly.
//
// Any pre-aggregation filtering (by date, team, or otherwise) is the
// caller's responsibility; empty input returns models.ErrEmptyInput.
func Aggregate[K cmp.Ordered](records []models.LabeledGame, keyOf func(models.LabeledGame) K) ([]SummaryRow[K], error) {
	if len(records) == 0 {
		return nil, models.ErrEmptyInput
	}

	groups := make(map[K]*accumulator)
	for _, g := range records {
		key := keyOf(g)
		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{}
			groups[key] = acc
		}
		acc.add(g)
	}

	keys := make([]K, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	rows := make([]SummaryRow[K], 0, len(keys)+1)
	for _, key := range keys {
		acc := groups[key]
		rows = append(rows, SummaryRow[K]{
			GroupKey:          key,
			GameCount:         acc.games,
			MoneylineAccuracy: float64(acc.correct) / float64(acc.games),
			OverCount:         acc.over,
			UnderCount:        acc.under,
			PushCount:         acc.push,
		})
	}

	rows = append(rows, totalRow(rows))
	return rows, nil
}

// totalRow rolls the group rows up into the Total row by weighting each
// group's accuracy by its game count.
func totalRow[K cmp.Ordered](groups []SummaryRow[K]) SummaryRow[K] {
	total := SummaryRow[K]{IsTotal: true}
	weighted := 0.0
	for _, row := range groups {
		total.GameCount += row.GameCount
		total.OverCount += row.OverCount
		total.UnderCount += row.UnderCount
		total.PushCount += row.PushCount
		weighted += row.MoneylineAccuracy * float64(row.GameCount)
	}
	if total.GameCount > 0 {
		total.MoneylineAccuracy = weighted / float64(total.GameCount)
	}
	return total
}
