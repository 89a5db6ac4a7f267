package grading

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/odds-tracker/internal/models"
)

func labeledGame(id string, date time.Time, correct bool, ou models.OUResult) models.LabeledGame {
	game := testGame(5, 3, models.SideHome, "-1.5")
	game.GameID = id
	game.GameDate = date
	game.CorrectSide = correct
	return models.LabeledGame{
		GameRecord: game,
		Label: models.DerivedLabel{
			ActualSpread:   2,
			SpreadCoverage: models.SpreadHomeCovered,
			OUResult:       ou,
		},
	}
}

func dateKey(g models.LabeledGame) string {
	return g.GameDate.Format("2006-01-02")
}

func TestAggregateEmptyInput(t *testing.T) {
	rows, err := Aggregate(nil, dateKey)
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, models.ErrEmptyInput)
}

func TestAggregateGroupsAndTotal(t *testing.T) {
	weekA := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	weekB := time.Date(2024, 4, 8, 0, 0, 0, 0, time.UTC)

	// Week A: 3 games, 2 correct. Week B: 2 games, 1 correct.
	records := []models.LabeledGame{
		labeledGame("a1", weekA, true, models.OUOver),
		labeledGame("a2", weekA, true, models.OUUnder),
		labeledGame("a3", weekA, false, models.OUPush),
		labeledGame("b1", weekB, true, models.OUOver),
		labeledGame("b2", weekB, false, models.OUUnder),
	}

	rows, err := Aggregate(records, dateKey)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	a, b, total := rows[0], rows[1], rows[2]

	assert.Equal(t, "2024-04-01", a.GroupKey)
	assert.Equal(t, 3, a.GameCount)
	assert.InDelta(t, 2.0/3.0, a.MoneylineAccuracy, 1e-12)
	assert.Equal(t, 1, a.OverCount)
	assert.Equal(t, 1, a.UnderCount)
	assert.Equal(t, 1, a.PushCount)
	assert.False(t, a.IsTotal)

	assert.Equal(t, "2024-04-08", b.GroupKey)
	assert.Equal(t, 2, b.GameCount)
	assert.InDelta(t, 0.5, b.MoneylineAccuracy, 1e-12)

	require.True(t, total.IsTotal)
	assert.Equal(t, 5, total.GameCount)
	// Worked example: (3*(2/3) + 2*(1/2)) / 5 == 0.60
	assert.InDelta(t, 0.60, total.MoneylineAccuracy, 1e-12)
	assert.Equal(t, 2, total.OverCount)
	assert.Equal(t, 2, total.UnderCount)
	assert.Equal(t, 1, total.PushCount)
}

func TestAggregateOrderedByKey(t *testing.T) {
	records := []models.LabeledGame{
		labeledGame("c", time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC), true, models.OUOver),
		labeledGame("a", time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), true, models.OUOver),
		labeledGame("b", time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC), false, models.OUUnder),
	}

	rows, err := Aggregate(records, dateKey)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "2024-04-02", rows[0].GroupKey)
	assert.Equal(t, "2024-05-11", rows[1].GroupKey)
	assert.Equal(t, "2024-06-20", rows[2].GroupKey)
	assert.True(t, rows[3].IsTotal)
}

func TestAggregateGroupCountsSumToInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	records := randomGames(rng, 137)

	rows, err := Aggregate(records, dateKey)
	require.NoError(t, err)

	sum := 0
	for _, row := range rows {
		if !row.IsTotal {
			sum += row.GameCount
		}
	}
	assert.Equal(t, len(records), sum)
	assert.Equal(t, len(records), rows[len(rows)-1].GameCount)
}

// TestWeightedRollupMatchesDirectAccuracy checks that the Total row's
// weighted formula equals the accuracy computed over the ungrouped set, for
// arbitrary random partitions of a random record set.
func TestWeightedRollupMatchesDirectAccuracy(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		records := randomGames(rng, 1+rng.Intn(200))

		// Random partition: each game is assigned an arbitrary bucket.
		buckets := make(map[string]int, len(records))
		numBuckets := 1 + rng.Intn(12)
		for _, g := range records {
			buckets[g.GameID] = rng.Intn(numBuckets)
		}
		keyOf := func(g models.LabeledGame) int { return buckets[g.GameID] }

		rows, err := Aggregate(records, keyOf)
		require.NoError(t, err)

		correct := 0
		for _, g := range records {
			if g.CorrectSide {
				correct++
			}
		}
		direct := float64(correct) / float64(len(records))

		total := rows[len(rows)-1]
		require.True(t, total.IsTotal)
		assert.InDelta(t, direct, total.MoneylineAccuracy, 1e-9,
			"trial %d: weighted rollup diverged from direct accuracy", trial)
	}
}

func TestAggregateTotalRowAppearsExactlyOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	rows, err := Aggregate(randomGames(rng, 40), dateKey)
	require.NoError(t, err)

	totals := 0
	for _, row := range rows {
		if row.IsTotal {
			totals++
		}
	}
	assert.Equal(t, 1, totals)
	assert.True(t, rows[len(rows)-1].IsTotal, "total row must be last")
}

func randomGames(rng *rand.Rand, n int) []models.LabeledGame {
	season := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	ous := []models.OUResult{models.OUOver, models.OUUnder, models.OUPush}

	records := make([]models.LabeledGame, 0, n)
	for i := 0; i < n; i++ {
		date := season.AddDate(0, 0, rng.Intn(28))
		g := labeledGame(fmt.Sprintf("g%04d", i), date, rng.Intn(2) == 0, ous[rng.Intn(len(ous))])
		records = append(records, g)
	}
	return records
}
