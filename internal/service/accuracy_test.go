package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/odds-tracker/internal/models"
)

// stubSource serves a fixed table and counts fetches
type stubSource struct {
	records []models.GameRecord
	fetches int
	err     error
}

func (s *stubSource) FetchGames(ctx context.Context) ([]models.GameRecord, error) {
	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func (s *stubSource) Name() string { return "stub" }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func gameOn(id string, date time.Time, correct bool) models.GameRecord {
	return models.GameRecord{
		GameID:             id,
		GameDate:           date,
		HomeTeam:           "NYY",
		AwayTeam:           "BOS",
		HomeScore:          5,
		AwayScore:          3,
		OpeningPointSpread: decimal.RequireFromString("-1.5"),
		OpeningOverUnder:   decimal.RequireFromString("8.5"),
		Winner:             models.SideHome,
		Favorite:           models.SideHome,
		CorrectSide:        correct,
		TotalRuns:          8,
		UnderHit:           true,
	}
}

func TestLoadTableCachesBetweenCalls(t *testing.T) {
	source := &stubSource{records: []models.GameRecord{
		gameOn("g1", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), true),
	}}
	svc := NewAccuracyService(source, time.Minute, quietLogger())

	first, err := svc.LoadTable(context.Background())
	require.NoError(t, err)
	second, err := svc.LoadTable(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.fetches, "second load must hit the cache")

	svc.Invalidate()
	_, err = svc.LoadTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, source.fetches, "invalidate must force a re-fetch")
}

func TestRunPassByWeek(t *testing.T) {
	// Two ISO weeks: 2024-W14 (Apr 1-7) and 2024-W15 (Apr 8-14)
	records := []models.GameRecord{
		gameOn("a1", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), true),
		gameOn("a2", time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC), true),
		gameOn("a3", time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC), false),
		gameOn("b1", time.Date(2024, 4, 9, 0, 0, 0, 0, time.UTC), true),
		gameOn("b2", time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), false),
	}
	svc := NewAccuracyService(&stubSource{}, time.Minute, quietLogger())

	result, err := svc.RunPass(context.Background(), records, GroupingWeek)
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", result.PassID.String())
	assert.Len(t, result.Labeled, 5)

	assert.Equal(t, "2024-W14", result.Rows[0].GroupKey)
	assert.Equal(t, 3, result.Rows[0].GameCount)
	assert.Equal(t, "2024-W15", result.Rows[1].GroupKey)
	assert.Equal(t, 2, result.Rows[1].GameCount)

	total := result.Total()
	assert.True(t, total.IsTotal)
	assert.Equal(t, 5, total.GameCount)
	assert.InDelta(t, 0.60, total.MoneylineAccuracy, 1e-12)
}

func TestRunPassEmptyInput(t *testing.T) {
	svc := NewAccuracyService(&stubSource{}, time.Minute, quietLogger())

	_, err := svc.RunPass(context.Background(), nil, GroupingWeek)
	assert.ErrorIs(t, err, models.ErrEmptyInput)
}

func TestRunPassFailsFastOnInvalidRecord(t *testing.T) {
	bad := gameOn("bad", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), true)
	bad.OverHit = true // both over and under set

	records := []models.GameRecord{
		gameOn("ok", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), true),
		bad,
	}
	svc := NewAccuracyService(&stubSource{}, time.Minute, quietLogger())

	_, err := svc.RunPass(context.Background(), records, GroupingDate)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidRecord)
}

func TestRunPassUnknownGrouping(t *testing.T) {
	records := []models.GameRecord{
		gameOn("g1", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), true),
	}
	svc := NewAccuracyService(&stubSource{}, time.Minute, quietLogger())

	_, err := svc.RunPass(context.Background(), records, Grouping("month"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown grouping")
}

func TestValidRecordsSplitsRejects(t *testing.T) {
	bad := gameOn("bad", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), true)
	bad.TotalRuns = 99

	records := []models.GameRecord{
		gameOn("ok1", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), true),
		bad,
		gameOn("ok2", time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), false),
	}
	svc := NewAccuracyService(&stubSource{}, time.Minute, quietLogger())

	valid, rejected := svc.ValidRecords(records)
	assert.Len(t, valid, 2)
	assert.Equal(t, 1, rejected)
}

func TestGroupingKeys(t *testing.T) {
	g := models.LabeledGame{GameRecord: gameOn("g1", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), true)}
	assert.Equal(t, "2024-W14", WeekKey(g))
	assert.Equal(t, "2024-04-01", DateKey(g))

	// ISO week of Jan 1 can belong to the previous year
	g.GameDate = time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-W53", WeekKey(g))
}
