package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/odds-tracker/internal/models"
)

func filterFixture() []models.GameRecord {
	apr1 := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	apr2 := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	apr9 := time.Date(2024, 4, 9, 0, 0, 0, 0, time.UTC)

	g1 := gameOn("g1", apr1, true)
	g2 := gameOn("g2", apr1, false)
	g2.HomeTeam, g2.AwayTeam = "LAD", "SF"
	g3 := gameOn("g3", apr2, true)
	g3.HomeTeam, g3.AwayTeam = "SF", "CHC"
	g4 := gameOn("g4", apr9, true)

	return []models.GameRecord{g1, g2, g3, g4}
}

func TestFilterByDate(t *testing.T) {
	records := filterFixture()

	got := FilterByDate(records, time.Date(2024, 4, 1, 15, 30, 0, 0, time.UTC))
	require.Len(t, got, 2)
	assert.Equal(t, "g1", got[0].GameID)
	assert.Equal(t, "g2", got[1].GameID)

	assert.Empty(t, FilterByDate(records, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFilterByDateRange(t *testing.T) {
	records := filterFixture()

	got := FilterByDateRange(records,
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC))
	assert.Len(t, got, 3)
}

func TestFilterByTeam(t *testing.T) {
	records := filterFixture()

	got := FilterByTeam(records, "SF")
	require.Len(t, got, 2)
	assert.Equal(t, "g2", got[0].GameID)
	assert.Equal(t, "g3", got[1].GameID)

	// Case-insensitive match
	assert.Len(t, FilterByTeam(records, "sf"), 2)
	assert.Empty(t, FilterByTeam(records, "SEA"))
}

func TestAvailableDates(t *testing.T) {
	dates := AvailableDates(filterFixture())
	require.Len(t, dates, 3)
	assert.Equal(t, "2024-04-01", dates[0].Format("2006-01-02"))
	assert.Equal(t, "2024-04-02", dates[1].Format("2006-01-02"))
	assert.Equal(t, "2024-04-09", dates[2].Format("2006-01-02"))
}
