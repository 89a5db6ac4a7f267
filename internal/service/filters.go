package service

import (
	"sort"
	"strings"
	"time"

	"github.com/yourusername/odds-tracker/internal/models"
)

// Filters narrow the record set before a pass. The aggregator itself has no
// filtering concept; anything here runs strictly upstream of it.

// FilterByDate keeps games played on the given calendar date
func FilterByDate(records []models.GameRecord, date time.Time) []models.GameRecord {
	y, m, d := date.Date()
	return filter(records, func(g models.GameRecord) bool {
		gy, gm, gd := g.GameDate.Date()
		return gy == y && gm == m && gd == d
	})
}

// FilterByDateRange keeps games with from <= date <= to
func FilterByDateRange(records []models.GameRecord, from, to time.Time) []models.GameRecord {
	return filter(records, func(g models.GameRecord) bool {
		return !g.GameDate.Before(from) && !g.GameDate.After(to)
	})
}

// FilterByTeam keeps games the team played in, home or away
func FilterByTeam(records []models.GameRecord, team string) []models.GameRecord {
	return filter(records, func(g models.GameRecord) bool {
		return strings.EqualFold(g.HomeTeam, team) || strings.EqualFold(g.AwayTeam, team)
	})
}

// AvailableDates returns the distinct game dates in ascending order
func AvailableDates(records []models.GameRecord) []time.Time {
	seen := make(map[string]time.Time)
	for _, g := range records {
		day := time.Date(g.GameDate.Year(), g.GameDate.Month(), g.GameDate.Day(), 0, 0, 0, 0, time.UTC)
		seen[day.Format("2006-01-02")] = day
	}

	dates := make([]time.Time, 0, len(seen))
	for _, day := range seen {
		dates = append(dates, day)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func filter(records []models.GameRecord, keep func(models.GameRecord) bool) []models.GameRecord {
	out := make([]models.GameRecord, 0, len(records))
	for _, g := range records {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}
