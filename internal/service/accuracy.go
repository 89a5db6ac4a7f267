// Package service orchestrates grading passes over the settled-games table.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/odds-tracker/internal/datasource"
	"github.com/yourusername/odds-tracker/internal/grading"
	"github.com/yourusername/odds-tracker/internal/logger"
	"github.com/yourusername/odds-tracker/internal/metrics"
	"github.com/yourusername/odds-tracker/internal/models"
)

// Grouping selects the key function for a grading pass
type Grouping string

const (
	GroupingWeek Grouping = "week"
	GroupingDate Grouping = "date"
)

const tableCacheKey = "game_table"

// PassResult is the output of one grading pass: every record with its
// derived label, plus the grouped summary rows with the Total row last.
type PassResult struct {
	PassID      uuid.UUID                    `json:"pass_id"`
	Grouping    Grouping                     `json:"grouping"`
	Labeled     []models.LabeledGame         `json:"labeled"`
	Rows        []grading.SummaryRow[string] `json:"rows"`
	GeneratedAt time.Time                    `json:"generated_at"`
	Elapsed     time.Duration                `json:"elapsed"`
}

// Total returns the whole-set summary row
func (r *PassResult) Total() grading.SummaryRow[string] {
	return r.Rows[len(r.Rows)-1]
}

// AccuracyService loads the settled-games table and runs grading passes
// over it. The loaded table is cached with a TTL so repeated passes (and the
// tracker's periodic refresh) do not re-read the source every time.
type AccuracyService struct {
	source     datasource.GameSource
	table      *cache.Cache
	log        *logrus.Logger
	passLogger *logger.PassLogger
}

// NewAccuracyService creates a new accuracy service
func NewAccuracyService(source datasource.GameSource, cacheTTL time.Duration, log *logrus.Logger) *AccuracyService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &AccuracyService{
		source:     source,
		table:      cache.New(cacheTTL, 2*cacheTTL),
		log:        log,
		passLogger: logger.NewPassLogger(log),
	}
}

// LoadTable returns the settled-games table, fetching from the source on a
// cache miss
func (s *AccuracyService) LoadTable(ctx context.Context) ([]models.GameRecord, error) {
	if cached, found := s.table.Get(tableCacheKey); found {
		records := cached.([]models.GameRecord)
		metrics.RecordTableLoad("hit", 0, len(records))
		return records, nil
	}

	start := time.Now()
	records, err := s.source.FetchGames(ctx)
	if err != nil {
		metrics.RecordTableLoad("error", time.Since(start).Seconds(), 0)
		return nil, fmt.Errorf("loading game table: %w", err)
	}

	s.table.Set(tableCacheKey, records, cache.DefaultExpiration)
	metrics.RecordTableLoad("miss", time.Since(start).Seconds(), len(records))
	s.passLogger.LogTableLoaded(s.source.Name(), len(records), 0, false)
	return records, nil
}

// Invalidate drops the cached table so the next load re-fetches
func (s *AccuracyService) Invalidate() {
	s.table.Delete(tableCacheKey)
}

// RunPass labels every record and aggregates by the requested grouping.
// It fails fast on the first invalid record; callers wanting to tolerate bad
// rows must filter them out first (see ValidRecords).
func (s *AccuracyService) RunPass(ctx context.Context, records []models.GameRecord, grouping Grouping) (*PassResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, models.ErrEmptyInput
	}

	passID := uuid.New()
	start := time.Now()
	s.passLogger.LogPassStarted(passID.String(), string(grouping), len(records))

	labeled, err := grading.LabelAll(records)
	if err != nil {
		metrics.RecordInvalidRecord()
		return nil, fmt.Errorf("pass %s: %w", passID, err)
	}
	for range labeled {
		metrics.RecordGameGraded()
	}

	keyOf, err := keyFunc(grouping)
	if err != nil {
		return nil, err
	}

	rows, err := grading.Aggregate(labeled, keyOf)
	if err != nil {
		return nil, fmt.Errorf("pass %s: %w", passID, err)
	}

	elapsed := time.Since(start)
	result := &PassResult{
		PassID:      passID,
		Grouping:    grouping,
		Labeled:     labeled,
		Rows:        rows,
		GeneratedAt: start,
		Elapsed:     elapsed,
	}

	total := result.Total()
	metrics.RecordGradingPass(string(grouping), elapsed.Seconds(), total.MoneylineAccuracy)
	s.passLogger.LogPassCompleted(passID.String(), string(grouping), len(rows)-1, total.GameCount, total.MoneylineAccuracy, elapsed)
	return result, nil
}

// ValidRecords splits records into valid and rejected sets. Each rejected
// record is logged and counted; nothing is dropped silently.
func (s *AccuracyService) ValidRecords(records []models.GameRecord) (valid []models.GameRecord, rejected int) {
	valid = make([]models.GameRecord, 0, len(records))
	for _, g := range records {
		if err := g.Validate(); err != nil {
			rejected++
			metrics.RecordInvalidRecord()
			s.passLogger.LogInvalidRecord(g.GameID, err.Error())
			continue
		}
		valid = append(valid, g)
	}
	return valid, rejected
}

// keyFunc maps a grouping to its key function. Week keys use the ISO week
// of the game date formatted so lexicographic order matches chronological
// order; date keys use the calendar date.
func keyFunc(grouping Grouping) (func(models.LabeledGame) string, error) {
	switch grouping {
	case GroupingWeek:
		return WeekKey, nil
	case GroupingDate:
		return DateKey, nil
	default:
		return nil, fmt.Errorf("unknown grouping %q", grouping)
	}
}

// WeekKey returns the ISO week identifier of the game date, e.g. 2024-W14
func WeekKey(g models.LabeledGame) string {
	year, week := g.GameDate.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// DateKey returns the calendar date of the game, e.g. 2024-04-01
func DateKey(g models.LabeledGame) string {
	return g.GameDate.Format("2006-01-02")
}
