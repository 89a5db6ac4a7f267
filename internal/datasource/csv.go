package datasource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/odds-tracker/internal/models"
)

// Column headers expected in the comparison table. Matching is
// case-insensitive so both GameID and game_id style exports load.
const (
	colGameID             = "gameid"
	colGameDate           = "gamedate"
	colHomeTeam           = "hometeam"
	colAwayTeam           = "awayteam"
	colHomeScore          = "homescore"
	colAwayScore          = "awayscore"
	colWinner             = "winner"
	colFavorite           = "favorite"
	colCorrectSide        = "correctside"
	colOpeningPointSpread = "openingpointspread"
	colOpeningOverUnder   = "openingoverunder"
	colTotalRuns          = "totalruns"
	colOverHit            = "overhit"
	colUnderHit           = "underhit"
	colPushTotal          = "pushtotal"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// FileSource reads the comparison table from a local CSV file
type FileSource struct {
	path   string
	logger *logrus.Logger
}

// NewFileSource creates a file-backed game source
func NewFileSource(path string, logger *logrus.Logger) *FileSource {
	return &FileSource{path: path, logger: logger}
}

// Name returns the name of the data source
func (s *FileSource) Name() string {
	return fmt.Sprintf("file:%s", s.path)
}

// Ping reports whether the backing file exists and is readable
func (s *FileSource) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return nil
}

// FetchGames reads and parses the CSV file
func (s *FileSource) FetchGames(ctx context.Context) ([]models.GameRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	records, err := ParseGames(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"source": s.Name(),
			"rows":   len(records),
		}).Debug("Loaded game table from file")
	}
	return records, nil
}

// ParseGames parses the comparison CSV into game records. Dates are parsed
// into time.Time, numerics and booleans are coerced, and rows sharing a game
// id are deduplicated with a last-wins policy: the row appearing later in
// the file replaces the earlier one in place.
func ParseGames(r io.Reader) ([]models.GameRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformedTable)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var records []models.GameRecord
	index := make(map[string]int)
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedTable, line, err)
		}

		record, err := parseRow(columns, row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		// Last-wins dedup by game id
		if at, seen := index[record.GameID]; seen {
			records[at] = record
			continue
		}
		index[record.GameID] = len(records)
		records = append(records, record)
	}

	return records, nil
}

func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", ""))] = i
	}

	required := []string{
		colGameID, colGameDate, colHomeTeam, colAwayTeam,
		colHomeScore, colAwayScore, colWinner, colFavorite, colCorrectSide,
		colOpeningPointSpread, colOpeningOverUnder,
		colTotalRuns, colOverHit, colUnderHit, colPushTotal,
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedTable, name)
		}
	}
	return columns, nil
}

func parseRow(columns map[string]int, row []string) (models.GameRecord, error) {
	get := func(name string) string {
		i := columns[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var record models.GameRecord
	var err error

	record.GameID = get(colGameID)
	if record.GameID == "" {
		return record, models.NewValidationError("missing_game_id", "game id is required")
	}

	record.GameDate, err = parseDate(get(colGameDate))
	if err != nil {
		return record, err
	}

	record.HomeTeam = get(colHomeTeam)
	record.AwayTeam = get(colAwayTeam)
	if record.HomeTeam == "" || record.AwayTeam == "" {
		return record, models.NewValidationError("missing_team", "home and away teams are required")
	}

	if record.HomeScore, err = parseScore(colHomeScore, get(colHomeScore)); err != nil {
		return record, err
	}
	if record.AwayScore, err = parseScore(colAwayScore, get(colAwayScore)); err != nil {
		return record, err
	}
	if record.TotalRuns, err = parseScore(colTotalRuns, get(colTotalRuns)); err != nil {
		return record, err
	}

	record.Winner = parseSide(get(colWinner))
	record.Favorite = parseSide(get(colFavorite))

	if record.OpeningPointSpread, err = parseLine(colOpeningPointSpread, get(colOpeningPointSpread)); err != nil {
		return record, err
	}
	if record.OpeningOverUnder, err = parseLine(colOpeningOverUnder, get(colOpeningOverUnder)); err != nil {
		return record, err
	}
	if record.OpeningOverUnder.IsNegative() {
		return record, models.NewValidationError("negative_total_line", "over/under line cannot be negative")
	}

	if record.CorrectSide, err = parseBool(colCorrectSide, get(colCorrectSide)); err != nil {
		return record, err
	}
	if record.OverHit, err = parseBool(colOverHit, get(colOverHit)); err != nil {
		return record, err
	}
	if record.UnderHit, err = parseBool(colUnderHit, get(colUnderHit)); err != nil {
		return record, err
	}
	if record.PushTotal, err = parseBool(colPushTotal, get(colPushTotal)); err != nil {
		return record, err
	}

	return record, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, models.NewValidationError("bad_date", fmt.Sprintf("unparseable game date %q", value))
}

func parseScore(column, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, models.NewValidationError("bad_score", fmt.Sprintf("column %s must be a non-negative integer, got %q", column, value))
	}
	return n, nil
}

func parseLine(column, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, models.NewValidationError("bad_line", fmt.Sprintf("column %s must be numeric, got %q", column, value))
	}
	return d, nil
}

func parseSide(value string) models.Side {
	switch strings.ToLower(value) {
	case "home":
		return models.SideHome
	case "away":
		return models.SideAway
	case "", "none", "n/a":
		return models.SideNone
	default:
		return models.Side(strings.ToLower(value))
	}
}

func parseBool(column, value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true", "t", "1", "yes":
		return true, nil
	case "false", "f", "0", "no", "":
		return false, nil
	default:
		return false, models.NewValidationError("bad_flag", fmt.Sprintf("column %s must be a boolean, got %q", column, value))
	}
}
