// Package datasource loads the settled-games comparison table from its
// external home (a local CSV file or an HTTP endpoint serving the same CSV)
// and normalizes it into GameRecord values the engine can consume.
package datasource

import (
	"context"
	"errors"

	"github.com/yourusername/odds-tracker/internal/models"
)

// GameSource defines the interface for fetching the settled-games table
type GameSource interface {
	// FetchGames retrieves the full table of settled games, parsed,
	// coerced, and deduplicated by game id.
	FetchGames(ctx context.Context) ([]models.GameRecord, error)

	// Name returns the name of the data source
	Name() string
}

// Errors
var (
	ErrSourceUnavailable = errors.New("data source unavailable")
	ErrMalformedTable    = errors.New("malformed game table")
)
