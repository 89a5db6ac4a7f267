package datasource

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/odds-tracker/internal/models"
)

// HTTPSource fetches the comparison CSV from a remote endpoint. This is a
// historical-file download with retry and rate limiting, not a live feed.
type HTTPSource struct {
	url    string
	client *RateLimitedHTTPClient
	logger *logrus.Logger
}

// NewHTTPSource creates an HTTP-backed game source
func NewHTTPSource(url string, client *RateLimitedHTTPClient, logger *logrus.Logger) *HTTPSource {
	return &HTTPSource{url: url, client: client, logger: logger}
}

// Name returns the name of the data source
func (s *HTTPSource) Name() string {
	return fmt.Sprintf("http:%s", s.url)
}

// Ping checks the endpoint answers without downloading the table
func (s *HTTPSource) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.url, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: status %d from %s", ErrSourceUnavailable, resp.StatusCode, s.url)
	}
	return nil
}

// FetchGames downloads and parses the CSV
func (s *HTTPSource) FetchGames(ctx context.Context) ([]models.GameRecord, error) {
	resp, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", ErrSourceUnavailable, resp.StatusCode, s.url)
	}

	records, err := ParseGames(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing response from %s: %w", s.url, err)
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"source": s.Name(),
			"rows":   len(records),
		}).Debug("Loaded game table over HTTP")
	}
	return records, nil
}
