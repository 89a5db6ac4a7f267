package datasource

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/odds-tracker/internal/config"
)

// NewSource creates a GameSource from the data configuration
func NewSource(cfg *config.DataConfig, logger *logrus.Logger) (GameSource, error) {
	switch cfg.Source {
	case "file":
		if cfg.Path == "" {
			return nil, fmt.Errorf("file source requires a path")
		}
		return NewFileSource(cfg.Path, logger), nil

	case "http":
		if cfg.URL == "" {
			return nil, fmt.Errorf("http source requires a url")
		}
		httpCfg := DefaultHTTPClientConfig()
		if cfg.TimeoutSeconds > 0 {
			httpCfg.Timeout = cfg.Timeout()
		}
		if cfg.MaxRetries > 0 {
			httpCfg.MaxRetries = cfg.MaxRetries
		}
		if cfg.RateLimit > 0 {
			httpCfg.RateLimit = cfg.RateLimit
		}
		client := NewRateLimitedHTTPClient(httpCfg, logger)
		return NewHTTPSource(cfg.URL, client, logger), nil

	default:
		return nil, fmt.Errorf("unknown data source: %s", cfg.Source)
	}
}
