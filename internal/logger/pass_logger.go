// Package logger provides grading pass logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// PassLogger provides dedicated logging for grading passes.
type PassLogger struct {
	*logrus.Entry
}

// NewPassLogger creates a new pass logger.
func NewPassLogger(baseLogger *logrus.Logger) *PassLogger {
	return &PassLogger{
		Entry: baseLogger.WithField("component", "grading"),
	}
}

// LogPassStarted logs the start of a grading pass.
func (pl *PassLogger) LogPassStarted(passID string, grouping string, recordCount int) {
	pl.WithFields(logrus.Fields{
		"pass_id":      passID,
		"grouping":     grouping,
		"record_count": recordCount,
	}).Info("Grading pass started")
}

// LogPassCompleted logs a completed grading pass with its headline numbers.
func (pl *PassLogger) LogPassCompleted(passID string, grouping string, groups int, games int, accuracy float64, elapsed time.Duration) {
	pl.WithFields(logrus.Fields{
		"pass_id":            passID,
		"grouping":           grouping,
		"groups":             groups,
		"games":              games,
		"moneyline_accuracy": accuracy,
		"elapsed_ms":         elapsed.Milliseconds(),
	}).Info("Grading pass completed")
}

// LogInvalidRecord logs a record rejected during labeling.
func (pl *PassLogger) LogInvalidRecord(gameID string, reason string) {
	pl.WithFields(logrus.Fields{
		"game_id": gameID,
		"reason":  reason,
	}).Warn("Invalid game record rejected")
}

// LogTableLoaded logs a (re)load of the settled-games table.
func (pl *PassLogger) LogTableLoaded(source string, rows int, deduped int, cached bool) {
	pl.WithFields(logrus.Fields{
		"source":  source,
		"rows":    rows,
		"deduped": deduped,
		"cached":  cached,
	}).Info("Game table loaded")
}
