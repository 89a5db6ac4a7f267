package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordGameGraded(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordGameGraded()
		RecordInvalidRecord()
	})
}

func TestRecordGradingPass(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordGradingPass("week", 0.012, 0.61)
		RecordGradingPass("date", 0.008, 0.55)
	})
}

func TestRecordTableLoad(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordTableLoad("miss", 0.1, 240)
		RecordTableLoad("hit", 0.0001, 240)
	})
}

func TestHandlerServesMetrics(t *testing.T) {
	InitRegistry()
	RecordGameGraded()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "odds_tracker_games_graded_total")
}
