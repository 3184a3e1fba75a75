package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRegistration(t *testing.T) {
	m := New()

	m.RecordRegistration(OutcomeRegistered)
	m.RecordRegistration(OutcomeRegistered)
	m.RecordRegistration(OutcomeConflict)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.registrations.WithLabelValues(OutcomeRegistered)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.registrations.WithLabelValues(OutcomeConflict)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.registrations.WithLabelValues(OutcomeNotFound)))
}

func TestRecordRateLimitHit(t *testing.T) {
	m := New()
	m.RecordRateLimitHit()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimitHits))
}

func TestHandler(t *testing.T) {
	m := New()
	m.RecordRegistration(OutcomeInvalidState)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `gestion_participation_registrations_total{outcome="invalid_state"} 1`)
}
