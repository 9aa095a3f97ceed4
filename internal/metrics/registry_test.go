package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Scoring(t *testing.T) {
	r := NewRegistry()

	r.ObserveScoringRun(200, 31, 120*time.Millisecond)
	r.ObserveScoringRun(10, 2, 5*time.Millisecond)
	r.ObserveRiskScore(88, true)
	r.ObserveFingerprintMismatch("Electronics")
	r.ObserveFingerprintMismatch("Electronics")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.scoringRuns))
	assert.Equal(t, 210.0, testutil.ToFloat64(r.scoredTransactions))
	assert.Equal(t, 33.0, testutil.ToFloat64(r.flaggedTransactions))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.fingerprintMismatch.WithLabelValues("Electronics")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.riskScores))
}

func TestRegistry_Workflow(t *testing.T) {
	r := NewRegistry()

	r.ObserveDisposition("Escalated", "manual")
	r.ObserveDisposition("Cleared", "verification")
	r.ObserveVerification("Passed")
	r.ObserveLockWait("order", time.Millisecond)
	r.ObserveIngest("upload", 12, 9)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.dispositions.WithLabelValues("Escalated", "manual")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.verifications.WithLabelValues("Passed")))
	assert.Equal(t, 9.0, testutil.ToFloat64(r.ingestedRows.WithLabelValues("upload", "added")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.ingestedRows.WithLabelValues("upload", "skipped")))
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.ObserveHTTPRequest("GET", "GET /api/stats", 200, 3*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `fraudlens_http_requests_total{method="GET",route="GET /api/stats",status="200"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
