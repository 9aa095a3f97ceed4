package fraud

import (
	"context"
	"time"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
)

// Service defines the return fraud scoring interface
type Service interface {
	// ScoreBatch scores raw returns relative to each other and returns them
	// ordered by descending risk score
	ScoreBatch(ctx context.Context, batch []RawTransaction) ([]*returns.Transaction, error)
}

// MetricsRecorder receives scoring measurements
type MetricsRecorder interface {
	ObserveScoringRun(batchSize, flagged int, duration time.Duration)
	ObserveRiskScore(score int, isFraud bool)
	ObserveFingerprintMismatch(category string)
}

type noopMetrics struct{}

func (noopMetrics) ObserveScoringRun(int, int, time.Duration) {}
func (noopMetrics) ObserveRiskScore(int, bool) {}
func (noopMetrics) ObserveFingerprintMismatch(string) {}
