package disposition

import (
	"context"
	"time"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
)

// Service drives orders to their final, locked disposition
type Service interface {
	// ApplyManualStatus sets an analyst-chosen status on an unlocked order
	ApplyManualStatus(ctx context.Context, orderID string, status returns.Status) (*returns.Transaction, error)
	// SubmitVerification stores the single field verification for an order
	SubmitVerification(ctx context.Context, orderID string, in returns.VerificationInput) (*returns.FieldVerification, returns.Status, error)
	// GetVerification returns the verification recorded for an order
	GetVerification(ctx context.Context, orderID string) (*returns.FieldVerification, error)
}

// Repository is the storage the state machine reads and writes.
// Missing rows are reported as not-found AppErrors.
type Repository interface {
	GetOrder(ctx context.Context, orderID string) (*returns.Transaction, error)
	UpdateDisposition(ctx context.Context, order *returns.Transaction) error
	GetVerification(ctx context.Context, orderID string) (*returns.FieldVerification, error)
	// RecordVerification inserts v and saves order's workflow fields atomically
	RecordVerification(ctx context.Context, v *returns.FieldVerification, order *returns.Transaction) error
}

// Locker provides mutual exclusion by key. The returned func releases the lock.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// EventPublisher fans workflow events out to subscribers
type EventPublisher interface {
	Publish(eventType string, payload interface{})
}

// MetricsRecorder receives disposition measurements
type MetricsRecorder interface {
	ObserveDisposition(status string, source string)
	ObserveVerification(result string)
	ObserveLockWait(lock string, wait time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) ObserveDisposition(string, string) {}
func (noopMetrics) ObserveVerification(string) {}
func (noopMetrics) ObserveLockWait(string, time.Duration) {}

type noopPublisher struct{}

func (noopPublisher) Publish(string, interface{}) {}
