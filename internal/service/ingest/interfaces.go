package ingest

import (
	"context"
	"io"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/service/fraud"
)

// Service scores incoming return batches and stores them
type Service interface {
	// Ingest scores raws as one batch and stores the orders not already present
	Ingest(ctx context.Context, raws []fraud.RawTransaction) (*Result, error)
	// IngestCSV parses an uploaded CSV file and ingests its rows
	IngestCSV(ctx context.Context, r io.Reader) (*Result, error)
	// SeedDemo stores the synthetic demo dataset when the store is empty
	SeedDemo(ctx context.Context) (*Result, error)
}

// Store is the persistence ingestion writes to.
type Store interface {
	InsertScored(ctx context.Context, txs []*returns.Transaction) (int, error)
	Count(ctx context.Context) (int, error)
}

// Locker provides mutual exclusion by key. The returned func releases the lock.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// EventPublisher fans scoring events out to subscribers
type EventPublisher interface {
	Publish(eventType string, payload interface{})
}

// MetricsRecorder receives ingestion measurements
type MetricsRecorder interface {
	ObserveIngest(source string, received, added int)
}

// Result reports the outcome of one ingestion run.
type Result struct {
	Message string `json:"message"`
	Total   int    `json:"total"`
	Added   int    `json:"added"`
	Flagged int    `json:"flagged"`
}

type noopMetrics struct{}

func (noopMetrics) ObserveIngest(string, int, int) {}

type noopPublisher struct{}

func (noopPublisher) Publish(string, interface{}) {}
