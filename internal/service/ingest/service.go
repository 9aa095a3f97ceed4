package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/errors"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/service/fraud"
)

const tracerName = "fraudlens/service/ingest"

// RunLockKey serializes scoring runs so batches never interleave their writes.
const RunLockKey = "scoring-run"

// Sources of an ingestion run
const (
	SourceAPI    = "api"
	SourceUpload = "upload"
	SourceSeed   = "seed"
)

// SeedConfig controls the demo dataset.
type SeedConfig struct {
	Enabled bool
	Count   int
	Seed    uint64
}

type service struct {
	scorer    fraud.Service
	store     Store
	locker    Locker
	publisher EventPublisher
	metrics   MetricsRecorder
	seed      SeedConfig
	logger    *zap.Logger
}

// Option customizes the ingestion service
type Option func(*service)

// WithPublisher attaches the realtime event publisher.
func WithPublisher(p EventPublisher) Option {
	return func(s *service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(s *service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithSeed configures the demo dataset used by SeedDemo.
func WithSeed(cfg SeedConfig) Option {
	return func(s *service) {
		s.seed = cfg
	}
}

// NewService creates the ingestion service
func NewService(scorer fraud.Service, store Store, locker Locker, logger *zap.Logger, opts ...Option) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &service{
		scorer:    scorer,
		store:     store,
		locker:    locker,
		publisher: noopPublisher{},
		metrics:   noopMetrics{},
		seed:      SeedConfig{Enabled: true, Count: DefaultSeedCount, Seed: DefaultSeed},
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Ingest scores raws and stores the orders that are not already present.
func (s *service) Ingest(ctx context.Context, raws []fraud.RawTransaction) (*Result, error) {
	return s.run(ctx, SourceAPI, raws)
}

// IngestCSV parses r and ingests its rows.
func (s *service) IngestCSV(ctx context.Context, r io.Reader) (*Result, error) {
	raws, err := ParseCSV(r)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, SourceUpload, raws)
}

// SeedDemo generates and stores the demo dataset when the store holds no orders.
// It returns a nil result when seeding is disabled or not needed.
func (s *service) SeedDemo(ctx context.Context) (*Result, error) {
	if !s.seed.Enabled || s.seed.Count <= 0 {
		return nil, nil
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "ingest.SeedDemo")
	defer span.End()

	unlock, err := s.lockRun(ctx)
	if err != nil {
		fail(span, err)
		return nil, err
	}
	defer unlock()

	n, err := s.store.Count(ctx)
	if err != nil {
		err = errors.NewInternalError("failed to count stored orders").WithCause(err)
		fail(span, err)
		return nil, err
	}
	if n > 0 {
		s.logger.Debug("store already populated, skipping demo seed", zap.Int("orders", n))
		return nil, nil
	}

	res, err := s.scoreAndStore(ctx, SourceSeed, GenerateDemo(s.seed.Count, s.seed.Seed))
	if err != nil {
		fail(span, err)
		return nil, err
	}
	s.logger.Info("seeded demo transactions", zap.Int("added", res.Added))
	return res, nil
}

func (s *service) run(ctx context.Context, source string, raws []fraud.RawTransaction) (*Result, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ingest.Ingest",
		trace.WithAttributes(attribute.String("ingest.source", source), attribute.Int("batch.size", len(raws))))
	defer span.End()

	unlock, err := s.lockRun(ctx)
	if err != nil {
		fail(span, err)
		return nil, err
	}
	defer unlock()

	res, err := s.scoreAndStore(ctx, source, raws)
	if err != nil {
		fail(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("batch.added", res.Added))
	return res, nil
}

func (s *service) lockRun(ctx context.Context) (func(), error) {
	unlock, err := s.locker.Lock(ctx, RunLockKey)
	if err != nil {
		return nil, errors.NewInternalError("failed to acquire scoring run lock").WithCause(err)
	}
	return unlock, nil
}

// scoreAndStore must run under the run lock.
func (s *service) scoreAndStore(ctx context.Context, source string, raws []fraud.RawTransaction) (*Result, error) {
	start := time.Now()

	scored, err := s.scorer.ScoreBatch(ctx, raws)
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeValidation) {
			return nil, err
		}
		return nil, errors.NewInternalError("failed to score batch").WithCause(err)
	}

	added, err := s.store.InsertScored(ctx, scored)
	if err != nil {
		return nil, errors.NewInternalError("failed to store scored batch").WithCause(err)
	}

	flagged := 0
	for _, t := range scored {
		if t.IsFraud {
			flagged++
		}
	}

	res := &Result{
		Message: fmt.Sprintf("Uploaded %d new transactions", added),
		Total:   len(scored),
		Added:   added,
		Flagged: flagged,
	}

	s.metrics.ObserveIngest(source, res.Total, res.Added)
	s.publisher.Publish(returns.EventScoringCompleted, returns.ScoringCompletedEvent{
		Total:   res.Total,
		Added:   res.Added,
		Flagged: res.Flagged,
	})
	s.logger.Info("ingested return batch",
		zap.String("source", source),
		zap.Int("total", res.Total),
		zap.Int("added", res.Added),
		zap.Int("flagged", res.Flagged),
		zap.Duration("duration", time.Since(start)),
	)
	return res, nil
}
