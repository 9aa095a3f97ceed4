package fraud

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/errors"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
)

const tracerName = "fraudlens/service/fraud"

// service implements the Service interface
type service struct {
	cfg      Config
	validate *validator.Validate
	logger   *zap.Logger
	metrics  MetricsRecorder
	newRand  func() RandSource
	now      func() time.Time
}

// Option customizes the scoring service
type Option func(*service)

// WithRandSource replaces the randomness used for return rescans.
func WithRandSource(factory func() RandSource) Option {
	return func(s *service) {
		s.newRand = factory
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

// NewService creates a new fraud scoring service
func NewService(cfg Config, logger *zap.Logger, opts ...Option) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &service{
		cfg:      cfg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
		metrics:  noopMetrics{},
		newRand: func() RandSource {
			return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScoreBatch runs the full pipeline over batch
func (s *service) ScoreBatch(ctx context.Context, batch []RawTransaction) ([]*returns.Transaction, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "fraud.ScoreBatch")
	defer span.End()
	span.SetAttributes(attribute.Int("batch.size", len(batch)))

	start := s.now()
	if err := s.validateBatch(batch); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid batch")
		return nil, err
	}

	mismatches := make([]bool, len(batch))
	fingerprints := make([]returns.Fingerprint, len(batch))
	features := make([]FeatureVector, len(batch))
	for i, raw := range batch {
		mismatches[i] = IsReasonInvalid(raw.Category, raw.ReturnReason)
		fingerprints[i] = GenerateFingerprint(raw.Category, raw.OrderID)
		features[i] = ExtractFeatures(raw, mismatches[i])
	}

	base, err := NewAnomalyScorer(s.cfg.scorerConfig()).Score(features)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scoring failed")
		return nil, err
	}

	sim := NewFingerprintSimulator(s.newRand(), s.cfg.FingerprintMismatchProbability)
	now := s.now().UTC()
	scored := make([]*returns.Transaction, len(batch))
	flagged := 0

	for i, raw := range batch {
		preliminary := ApplyBoosts(base[i], mismatches[i], false)
		returned, mismatch, reason := sim.SimulateReturnFingerprint(fingerprints[i], preliminary >= returns.FraudThreshold)
		outcome := FingerprintOutcome{Returned: returned, Mismatch: mismatch, Reason: reason}

		assessment := Assess(raw, base[i], mismatches[i], outcome)
		scored[i] = buildTransaction(raw, fingerprints[i], mismatches[i], outcome, assessment, now)

		if assessment.IsFraud {
			flagged++
		}
		if mismatch {
			s.metrics.ObserveFingerprintMismatch(raw.Category)
		}
		s.metrics.ObserveRiskScore(assessment.Score, assessment.IsFraud)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RiskScore > scored[j].RiskScore
	})

	elapsed := s.now().Sub(start)
	s.metrics.ObserveScoringRun(len(batch), flagged, elapsed)
	span.SetAttributes(attribute.Int("batch.flagged", flagged))
	s.logger.Info("scored return batch",
		zap.Int("batch_size", len(batch)),
		zap.Int("flagged", flagged),
		zap.Duration("duration", elapsed),
	)

	return scored, nil
}

func (s *service) validateBatch(batch []RawTransaction) error {
	if len(batch) == 0 {
		return errors.NewValidationError(errors.CodeInvalidBatch, "batch contains no transactions")
	}

	seen := make(map[string]int, len(batch))
	for i, raw := range batch {
		if err := s.validate.Struct(raw); err != nil {
			return errors.NewValidationError(errors.CodeInvalidBatch,
				fmt.Sprintf("transaction %d (%s) is invalid", i, raw.OrderID)).
				WithDetails(map[string]interface{}{"index": i, "fields": fieldErrors(err)}).
				WithCause(err)
		}
		if math.IsNaN(raw.OrderValue) || math.IsInf(raw.OrderValue, 0) {
			return errors.NewValidationError(errors.CodeInvalidBatch,
				fmt.Sprintf("transaction %d (%s) has a non-finite order value", i, raw.OrderID)).
				WithDetails(map[string]interface{}{"index": i, "fields": []string{"order_value"}})
		}
		if prev, dup := seen[raw.OrderID]; dup {
			return errors.NewValidationError(errors.CodeInvalidBatch,
				fmt.Sprintf("order %s appears twice in the batch", raw.OrderID)).
				WithDetails(map[string]interface{}{"index": i, "first_index": prev})
		}
		seen[raw.OrderID] = i
	}
	return nil
}

func fieldErrors(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s:%s", fe.Field(), fe.Tag()))
	}
	return fields
}

func buildTransaction(raw RawTransaction, fp returns.Fingerprint, reasonMismatch bool, outcome FingerprintOutcome, a Assessment, now time.Time) *returns.Transaction {
	t := &returns.Transaction{
		OrderID:                   raw.OrderID,
		CustomerID:                raw.CustomerID,
		CustomerName:              raw.CustomerName,
		City:                      raw.City,
		Category:                  raw.Category,
		OrderValue:                raw.OrderValue,
		ReturnReason:              raw.ReturnReason,
		ReturnCount:               raw.ReturnCount,
		ReturnDayGap:              raw.ReturnDayGap,
		ReturnDate:                raw.Date,
		RiskScore:                 a.Score,
		IsFraud:                   a.IsFraud,
		ReasonCategoryMismatch:    reasonMismatch,
		Fingerprint:               fp,
		FingerprintMatch:          !outcome.Mismatch,
		PhotoVerificationRequired: a.PhotoRequired,
		PhotoVerificationStatus:   a.PhotoStatus,
		Status:                    returns.StatusPendingReview,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}
	if a.Explanation != "" {
		explanation := a.Explanation
		t.FraudType = &explanation
	}
	if outcome.Mismatch {
		reason := outcome.Reason
		t.FingerprintMismatchReason = &reason
	}
	return t
}
