package disposition

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/errors"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
)

const tracerName = "fraudlens/service/disposition"

// Sources of a status change
const (
	SourceManual       = "manual"
	SourceVerification = "verification"
)

// OrderLockKey is the lock name guarding one order's read-check-write sequence.
func OrderLockKey(orderID string) string {
	return "order:" + orderID
}

type service struct {
	repo      Repository
	locker    Locker
	publisher EventPublisher
	metrics   MetricsRecorder
	logger    *zap.Logger
}

// NewService creates the disposition state machine service.
// publisher and metrics may be nil.
func NewService(repo Repository, locker Locker, publisher EventPublisher, metrics MetricsRecorder, logger *zap.Logger) Service {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:      repo,
		locker:    locker,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

func (s *service) lockOrder(ctx context.Context, orderID string) (func(), error) {
	start := time.Now()
	unlock, err := s.locker.Lock(ctx, OrderLockKey(orderID))
	if err != nil {
		return nil, errors.NewInternalError("failed to lock order").WithCause(err)
	}
	s.metrics.ObserveLockWait("order", time.Since(start))
	return unlock, nil
}

func (s *service) loadOrder(ctx context.Context, orderID string) (*returns.Transaction, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeNotFound) {
			return nil, err
		}
		return nil, errors.NewInternalError("failed to load order").WithCause(err)
	}
	return order, nil
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// ApplyManualStatus sets status on the order; Escalated and Cleared lock it.
func (s *service) ApplyManualStatus(ctx context.Context, orderID string, status returns.Status) (*returns.Transaction, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "disposition.ApplyManualStatus",
		trace.WithAttributes(attribute.String("order.id", orderID), attribute.String("order.status", string(status))))
	defer span.End()

	if !status.IsValid() {
		err := errors.NewValidationError(errors.CodeInvalidStatus, "unknown status "+string(status))
		fail(span, err)
		return nil, err
	}

	unlock, err := s.lockOrder(ctx, orderID)
	if err != nil {
		fail(span, err)
		return nil, err
	}
	defer unlock()

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		fail(span, err)
		return nil, err
	}

	previous := order.Status
	if err := order.ApplyManualStatus(status); err != nil {
		s.logger.Info("manual status change rejected",
			zap.String("order_id", orderID),
			zap.String("requested", string(status)),
			zap.String("current", string(order.Status)),
			zap.Error(err),
		)
		fail(span, err)
		return nil, err
	}

	if err := s.repo.UpdateDisposition(ctx, order); err != nil {
		appErr := errors.NewInternalError("failed to save order status").WithCause(err)
		fail(span, appErr)
		return nil, appErr
	}

	s.metrics.ObserveDisposition(string(order.Status), SourceManual)
	s.publisher.Publish(returns.EventOrderStatusChanged, returns.StatusChangedEvent{
		OrderID:        order.OrderID,
		PreviousStatus: previous,
		Status:         order.Status,
		IsLocked:       order.IsLocked,
		Source:         SourceManual,
	})
	s.logger.Info("order status changed",
		zap.String("order_id", orderID),
		zap.String("from", string(previous)),
		zap.String("to", string(order.Status)),
		zap.Bool("locked", order.IsLocked),
	)
	return order, nil
}

// SubmitVerification records the agent's inspection and, for unlocked orders,
// finalizes the disposition from its result.
func (s *service) SubmitVerification(ctx context.Context, orderID string, in returns.VerificationInput) (*returns.FieldVerification, returns.Status, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "disposition.SubmitVerification",
		trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	unlock, err := s.lockOrder(ctx, orderID)
	if err != nil {
		fail(span, err)
		return nil, "", err
	}
	defer unlock()

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		fail(span, err)
		return nil, "", err
	}

	if _, err := s.repo.GetVerification(ctx, orderID); err == nil {
		conflict := errors.ErrVerificationExists(orderID)
		fail(span, conflict)
		return nil, "", conflict
	} else if !errors.IsType(err, errors.ErrorTypeNotFound) {
		appErr := errors.NewInternalError("failed to check existing verification").WithCause(err)
		fail(span, appErr)
		return nil, "", appErr
	}

	verification, err := returns.NewFieldVerification(order, in)
	if err != nil {
		fail(span, err)
		return nil, "", err
	}

	previous, wasLocked := order.Status, order.IsLocked
	status := order.ApplyVerification(verification.VerificationResult)

	if err := s.repo.RecordVerification(ctx, verification, order); err != nil {
		if errors.IsType(err, errors.ErrorTypeConflict) {
			fail(span, err)
			return nil, "", err
		}
		appErr := errors.NewInternalError("failed to record verification").WithCause(err)
		fail(span, appErr)
		return nil, "", appErr
	}

	span.SetAttributes(attribute.String("verification.result", string(verification.VerificationResult)))
	s.metrics.ObserveVerification(string(verification.VerificationResult))
	s.publisher.Publish(returns.EventOrderVerified, returns.VerifiedEvent{
		OrderID: orderID,
		Result:  verification.VerificationResult,
		Status:  status,
		Agent:   verification.AgentName,
	})
	if !wasLocked {
		s.metrics.ObserveDisposition(string(status), SourceVerification)
		s.publisher.Publish(returns.EventOrderStatusChanged, returns.StatusChangedEvent{
			OrderID:        orderID,
			PreviousStatus: previous,
			Status:         status,
			IsLocked:       true,
			Source:         SourceVerification,
		})
	}

	s.logger.Info("field verification recorded",
		zap.String("order_id", orderID),
		zap.String("agent", verification.AgentName),
		zap.String("result", string(verification.VerificationResult)),
		zap.String("status", string(status)),
		zap.Bool("was_locked", wasLocked),
	)
	return verification, status, nil
}

// GetVerification reads the stored verification. Unknown orders and orders
// not yet verified are both not-found errors.
func (s *service) GetVerification(ctx context.Context, orderID string) (*returns.FieldVerification, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "disposition.GetVerification",
		trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	if _, err := s.loadOrder(ctx, orderID); err != nil {
		fail(span, err)
		return nil, err
	}

	v, err := s.repo.GetVerification(ctx, orderID)
	if err != nil {
		if !errors.IsType(err, errors.ErrorTypeNotFound) {
			err = errors.NewInternalError("failed to load verification").WithCause(err)
		}
		fail(span, err)
		return nil, err
	}
	return v, nil
}
