package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
)

// TransactionRepository mock
type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) InsertScored(ctx context.Context, txs []*returns.Transaction) (int, error) {
	args := m.Called(ctx, txs)
	return args.Int(0), args.Error(1)
}

func (m *TransactionRepository) GetOrder(ctx context.Context, orderID string) (*returns.Transaction, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returns.Transaction), args.Error(1)
}

func (m *TransactionRepository) ListOrders(ctx context.Context, filter returns.OrderFilter) ([]*returns.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*returns.Transaction), args.Error(1)
}

func (m *TransactionRepository) ListByCustomer(ctx context.Context, customerID string) ([]*returns.Transaction, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*returns.Transaction), args.Error(1)
}

func (m *TransactionRepository) UpdateDisposition(ctx context.Context, order *returns.Transaction) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *TransactionRepository) GetVerification(ctx context.Context, orderID string) (*returns.FieldVerification, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returns.FieldVerification), args.Error(1)
}

func (m *TransactionRepository) RecordVerification(ctx context.Context, v *returns.FieldVerification, order *returns.Transaction) error {
	args := m.Called(ctx, v, order)
	return args.Error(0)
}

func (m *TransactionRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *TransactionRepository) Totals(ctx context.Context) (returns.Totals, error) {
	args := m.Called(ctx)
	return args.Get(0).(returns.Totals), args.Error(1)
}

func (m *TransactionRepository) GroupTotals(ctx context.Context, dim returns.Dimension) ([]returns.GroupTotals, error) {
	args := m.Called(ctx, dim)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]returns.GroupTotals), args.Error(1)
}

func (m *TransactionRepository) WeeklyTotals(ctx context.Context, weeks int) ([]returns.WeekTotals, error) {
	args := m.Called(ctx, weeks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]returns.WeekTotals), args.Error(1)
}

// Locker mock
type Locker struct {
	mock.Mock
}

func (m *Locker) Lock(ctx context.Context, key string) (func(), error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

// EventPublisher mock
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) Publish(eventType string, payload interface{}) {
	m.Called(eventType, payload)
}
