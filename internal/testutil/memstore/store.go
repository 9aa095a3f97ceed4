// Package memstore is an in-memory order store with the same error contract
// as the Postgres repository. It backs service tests that need real state.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/errors"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
)

type Store struct {
	mu            sync.Mutex
	orders        map[string]*returns.Transaction
	inserted      []string
	verifications map[string]*returns.FieldVerification
}

func New() *Store {
	return &Store{
		orders:        make(map[string]*returns.Transaction),
		verifications: make(map[string]*returns.FieldVerification),
	}
}

func clone(t *returns.Transaction) *returns.Transaction {
	c := *t
	c.Fingerprint = t.Fingerprint.Clone()
	return &c
}

func (s *Store) InsertScored(_ context.Context, txs []*returns.Transaction) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, t := range txs {
		if _, ok := s.orders[t.OrderID]; ok {
			continue
		}
		s.orders[t.OrderID] = clone(t)
		s.inserted = append(s.inserted, t.OrderID)
		added++
	}
	return added, nil
}

func (s *Store) GetOrder(_ context.Context, orderID string) (*returns.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.orders[orderID]
	if !ok {
		return nil, errors.NewNotFoundError("order " + orderID)
	}
	return clone(t), nil
}

// ListOrders returns matches by descending risk score, ties in insertion order.
func (s *Store) ListOrders(_ context.Context, f returns.OrderFilter) ([]*returns.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*returns.Transaction, 0)
	for _, id := range s.inserted {
		if t := s.orders[id]; f.Matches(t) {
			out = append(out, clone(t))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RiskScore > out[j].RiskScore })
	if offset := f.EffectiveOffset(); offset >= len(out) {
		out = out[:0]
	} else {
		out = out[offset:]
	}
	if limit := f.EffectiveLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) ListByCustomer(_ context.Context, customerID string) ([]*returns.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*returns.Transaction
	for _, id := range s.inserted {
		if t := s.orders[id]; t.CustomerID == customerID {
			out = append(out, clone(t))
		}
	}
	return out, nil
}

func (s *Store) UpdateDisposition(_ context.Context, order *returns.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.orders[order.OrderID]
	if !ok {
		return errors.NewNotFoundError("order " + order.OrderID)
	}
	t.Status = order.Status
	t.IsLocked = order.IsLocked
	t.PhotoVerificationStatus = order.PhotoVerificationStatus
	t.UpdatedAt = order.UpdatedAt
	return nil
}

func (s *Store) GetVerification(_ context.Context, orderID string) (*returns.FieldVerification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.verifications[orderID]
	if !ok {
		return nil, errors.NewNotFoundError("verification for order " + orderID)
	}
	c := *v
	return &c, nil
}

func (s *Store) RecordVerification(_ context.Context, v *returns.FieldVerification, order *returns.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.verifications[v.OrderID]; ok {
		return errors.ErrVerificationExists(v.OrderID)
	}
	t, ok := s.orders[order.OrderID]
	if !ok {
		return errors.NewNotFoundError("order " + order.OrderID)
	}
	c := *v
	s.verifications[v.OrderID] = &c
	t.Status = order.Status
	t.IsLocked = order.IsLocked
	t.PhotoVerificationStatus = order.PhotoVerificationStatus
	t.UpdatedAt = order.UpdatedAt
	return nil
}

func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders), nil
}

// VerificationCount reports stored verifications.
func (s *Store) VerificationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.verifications)
}

// Len reports stored orders.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// Totals aggregates every stored order.
func (s *Store) Totals(_ context.Context) (returns.Totals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		t        returns.Totals
		scoreSum int
	)
	for _, id := range s.inserted {
		o := s.orders[id]
		t.Total++
		scoreSum += o.RiskScore
		if o.IsFraud {
			t.Flagged++
			t.FlaggedValue += o.OrderValue
		}
	}
	if t.Total > 0 {
		t.AvgRiskScore = float64(scoreSum) / float64(t.Total)
	}
	return t, nil
}

// GroupTotals aggregates orders per value of dim, groups in first-seen order.
func (s *Store) GroupTotals(_ context.Context, dim returns.Dimension) ([]returns.GroupTotals, error) {
	if !dim.IsValid() {
		return nil, errors.NewValidationError(errors.CodeInvalidPayload, "unsupported dimension "+string(dim))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index := make(map[string]int)
	out := make([]returns.GroupTotals, 0)
	for _, id := range s.inserted {
		o := s.orders[id]
		key := o.Category
		if dim == returns.DimensionCity {
			key = o.City
		}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, returns.GroupTotals{Key: key})
		}
		out[i].Total++
		out[i].Value += o.OrderValue
		if o.IsFraud {
			out[i].Flagged++
		}
	}
	return out, nil
}

// WeeklyTotals aggregates dated orders per Monday-start week, latest weeks
// buckets, oldest first. Unparseable dates are skipped.
func (s *Store) WeeklyTotals(_ context.Context, weeks int) ([]returns.WeekTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buckets := make(map[time.Time]*returns.WeekTotals)
	for _, id := range s.inserted {
		o := s.orders[id]
		day, err := time.Parse(time.DateOnly, o.ReturnDate)
		if err != nil {
			continue
		}
		start := returns.WeekStart(day)
		w, ok := buckets[start]
		if !ok {
			w = &returns.WeekTotals{WeekStart: start}
			buckets[start] = w
		}
		w.Total++
		if o.IsFraud {
			w.Flagged++
			w.FlaggedValue += o.OrderValue
		}
	}

	out := make([]returns.WeekTotals, 0, len(buckets))
	for _, w := range buckets {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart.Before(out[j].WeekStart) })
	if len(out) > weeks {
		out = out[len(out)-weeks:]
	}
	return out, nil
}
