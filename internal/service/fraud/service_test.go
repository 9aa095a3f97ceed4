package fraud_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/errors"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/service/fraud"
)

type recordingMetrics struct {
	mu         sync.Mutex
	runs       int
	lastSize   int
	lastFlag   int
	scores     []int
	mismatches int
}

func (m *recordingMetrics) ObserveScoringRun(size, flagged int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs++
	m.lastSize, m.lastFlag = size, flagged
}

func (m *recordingMetrics) ObserveRiskScore(score int, _ bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = append(m.scores, score)
}

func (m *recordingMetrics) ObserveFingerprintMismatch(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mismatches++
}

// steadyRand never draws under the corruption probability.
type steadyRand struct{}

func (steadyRand) Float64() float64 { return 0.99 }
func (steadyRand) IntN(int) int { return 0 }

func seededRand(seed uint64) func() fraud.RandSource {
	return func() fraud.RandSource {
		return rand.New(rand.NewPCG(seed, seed))
	}
}

func newTestService(t *testing.T, opts ...fraud.Option) fraud.Service {
	t.Helper()
	opts = append([]fraud.Option{fraud.WithRandSource(seededRand(1))}, opts...)
	return fraud.NewService(fraud.DefaultConfig(), zaptest.NewLogger(t), opts...)
}

func syntheticBatch(n int, seed uint64) []fraud.RawTransaction {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	categories := []string{"Electronics", "Clothing", "Footwear", "Home Decor", "Accessories", "Sports"}
	reasons := []string{"Defective product", "Wrong size", "Changed mind", "Not as described", "Technical malfunction"}

	batch := make([]fraud.RawTransaction, n)
	for i := range batch {
		batch[i] = fraud.RawTransaction{
			OrderID:      fmt.Sprintf("ORD%d", 100000+i),
			CustomerID:   fmt.Sprintf("CUST%d", 1000+rng.IntN(20)),
			CustomerName: "Test Customer",
			City:         "Pune",
			Category:     categories[rng.IntN(len(categories))],
			OrderValue:   299 + rng.Float64()*15700,
			ReturnReason: reasons[rng.IntN(len(reasons))],
			ReturnCount:  1 + rng.IntN(12),
			ReturnDayGap: rng.IntN(31),
		}
	}
	return batch
}

func TestScoreBatch_TwoRecordScenario(t *testing.T) {
	svc := newTestService(t)
	batch := []fraud.RawTransaction{
		{OrderID: "A", CustomerID: "C1", Category: "Electronics", ReturnReason: "Defective product", OrderValue: 1000, ReturnCount: 1, ReturnDayGap: 10},
		{OrderID: "B", CustomerID: "C2", Category: "Electronics", ReturnReason: "Defective product", OrderValue: 12000, ReturnCount: 9, ReturnDayGap: 0},
	}

	scored, err := svc.ScoreBatch(context.Background(), batch)

	require.NoError(t, err)
	require.Len(t, scored, 2)
	b, a := scored[0], scored[1]
	assert.Equal(t, "B", b.OrderID)
	assert.Equal(t, "A", a.OrderID)
	assert.Greater(t, b.RiskScore, a.RiskScore)
	assert.True(t, b.IsFraud)

	assert.False(t, a.IsFraud)
	assert.Nil(t, a.FraudType)
	assert.False(t, a.PhotoVerificationRequired)
	assert.Equal(t, returns.PhotoNotRequired, a.PhotoVerificationStatus)

	require.NotNil(t, b.FraudType)
	assert.Contains(t, *b.FraudType, "Serial returner — 9 returns on record")
	assert.Contains(t, *b.FraudType, "Wardrobing — ₹12,000 item returned in 0 day(s)")
	assert.True(t, b.PhotoVerificationRequired)
	assert.Equal(t, returns.PhotoPendingUpload, b.PhotoVerificationStatus)
}

func TestScoreBatch_Properties(t *testing.T) {
	metrics := &recordingMetrics{}
	svc := newTestService(t, fraud.WithMetrics(metrics))
	batch := syntheticBatch(200, 42)

	scored, err := svc.ScoreBatch(context.Background(), batch)

	require.NoError(t, err)
	require.Len(t, scored, len(batch))

	byID := make(map[string]fraud.RawTransaction, len(batch))
	for _, raw := range batch {
		byID[raw.OrderID] = raw
	}

	flagged := 0
	for i, tx := range scored {
		raw := byID[tx.OrderID]

		assert.GreaterOrEqual(t, tx.RiskScore, 1)
		assert.LessOrEqual(t, tx.RiskScore, 99)
		assert.Equal(t, tx.RiskScore >= 70, tx.IsFraud, tx.OrderID)
		assert.Equal(t, tx.IsFraud, tx.FraudType != nil, tx.OrderID)
		assert.Equal(t, returns.IsWardrobing(raw.OrderValue, raw.ReturnDayGap), tx.PhotoVerificationRequired, tx.OrderID)
		assert.Equal(t, fraud.IsReasonInvalid(raw.Category, raw.ReturnReason), tx.ReasonCategoryMismatch, tx.OrderID)
		assert.Equal(t, fraud.GenerateFingerprint(raw.Category, raw.OrderID), tx.Fingerprint, tx.OrderID)
		assert.Equal(t, !tx.FingerprintMatch, tx.FingerprintMismatchReason != nil, tx.OrderID)
		assert.Equal(t, returns.StatusPendingReview, tx.Status)
		assert.False(t, tx.IsLocked)

		if i > 0 {
			assert.GreaterOrEqual(t, scored[i-1].RiskScore, tx.RiskScore)
		}
		if tx.IsFraud {
			flagged++
		}
	}

	assert.Equal(t, 1, metrics.runs)
	assert.Equal(t, 200, metrics.lastSize)
	assert.Equal(t, flagged, metrics.lastFlag)
	assert.Len(t, metrics.scores, 200)
}

func TestScoreBatch_BaseScoresFollowTheForest(t *testing.T) {
	batch := syntheticBatch(200, 42)
	pureCfg := fraud.DefaultConfig()
	pureCfg.SeverityWeight = 0

	withSeverity, err := newTestService(t).ScoreBatch(context.Background(), batch)
	require.NoError(t, err)
	pure, err := fraud.NewService(pureCfg, zaptest.NewLogger(t), fraud.WithRandSource(seededRand(1))).
		ScoreBatch(context.Background(), batch)
	require.NoError(t, err)

	scores := make(map[string]int, len(pure))
	for _, tx := range pure {
		scores[tx.OrderID] = tx.RiskScore
	}
	require.Len(t, withSeverity, len(pure))
	for _, tx := range withSeverity {
		assert.Equal(t, scores[tx.OrderID], tx.RiskScore, tx.OrderID)
	}
}

func TestScoreBatch_StableOrderOnTies(t *testing.T) {
	svc := newTestService(t)
	batch := make([]fraud.RawTransaction, 5)
	for i := range batch {
		batch[i] = fraud.RawTransaction{
			OrderID:      fmt.Sprintf("SAME%d", i),
			CustomerID:   "C",
			Category:     "Sports",
			ReturnReason: "Changed mind",
			OrderValue:   1500,
			ReturnCount:  2,
			ReturnDayGap: 5,
		}
	}

	scored, err := svc.ScoreBatch(context.Background(), batch)

	require.NoError(t, err)
	for i, tx := range scored {
		assert.Equal(t, fmt.Sprintf("SAME%d", i), tx.OrderID)
		assert.Equal(t, 50, tx.RiskScore)
	}
}

func TestScoreBatch_SingleRecordIsNeutral(t *testing.T) {
	svc := newTestService(t)

	scored, err := svc.ScoreBatch(context.Background(), []fraud.RawTransaction{
		{OrderID: "ONE", CustomerID: "C", Category: "Clothing", ReturnReason: "Wrong size", OrderValue: 999, ReturnCount: 1, ReturnDayGap: 3},
	})

	require.NoError(t, err)
	require.Len(t, scored, 1)
	assert.Equal(t, 50, scored[0].RiskScore)
	assert.False(t, scored[0].IsFraud)
}

func TestScoreBatch_ReasonMismatchBoost(t *testing.T) {
	svc := newTestService(t, fraud.WithRandSource(func() fraud.RandSource { return steadyRand{} }))

	// A lone record scores neutral, so the boost is observable directly.
	scored, err := svc.ScoreBatch(context.Background(), []fraud.RawTransaction{
		{OrderID: "TV1", CustomerID: "C", Category: "Electronics", ReturnReason: "Wrong size", OrderValue: 999, ReturnCount: 1, ReturnDayGap: 3},
	})

	require.NoError(t, err)
	assert.True(t, scored[0].ReasonCategoryMismatch)
	assert.Equal(t, 75, scored[0].RiskScore)
	assert.True(t, scored[0].IsFraud)
	require.NotNil(t, scored[0].FraudType)
	assert.Contains(t, *scored[0].FraudType, `Reason mismatch — "Wrong size" is not a valid return reason for Electronics`)
}

func TestScoreBatch_DeterministicWithSameRandomness(t *testing.T) {
	batch := syntheticBatch(60, 7)

	first, err := newTestService(t).ScoreBatch(context.Background(), batch)
	require.NoError(t, err)
	second, err := newTestService(t).ScoreBatch(context.Background(), batch)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].OrderID, second[i].OrderID)
		assert.Equal(t, first[i].RiskScore, second[i].RiskScore)
		assert.Equal(t, first[i].FingerprintMatch, second[i].FingerprintMatch)
	}
}

func TestScoreBatch_ValidationAbortsWholeBatch(t *testing.T) {
	valid := fraud.RawTransaction{OrderID: "OK1", CustomerID: "C", Category: "Sports", OrderValue: 100, ReturnCount: 1, ReturnDayGap: 1}

	tests := []struct {
		name  string
		batch []fraud.RawTransaction
	}{
		{"empty batch", nil},
		{"missing order id", []fraud.RawTransaction{valid, {CustomerID: "C", Category: "Sports"}}},
		{"missing category", []fraud.RawTransaction{valid, {OrderID: "X", CustomerID: "C"}}},
		{"negative value", []fraud.RawTransaction{valid, {OrderID: "X", CustomerID: "C", Category: "Sports", OrderValue: -1}}},
		{"negative return count", []fraud.RawTransaction{valid, {OrderID: "X", CustomerID: "C", Category: "Sports", ReturnCount: -2}}},
		{"negative day gap", []fraud.RawTransaction{valid, {OrderID: "X", CustomerID: "C", Category: "Sports", ReturnDayGap: -1}}},
		{"bad date", []fraud.RawTransaction{valid, {OrderID: "X", CustomerID: "C", Category: "Sports", Date: "01/11/2024"}}},
		{"duplicate order id", []fraud.RawTransaction{valid, valid}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scored, err := newTestService(t).ScoreBatch(context.Background(), tt.batch)

			require.Error(t, err)
			assert.Nil(t, scored)
			assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
			assert.True(t, errors.HasCode(err, errors.CodeInvalidBatch))
		})
	}
}
