package fixtures

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
)

var orderSeq atomic.Int64

// TransactionBuilder builds test Transaction entities
type TransactionBuilder struct {
	t     *testing.T
	order returns.Transaction
}

// NewTransactionBuilder creates a new TransactionBuilder with a scored, unlocked order
func NewTransactionBuilder(t *testing.T) *TransactionBuilder {
	t.Helper()
	n := orderSeq.Add(1)
	now := time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)

	return &TransactionBuilder{
		t: t,
		order: returns.Transaction{
			OrderID:                 fmt.Sprintf("ORD%d", 900000+n),
			CustomerID:              "CUST1001",
			CustomerName:            "Priya Patel",
			City:                    "Mumbai",
			Category:                "Clothing",
			OrderValue:              1499,
			ReturnReason:            "Wrong size",
			ReturnCount:             1,
			ReturnDayGap:            7,
			ReturnDate:              "2024-11-01",
			RiskScore:               20,
			Fingerprint:             returns.Fingerprint{"color": "Black", "size": "M", "tag_attached": true},
			FingerprintMatch:        true,
			PhotoVerificationStatus: returns.PhotoNotRequired,
			Status:                  returns.StatusPendingReview,
			CreatedAt:               now,
			UpdatedAt:               now,
		},
	}
}

// WithOrderID sets the order ID
func (b *TransactionBuilder) WithOrderID(id string) *TransactionBuilder {
	b.order.OrderID = id
	return b
}

// WithCustomer sets the customer ID and name
func (b *TransactionBuilder) WithCustomer(id, name string) *TransactionBuilder {
	b.order.CustomerID = id
	b.order.CustomerName = name
	return b
}

// WithCategory sets category and city
func (b *TransactionBuilder) WithCategory(category, city string) *TransactionBuilder {
	b.order.Category = category
	b.order.City = city
	return b
}

// WithOrderValue sets the order value
func (b *TransactionBuilder) WithOrderValue(v float64) *TransactionBuilder {
	b.order.OrderValue = v
	return b
}

// WithReturns sets return count and day gap
func (b *TransactionBuilder) WithReturns(count, gap int) *TransactionBuilder {
	b.order.ReturnCount = count
	b.order.ReturnDayGap = gap
	return b
}

// WithRiskScore sets the score and the fraud flag derived from it
func (b *TransactionBuilder) WithRiskScore(score int) *TransactionBuilder {
	b.order.RiskScore = score
	b.order.IsFraud = score >= returns.FraudThreshold
	return b
}

// WithReturnDate sets the YYYY-MM-DD return date
func (b *TransactionBuilder) WithReturnDate(date string) *TransactionBuilder {
	b.order.ReturnDate = date
	return b
}

// WithFraudType sets the explanation
func (b *TransactionBuilder) WithFraudType(explanation string) *TransactionBuilder {
	b.order.FraudType = &explanation
	return b
}

// WithPhotoVerificationRequired marks the order as a wardrobing suspect
func (b *TransactionBuilder) WithPhotoVerificationRequired() *TransactionBuilder {
	b.order.PhotoVerificationRequired = true
	b.order.PhotoVerificationStatus = returns.PhotoPendingUpload
	return b
}

// WithStatus sets status and lock flag directly
func (b *TransactionBuilder) WithStatus(status returns.Status, locked bool) *TransactionBuilder {
	b.order.Status = status
	b.order.IsLocked = locked
	return b
}

// Build creates the Transaction entity
func (b *TransactionBuilder) Build() *returns.Transaction {
	b.t.Helper()
	out := b.order
	out.Fingerprint = b.order.Fingerprint.Clone()
	return &out
}
