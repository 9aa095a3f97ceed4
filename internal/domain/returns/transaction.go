package returns

import (
	"fmt"
	"time"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/errors"
)

// FraudThreshold is the minimum final risk score that flags a return as fraudulent.
const FraudThreshold = 70

// WardrobingMinValue and WardrobingMaxGap bound the high-value quick return pattern.
const (
	WardrobingMinValue = 5000.0
	WardrobingMaxGap   = 1
)

// Status is the review state of a return order.
type Status string

const (
	StatusPendingReview Status = "Pending Review"
	StatusFlagged       Status = "Flagged"
	StatusEscalated     Status = "Escalated"
	StatusCleared       Status = "Cleared"
)

// IsValid reports whether s is a known review state.
func (s Status) IsValid() bool {
	switch s {
	case StatusPendingReview, StatusFlagged, StatusEscalated, StatusCleared:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether reaching s locks the order.
func (s Status) IsTerminal() bool {
	return s == StatusEscalated || s == StatusCleared
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus converts user input into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", errors.NewValidationError(errors.CodeInvalidStatus,
			fmt.Sprintf("unknown status %q", raw))
	}
	return s, nil
}

// Photo verification states.
const (
	PhotoNotRequired   = "Not Required"
	PhotoPendingUpload = "Pending Upload"
	photoVerifiedBy    = "Verified by agent — "
)

// PhotoVerifiedStatus is the photo verification label once an agent has reported.
func PhotoVerifiedStatus(result VerificationResult) string {
	return photoVerifiedBy + string(result)
}

// Fingerprint is the category-specific attribute snapshot captured for an order.
// Values are bool, int or string.
type Fingerprint map[string]any

// Clone returns a shallow copy; fingerprint values are scalars.
func (f Fingerprint) Clone() Fingerprint {
	if f == nil {
		return nil
	}
	out := make(Fingerprint, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Transaction is a scored return event and its review workflow state.
type Transaction struct {
	OrderID      string  `json:"order_id"`
	CustomerID   string  `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	City         string  `json:"city"`
	Category     string  `json:"category"`
	OrderValue   float64 `json:"order_value"`
	ReturnReason string  `json:"return_reason"`
	ReturnCount  int     `json:"return_count"`
	ReturnDayGap int     `json:"return_day_gap"`
	ReturnDate   string  `json:"date,omitempty"`

	// Scoring output
	RiskScore                 int         `json:"risk_score"`
	IsFraud                   bool        `json:"is_fraud"`
	FraudType                 *string     `json:"fraud_type"`
	ReasonCategoryMismatch    bool        `json:"reason_category_mismatch"`
	Fingerprint               Fingerprint `json:"fingerprint"`
	FingerprintMatch          bool        `json:"fingerprint_match"`
	FingerprintMismatchReason *string     `json:"fingerprint_mismatch_reason"`
	PhotoVerificationRequired bool        `json:"photo_verification_required"`
	PhotoVerificationStatus   string      `json:"photo_verification_status"`

	// Workflow
	Status   Status `json:"status"`
	IsLocked bool   `json:"is_locked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsWardrobing reports the high-value quick return pattern.
func IsWardrobing(orderValue float64, returnDayGap int) bool {
	return orderValue > WardrobingMinValue && returnDayGap <= WardrobingMaxGap
}

// ApplyManualStatus moves the order to status on an analyst's request.
// Terminal states lock the order in the same step.
func (t *Transaction) ApplyManualStatus(status Status) error {
	if t.IsLocked {
		return errors.ErrOrderLocked(t.OrderID)
	}
	if !status.IsValid() {
		return errors.NewValidationError(errors.CodeInvalidStatus,
			fmt.Sprintf("unknown status %q", status))
	}

	t.Status = status
	if status.IsTerminal() {
		t.IsLocked = true
	}
	t.UpdatedAt = clock.Now()
	return nil
}

// ApplyVerification records a field verification outcome on the order.
// A locked order keeps its status; the photo verification label is always updated.
func (t *Transaction) ApplyVerification(result VerificationResult) Status {
	if !t.IsLocked {
		if result == VerificationFailed {
			t.Status = StatusEscalated
		} else {
			t.Status = StatusCleared
		}
		t.IsLocked = true
	}
	t.PhotoVerificationStatus = PhotoVerifiedStatus(result)
	t.UpdatedAt = clock.Now()
	return t.Status
}
