package returns

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/errors"
)

// ItemCondition is the condition reported by the field agent.
type ItemCondition string

const (
	ConditionGood    ItemCondition = "Good"
	ConditionLikeNew ItemCondition = "Like New"
	ConditionUsed    ItemCondition = "Used"
	ConditionDamaged ItemCondition = "Damaged"
	ConditionFake    ItemCondition = "Fake"
)

func (c ItemCondition) IsValid() bool {
	switch c {
	case ConditionGood, ConditionLikeNew, ConditionUsed, ConditionDamaged, ConditionFake:
		return true
	default:
		return false
	}
}

// VerificationResult is the derived outcome of a field verification.
type VerificationResult string

const (
	VerificationPassed VerificationResult = "Passed"
	VerificationFailed VerificationResult = "Failed"
)

// VerificationInput is what a field agent submits after inspecting a return.
type VerificationInput struct {
	AgentName        string        `json:"agent_name"`
	ItemMatchesOrder bool          `json:"item_matches_order"`
	TagAttached      bool          `json:"tag_attached"`
	PackagingIntact  bool          `json:"packaging_intact"`
	ItemCondition    ItemCondition `json:"item_condition"`
	AgentNotes       string        `json:"agent_notes"`
	PhotoURL         string        `json:"photo_url"`
}

// FieldVerification is the immutable record of an agent inspection. One per order.
type FieldVerification struct {
	ID                 uuid.UUID          `json:"id"`
	OrderID            string             `json:"order_id"`
	AgentName          string             `json:"agent_name"`
	ItemMatchesOrder   bool               `json:"item_matches_order"`
	TagAttached        bool               `json:"tag_attached"`
	PackagingIntact    bool               `json:"packaging_intact"`
	ItemCondition      ItemCondition      `json:"item_condition"`
	AgentNotes         string             `json:"agent_notes"`
	PhotoURL           string             `json:"photo_url"`
	VerificationResult VerificationResult `json:"verification_result"`
	VerifiedAt         time.Time          `json:"verified_at"`
}

// EvaluateVerification derives the verification result for an order.
func EvaluateVerification(photoRequired bool, in VerificationInput) VerificationResult {
	if !in.ItemMatchesOrder {
		return VerificationFailed
	}
	if photoRequired && (!in.TagAttached || !in.PackagingIntact) {
		return VerificationFailed
	}
	if in.ItemCondition == ConditionFake || in.ItemCondition == ConditionDamaged {
		return VerificationFailed
	}
	return VerificationPassed
}

// NewFieldVerification validates the input and builds the verification record for order.
func NewFieldVerification(order *Transaction, in VerificationInput) (*FieldVerification, error) {
	agent := strings.TrimSpace(in.AgentName)
	if agent == "" {
		return nil, errors.NewValidationError(errors.CodeInvalidPayload, "agent name is required")
	}
	if !in.ItemCondition.IsValid() {
		return nil, errors.NewValidationError(errors.CodeInvalidPayload,
			fmt.Sprintf("unknown item condition %q", in.ItemCondition))
	}

	return &FieldVerification{
		ID:                 uuid.New(),
		OrderID:            order.OrderID,
		AgentName:          agent,
		ItemMatchesOrder:   in.ItemMatchesOrder,
		TagAttached:        in.TagAttached,
		PackagingIntact:    in.PackagingIntact,
		ItemCondition:      in.ItemCondition,
		AgentNotes:         in.AgentNotes,
		PhotoURL:           in.PhotoURL,
		VerificationResult: EvaluateVerification(order.PhotoVerificationRequired, in),
		VerifiedAt:         clock.Now(),
	}, nil
}
