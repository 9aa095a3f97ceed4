package returns_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/errors"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/testutil/fixtures"
)

func passingInput() returns.VerificationInput {
	return returns.VerificationInput{
		AgentName:        "Ravi Kumar",
		ItemMatchesOrder: true,
		TagAttached:      true,
		PackagingIntact:  true,
		ItemCondition:    returns.ConditionGood,
	}
}

func TestEvaluateVerification(t *testing.T) {
	tests := []struct {
		name          string
		photoRequired bool
		mutate        func(in *returns.VerificationInput)
		want          returns.VerificationResult
	}{
		{"all checks pass", false, func(in *returns.VerificationInput) {}, returns.VerificationPassed},
		{"all checks pass with photo required", true, func(in *returns.VerificationInput) {}, returns.VerificationPassed},
		{"item mismatch", false, func(in *returns.VerificationInput) { in.ItemMatchesOrder = false }, returns.VerificationFailed},
		{"missing tag ignored without photo requirement", false, func(in *returns.VerificationInput) { in.TagAttached = false }, returns.VerificationPassed},
		{"broken packaging ignored without photo requirement", false, func(in *returns.VerificationInput) { in.PackagingIntact = false }, returns.VerificationPassed},
		{"missing tag with photo requirement", true, func(in *returns.VerificationInput) { in.TagAttached = false }, returns.VerificationFailed},
		{"broken packaging with photo requirement", true, func(in *returns.VerificationInput) { in.PackagingIntact = false }, returns.VerificationFailed},
		{"fake item", false, func(in *returns.VerificationInput) { in.ItemCondition = returns.ConditionFake }, returns.VerificationFailed},
		{"damaged item", false, func(in *returns.VerificationInput) { in.ItemCondition = returns.ConditionDamaged }, returns.VerificationFailed},
		{"used item", false, func(in *returns.VerificationInput) { in.ItemCondition = returns.ConditionUsed }, returns.VerificationPassed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := passingInput()
			tt.mutate(&in)
			assert.Equal(t, tt.want, returns.EvaluateVerification(tt.photoRequired, in))
		})
	}
}

func TestEvaluateVerification_ItemMismatchAlwaysFails(t *testing.T) {
	conditions := []returns.ItemCondition{
		returns.ConditionGood, returns.ConditionLikeNew, returns.ConditionUsed,
		returns.ConditionDamaged, returns.ConditionFake,
	}
	for _, photo := range []bool{false, true} {
		for _, tag := range []bool{false, true} {
			for _, pkg := range []bool{false, true} {
				for _, cond := range conditions {
					in := returns.VerificationInput{
						AgentName:       "agent",
						TagAttached:     tag,
						PackagingIntact: pkg,
						ItemCondition:   cond,
					}
					assert.Equal(t, returns.VerificationFailed, returns.EvaluateVerification(photo, in))
				}
			}
		}
	}
}

func TestNewFieldVerification(t *testing.T) {
	mockClock := &returns.MockClock{CurrentTime: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	returns.SetClock(mockClock)
	defer returns.ResetClock()

	order := fixtures.NewTransactionBuilder(t).WithPhotoVerificationRequired().Build()
	in := passingInput()
	in.TagAttached = false
	in.AgentNotes = "tag removed"

	v, err := returns.NewFieldVerification(order, in)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, v.ID)
	assert.Equal(t, order.OrderID, v.OrderID)
	assert.Equal(t, returns.VerificationFailed, v.VerificationResult)
	assert.Equal(t, mockClock.CurrentTime, v.VerifiedAt)
	assert.Equal(t, "tag removed", v.AgentNotes)
}

func TestNewFieldVerification_Invalid(t *testing.T) {
	order := fixtures.NewTransactionBuilder(t).Build()

	in := passingInput()
	in.AgentName = "  "
	_, err := returns.NewFieldVerification(order, in)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

	in = passingInput()
	in.ItemCondition = "Pristine"
	_, err = returns.NewFieldVerification(order, in)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}
