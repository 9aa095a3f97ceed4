package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
)

// NoopUnlock is a release func for Locker expectations
func NoopUnlock() func() { return func() {} }

// OrderWithStatus matches a *returns.Transaction in the given workflow state
func OrderWithStatus(status returns.Status, locked bool) interface{} {
	return mock.MatchedBy(func(t *returns.Transaction) bool {
		return t != nil && t.Status == status && t.IsLocked == locked
	})
}

// VerificationWithResult matches a *returns.FieldVerification with the given result
func VerificationWithResult(result returns.VerificationResult) interface{} {
	return mock.MatchedBy(func(v *returns.FieldVerification) bool {
		return v != nil && v.VerificationResult == result
	})
}
