package fraud

import (
	"fmt"
	"strings"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/values"
)

// ApplyBoosts adds the deterministic rule boosts to a base score.
// Each boost is clamped as it is applied.
func ApplyBoosts(base int, reasonMismatch, fingerprintMismatch bool) int {
	score := clampScore(base)
	if reasonMismatch {
		score = min(score+ReasonMismatchBoost, MaxRiskScore)
	}
	if fingerprintMismatch {
		score = min(score+FingerprintMismatchBoost, MaxRiskScore)
	}
	return score
}

// Assess applies boosts and derives the fraud flag, explanation and photo requirement.
func Assess(raw RawTransaction, base int, reasonMismatch bool, fp FingerprintOutcome) Assessment {
	score := ApplyBoosts(base, reasonMismatch, fp.Mismatch)
	wardrobing := returns.IsWardrobing(raw.OrderValue, raw.ReturnDayGap)

	a := Assessment{
		Score:         score,
		IsFraud:       score >= returns.FraudThreshold,
		PhotoRequired: wardrobing,
		PhotoStatus:   returns.PhotoNotRequired,
	}
	if wardrobing {
		a.PhotoStatus = returns.PhotoPendingUpload
	}
	if a.IsFraud {
		a.Explanation = Explain(raw, score, reasonMismatch, fp)
	}
	return a
}

// Explain lists every rule that fired, most severe first.
func Explain(raw RawTransaction, score int, reasonMismatch bool, fp FingerprintOutcome) string {
	var reasons []string

	switch {
	case raw.ReturnCount >= SerialReturnerExplainCount:
		reasons = append(reasons, fmt.Sprintf("Serial returner — %d returns on record", raw.ReturnCount))
	case raw.ReturnCount >= FrequentReturnerExplainCount:
		reasons = append(reasons, fmt.Sprintf("High return frequency — %d returns", raw.ReturnCount))
	}

	if returns.IsWardrobing(raw.OrderValue, raw.ReturnDayGap) {
		reasons = append(reasons, fmt.Sprintf("Wardrobing — %s item returned in %d day(s)",
			values.FormatRupees(raw.OrderValue, 0), raw.ReturnDayGap))
	}

	if raw.ReturnDayGap == 0 {
		reasons = append(reasons, "Same-day return — possible receipt manipulation")
	}

	if reasonMismatch {
		reasons = append(reasons, fmt.Sprintf("Reason mismatch — %q is not a valid return reason for %s",
			raw.ReturnReason, raw.Category))
	}

	if fp.Mismatch && fp.Reason != "" {
		reasons = append(reasons, fp.Reason)
	}

	if raw.OrderValue > HighValueRepeatMinValue && raw.ReturnCount >= HighValueRepeatMinCount {
		reasons = append(reasons, fmt.Sprintf("High-value repeat pattern — %s",
			values.FormatRupees(raw.OrderValue, 0)))
	}

	if len(reasons) == 0 {
		reasons = append(reasons, fmt.Sprintf("Anomalous behavior detected — risk score %d/100", score))
	}

	return strings.Join(reasons, ExplanationSeparator)
}
