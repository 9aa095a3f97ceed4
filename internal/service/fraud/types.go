package fraud

import (
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
)

// RawTransaction is an unscored return record as received from upload or seeding.
type RawTransaction struct {
	OrderID      string  `json:"order_id" validate:"required,max=64"`
	CustomerID   string  `json:"customer_id" validate:"required,max=64"`
	CustomerName string  `json:"customer_name" validate:"max=200"`
	City         string  `json:"city" validate:"max=100"`
	Category     string  `json:"category" validate:"required,max=100"`
	OrderValue   float64 `json:"order_value" validate:"gte=0"`
	ReturnReason string  `json:"return_reason" validate:"max=200"`
	ReturnCount  int     `json:"return_count" validate:"gte=0"`
	ReturnDayGap int     `json:"return_day_gap" validate:"gte=0"`
	Date         string  `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// FingerprintOutcome is the result of comparing a return rescan with the purchase fingerprint.
type FingerprintOutcome struct {
	Returned returns.Fingerprint
	Mismatch bool
	Reason   string
}

// Assessment is the rule-adjusted verdict for one transaction.
type Assessment struct {
	Score         int
	IsFraud       bool
	Explanation   string
	PhotoRequired bool
	PhotoStatus   string
}

// Config tunes the anomaly model and the return rescan simulation.
type Config struct {
	Trees                          int
	MaxSamples                     int
	Contamination                  float64
	Seed                           uint64
	SeverityWeight                 float64
	FingerprintMismatchProbability float64
}

// DefaultConfig returns the production scoring configuration.
func DefaultConfig() Config {
	return Config{
		Trees:                          DefaultTrees,
		MaxSamples:                     DefaultMaxSamples,
		Contamination:                  DefaultContamination,
		Seed:                           DefaultSeed,
		SeverityWeight:                 DefaultSeverityWeight,
		FingerprintMismatchProbability: FingerprintMismatchProbability,
	}
}

func (c Config) scorerConfig() ScorerConfig {
	return ScorerConfig{
		Trees:          c.Trees,
		MaxSamples:     c.MaxSamples,
		Contamination:  c.Contamination,
		Seed:           c.Seed,
		SeverityWeight: c.SeverityWeight,
	}
}
