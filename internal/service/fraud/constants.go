package fraud

// Risk score bounds
const (
	// MinRiskScore is the lowest score a transaction can receive
	MinRiskScore = 1

	// MaxRiskScore is the ceiling applied after normalization and after each boost
	MaxRiskScore = 99

	// NeutralRiskScore is assigned to every record of a degenerate batch
	NeutralRiskScore = 50
)

// Rule boosts
const (
	// ReasonMismatchBoost is added when the stated reason is impossible for the category
	ReasonMismatchBoost = 25

	// FingerprintMismatchBoost is added when the return rescan differs from purchase
	FingerprintMismatchBoost = 20
)

// Explanation thresholds
const (
	// SerialReturnerExplainCount triggers the serial returner message
	SerialReturnerExplainCount = 8

	// FrequentReturnerExplainCount triggers the high return frequency message
	FrequentReturnerExplainCount = 5

	// SerialReturnerFeatureCount sets the serial_returner feature
	SerialReturnerFeatureCount = 6

	// HighValueRepeatMinValue and HighValueRepeatMinCount bound the high-value repeat message
	HighValueRepeatMinValue = 10000.0
	HighValueRepeatMinCount = 3

	// ExplanationSeparator joins explanation fragments
	ExplanationSeparator = " · "
)

// Isolation forest defaults
const (
	DefaultTrees         = 100
	DefaultMaxSamples    = 256
	DefaultContamination = 0.15
	DefaultSeed          = 42

	// DefaultSeverityWeight scales the directional severity used to order records
	// when the forest output has no spread
	DefaultSeverityWeight = 0.05

	// degenerateSpread is the raw score range below which a batch is treated as degenerate
	degenerateSpread = 1e-12
)

// FingerprintMismatchProbability is the chance a fraudulent return rescan is corrupted
const FingerprintMismatchProbability = 0.6
