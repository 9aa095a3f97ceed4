package fraud

import (
	"math"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/errors"
)

// severityDirection orients each standardized feature toward fraud.
// value_per_return carries no direction.
var severityDirection = FeatureVector{
	FeatureReturnCount:          1,
	FeatureReturnDayGap:         -1,
	FeatureOrderValue:           1,
	FeatureHighValueQuickReturn: 1,
	FeatureSerialReturner:       1,
	FeatureValuePerReturn:       0,
	FeatureReasonMismatch:       1,
}

// ScorerConfig configures an AnomalyScorer.
type ScorerConfig struct {
	Trees          int
	MaxSamples     int
	Contamination  float64
	Seed           uint64
	SeverityWeight float64
}

// AnomalyScorer standardizes a batch, fits an isolation forest on it and
// converts the model output into batch-relative risk scores.
// A scorer holds the state of its last Fit only; callers create one per batch.
type AnomalyScorer struct {
	cfg    ScorerConfig
	scaler *StandardScaler
	forest *IsolationForest
}

// NewAnomalyScorer creates an unfitted scorer.
func NewAnomalyScorer(cfg ScorerConfig) *AnomalyScorer {
	return &AnomalyScorer{cfg: cfg}
}

// Fit learns scaling and the forest from batch.
func (a *AnomalyScorer) Fit(batch []FeatureVector) error {
	if len(batch) == 0 {
		return errors.NewValidationError(errors.CodeInvalidBatch, "cannot fit on an empty batch")
	}

	scaler := &StandardScaler{}
	scaled, err := scaler.FitTransform(toMatrix(batch))
	if err != nil {
		return errors.NewInternalError("failed to scale features").WithCause(err)
	}

	forest := NewIsolationForest(a.cfg.Trees, a.cfg.MaxSamples, a.cfg.Contamination, a.cfg.Seed)
	if err := forest.Fit(scaled); err != nil {
		return errors.NewInternalError("failed to fit isolation forest").WithCause(err)
	}

	a.scaler, a.forest = scaler, forest
	return nil
}

// RawScores returns the model decision value per record, higher meaning more normal.
func (a *AnomalyScorer) RawScores(batch []FeatureVector) ([]float64, error) {
	if a.forest == nil {
		return nil, errors.NewInternalError("anomaly scorer used before fit")
	}
	scaled, err := a.scaler.Transform(toMatrix(batch))
	if err != nil {
		return nil, errors.NewInternalError("failed to scale features").WithCause(err)
	}
	decision, err := a.forest.DecisionFunction(scaled)
	if err != nil {
		return nil, errors.NewInternalError("failed to score batch").WithCause(err)
	}
	return decision, nil
}

// breakTies orders records by directional severity when the forest gave every
// record the same decision value. Any spread in raw leaves it untouched.
func (a *AnomalyScorer) breakTies(batch []FeatureVector, raw []float64) ([]float64, error) {
	if a.cfg.SeverityWeight <= 0 || spread(raw) >= degenerateSpread {
		return raw, nil
	}
	scaled, err := a.scaler.Transform(toMatrix(batch))
	if err != nil {
		return nil, errors.NewInternalError("failed to scale features").WithCause(err)
	}
	out := make([]float64, len(raw))
	for i, row := range scaled {
		out[i] = raw[i] - a.cfg.SeverityWeight*severity(row)
	}
	return out, nil
}

func spread(raw []float64) float64 {
	if len(raw) == 0 {
		return 0
	}
	lo, hi := raw[0], raw[0]
	for _, v := range raw[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return hi - lo
}

func severity(scaled []float64) float64 {
	var sum, weight float64
	for j, d := range severityDirection {
		sum += d * scaled[j]
		weight += math.Abs(d)
	}
	return sum / weight
}

// Score refits on batch and returns one base risk score per record.
func (a *AnomalyScorer) Score(batch []FeatureVector) ([]int, error) {
	if len(batch) == 0 {
		return nil, errors.NewValidationError(errors.CodeInvalidBatch, "cannot score an empty batch")
	}
	if len(batch) == 1 {
		return []int{NeutralRiskScore}, nil
	}
	if err := a.Fit(batch); err != nil {
		return nil, err
	}
	raw, err := a.RawScores(batch)
	if err != nil {
		return nil, err
	}
	if raw, err = a.breakTies(batch, raw); err != nil {
		return nil, err
	}
	return NormalizeRiskScores(raw), nil
}

// NormalizeRiskScores maps raw model values onto [1, 99] by batch min-max.
// Batches with fewer than two records or no spread get the neutral score.
func NormalizeRiskScores(raw []float64) []int {
	scores := make([]int, len(raw))
	if len(raw) == 0 {
		return scores
	}

	lo, hi := raw[0], raw[0]
	for _, v := range raw[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if len(raw) < 2 || hi-lo < degenerateSpread {
		for i := range scores {
			scores[i] = NeutralRiskScore
		}
		return scores
	}

	for i, v := range raw {
		normalized := (v - lo) / (hi - lo)
		scores[i] = clampScore(int(math.Round((1-normalized)*99 + 1)))
	}
	return scores
}

func clampScore(score int) int {
	return min(max(score, MinRiskScore), MaxRiskScore)
}
