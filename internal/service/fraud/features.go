package fraud

import "github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"

// Feature positions. The order is fixed so scaler columns line up across calls.
const (
	FeatureReturnCount = iota
	FeatureReturnDayGap
	FeatureOrderValue
	FeatureHighValueQuickReturn
	FeatureSerialReturner
	FeatureValuePerReturn
	FeatureReasonMismatch

	NumFeatures
)

// FeatureNames labels each feature position.
var FeatureNames = [NumFeatures]string{
	"return_count",
	"return_day_gap",
	"order_value",
	"high_value_quick_return",
	"serial_returner",
	"value_per_return",
	"reason_mismatch",
}

// FeatureVector is the engineered representation of one transaction.
type FeatureVector [NumFeatures]float64

// ExtractFeatures derives the feature vector from a raw record.
func ExtractFeatures(raw RawTransaction, reasonMismatch bool) FeatureVector {
	var f FeatureVector
	f[FeatureReturnCount] = float64(raw.ReturnCount)
	f[FeatureReturnDayGap] = float64(raw.ReturnDayGap)
	f[FeatureOrderValue] = raw.OrderValue
	f[FeatureHighValueQuickReturn] = boolFeature(returns.IsWardrobing(raw.OrderValue, raw.ReturnDayGap))
	f[FeatureSerialReturner] = boolFeature(raw.ReturnCount >= SerialReturnerFeatureCount)
	f[FeatureValuePerReturn] = raw.OrderValue / float64(raw.ReturnCount+1)
	f[FeatureReasonMismatch] = boolFeature(reasonMismatch)
	return f
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func toMatrix(batch []FeatureVector) [][]float64 {
	out := make([][]float64, len(batch))
	for i := range batch {
		row := batch[i]
		out[i] = row[:]
	}
	return out
}
