package querybuilder

import (
	"fmt"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
)

// TotalsQuery aggregates all stored orders into one row:
// total, flagged, flagged value, average risk score.
func TotalsQuery() *QueryBuilder {
	return New().
		Select(
			"COUNT(*)",
			"COUNT(*) FILTER (WHERE is_fraud)",
			"COALESCE(SUM(order_value) FILTER (WHERE is_fraud), 0)",
			"COALESCE(AVG(risk_score), 0)::float8",
		).
		From("transactions")
}

// GroupTotalsQuery aggregates orders per dimension value, groups ordered by
// the first order stored in each.
func GroupTotalsQuery(dim returns.Dimension) (*QueryBuilder, error) {
	if !dim.IsValid() {
		return nil, fmt.Errorf("unsupported dimension %q", dim)
	}
	col := string(dim)
	return New().
		Select(
			col,
			"COUNT(*)",
			"COUNT(*) FILTER (WHERE is_fraud)",
			"COALESCE(SUM(order_value), 0)",
		).
		From("transactions").
		GroupBy(col).
		OrderByAsc("MIN(seq)"), nil
}

// weekOfReturn buckets return_date into the Monday starting its week
const weekOfReturn = "date_trunc('week', return_date::date)::date"

// WeeklyTotalsQuery aggregates dated orders per calendar week, newest week
// first, keeping the latest weeks buckets: week start, total, flagged, flagged value.
func WeeklyTotalsQuery(weeks int) *QueryBuilder {
	return New().
		Select(
			weekOfReturn,
			"COUNT(*)",
			"COUNT(*) FILTER (WHERE is_fraud)",
			"COALESCE(SUM(order_value) FILTER (WHERE is_fraud), 0)",
		).
		From("transactions").
		Where("return_date", NotEqual, "").
		GroupBy(weekOfReturn).
		OrderByDesc(weekOfReturn).
		Limit(weeks)
}
