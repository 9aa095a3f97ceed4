package analytics

import (
	"context"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/values"
)

// Service defines the dashboard analytics interface
type Service interface {
	// Stats summarizes every stored return
	Stats(ctx context.Context) (*Stats, error)
	// Categories breaks fraud down by product category
	Categories(ctx context.Context) ([]*CategoryStats, error)
	// Cities breaks fraud down by customer city
	Cities(ctx context.Context) ([]*CityStats, error)
	// FraudSummary renders the analyst report for one order
	FraudSummary(ctx context.Context, orderID string) (*FraudSummary, error)
	// Trends reports weekly return volume for the latest TrendWeeks weeks with data
	Trends(ctx context.Context) ([]*TrendPoint, error)
}

// Repository is the read side analytics aggregates over.
type Repository interface {
	Totals(ctx context.Context) (returns.Totals, error)
	GroupTotals(ctx context.Context, dim returns.Dimension) ([]returns.GroupTotals, error)
	GetOrder(ctx context.Context, orderID string) (*returns.Transaction, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*returns.Transaction, error)
	WeeklyTotals(ctx context.Context, weeks int) ([]returns.WeekTotals, error)
}

// Stats is the dashboard headline
type Stats struct {
	TotalReturns  int          `json:"total_returns"`
	FlaggedOrders int          `json:"flagged_orders"`
	FraudRate     float64      `json:"fraud_rate"`
	AmountAtRisk  values.Money `json:"amount_at_risk"`
	AmountSaved   values.Money `json:"amount_saved"`
	AvgRiskScore  float64      `json:"avg_risk_score"`
}

// CategoryStats is the fraud breakdown of one product category
type CategoryStats struct {
	Category  string       `json:"category"`
	Total     int          `json:"total"`
	Flagged   int          `json:"flagged"`
	Value     values.Money `json:"value"`
	FraudRate float64      `json:"fraud_rate"`
}

// CityStats is the fraud breakdown of one city
type CityStats struct {
	City      string  `json:"city"`
	Total     int     `json:"total"`
	Flagged   int     `json:"flagged"`
	FraudRate float64 `json:"fraud_rate"`
}

// TrendPoint is one week of the returns trend chart
type TrendPoint struct {
	Week         string       `json:"week"`
	WeekStart    string       `json:"week_start"`
	TotalReturns int          `json:"total_returns"`
	Flagged      int          `json:"flagged"`
	AmountSaved  values.Money `json:"amount_saved"`
}

// FraudSummary is the analyst-facing report for an order
type FraudSummary struct {
	Summary  string               `json:"summary"`
	Order    *returns.Transaction `json:"order"`
	Severity string               `json:"severity"`
}
