package analytics

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/errors"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/values"
)

const tracerName = "fraudlens/service/analytics"

// SavedRatio is the share of at-risk value recovered by blocking flagged refunds.
var SavedRatio = decimal.RequireFromString("0.73")

// TrendWeeks is how many weeks the trend chart covers.
const TrendWeeks = 12

// HighSeverityScore marks orders whose summary recommends immediate escalation.
const HighSeverityScore = 85

const (
	SeverityHigh     = "HIGH"
	SeverityModerate = "MODERATE"
)

// service implements the Service interface
type service struct {
	repo     Repository
	logger   *zap.Logger
	cacheTTL time.Duration

	mu          sync.RWMutex
	cache       map[string]interface{}
	cacheExpiry map[string]time.Time
}

// Option customizes the analytics service
type Option func(*service)

// WithCacheTTL caches aggregate results for ttl. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *service) {
		s.cacheTTL = ttl
	}
}

// NewService creates a new analytics service
func NewService(repo Repository, logger *zap.Logger, opts ...Option) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &service{
		repo:        repo,
		logger:      logger,
		cache:       make(map[string]interface{}),
		cacheExpiry: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats summarizes every stored return
func (s *service) Stats(ctx context.Context) (*Stats, error) {
	if cached, ok := s.getCachedResult("stats").(*Stats); ok {
		return cached, nil
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "analytics.Stats")
	defer span.End()

	totals, err := s.repo.Totals(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, errors.NewInternalError("failed to aggregate orders").WithCause(err)
	}

	atRisk := values.NewMoneyFromFloat(totals.FlaggedValue)
	stats := &Stats{
		TotalReturns:  totals.Total,
		FlaggedOrders: totals.Flagged,
		FraudRate:     fraudRate(totals.Flagged, totals.Total),
		AmountAtRisk:  atRisk.Round(2),
		AmountSaved:   values.NewMoneyFromDecimal(atRisk.Amount().Mul(SavedRatio)).Round(2),
		AvgRiskScore:  round1(decimal.NewFromFloat(totals.AvgRiskScore)),
	}

	s.setCachedResult("stats", stats)
	return stats, nil
}

// Categories breaks fraud down by product category
func (s *service) Categories(ctx context.Context) ([]*CategoryStats, error) {
	if cached, ok := s.getCachedResult("categories").([]*CategoryStats); ok {
		return cached, nil
	}

	groups, err := s.groupTotals(ctx, returns.DimensionCategory)
	if err != nil {
		return nil, err
	}

	out := make([]*CategoryStats, 0, len(groups))
	for _, g := range groups {
		out = append(out, &CategoryStats{
			Category:  g.Key,
			Total:     g.Total,
			Flagged:   g.Flagged,
			Value:     values.NewMoneyFromFloat(g.Value).Round(2),
			FraudRate: fraudRate(g.Flagged, g.Total),
		})
	}

	s.setCachedResult("categories", out)
	return out, nil
}

// Cities breaks fraud down by customer city
func (s *service) Cities(ctx context.Context) ([]*CityStats, error) {
	if cached, ok := s.getCachedResult("cities").([]*CityStats); ok {
		return cached, nil
	}

	groups, err := s.groupTotals(ctx, returns.DimensionCity)
	if err != nil {
		return nil, err
	}

	out := make([]*CityStats, 0, len(groups))
	for _, g := range groups {
		out = append(out, &CityStats{
			City:      g.Key,
			Total:     g.Total,
			Flagged:   g.Flagged,
			FraudRate: fraudRate(g.Flagged, g.Total),
		})
	}

	s.setCachedResult("cities", out)
	return out, nil
}

func (s *service) groupTotals(ctx context.Context, dim returns.Dimension) ([]returns.GroupTotals, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "analytics.GroupTotals")
	defer span.End()
	span.SetAttributes(attribute.String("analytics.dimension", string(dim)))

	groups, err := s.repo.GroupTotals(ctx, dim)
	if err != nil {
		span.RecordError(err)
		return nil, errors.NewInternalError("failed to aggregate orders by " + string(dim)).WithCause(err)
	}
	return groups, nil
}

// Trends reports weekly totals over return dates, oldest week first
func (s *service) Trends(ctx context.Context) ([]*TrendPoint, error) {
	if cached, ok := s.getCachedResult("trends").([]*TrendPoint); ok {
		return cached, nil
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "analytics.Trends")
	defer span.End()

	weeks, err := s.repo.WeeklyTotals(ctx, TrendWeeks)
	if err != nil {
		span.RecordError(err)
		return nil, errors.NewInternalError("failed to aggregate orders by week").WithCause(err)
	}

	out := make([]*TrendPoint, 0, len(weeks))
	for _, w := range weeks {
		flaggedValue := values.NewMoneyFromFloat(w.FlaggedValue)
		out = append(out, &TrendPoint{
			Week:         w.WeekStart.Format("Jan 02"),
			WeekStart:    w.WeekStart.Format(time.DateOnly),
			TotalReturns: w.Total,
			Flagged:      w.Flagged,
			AmountSaved:  values.NewMoneyFromDecimal(flaggedValue.Amount().Mul(SavedRatio)).Round(2),
		})
	}

	s.setCachedResult("trends", out)
	return out, nil
}

// FraudSummary renders the analyst report for one order
func (s *service) FraudSummary(ctx context.Context, orderID string) (*FraudSummary, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "analytics.FraudSummary")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", orderID))

	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		span.RecordError(err)
		if errors.IsType(err, errors.ErrorTypeNotFound) {
			return nil, err
		}
		return nil, errors.NewInternalError("failed to load order").WithCause(err)
	}

	history, err := s.repo.ListByCustomer(ctx, order.CustomerID)
	if err != nil {
		span.RecordError(err)
		return nil, errors.NewInternalError("failed to load customer history").WithCause(err)
	}
	flagged := 0
	for _, o := range history {
		if o.IsFraud {
			flagged++
		}
	}

	severity := SeverityModerate
	if order.RiskScore >= HighSeverityScore {
		severity = SeverityHigh
	}

	return &FraudSummary{
		Summary:  renderSummary(order, severity, flagged, len(history)),
		Order:    order,
		Severity: severity,
	}, nil
}

func renderSummary(order *returns.Transaction, severity string, flagged, orders int) string {
	flag := "Anomalous pattern detected"
	if order.FraudType != nil && *order.FraudType != "" {
		flag = *order.FraudType
	}

	guidance, action := "Hold refund pending manual review.", "Hold for manual review"
	if severity == SeverityHigh {
		guidance, action = "Immediate escalation recommended.", "Block refund & escalate to fraud team"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "FRAUD ANALYSIS — %s\n\n", order.OrderID)
	fmt.Fprintf(&b, "Customer: %s (%s)\n", order.CustomerName, order.CustomerID)
	fmt.Fprintf(&b, "Risk Score: %d/100\n", order.RiskScore)
	fmt.Fprintf(&b, "Primary Flag: %s\n\n", flag)
	b.WriteString("Behavioral Signals:\n")
	fmt.Fprintf(&b, "- Total returns by this customer: %d\n", order.ReturnCount)
	fmt.Fprintf(&b, "- Return filed after: %d day(s)\n", order.ReturnDayGap)
	fmt.Fprintf(&b, "- Item value: %s\n", values.FormatRupees(order.OrderValue, 2))
	fmt.Fprintf(&b, "- Stated reason: %s\n", order.ReturnReason)
	fmt.Fprintf(&b, "- Fraud flags on account: %d of %d orders\n\n", flagged, orders)
	b.WriteString("Assessment:\n")
	fmt.Fprintf(&b, "This order exhibits %s fraud probability.\n", severity)
	fmt.Fprintf(&b, "%s\n\n", guidance)
	fmt.Fprintf(&b, "Recommended Action: %s", action)
	return b.String()
}

// fraudRate is flagged as a percentage of total, one decimal place.
func fraudRate(flagged, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(decimal.NewFromInt(int64(flagged) * 100).Div(decimal.NewFromInt(int64(total))))
}

func round1(d decimal.Decimal) float64 {
	f, _ := d.Round(1).Float64()
	return f
}

func (s *service) getCachedResult(key string) interface{} {
	if s.cacheTTL <= 0 {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if expiry, exists := s.cacheExpiry[key]; exists && time.Now().Before(expiry) {
		return s.cache[key]
	}
	return nil
}

func (s *service) setCachedResult(key string, value interface{}) {
	if s.cacheTTL <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[key] = value
	s.cacheExpiry[key] = time.Now().Add(s.cacheTTL)
}
