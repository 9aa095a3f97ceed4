package returns

import "time"

// Dimension is a column orders can be grouped by for analytics.
type Dimension string

const (
	DimensionCategory Dimension = "category"
	DimensionCity     Dimension = "city"
)

// IsValid reports whether d is a supported grouping.
func (d Dimension) IsValid() bool {
	return d == DimensionCategory || d == DimensionCity
}

// Totals aggregates every stored order.
type Totals struct {
	Total        int
	Flagged      int
	FlaggedValue float64
	AvgRiskScore float64
}

// GroupTotals aggregates the orders sharing one dimension value.
type GroupTotals struct {
	Key     string
	Total   int
	Flagged int
	Value   float64
}

// WeekTotals aggregates the orders returned in one calendar week.
type WeekTotals struct {
	// WeekStart is the Monday the week begins on, UTC
	WeekStart    time.Time
	Total        int
	Flagged      int
	FlaggedValue float64
}

// WeekStart returns the Monday starting the week containing d, at midnight UTC.
func WeekStart(d time.Time) time.Time {
	d = d.UTC()
	offset := (int(d.Weekday()) + 6) % 7
	return time.Date(d.Year(), d.Month(), d.Day()-offset, 0, 0, 0, 0, time.UTC)
}
