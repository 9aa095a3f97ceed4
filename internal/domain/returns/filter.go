package returns

import "strings"

// DefaultListLimit caps order listings when no limit is given.
const DefaultListLimit = 500

// OrderFilter narrows an order listing. Zero values mean no restriction.
type OrderFilter struct {
	FlaggedOnly bool
	Category    string
	MinScore    int
	// Search matches order id, customer id or customer name, case-insensitively
	Search string
	Limit  int
	// Offset skips that many matches for pagination
	Offset int
}

// EffectiveLimit returns Limit, or DefaultListLimit when unset.
func (f OrderFilter) EffectiveLimit() int {
	if f.Limit <= 0 || f.Limit > DefaultListLimit {
		return DefaultListLimit
	}
	return f.Limit
}

// EffectiveOffset returns Offset, or zero when negative.
func (f OrderFilter) EffectiveOffset() int {
	return max(f.Offset, 0)
}

// Matches applies the filter to a single order in memory.
func (f OrderFilter) Matches(t *Transaction) bool {
	if f.FlaggedOnly && !t.IsFraud {
		return false
	}
	if f.Category != "" && !strings.EqualFold(f.Category, t.Category) {
		return false
	}
	if t.RiskScore < f.MinScore {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		return strings.Contains(strings.ToLower(t.OrderID), q) ||
			strings.Contains(strings.ToLower(t.CustomerID), q) ||
			strings.Contains(strings.ToLower(t.CustomerName), q)
	}
	return true
}
