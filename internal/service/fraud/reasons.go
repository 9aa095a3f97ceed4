package fraud

import "strings"

// invalidReasons lists return reasons that cannot apply to a category.
// Keys and entries are lower-case.
var invalidReasons = map[string]map[string]struct{}{
	"electronics": set(
		"wrong size", "too small", "too large", "doesn't fit", "does not fit",
		"fabric quality", "color faded after wash",
	),
	"clothing": set(
		"technical malfunction", "battery issue", "software issue",
		"not compatible", "dead pixel", "won't power on",
	),
	"footwear": set(
		"technical malfunction", "battery issue", "software issue",
		"not compatible", "dead pixel", "won't power on",
	),
	"home decor": set(
		"wrong size", "doesn't fit", "technical malfunction",
		"battery issue", "software issue", "dead pixel",
	),
	"accessories": set(
		"technical malfunction", "software issue", "dead pixel", "won't power on",
	),
	"sports": set(
		"software issue", "dead pixel", "not compatible",
	),
	"books": set(
		"wrong size", "too small", "too large", "doesn't fit", "does not fit",
		"technical malfunction", "battery issue", "software issue", "dead pixel",
		"won't power on", "fabric quality",
	),
}

func set(items ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		out[it] = struct{}{}
	}
	return out
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsReasonInvalid reports whether reason is structurally impossible for category.
// Unknown categories never mismatch.
func IsReasonInvalid(category, reason string) bool {
	invalid, ok := invalidReasons[normalizeKey(category)]
	if !ok {
		return false
	}
	_, found := invalid[normalizeKey(reason)]
	return found
}
