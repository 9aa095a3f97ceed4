package fraud

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/domain/returns"
)

// RandSource supplies randomness for the return rescan. *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
	IntN(n int) int
}

var (
	fingerprintColors = []string{"Black", "White", "Silver", "Blue", "Red", "Green", "Grey", "Gold"}
	apparelSizes      = []string{"XS", "S", "M", "L", "XL", "XXL"}
	shoeSizes         = []string{"UK 5", "UK 6", "UK 7", "UK 8", "UK 9", "UK 10", "UK 11"}
	deviceModels      = []string{"X100", "Pro 14", "Ultra 5G", "Lite 2", "Max 8", "Air 3"}
	decorMaterials    = []string{"Wood", "Ceramic", "Glass", "Metal", "Cotton"}
	accessoryMaterial = []string{"Leather", "Steel", "Canvas", "Silver", "Nylon"}
	bookEditions      = []string{"1st", "2nd", "3rd", "4th", "5th"}
)

// Identity fields describe what the item is, not its state, so a rescan never alters them.
var identityFields = map[string]struct{}{
	"model": {},
	"isbn":  {},
}

const serialAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ0123456789"

// fingerprintSeed derives a stable PCG seed from category and order id.
func fingerprintSeed(category, orderID string) (uint64, uint64) {
	h := fnv.New64a()
	h.Write([]byte(category))
	h.Write([]byte{'|'})
	h.Write([]byte(orderID))
	sum := h.Sum64()
	return sum, sum ^ 0x9e3779b97f4a7c15
}

func pick(rng RandSource, options []string) string {
	return options[rng.IntN(len(options))]
}

func serialNumber(rng RandSource) string {
	var b strings.Builder
	b.WriteString("SN-")
	for i := 0; i < 10; i++ {
		b.WriteByte(serialAlphabet[rng.IntN(len(serialAlphabet))])
	}
	return b.String()
}

func isbn(rng RandSource) string {
	var b strings.Builder
	b.WriteString("978-")
	for i := 0; i < 10; i++ {
		b.WriteByte(byte('0' + rng.IntN(10)))
	}
	return b.String()
}

// GenerateFingerprint builds the purchase-time fingerprint for an order.
// The same category and order id always produce the same fingerprint.
func GenerateFingerprint(category, orderID string) returns.Fingerprint {
	s1, s2 := fingerprintSeed(category, orderID)
	rng := rand.New(rand.NewPCG(s1, s2))

	switch normalizeKey(category) {
	case "electronics":
		return returns.Fingerprint{
			"serial_number":   serialNumber(rng),
			"color":           pick(rng, fingerprintColors),
			"model":           pick(rng, deviceModels),
			"seal_intact":     true,
			"accessory_count": 1 + rng.IntN(5),
		}
	case "clothing":
		return returns.Fingerprint{
			"color":            pick(rng, fingerprintColors),
			"size":             pick(rng, apparelSizes),
			"tag_attached":     true,
			"fabric_condition": "New",
			"stitching_intact": true,
		}
	case "footwear":
		return returns.Fingerprint{
			"color":          pick(rng, fingerprintColors),
			"size":           pick(rng, shoeSizes),
			"box_intact":     true,
			"sole_condition": "New",
			"tag_attached":   true,
		}
	case "home decor":
		return returns.Fingerprint{
			"color":            pick(rng, fingerprintColors),
			"material":         pick(rng, decorMaterials),
			"packaging_intact": true,
			"condition":        "New",
		}
	case "accessories":
		return returns.Fingerprint{
			"color":            pick(rng, fingerprintColors),
			"material":         pick(rng, accessoryMaterial),
			"tag_attached":     true,
			"packaging_intact": true,
		}
	case "sports":
		return returns.Fingerprint{
			"color":               pick(rng, fingerprintColors),
			"size":                pick(rng, apparelSizes),
			"seal_intact":         true,
			"equipment_condition": "New",
			"accessory_count":     1 + rng.IntN(4),
		}
	case "books":
		return returns.Fingerprint{
			"isbn":            isbn(rng),
			"edition":         pick(rng, bookEditions),
			"pages_intact":    true,
			"cover_condition": "New",
		}
	default:
		return returns.Fingerprint{
			"color":        pick(rng, fingerprintColors),
			"condition":    "New",
			"tag_attached": true,
		}
	}
}

// FingerprintSimulator rescans returned items, corrupting fraudulent ones at random.
type FingerprintSimulator struct {
	rng         RandSource
	probability float64
}

// NewFingerprintSimulator creates a simulator drawing from rng.
func NewFingerprintSimulator(rng RandSource, probability float64) *FingerprintSimulator {
	return &FingerprintSimulator{rng: rng, probability: probability}
}

// SimulateReturnFingerprint returns the rescanned fingerprint and whether it differs from the original.
// Legitimate returns always rescan identically.
func (s *FingerprintSimulator) SimulateReturnFingerprint(original returns.Fingerprint, isFraud bool) (returns.Fingerprint, bool, string) {
	if !isFraud {
		return original, false, ""
	}

	returned := original.Clone()
	if s.rng.Float64() >= s.probability {
		return returned, false, ""
	}

	fields := mutableFields(original)
	if len(fields) == 0 {
		return returned, false, ""
	}
	field := fields[s.rng.IntN(len(fields))]

	before := original[field]
	after, reason := s.corrupt(field, before)
	if after == before {
		return returned, false, ""
	}
	returned[field] = after
	return returned, true, reason
}

func mutableFields(fp returns.Fingerprint) []string {
	fields := make([]string, 0, len(fp))
	for k := range fp {
		if _, ok := identityFields[k]; ok {
			continue
		}
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

func (s *FingerprintSimulator) corrupt(field string, value any) (any, string) {
	label := fieldLabel(field)

	switch v := value.(type) {
	case bool:
		return false, fmt.Sprintf("%s check failed on return — item was intact at purchase", label)
	case int:
		n := max(v-1, 0)
		return n, fmt.Sprintf("%s mismatch — %d at purchase, %d on return", label, v, n)
	case float64:
		n := max(v-1, 0)
		return n, fmt.Sprintf("%s mismatch — %.0f at purchase, %.0f on return", label, v, n)
	case string:
		var next string
		switch field {
		case "color":
			next = pick(s.rng, fingerprintColors)
		case "serial_number":
			next = serialNumber(s.rng)
		default:
			next = "Damaged"
		}
		return next, fmt.Sprintf("%s mismatch — purchased %s, returned %s", label, v, next)
	default:
		return value, ""
	}
}

func fieldLabel(field string) string {
	words := strings.Split(field, "_")
	if len(words) > 0 && words[0] != "" {
		words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	}
	return strings.Join(words, " ")
}
