package ingest

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/service/fraud"
)

// Demo dataset defaults
const (
	DefaultSeedCount = 200
	DefaultSeed      = 42
)

var (
	demoNames = []string{
		"Arjun Sharma", "Priya Patel", "Rohan Mehta", "Sneha Iyer", "Vikram Nair",
		"Ananya Gupta", "Kiran Reddy", "Divya Joshi", "Aditya Kumar", "Pooja Singh",
		"Rahul Verma", "Neha Kapoor", "Siddharth Rao", "Kavya Nambiar", "Amit Shah",
		"Shreya Mishra", "Rajesh Pillai", "Lakshmi Agarwal", "Vivek Tiwari", "Meera Bose",
	}
	demoCategories = []string{"Electronics", "Clothing", "Footwear", "Home Decor", "Accessories", "Sports"}
	demoReasons    = []string{
		"Defective product", "Wrong size", "Changed mind", "Not as described",
		"Better price elsewhere", "Damaged in shipping", "Duplicate order",
	}
	demoCities = []string{"Mumbai", "Delhi", "Bangalore", "Chennai", "Hyderabad", "Pune", "Kolkata"}

	demoBaseDate = time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
)

// GenerateDemo builds n synthetic returns. The same seed always yields the same rows.
func GenerateDemo(n int, seed uint64) []fraud.RawTransaction {
	rng := rand.New(rand.NewPCG(seed, seed))
	pick := func(options []string) string {
		return options[rng.IntN(len(options))]
	}

	raws := make([]fraud.RawTransaction, 0, n)
	for i := 0; i < n; i++ {
		ci := rng.IntN(len(demoNames))
		value := 299 + rng.Float64()*(15999-299)

		raws = append(raws, fraud.RawTransaction{
			OrderID:      fmt.Sprintf("ORD%d", 100000+i),
			CustomerID:   fmt.Sprintf("CUST%d", 1000+ci),
			CustomerName: demoNames[ci],
			City:         pick(demoCities),
			Category:     pick(demoCategories),
			OrderValue:   math.Round(value*100) / 100,
			ReturnReason: pick(demoReasons),
			ReturnCount:  1 + rng.IntN(12),
			ReturnDayGap: rng.IntN(31),
			Date:         demoBaseDate.AddDate(0, 0, rng.IntN(90)).Format(time.DateOnly),
		})
	}
	return raws
}
