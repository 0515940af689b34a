package domain

import "time"

// FoodItem is a catalog entry: a known food with its nutrition facts
// per reference serving. The ID is the canonical identity; Name and
// Aliases are the searchable strings.
type FoodItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Aliases     []string  `json:"aliases,omitempty"`
	ServingSize string    `json:"servingSize"`
	Nutrients   Nutrients `json:"nutrients"`
}

// Nutrients contains the key macronutrients per reference serving
type Nutrients struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`       // grams
	Carbohydrates float64 `json:"carbohydrates"` // grams
	TotalFat      float64 `json:"totalFat"`      // grams
}

// MatchTier is the priority class of a match. Higher tiers always
// outrank lower ones regardless of numeric confidence.
type MatchTier string

const (
	TierExact      MatchTier = "EXACT"
	TierAlias      MatchTier = "ALIAS"
	TierSimilarity MatchTier = "SIMILARITY"
)

// MatchResult pairs a recognised food with a confidence score in [0,1].
// Exact and alias hits carry confidence 1.0; similarity hits carry the
// cosine score of the best-matching name or alias.
type MatchResult struct {
	Item       FoodItem  `json:"item"`
	Confidence float64   `json:"confidence"`
	Tier       MatchTier `json:"tier"`
}

// FoodEntry is one logged serving of a food at a point in time
type FoodEntry struct {
	ID        string    `json:"id"`
	Food      FoodItem  `json:"food"`
	Quantity  float64   `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// DailyLog groups the entries of a single calendar day
type DailyLog struct {
	Day     time.Time   `json:"day"`
	Entries []FoodEntry `json:"entries"`
}

// TotalCalories sums quantity-scaled calories across the day's entries
func (d DailyLog) TotalCalories() float64 {
	total := 0.0
	for _, e := range d.Entries {
		total += e.Food.Nutrients.Calories * e.Quantity
	}
	return total
}

// TotalMacros sums quantity-scaled macronutrients across the day's entries
func (d DailyLog) TotalMacros() Nutrients {
	var totals Nutrients
	for _, e := range d.Entries {
		totals.Protein += e.Food.Nutrients.Protein * e.Quantity
		totals.Carbohydrates += e.Food.Nutrients.Carbohydrates * e.Quantity
		totals.TotalFat += e.Food.Nutrients.TotalFat * e.Quantity
	}
	return totals
}
