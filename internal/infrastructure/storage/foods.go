package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/foodtrack/backend/internal/domain"
)

// LoadFoodDefinitions reads reference catalog entries from a JSON file.
// Unlike the entry journal, a missing definitions file is an error: the
// path was configured explicitly and a silent empty catalog would be
// indistinguishable from a typo.
func LoadFoodDefinitions(path string) ([]domain.FoodItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading food definitions %s: %w", path, err)
	}

	var items []domain.FoodItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding food definitions %s: %w", path, err)
	}

	for i, item := range items {
		if item.ID == "" || item.Name == "" {
			return nil, fmt.Errorf("food definition %d in %s: id and name are required", i, path)
		}
	}
	return items, nil
}

// DefaultFoodDefinitions is the built-in reference catalog used when no
// definitions file is configured. Nutrition values are per listed serving.
func DefaultFoodDefinitions() []domain.FoodItem {
	return []domain.FoodItem{
		{
			ID:          "grilled-chicken-breast",
			Name:        "Grilled Chicken Breast",
			Aliases:     []string{"grilled chicken", "chicken breast"},
			ServingSize: "100 g",
			Nutrients:   domain.Nutrients{Calories: 165, Protein: 31, Carbohydrates: 0, TotalFat: 3.6},
		},
		{
			ID:          "greek-yogurt",
			Name:        "Greek Yogurt",
			Aliases:     []string{"yogurt", "plain greek yogurt"},
			ServingSize: "170 g",
			Nutrients:   domain.Nutrients{Calories: 100, Protein: 17, Carbohydrates: 6, TotalFat: 0.7},
		},
		{
			ID:          "banana",
			Name:        "Banana",
			Aliases:     []string{"ripe banana"},
			ServingSize: "1 medium",
			Nutrients:   domain.Nutrients{Calories: 105, Protein: 1.3, Carbohydrates: 27, TotalFat: 0.4},
		},
		{
			ID:          "brown-rice",
			Name:        "Brown Rice",
			Aliases:     []string{"cooked brown rice"},
			ServingSize: "1 cup cooked",
			Nutrients:   domain.Nutrients{Calories: 216, Protein: 5, Carbohydrates: 45, TotalFat: 1.8},
		},
		{
			ID:          "whole-milk",
			Name:        "Whole Milk",
			Aliases:     []string{"milk"},
			ServingSize: "1 cup",
			Nutrients:   domain.Nutrients{Calories: 149, Protein: 7.7, Carbohydrates: 11.7, TotalFat: 7.9},
		},
		{
			ID:          "scrambled-eggs",
			Name:        "Scrambled Eggs",
			Aliases:     []string{"eggs", "scrambled egg"},
			ServingSize: "2 large",
			Nutrients:   domain.Nutrients{Calories: 182, Protein: 12, Carbohydrates: 2, TotalFat: 13.5},
		},
		{
			ID:          "oatmeal",
			Name:        "Oatmeal",
			Aliases:     []string{"oats", "porridge"},
			ServingSize: "1 cup cooked",
			Nutrients:   domain.Nutrients{Calories: 158, Protein: 6, Carbohydrates: 27, TotalFat: 3.2},
		},
		{
			ID:          "apple",
			Name:        "Apple",
			Aliases:     []string{"red apple"},
			ServingSize: "1 medium",
			Nutrients:   domain.Nutrients{Calories: 95, Protein: 0.5, Carbohydrates: 25, TotalFat: 0.3},
		},
	}
}
