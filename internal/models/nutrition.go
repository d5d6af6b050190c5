// ABOUTME: Food catalog and nutrition log models.
// ABOUTME: Daily goals are derived from the profile weight.
package models

import (
	"time"

	"github.com/google/uuid"
)

// FoodCategory groups foods in the catalog.
type FoodCategory string

const (
	FoodFruit     FoodCategory = "fruit"
	FoodVegetable FoodCategory = "vegetable"
	FoodProtein   FoodCategory = "protein"
	FoodDairy     FoodCategory = "dairy"
	FoodGrain     FoodCategory = "grain"
	FoodOther     FoodCategory = "other"
)

// Food is a catalog item with macros per serving.
type Food struct {
	ID       string       `json:"id" yaml:"id"`
	Name     string       `json:"name" yaml:"name"`
	Calories float64      `json:"calories" yaml:"calories"`
	Protein  float64      `json:"protein" yaml:"protein"`
	Carbs    float64      `json:"carbs" yaml:"carbs"`
	Fat      float64      `json:"fat" yaml:"fat"`
	Category FoodCategory `json:"category" yaml:"category"`
}

// NutritionEntry is one logged serving. Macros are copied from the food at log time.
type NutritionEntry struct {
	ID       string    `json:"id" yaml:"id"`
	Date     time.Time `json:"date" yaml:"date"`
	FoodID   string    `json:"foodId" yaml:"food_id"`
	Name     string    `json:"name" yaml:"name"`
	Calories float64   `json:"calories" yaml:"calories"`
	Protein  float64   `json:"protein" yaml:"protein"`
	Carbs    float64   `json:"carbs" yaml:"carbs"`
	Fat      float64   `json:"fat" yaml:"fat"`
}

// NewNutritionEntry creates a log entry for one serving of f.
func NewNutritionEntry(f Food, at time.Time) NutritionEntry {
	return NutritionEntry{
		ID:       uuid.New().String(),
		Date:     at,
		FoodID:   f.ID,
		Name:     f.Name,
		Calories: f.Calories,
		Protein:  f.Protein,
		Carbs:    f.Carbs,
		Fat:      f.Fat,
	}
}

// Fallback goals when the profile has no weight.
const (
	DefaultCalorieGoal = 2000
	DefaultProteinGoal = 150
)

// NutritionGoals are the daily targets for a profile.
type NutritionGoals struct {
	Calories float64 `json:"calories" yaml:"calories"`
	Protein  float64 `json:"protein" yaml:"protein"`
}

// GoalsFor derives daily goals: 15 kcal and 2 g protein per kg of body weight.
func GoalsFor(p Profile) NutritionGoals {
	if p.Weight == nil || *p.Weight <= 0 {
		return NutritionGoals{Calories: DefaultCalorieGoal, Protein: DefaultProteinGoal}
	}
	return NutritionGoals{
		Calories: *p.Weight * 15,
		Protein:  *p.Weight * 2,
	}
}
