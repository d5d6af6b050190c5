// ABOUTME: Storage keys and the mock dataset used when nothing is persisted yet.
// ABOUTME: Seed slices are rebuilt on every call so callers never share them.
package store

import "github.com/harperreed/fitness/internal/models"

// Keys under which each document is persisted.
const (
	ProfileKey     = "@fitness_user_profile"
	WorkoutsKey    = "@fitness_workouts"
	ActivityKey    = "@fitness_activity"
	AuthTokenKey   = "@fitness_auth_token"
	CredentialsKey = "@fitness_user_credentials"
	NutritionKey   = "@fitness_nutrition"
)

// AllKeys lists every persisted key, in load order.
var AllKeys = []string{ProfileKey, WorkoutsKey, ActivityKey, AuthTokenKey, CredentialsKey, NutritionKey}

// MockWorkouts returns the seed schedule.
func MockWorkouts() []models.Workout {
	return []models.Workout{
		{ID: "1", Name: "Morning Cardio", Duration: 30, Calories: 250, Difficulty: models.LevelBeginner, Date: "2026-01-24"},
		{ID: "2", Name: "Full Body Strength", Duration: 45, Calories: 320, Difficulty: models.LevelIntermediate, Date: "2026-01-24"},
		{ID: "3", Name: "HIIT Training", Duration: 25, Calories: 300, Difficulty: models.LevelAdvanced, Date: "2026-01-25"},
		{ID: "4", Name: "Yoga Flow", Duration: 40, Calories: 180, Difficulty: models.LevelBeginner, Date: "2026-01-26"},
		{ID: "5", Name: "Core Blast", Duration: 20, Calories: 150, Difficulty: models.LevelIntermediate, Date: "2026-01-27"},
	}
}

// MockFoods returns the food catalog.
func MockFoods() []models.Food {
	return []models.Food{
		{ID: "1", Name: "Apple", Calories: 95, Protein: 0.5, Carbs: 25, Fat: 0.3, Category: models.FoodFruit},
		{ID: "2", Name: "Chicken Breast", Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6, Category: models.FoodProtein},
		{ID: "3", Name: "Greek Yogurt", Calories: 100, Protein: 10, Carbs: 6, Fat: 0.7, Category: models.FoodDairy},
		{ID: "4", Name: "Brown Rice", Calories: 216, Protein: 5, Carbs: 45, Fat: 1.8, Category: models.FoodGrain},
		{ID: "5", Name: "Broccoli", Calories: 55, Protein: 3.7, Carbs: 11, Fat: 0.6, Category: models.FoodVegetable},
	}
}
