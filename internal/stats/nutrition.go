// ABOUTME: Daily nutrition totals against profile-derived goals.
// ABOUTME: Sums today's logged servings in the caller's time zone.
package stats

import (
	"time"

	"github.com/harperreed/fitness/internal/models"
)

// NutritionDay is today's intake and targets.
type NutritionDay struct {
	Date     string                `json:"date"`
	Entries  int                   `json:"entries"`
	Calories float64               `json:"calories"`
	Protein  float64               `json:"protein"`
	Carbs    float64               `json:"carbs"`
	Fat      float64               `json:"fat"`
	Goals    models.NutritionGoals `json:"goals"`
}

// Nutrition sums the entries logged on now's calendar day.
func Nutrition(entries []models.NutritionEntry, profile models.Profile, now time.Time) NutritionDay {
	today := DayKey(now, now.Location())
	day := NutritionDay{
		Date:  today,
		Goals: models.GoalsFor(profile),
	}
	for _, e := range entries {
		if DayKey(e.Date, now.Location()) != today {
			continue
		}
		day.Entries++
		day.Calories += e.Calories
		day.Protein += e.Protein
		day.Carbs += e.Carbs
		day.Fat += e.Fat
	}
	return day
}
