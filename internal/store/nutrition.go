// ABOUTME: Food catalog lookups and the nutrition log.
// ABOUTME: Entries are append-only copies of the catalog item at log time.
package store

import (
	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/stats"
)

// Foods returns the food catalog.
func (s *Store) Foods() []models.Food {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Food{}, s.foods...)
}

// NutritionLog returns a copy of every logged serving, oldest first.
func (s *Store) NutritionLog() []models.NutritionEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.NutritionEntry{}, s.nutrition...)
}

// LogFood records one serving of the catalog food with foodID.
// Unknown ids are ignored.
func (s *Store) LogFood(foodID string) (models.NutritionEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.foods {
		if f.ID != foodID {
			continue
		}
		entry := models.NewNutritionEntry(f, s.now())
		s.nutrition = append(append([]models.NutritionEntry{}, s.nutrition...), entry)
		s.persist(NutritionKey, s.nutrition)
		return entry, true
	}
	return models.NutritionEntry{}, false
}

// TodayNutrition sums today's servings against the profile's goals.
func (s *Store) TodayNutrition() stats.NutritionDay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stats.Nutrition(s.nutrition, s.profile, s.today())
}
