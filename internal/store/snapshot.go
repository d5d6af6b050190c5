// ABOUTME: Whole-state snapshot used by export and import.
// ABOUTME: Restore replaces every user document and persists each one.
package store

import (
	"github.com/harperreed/fitness/internal/kv"
	"github.com/harperreed/fitness/internal/models"
)

// Snapshot is a copy of all user data, excluding the session and credential.
type Snapshot struct {
	Profile    models.Profile          `json:"profile" yaml:"profile"`
	Workouts   []models.Workout        `json:"workouts" yaml:"workouts"`
	Activities []models.ActivityLog    `json:"activities" yaml:"activities"`
	Nutrition  []models.NutritionEntry `json:"nutrition" yaml:"nutrition"`
}

// Snapshot copies the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Profile:    s.profile.Clone(),
		Workouts:   append([]models.Workout{}, s.workouts...),
		Activities: append([]models.ActivityLog{}, s.activities...),
		Nutrition:  append([]models.NutritionEntry{}, s.nutrition...),
	}
}

// Restore replaces the profile, schedule, and logs with snap. Backends that
// sync after each write are synced once, after all documents land.
func (s *Store) Restore(snap Snapshot) {
	if as, ok := s.backend.(kv.AutoSyncer); ok {
		as.SetAutoSync(false)
		defer func() {
			s.queue.flush()
			if err := as.Sync(); err != nil {
				s.log.WithError(err).Warn("sync after restore")
			}
			as.SetAutoSync(true)
		}()
	}

	profile := snap.Profile.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
	s.workouts = append([]models.Workout{}, snap.Workouts...)
	s.activities = append([]models.ActivityLog{}, snap.Activities...)
	s.nutrition = append([]models.NutritionEntry{}, snap.Nutrition...)

	s.persist(ProfileKey, s.profile)
	s.persist(WorkoutsKey, s.workouts)
	s.persist(ActivityKey, s.activities)
	s.persist(NutritionKey, s.nutrition)
}
