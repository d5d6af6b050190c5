// ABOUTME: Workout and ActivityLog models for scheduled training.
// ABOUTME: Workouts are calendar-day entries; activity logs record completions.
package models

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day format used for workout dates and day buckets.
const DateLayout = "2006-01-02"

// Workout is a scheduled training session on a calendar day.
type Workout struct {
	ID         string       `json:"id" yaml:"id"`
	Name       string       `json:"name" yaml:"name"`
	Duration   int          `json:"duration" yaml:"duration"`
	Calories   int          `json:"calories" yaml:"calories"`
	Difficulty FitnessLevel `json:"difficulty" yaml:"difficulty"`
	Date       string       `json:"date" yaml:"date"`
	Completed  bool         `json:"completed" yaml:"completed"`
}

// NewWorkout creates a new Workout with a generated ID scheduled on day.
func NewWorkout(name string, duration, calories int, difficulty FitnessLevel, day time.Time) *Workout {
	return &Workout{
		ID:         uuid.New().String(),
		Name:       name,
		Duration:   duration,
		Calories:   calories,
		Difficulty: difficulty,
		Date:       day.Format(DateLayout),
	}
}

// ActivityLog records a single workout completion. Entries are never mutated.
type ActivityLog struct {
	ID             string    `json:"id" yaml:"id"`
	Date           time.Time `json:"date" yaml:"date"`
	WorkoutID      string    `json:"workoutId" yaml:"workout_id"`
	CaloriesBurned int       `json:"caloriesBurned" yaml:"calories_burned"`
	Duration       int       `json:"duration" yaml:"duration"`
}

// NewActivityLog creates the log entry for completing w at the given time.
func NewActivityLog(w Workout, at time.Time) ActivityLog {
	return ActivityLog{
		ID:             uuid.New().String(),
		Date:           at,
		WorkoutID:      w.ID,
		CaloriesBurned: w.Calories,
		Duration:       w.Duration,
	}
}

// ProgressData is one calendar day of aggregated activity.
type ProgressData struct {
	Date           string   `json:"date" yaml:"date"`
	Weight         *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	CaloriesBurned int      `json:"caloriesBurned" yaml:"calories_burned"`
	WorkoutMinutes int      `json:"workoutMinutes" yaml:"workout_minutes"`
}
