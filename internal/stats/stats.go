// ABOUTME: Derived fitness aggregates computed from workouts and activity logs.
// ABOUTME: Today's stats, trailing week progress, streaks, and lifetime summary.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/harperreed/fitness/internal/models"
)

// WeekDays is the length of the trailing progress window.
const WeekDays = 7

// TodayStats summarizes the current calendar day.
type TodayStats struct {
	WorkoutsCompleted int `json:"workoutsCompleted"`
	TotalWorkouts     int `json:"totalWorkouts"`
	CaloriesBurned    int `json:"caloriesBurned"`
	MinutesActive     int `json:"minutesActive"`
}

// Summary is the lifetime view over the whole activity log.
type Summary struct {
	TotalWorkouts         int `json:"totalWorkouts"`
	TotalCalories         int `json:"totalCalories"`
	TotalMinutes          int `json:"totalMinutes"`
	AverageWorkoutMinutes int `json:"averageWorkoutMinutes"`
	CurrentStreak         int `json:"currentStreak"`
	LongestStreak         int `json:"longestStreak"`
}

// DayKey returns the calendar day of t in loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(models.DateLayout)
}

// Today computes today's stats. The calendar day is taken from now's location.
func Today(workouts []models.Workout, activities []models.ActivityLog, now time.Time) TodayStats {
	today := DayKey(now, now.Location())

	var s TodayStats
	for _, w := range workouts {
		if w.Date != today {
			continue
		}
		s.TotalWorkouts++
		if w.Completed {
			s.WorkoutsCompleted++
		}
	}
	for _, a := range activities {
		if DayKey(a.Date, now.Location()) == today {
			s.CaloriesBurned += a.CaloriesBurned
			s.MinutesActive += a.Duration
		}
	}
	return s
}

// Week returns exactly WeekDays entries, oldest first, ending on now's day.
func Week(activities []models.ActivityLog, now time.Time) []models.ProgressData {
	loc := now.Location()
	noon := middayOf(now)

	byDay := make(map[string]*models.ProgressData, WeekDays)
	days := make([]models.ProgressData, WeekDays)
	for i := 0; i < WeekDays; i++ {
		day := noon.AddDate(0, 0, -(WeekDays - 1 - i))
		days[i].Date = day.Format(models.DateLayout)
		byDay[days[i].Date] = &days[i]
	}

	for _, a := range activities {
		if d, ok := byDay[DayKey(a.Date, loc)]; ok {
			d.CaloriesBurned += a.CaloriesBurned
			d.WorkoutMinutes += a.Duration
		}
	}
	return days
}

// Streak counts consecutive days with activity walking back from now's day.
// It is 0 when there is no activity today.
func Streak(activities []models.ActivityLog, now time.Time) int {
	active := activeDays(activities, now.Location())

	streak := 0
	for day := middayOf(now); active[day.Format(models.DateLayout)]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of consecutive active days in loc.
func LongestStreak(activities []models.ActivityLog, loc *time.Location) int {
	active := activeDays(activities, loc)
	if len(active) == 0 {
		return 0
	}

	keys := make([]string, 0, len(active))
	for k := range active {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	longest, run := 1, 1
	for i := 1; i < len(keys); i++ {
		if nextDay(keys[i-1], loc) == keys[i] {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// Summarize builds the lifetime summary.
func Summarize(activities []models.ActivityLog, now time.Time) Summary {
	s := Summary{
		TotalWorkouts: len(activities),
		CurrentStreak: Streak(activities, now),
		LongestStreak: LongestStreak(activities, now.Location()),
	}
	for _, a := range activities {
		s.TotalCalories += a.CaloriesBurned
		s.TotalMinutes += a.Duration
	}
	if s.TotalWorkouts > 0 {
		s.AverageWorkoutMinutes = int(math.Round(float64(s.TotalMinutes) / float64(s.TotalWorkouts)))
	}
	return s
}

func activeDays(activities []models.ActivityLog, loc *time.Location) map[string]bool {
	days := make(map[string]bool, len(activities))
	for _, a := range activities {
		days[DayKey(a.Date, loc)] = true
	}
	return days
}

func nextDay(key string, loc *time.Location) string {
	day, err := time.ParseInLocation(models.DateLayout, key, loc)
	if err != nil {
		return ""
	}
	return middayOf(day).AddDate(0, 0, 1).Format(models.DateLayout)
}

// middayOf anchors t at noon so day arithmetic never trips over DST shifts.
func middayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
}
