// ABOUTME: MCP tool implementations for fitness data.
// ABOUTME: Each handler delegates to the store and returns structured output.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_profile",
		Description: "Get the user's fitness profile and derived daily nutrition goals",
	}, s.handleGetProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_profile",
		Description: "Update profile fields; omitted fields are left unchanged",
	}, s.handleUpdateProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List scheduled workouts, optionally for one date or only pending ones",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "schedule_workout",
		Description: "Add a workout to the schedule",
	}, s.handleScheduleWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "complete_workout",
		Description: "Mark a workout completed and log the activity",
	}, s.handleCompleteWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_today_stats",
		Description: "Workouts completed, calories burned, and active minutes for today",
	}, s.handleGetTodayStats)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_week_progress",
		Description: "Calories and workout minutes per day for the last 7 days",
	}, s.handleGetWeekProgress)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_streak",
		Description: "Current and longest streak of consecutive active days",
	}, s.handleGetStreak)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_food",
		Description: "Log one serving of a catalog food",
	}, s.handleLogFood)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_nutrition_today",
		Description: "Today's calorie and macro totals against goals",
	}, s.handleGetNutritionToday)
}

// Tool input/output types

type emptyInput struct{}

type profileOutput struct {
	Profile models.Profile        `json:"profile"`
	Goals   models.NutritionGoals `json:"nutrition_goals"`
}

type updateProfileInput struct {
	Name         *string  `json:"name,omitempty" jsonschema:"Display name"`
	Age          *int     `json:"age,omitempty" jsonschema:"Age in years"`
	Gender       *string  `json:"gender,omitempty" jsonschema:"male, female, other or prefer_not_to_say"`
	Height       *float64 `json:"height,omitempty" jsonschema:"Height in cm"`
	Weight       *float64 `json:"weight,omitempty" jsonschema:"Weight in kg"`
	FitnessLevel *string  `json:"fitness_level,omitempty" jsonschema:"beginner, intermediate or advanced"`
	Goals        []string `json:"goals,omitempty" jsonschema:"Replaces the goal list: lose_weight, build_muscle, stay_active, improve_stamina"`
	Onboarded    *bool    `json:"onboarded,omitempty" jsonschema:"Mark onboarding finished"`
}

type listWorkoutsInput struct {
	Date        string `json:"date,omitempty" jsonschema:"Only workouts on this day (YYYY-MM-DD)"`
	PendingOnly bool   `json:"pending_only,omitempty" jsonschema:"Hide completed workouts"`
}

type workoutsOutput struct {
	Workouts []models.Workout `json:"workouts"`
	Count    int              `json:"count"`
}

type scheduleWorkoutInput struct {
	Name       string `json:"name" jsonschema:"Workout name"`
	Duration   int    `json:"duration" jsonschema:"Duration in minutes"`
	Calories   int    `json:"calories" jsonschema:"Expected calories burned"`
	Difficulty string `json:"difficulty,omitempty" jsonschema:"beginner, intermediate or advanced (default beginner)"`
	Date       string `json:"date,omitempty" jsonschema:"Day to schedule (YYYY-MM-DD), defaults to today"`
}

type workoutOutput struct {
	Workout models.Workout `json:"workout"`
	Message string         `json:"message"`
}

type completeWorkoutInput struct {
	WorkoutID string `json:"workout_id" jsonschema:"ID of the workout to complete"`
}

type completeWorkoutOutput struct {
	Completed bool                `json:"completed"`
	Activity  *models.ActivityLog `json:"activity,omitempty"`
	Today     stats.TodayStats    `json:"today"`
	Message   string              `json:"message"`
}

type weekOutput struct {
	Days          []models.ProgressData `json:"days"`
	TotalCalories int                   `json:"total_calories"`
	TotalMinutes  int                   `json:"total_minutes"`
}

type streakOutput struct {
	StreakDays    int `json:"streak_days"`
	LongestStreak int `json:"longest_streak"`
}

type logFoodInput struct {
	FoodID string `json:"food_id" jsonschema:"Catalog food ID (1 Apple, 2 Chicken Breast, 3 Greek Yogurt, 4 Brown Rice, 5 Broccoli)"`
}

type logFoodOutput struct {
	Entry models.NutritionEntry `json:"entry"`
	Today stats.NutritionDay    `json:"today"`
}

// Tool handlers

func (s *Server) handleGetProfile(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, profileOutput, error) {
	p := s.store.Profile()
	return nil, profileOutput{Profile: p, Goals: models.GoalsFor(p)}, nil
}

func (s *Server) handleUpdateProfile(ctx context.Context, req *mcp.CallToolRequest, input updateProfileInput) (*mcp.CallToolResult, profileOutput, error) {
	update := models.ProfileUpdate{
		Name:      input.Name,
		Age:       input.Age,
		Height:    input.Height,
		Weight:    input.Weight,
		Onboarded: input.Onboarded,
	}
	if input.Gender != nil {
		if !models.IsValidGender(*input.Gender) {
			return nil, profileOutput{}, fmt.Errorf("unknown gender: %s", *input.Gender)
		}
		g := models.Gender(*input.Gender)
		update.Gender = &g
	}
	if input.FitnessLevel != nil {
		if !models.IsValidFitnessLevel(*input.FitnessLevel) {
			return nil, profileOutput{}, fmt.Errorf("unknown fitness level: %s", *input.FitnessLevel)
		}
		l := models.FitnessLevel(*input.FitnessLevel)
		update.FitnessLevel = &l
	}
	if input.Goals != nil {
		update.Goals = []models.FitnessGoal{}
		for _, g := range input.Goals {
			if !models.IsValidGoal(g) {
				return nil, profileOutput{}, fmt.Errorf("unknown goal: %s", g)
			}
			update.Goals = append(update.Goals, models.FitnessGoal(g))
		}
	}

	p := s.store.UpdateProfile(update)
	return nil, profileOutput{Profile: p, Goals: models.GoalsFor(p)}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, workoutsOutput, error) {
	out := workoutsOutput{Workouts: []models.Workout{}}
	for _, w := range s.store.Workouts() {
		if input.Date != "" && w.Date != input.Date {
			continue
		}
		if input.PendingOnly && w.Completed {
			continue
		}
		out.Workouts = append(out.Workouts, w)
	}
	out.Count = len(out.Workouts)
	return nil, out, nil
}

func (s *Server) handleScheduleWorkout(ctx context.Context, req *mcp.CallToolRequest, input scheduleWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	w, err := s.store.ScheduleWorkout(models.Workout{
		Name:       input.Name,
		Duration:   input.Duration,
		Calories:   input.Calories,
		Difficulty: models.FitnessLevel(input.Difficulty),
		Date:       input.Date,
	})
	if err != nil {
		return nil, workoutOutput{}, err
	}
	return nil, workoutOutput{
		Workout: w,
		Message: fmt.Sprintf("Scheduled %s on %s (ID: %s)", w.Name, w.Date, w.ID),
	}, nil
}

func (s *Server) handleCompleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input completeWorkoutInput) (*mcp.CallToolResult, completeWorkoutOutput, error) {
	entry, ok := s.store.CompleteWorkout(input.WorkoutID)
	out := completeWorkoutOutput{Completed: ok, Today: s.store.TodayStats()}
	if !ok {
		out.Message = fmt.Sprintf("No workout with ID %s; nothing changed.", input.WorkoutID)
		return nil, out, nil
	}
	out.Activity = &entry
	out.Message = fmt.Sprintf("Completed workout %s: %d kcal, %d min", input.WorkoutID, entry.CaloriesBurned, entry.Duration)
	return nil, out, nil
}

func (s *Server) handleGetTodayStats(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, stats.TodayStats, error) {
	return nil, s.store.TodayStats(), nil
}

func (s *Server) handleGetWeekProgress(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, weekOutput, error) {
	out := weekOutput{Days: s.store.WeekProgress()}
	for _, d := range out.Days {
		out.TotalCalories += d.CaloriesBurned
		out.TotalMinutes += d.WorkoutMinutes
	}
	return nil, out, nil
}

func (s *Server) handleGetStreak(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, streakOutput, error) {
	summary := s.store.Summary()
	return nil, streakOutput{StreakDays: summary.CurrentStreak, LongestStreak: summary.LongestStreak}, nil
}

func (s *Server) handleLogFood(ctx context.Context, req *mcp.CallToolRequest, input logFoodInput) (*mcp.CallToolResult, logFoodOutput, error) {
	entry, ok := s.store.LogFood(input.FoodID)
	if !ok {
		var ids []string
		for _, f := range s.store.Foods() {
			ids = append(ids, f.ID+" "+f.Name)
		}
		return nil, logFoodOutput{}, fmt.Errorf("unknown food: %s (catalog: %s)", input.FoodID, strings.Join(ids, ", "))
	}
	return nil, logFoodOutput{Entry: entry, Today: s.store.TodayNutrition()}, nil
}

func (s *Server) handleGetNutritionToday(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, stats.NutritionDay, error) {
	return nil, s.store.TodayNutrition(), nil
}
