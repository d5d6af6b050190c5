// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Drives handlers directly against a store over in-memory badger.
package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/fitness/internal/kv"
	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2026, 1, 24, 9, 0, 0, 0, time.UTC)

func setupTestServer(t *testing.T) *Server {
	t.Helper()

	backend, err := kv.OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("Failed to open badger: %v", err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	st := store.New(backend,
		store.WithClock(func() time.Time { return testNow }),
		store.WithLocation(time.UTC),
		store.WithLogger(logger),
		store.WithAuthLatency(0, 0),
		store.WithPasswordCost(bcrypt.MinCost),
	)
	t.Cleanup(func() { _ = st.Close() })
	st.LoadAll(context.Background())

	return NewServer(st, "test")
}

func TestNewServer(t *testing.T) {
	server := setupTestServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.store == nil {
		t.Error("Expected non-nil store")
	}
}

func TestHandleUpdateProfile(t *testing.T) {
	ctx := context.Background()
	name := "Alex"
	weight := 80.0
	bad := "wizard"

	tests := []struct {
		name      string
		input     updateProfileInput
		wantErr   bool
		errSubstr string
	}{
		{
			name:  "name and weight",
			input: updateProfileInput{Name: &name, Weight: &weight},
		},
		{
			name:  "goals",
			input: updateProfileInput{Goals: []string{"build_muscle", "stay_active"}},
		},
		{
			name:      "invalid gender",
			input:     updateProfileInput{Gender: &bad},
			wantErr:   true,
			errSubstr: "unknown gender",
		},
		{
			name:      "invalid fitness level",
			input:     updateProfileInput{FitnessLevel: &bad},
			wantErr:   true,
			errSubstr: "unknown fitness level",
		},
		{
			name:      "invalid goal",
			input:     updateProfileInput{Goals: []string{"fly"}},
			wantErr:   true,
			errSubstr: "unknown goal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := setupTestServer(t)
			_, out, err := server.handleUpdateProfile(ctx, &mcp.CallToolRequest{}, tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("Error %q should contain %q", err.Error(), tt.errSubstr)
				}
				if server.store.Profile().Name != "" {
					t.Error("Profile should be unchanged after a rejected update")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tt.input.Name != nil && out.Profile.Name != *tt.input.Name {
				t.Errorf("Name = %q, want %q", out.Profile.Name, *tt.input.Name)
			}
			if tt.input.Weight != nil && out.Goals.Calories != *tt.input.Weight*15 {
				t.Errorf("Calorie goal = %v, want %v", out.Goals.Calories, *tt.input.Weight*15)
			}
			if tt.input.Goals != nil && len(out.Profile.Goals) != len(tt.input.Goals) {
				t.Errorf("Goals = %v, want %v", out.Profile.Goals, tt.input.Goals)
			}
		})
	}
}

func TestHandleGetProfileDefaultGoals(t *testing.T) {
	server := setupTestServer(t)

	_, out, err := server.handleGetProfile(context.Background(), &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("handleGetProfile failed: %v", err)
	}
	if out.Goals.Calories != models.DefaultCalorieGoal || out.Goals.Protein != models.DefaultProteinGoal {
		t.Errorf("Goals = %+v, want defaults", out.Goals)
	}
	if out.Profile.Onboarded {
		t.Error("Fresh profile should not be onboarded")
	}
}

func TestHandleListWorkouts(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input listWorkoutsInput
		want  int
	}{
		{"all", listWorkoutsInput{}, 5},
		{"by date", listWorkoutsInput{Date: "2026-01-24"}, 2},
		{"unknown date", listWorkoutsInput{Date: "2030-01-01"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := server.handleListWorkouts(ctx, &mcp.CallToolRequest{}, tt.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if out.Count != tt.want || len(out.Workouts) != tt.want {
				t.Errorf("Count = %d (%d workouts), want %d", out.Count, len(out.Workouts), tt.want)
			}
		})
	}

	server.store.CompleteWorkout("1")
	_, out, _ := server.handleListWorkouts(ctx, &mcp.CallToolRequest{}, listWorkoutsInput{PendingOnly: true})
	if out.Count != 4 {
		t.Errorf("Pending count = %d, want 4", out.Count)
	}
}

func TestHandleScheduleWorkout(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	_, out, err := server.handleScheduleWorkout(ctx, &mcp.CallToolRequest{}, scheduleWorkoutInput{
		Name:     "Evening Run",
		Duration: 35,
		Calories: 310,
	})
	if err != nil {
		t.Fatalf("handleScheduleWorkout failed: %v", err)
	}
	if out.Workout.Date != "2026-01-24" {
		t.Errorf("Date = %q, want today", out.Workout.Date)
	}
	if out.Workout.Difficulty != models.LevelBeginner {
		t.Errorf("Difficulty = %q, want beginner", out.Workout.Difficulty)
	}
	if !strings.Contains(out.Message, out.Workout.ID) {
		t.Errorf("Message %q should mention the ID", out.Message)
	}
	if len(server.store.Workouts()) != 6 {
		t.Errorf("Expected 6 workouts, got %d", len(server.store.Workouts()))
	}

	_, _, err = server.handleScheduleWorkout(ctx, &mcp.CallToolRequest{}, scheduleWorkoutInput{Duration: 10})
	if err == nil {
		t.Error("Expected error for missing name")
	}
}

func TestHandleCompleteWorkout(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	_, out, err := server.handleCompleteWorkout(ctx, &mcp.CallToolRequest{}, completeWorkoutInput{WorkoutID: "1"})
	if err != nil {
		t.Fatalf("handleCompleteWorkout failed: %v", err)
	}
	if !out.Completed || out.Activity == nil {
		t.Fatalf("Expected completion with activity, got %+v", out)
	}
	if out.Activity.CaloriesBurned != 250 || out.Activity.Duration != 30 {
		t.Errorf("Activity = %+v, want 250 kcal / 30 min", out.Activity)
	}
	if out.Today.WorkoutsCompleted != 1 || out.Today.CaloriesBurned != 250 {
		t.Errorf("Today = %+v", out.Today)
	}

	_, out, err = server.handleCompleteWorkout(ctx, &mcp.CallToolRequest{}, completeWorkoutInput{WorkoutID: "missing"})
	if err != nil {
		t.Fatalf("Unknown ID should not be an error: %v", err)
	}
	if out.Completed || out.Activity != nil {
		t.Errorf("Unknown ID should not complete anything: %+v", out)
	}
	if len(server.store.Activities()) != 1 {
		t.Errorf("Expected 1 activity, got %d", len(server.store.Activities()))
	}
}

func TestHandleStatsTools(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	req := &mcp.CallToolRequest{}

	server.store.CompleteWorkout("1")
	server.store.CompleteWorkout("2")

	_, today, err := server.handleGetTodayStats(ctx, req, emptyInput{})
	if err != nil {
		t.Fatalf("handleGetTodayStats failed: %v", err)
	}
	if today.WorkoutsCompleted != 2 || today.TotalWorkouts != 2 || today.MinutesActive != 75 {
		t.Errorf("Today = %+v", today)
	}

	_, week, err := server.handleGetWeekProgress(ctx, req, emptyInput{})
	if err != nil {
		t.Fatalf("handleGetWeekProgress failed: %v", err)
	}
	if len(week.Days) != 7 {
		t.Errorf("Expected 7 days, got %d", len(week.Days))
	}
	if week.TotalCalories != 570 || week.TotalMinutes != 75 {
		t.Errorf("Week totals = %d kcal / %d min, want 570 / 75", week.TotalCalories, week.TotalMinutes)
	}

	_, streak, err := server.handleGetStreak(ctx, req, emptyInput{})
	if err != nil {
		t.Fatalf("handleGetStreak failed: %v", err)
	}
	if streak.StreakDays != 1 || streak.LongestStreak != 1 {
		t.Errorf("Streak = %+v, want 1/1", streak)
	}
}

func TestHandleLogFood(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	req := &mcp.CallToolRequest{}

	_, out, err := server.handleLogFood(ctx, req, logFoodInput{FoodID: "2"})
	if err != nil {
		t.Fatalf("handleLogFood failed: %v", err)
	}
	if out.Entry.Name != "Chicken Breast" {
		t.Errorf("Entry name = %q", out.Entry.Name)
	}
	if out.Today.Entries != 1 || out.Today.Protein != 31 {
		t.Errorf("Today = %+v", out.Today)
	}

	_, _, err = server.handleLogFood(ctx, req, logFoodInput{FoodID: "99"})
	if err == nil {
		t.Fatal("Expected error for unknown food")
	}
	if !strings.Contains(err.Error(), "Apple") {
		t.Errorf("Error %q should list the catalog", err.Error())
	}

	_, day, err := server.handleGetNutritionToday(ctx, req, emptyInput{})
	if err != nil {
		t.Fatalf("handleGetNutritionToday failed: %v", err)
	}
	if day.Calories != 165 {
		t.Errorf("Calories = %v, want 165", day.Calories)
	}
}

func TestResources(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	server.store.CompleteWorkout("1")

	tests := []struct {
		name    string
		uri     string
		handler func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error)
		field   string
	}{
		{"today", todayURI, server.handleTodayResource, "workouts"},
		{"week", weekURI, server.handleWeekResource, "days"},
		{"summary", summaryURI, server.handleSummaryResource, "summary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.handler(ctx, &mcp.ReadResourceRequest{})
			if err != nil {
				t.Fatalf("Resource handler failed: %v", err)
			}
			if len(result.Contents) != 1 {
				t.Fatalf("Expected 1 content, got %d", len(result.Contents))
			}
			content := result.Contents[0]
			if content.URI != tt.uri || content.MIMEType != "application/json" {
				t.Errorf("Content = %s (%s)", content.URI, content.MIMEType)
			}

			var doc map[string]json.RawMessage
			if err := json.Unmarshal([]byte(content.Text), &doc); err != nil {
				t.Fatalf("Resource is not JSON: %v", err)
			}
			if _, ok := doc[tt.field]; !ok {
				t.Errorf("Resource missing %q: %s", tt.field, content.Text)
			}
		})
	}
}
