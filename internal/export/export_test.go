// ABOUTME: Tests for export and import functionality.
// ABOUTME: Verifies JSON round trips, YAML output, and Markdown tables.
package export

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/store"
	"gopkg.in/yaml.v3"
)

var exportedAt = time.Date(2026, 1, 26, 18, 0, 0, 0, time.UTC)

func sampleSnapshot(t *testing.T) store.Snapshot {
	t.Helper()
	weight := gofakeit.Float64Range(50, 110)
	level := models.LevelAdvanced

	workouts := store.MockWorkouts()
	workouts[0].Completed = true
	workouts[2].Completed = true

	foods := store.MockFoods()
	return store.Snapshot{
		Profile: models.Profile{
			Name:         gofakeit.Name(),
			Weight:       &weight,
			FitnessLevel: &level,
			Goals:        []models.FitnessGoal{models.GoalBuildMuscle},
			Onboarded:    true,
		},
		Workouts: workouts,
		Activities: []models.ActivityLog{
			models.NewActivityLog(workouts[0], time.Date(2026, 1, 24, 7, 0, 0, 0, time.UTC)),
			models.NewActivityLog(workouts[2], time.Date(2026, 1, 25, 7, 0, 0, 0, time.UTC)),
		},
		Nutrition: []models.NutritionEntry{
			models.NewNutritionEntry(foods[1], time.Date(2026, 1, 25, 12, 0, 0, 0, time.UTC)),
		},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	snap := sampleSnapshot(t)
	data, err := FromSnapshot(snap, exportedAt).JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	parsed, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if parsed.Version != Version || parsed.Tool != Tool {
		t.Errorf("unexpected header %s/%s", parsed.Tool, parsed.Version)
	}

	got := parsed.Snapshot()
	if got.Profile.Name != snap.Profile.Name {
		t.Errorf("profile name = %q, want %q", got.Profile.Name, snap.Profile.Name)
	}
	if len(got.Workouts) != 5 || !got.Workouts[0].Completed {
		t.Errorf("workouts not preserved: %+v", got.Workouts)
	}
	if len(got.Activities) != 2 || got.Activities[1].CaloriesBurned != 300 {
		t.Errorf("activities not preserved: %+v", got.Activities)
	}
	if !got.Activities[0].Date.Equal(snap.Activities[0].Date) {
		t.Errorf("activity date = %v, want %v", got.Activities[0].Date, snap.Activities[0].Date)
	}
	if len(got.Nutrition) != 1 || got.Nutrition[0].Name != "Chicken Breast" {
		t.Errorf("nutrition not preserved: %+v", got.Nutrition)
	}
}

func TestParseJSONRejectsForeignFiles(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"other tool", `{"version":"1.0","tool":"health"}`},
		{"other version", `{"version":"2.0","tool":"fitness"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.data))
			if !errors.Is(err, ErrUnsupported) {
				t.Errorf("expected ErrUnsupported, got %v", err)
			}
		})
	}

	if _, err := ParseJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}

	dup := `{"version":"1.0","tool":"fitness","workouts":[{"id":"1","name":"a"},{"id":"1","name":"b"}]}`
	if _, err := ParseJSON([]byte(dup)); err == nil {
		t.Error("expected error for duplicate workout ids")
	}
}

func TestSnapshotFillsMissingGoals(t *testing.T) {
	d, err := ParseJSON([]byte(`{"version":"1.0","tool":"fitness","profile":{"name":"Kim"}}`))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if d.Snapshot().Profile.Goals == nil {
		t.Error("expected non-nil goals")
	}
}

func TestYAML(t *testing.T) {
	snap := sampleSnapshot(t)
	data, err := FromSnapshot(snap, exportedAt).YAML()
	if err != nil {
		t.Fatalf("YAML failed: %v", err)
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}
	if parsed["tool"] != "fitness" {
		t.Errorf("tool = %v, want fitness", parsed["tool"])
	}
	profile, ok := parsed["profile"].(map[string]any)
	if !ok {
		t.Fatalf("profile missing from YAML: %s", data)
	}
	if profile["fitness_level"] != "advanced" {
		t.Errorf("fitness_level = %v, want advanced", profile["fitness_level"])
	}
	if !strings.Contains(string(data), "calories_burned: 300") {
		t.Errorf("expected activity calories in YAML:\n%s", data)
	}
}

func TestMarkdown(t *testing.T) {
	snap := sampleSnapshot(t)
	md := FromSnapshot(snap, exportedAt).Markdown(nil)

	for _, want := range []string{
		"# Fitness Export - 2026-01-26",
		"## Profile",
		"- Name: " + snap.Profile.Name,
		"- Goals: build_muscle",
		"- Workouts logged: 2",
		"- Calories burned: 550",
		"| 2026-01-24 | Morning Cardio | 30 min | 250 | beginner | ✓ |",
		"| 2026-01-25 07:00 | HIIT Training | 25 min | 300 |",
		"| 2026-01-25 12:00 | Chicken Breast | 165 | 31.0 g | 0.0 g | 3.6 g |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
}

func TestMarkdownSince(t *testing.T) {
	snap := sampleSnapshot(t)
	since := time.Date(2026, 1, 25, 0, 0, 0, 0, time.UTC)
	md := FromSnapshot(snap, exportedAt).Markdown(&since)

	if strings.Contains(md, "2026-01-24 07:00") {
		t.Error("activity before --since should be dropped")
	}
	if !strings.Contains(md, "- Workouts logged: 1") {
		t.Errorf("summary should only count filtered activity:\n%s", md)
	}
	if !strings.Contains(md, "| 2026-01-24 | Morning Cardio") {
		t.Error("schedule should always be included")
	}
}
