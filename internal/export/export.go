// ABOUTME: Export and import of fitness data.
// ABOUTME: Supports JSON (re-importable), YAML, and Markdown export formats.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/stats"
	"github.com/harperreed/fitness/internal/store"
	"gopkg.in/yaml.v3"
)

const (
	Version = "1.0"
	Tool    = "fitness"
)

// ErrUnsupported is returned when importing a file produced by another tool or version.
var ErrUnsupported = errors.New("unsupported export file")

// ExportData represents the full export format for fitness data.
type ExportData struct {
	Version    string                  `json:"version" yaml:"version"`
	ExportedAt time.Time               `json:"exported_at" yaml:"exported_at"`
	Tool       string                  `json:"tool" yaml:"tool"`
	Profile    models.Profile          `json:"profile" yaml:"profile"`
	Workouts   []models.Workout        `json:"workouts" yaml:"workouts"`
	Activities []models.ActivityLog    `json:"activities" yaml:"activities"`
	Nutrition  []models.NutritionEntry `json:"nutrition" yaml:"nutrition"`
}

// FromSnapshot wraps a store snapshot for export.
func FromSnapshot(snap store.Snapshot, now time.Time) *ExportData {
	return &ExportData{
		Version:    Version,
		ExportedAt: now,
		Tool:       Tool,
		Profile:    snap.Profile,
		Workouts:   snap.Workouts,
		Activities: snap.Activities,
		Nutrition:  snap.Nutrition,
	}
}

// Snapshot converts the export back into store state.
func (d *ExportData) Snapshot() store.Snapshot {
	profile := d.Profile
	if profile.Goals == nil {
		profile.Goals = []models.FitnessGoal{}
	}
	return store.Snapshot{
		Profile:    profile,
		Workouts:   d.Workouts,
		Activities: d.Activities,
		Nutrition:  d.Nutrition,
	}
}

// JSON exports all data as indented JSON.
func (d *ExportData) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// YAML exports all data as YAML.
func (d *ExportData) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}

// ParseJSON reads a JSON export produced by this tool.
func ParseJSON(data []byte) (*ExportData, error) {
	var out ExportData
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	if out.Tool != Tool {
		return nil, fmt.Errorf("%w: tool %q", ErrUnsupported, out.Tool)
	}
	if out.Version != Version {
		return nil, fmt.Errorf("%w: version %q", ErrUnsupported, out.Version)
	}
	seen := make(map[string]bool, len(out.Workouts))
	for _, w := range out.Workouts {
		if seen[w.ID] {
			return nil, fmt.Errorf("duplicate workout id %s", w.ID)
		}
		seen[w.ID] = true
	}
	return &out, nil
}

// Markdown renders the data as tables. A non-nil since drops older activity
// and nutrition entries; the schedule is always included.
func (d *ExportData) Markdown(since *time.Time) string {
	activities := d.Activities
	nutrition := d.Nutrition
	if since != nil {
		activities = nil
		for _, a := range d.Activities {
			if !a.Date.Before(*since) {
				activities = append(activities, a)
			}
		}
		nutrition = nil
		for _, n := range d.Nutrition {
			if !n.Date.Before(*since) {
				nutrition = append(nutrition, n)
			}
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Fitness Export - %s\n\n", d.ExportedAt.Format(models.DateLayout))
	fmt.Fprintf(&sb, "Generated: %s\n\n", d.ExportedAt.Format(time.RFC3339))

	writeProfile(&sb, d.Profile)

	summary := stats.Summarize(activities, d.ExportedAt)
	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- Workouts logged: %d\n", summary.TotalWorkouts)
	fmt.Fprintf(&sb, "- Calories burned: %d\n", summary.TotalCalories)
	fmt.Fprintf(&sb, "- Active minutes: %d\n", summary.TotalMinutes)
	fmt.Fprintf(&sb, "- Longest streak: %d days\n\n", summary.LongestStreak)

	if len(d.Workouts) > 0 {
		sb.WriteString("## Workouts\n\n")
		sb.WriteString("| Date | Name | Duration | Calories | Difficulty | Done |\n")
		sb.WriteString("|------|------|----------|----------|------------|------|\n")
		for _, w := range d.Workouts {
			done := ""
			if w.Completed {
				done = "✓"
			}
			fmt.Fprintf(&sb, "| %s | %s | %d min | %d | %s | %s |\n",
				w.Date, w.Name, w.Duration, w.Calories, w.Difficulty, done)
		}
		sb.WriteString("\n")
	}

	if len(activities) > 0 {
		names := make(map[string]string, len(d.Workouts))
		for _, w := range d.Workouts {
			names[w.ID] = w.Name
		}
		sb.WriteString("## Activity\n\n")
		sb.WriteString("| Date | Workout | Duration | Calories |\n")
		sb.WriteString("|------|---------|----------|----------|\n")
		for _, a := range activities {
			name := names[a.WorkoutID]
			if name == "" {
				name = a.WorkoutID
			}
			fmt.Fprintf(&sb, "| %s | %s | %d min | %d |\n",
				a.Date.Format("2006-01-02 15:04"), name, a.Duration, a.CaloriesBurned)
		}
		sb.WriteString("\n")
	}

	if len(nutrition) > 0 {
		sb.WriteString("## Nutrition\n\n")
		sb.WriteString("| Date | Food | Calories | Protein | Carbs | Fat |\n")
		sb.WriteString("|------|------|----------|---------|-------|-----|\n")
		for _, n := range nutrition {
			fmt.Fprintf(&sb, "| %s | %s | %.0f | %.1f g | %.1f g | %.1f g |\n",
				n.Date.Format("2006-01-02 15:04"), n.Name, n.Calories, n.Protein, n.Carbs, n.Fat)
		}
	}

	return sb.String()
}

func writeProfile(sb *strings.Builder, p models.Profile) {
	sb.WriteString("## Profile\n\n")
	name := p.Name
	if name == "" {
		name = "(not set)"
	}
	fmt.Fprintf(sb, "- Name: %s\n", name)
	if p.Age != nil {
		fmt.Fprintf(sb, "- Age: %d\n", *p.Age)
	}
	if p.Height != nil {
		fmt.Fprintf(sb, "- Height: %.0f cm\n", *p.Height)
	}
	if p.Weight != nil {
		fmt.Fprintf(sb, "- Weight: %.1f kg\n", *p.Weight)
	}
	if p.FitnessLevel != nil {
		fmt.Fprintf(sb, "- Level: %s\n", *p.FitnessLevel)
	}
	if len(p.Goals) > 0 {
		goals := make([]string, len(p.Goals))
		for i, g := range p.Goals {
			goals[i] = string(g)
		}
		fmt.Fprintf(sb, "- Goals: %s\n", strings.Join(goals, ", "))
	}
	sb.WriteString("\n")
}
