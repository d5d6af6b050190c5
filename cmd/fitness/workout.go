// ABOUTME: CLI commands for the workout schedule and activity log.
// ABOUTME: Supports list, schedule, complete, and the activity history.
package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/models"
	"github.com/spf13/cobra"
)

var (
	workoutListDate    string
	workoutListPending bool

	scheduleDuration   int
	scheduleCalories   int
	scheduleDifficulty string
	scheduleDate       string

	activityLimit int
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage scheduled workouts",
	Long: `Manage scheduled workouts.

Examples:
  fitness workout list
  fitness workout list --date 2026-01-24 --pending
  fitness workout schedule "Evening Run" --duration 35 --calories 310
  fitness workout complete 1`,
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List scheduled workouts",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if workoutListDate != "" {
			if _, err := time.Parse(models.DateLayout, workoutListDate); err != nil {
				return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", workoutListDate)
			}
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		shown := 0
		for _, w := range st.Workouts() {
			if workoutListDate != "" && w.Date != workoutListDate {
				continue
			}
			if workoutListPending && w.Completed {
				continue
			}
			mark := " "
			if w.Completed {
				mark = color.GreenString("✓")
			}
			fmt.Fprintf(out, "%s %s %s %s %3d min %4d kcal %s\n",
				mark,
				faint.Sprint(padRight(w.ID, 8)),
				w.Date,
				padRight(truncate(w.Name, 24), 24),
				w.Duration,
				w.Calories,
				faint.Sprint(w.Difficulty))
			shown++
		}

		if shown == 0 {
			fmt.Fprintln(out, "No workouts found.")
		}
		return nil
	},
}

var workoutScheduleCmd = &cobra.Command{
	Use:   "schedule <name>",
	Short: "Add a workout to the schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := st.ScheduleWorkout(models.Workout{
			Name:       args[0],
			Duration:   scheduleDuration,
			Calories:   scheduleCalories,
			Difficulty: models.FitnessLevel(scheduleDifficulty),
			Date:       scheduleDate,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Scheduled %s on %s", w.Name, w.Date))
		fmt.Fprintf(out, "  %s %d min, %d kcal, %s\n",
			color.New(color.Faint).Sprint(w.ID), w.Duration, w.Calories, w.Difficulty)
		return nil
	},
}

var workoutCompleteCmd = &cobra.Command{
	Use:     "complete <id>",
	Aliases: []string{"done"},
	Short:   "Mark a workout completed",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		entry, ok := st.CompleteWorkout(args[0])
		if !ok {
			fmt.Fprintln(out, color.YellowString("No workout with ID %s", args[0]))
			return nil
		}

		today := st.TodayStats()
		fmt.Fprintln(out, color.GreenString("✓ Completed workout %s", args[0]))
		fmt.Fprintf(out, "  +%d kcal, +%d min\n", entry.CaloriesBurned, entry.Duration)
		fmt.Fprintf(out, "  Today: %d/%d workouts, %d kcal, %d min\n",
			today.WorkoutsCompleted, today.TotalWorkouts, today.CaloriesBurned, today.MinutesActive)
		return nil
	},
}

var activityCmd = &cobra.Command{
	Use:     "activity",
	Aliases: []string{"log"},
	Short:   "Show completed workout history",
	Long: `Show the activity log, newest first.

Examples:
  fitness activity
  fitness activity -n 50`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		acts := st.Activities()
		if len(acts) == 0 {
			fmt.Fprintln(out, "No activity logged yet.")
			return nil
		}
		sort.SliceStable(acts, func(i, j int) bool { return acts[i].Date.After(acts[j].Date) })
		if activityLimit > 0 && len(acts) > activityLimit {
			acts = acts[:activityLimit]
		}

		names := make(map[string]string)
		for _, w := range st.Workouts() {
			names[w.ID] = w.Name
		}

		faint := color.New(color.Faint)
		loc := st.Location()
		for _, a := range acts {
			name := names[a.WorkoutID]
			if name == "" {
				name = a.WorkoutID
			}
			fmt.Fprintf(out, "%s %s %3d min %4d kcal\n",
				faint.Sprint(a.Date.In(loc).Format("2006-01-02 15:04")),
				padRight(truncate(name, 24), 24),
				a.Duration,
				a.CaloriesBurned)
		}
		return nil
	},
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	n := len([]rune(s))
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}

func init() {
	workoutListCmd.Flags().StringVar(&workoutListDate, "date", "", "only show workouts on this day (YYYY-MM-DD)")
	workoutListCmd.Flags().BoolVar(&workoutListPending, "pending", false, "hide completed workouts")

	workoutScheduleCmd.Flags().IntVarP(&scheduleDuration, "duration", "d", 30, "duration in minutes")
	workoutScheduleCmd.Flags().IntVarP(&scheduleCalories, "calories", "c", 0, "expected calories burned")
	workoutScheduleCmd.Flags().StringVar(&scheduleDifficulty, "difficulty", "", "beginner, intermediate, advanced (default beginner)")
	workoutScheduleCmd.Flags().StringVar(&scheduleDate, "date", "", "day to schedule (YYYY-MM-DD, default today)")

	activityCmd.Flags().IntVarP(&activityLimit, "limit", "n", 20, "max number of entries")

	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutScheduleCmd)
	workoutCmd.AddCommand(workoutCompleteCmd)

	rootCmd.AddCommand(workoutCmd)
	rootCmd.AddCommand(activityCmd)
}
