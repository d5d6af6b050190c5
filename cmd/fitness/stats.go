// ABOUTME: CLI commands for derived progress statistics.
// ABOUTME: Shows today, the trailing week, the streak, and lifetime totals.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// barWidth is the widest bar in the week chart.
const barWidth = 30

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress statistics",
}

var statsTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Workouts, calories, and minutes for today",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := st.TodayStats()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Workouts:  %d/%d\n", s.WorkoutsCompleted, s.TotalWorkouts)
		fmt.Fprintf(out, "Calories:  %d kcal\n", s.CaloriesBurned)
		fmt.Fprintf(out, "Active:    %d min\n", s.MinutesActive)
		fmt.Fprintf(out, "Streak:    %d days\n", st.StreakDays())
		return nil
	},
}

var statsWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Calories and minutes for the last 7 days",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		days := st.WeekProgress()

		maxCal := 0
		for _, d := range days {
			if d.CaloriesBurned > maxCal {
				maxCal = d.CaloriesBurned
			}
		}

		out := cmd.OutOrStdout()
		totalCal, totalMin := 0, 0
		for _, d := range days {
			bar := ""
			if maxCal > 0 {
				bar = strings.Repeat("█", d.CaloriesBurned*barWidth/maxCal)
			}
			fmt.Fprintf(out, "%s %4d kcal %3d min %s\n", d.Date, d.CaloriesBurned, d.WorkoutMinutes, color.CyanString(bar))
			totalCal += d.CaloriesBurned
			totalMin += d.WorkoutMinutes
		}
		fmt.Fprintf(out, "Total      %4d kcal %3d min\n", totalCal, totalMin)
		return nil
	},
}

var statsStreakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Consecutive active days",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := st.Summary()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Current streak: %d days\n", s.CurrentStreak)
		fmt.Fprintf(out, "Longest streak: %d days\n", s.LongestStreak)
		return nil
	},
}

var statsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Lifetime totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := st.Summary()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Workouts:        %d\n", s.TotalWorkouts)
		fmt.Fprintf(out, "Calories burned: %d kcal\n", s.TotalCalories)
		fmt.Fprintf(out, "Active time:     %d min\n", s.TotalMinutes)
		fmt.Fprintf(out, "Average workout: %d min\n", s.AverageWorkoutMinutes)
		fmt.Fprintf(out, "Current streak:  %d days\n", s.CurrentStreak)
		fmt.Fprintf(out, "Longest streak:  %d days\n", s.LongestStreak)
		return nil
	},
}

func init() {
	statsCmd.AddCommand(statsTodayCmd)
	statsCmd.AddCommand(statsWeekCmd)
	statsCmd.AddCommand(statsStreakCmd)
	statsCmd.AddCommand(statsSummaryCmd)
	rootCmd.AddCommand(statsCmd)
}
