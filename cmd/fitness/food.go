// ABOUTME: CLI commands for the food catalog and nutrition log.
// ABOUTME: Logs catalog servings and shows today's intake against goals.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var foodCmd = &cobra.Command{
	Use:     "food",
	Aliases: []string{"f"},
	Short:   "Log food and view nutrition",
	Long: `Log food from the built-in catalog and view today's nutrition.

Examples:
  fitness food list
  fitness food log 2
  fitness food today`,
}

var foodListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the food catalog",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		for _, f := range st.Foods() {
			fmt.Fprintf(out, "%s %s %4.0f kcal  P %4.1f  C %4.1f  F %4.1f %s\n",
				faint.Sprint(padRight(f.ID, 3)),
				padRight(f.Name, 16),
				f.Calories, f.Protein, f.Carbs, f.Fat,
				faint.Sprint(f.Category))
		}
		return nil
	},
}

var foodLogCmd = &cobra.Command{
	Use:   "log <food-id>",
	Short: "Log one serving of a catalog food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, ok := st.LogFood(args[0])
		if !ok {
			return fmt.Errorf("unknown food: %s (see 'fitness food list')", args[0])
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Logged %s", entry.Name))
		printNutritionDay(cmd)
		return nil
	},
}

var foodTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Today's calories and macros",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printNutritionDay(cmd)
		return nil
	},
}

func printNutritionDay(cmd *cobra.Command) {
	day := st.TodayNutrition()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d entries\n", day.Date, day.Entries)
	fmt.Fprintf(out, "  Calories: %.0f / %.0f kcal\n", day.Calories, day.Goals.Calories)
	fmt.Fprintf(out, "  Protein:  %.1f / %.0f g\n", day.Protein, day.Goals.Protein)
	fmt.Fprintf(out, "  Carbs:    %.1f g\n", day.Carbs)
	fmt.Fprintf(out, "  Fat:      %.1f g\n", day.Fat)
}

func init() {
	foodCmd.AddCommand(foodListCmd)
	foodCmd.AddCommand(foodLogCmd)
	foodCmd.AddCommand(foodTodayCmd)
	rootCmd.AddCommand(foodCmd)
}
