// ABOUTME: CLI commands for onboarding and the user profile.
// ABOUTME: Profile flags are shared by onboard and profile set.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/models"
	"github.com/spf13/cobra"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Set up your profile",
	Long: `Fill in your profile and mark onboarding complete.

Every flag is optional; omitted fields keep their current value.

Examples:
  fitness onboard --name Alex --age 31 --weight 72 --height 178
  fitness onboard --level intermediate --goal build_muscle --goal stay_active`,
	RunE: func(cmd *cobra.Command, args []string) error {
		update, err := profileUpdateFromFlags(cmd)
		if err != nil {
			return err
		}

		p := st.CompleteOnboarding(update)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Onboarding complete"))
		printProfile(out, p)
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"p"},
	Short:   "Show or edit your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show profile and daily nutrition goals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printProfile(cmd.OutOrStdout(), st.Profile())
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	Long: `Update profile fields. Only the flags you pass are changed.
Passing --goal replaces the whole goal list.

Examples:
  fitness profile set --weight 70.5
  fitness profile set --goal lose_weight`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		update, err := profileUpdateFromFlags(cmd)
		if err != nil {
			return err
		}

		p := st.UpdateProfile(update)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Profile updated"))
		printProfile(out, p)
		return nil
	},
}

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "display name")
	cmd.Flags().Int("age", 0, "age in years")
	cmd.Flags().String("gender", "", "male, female, other, prefer_not_to_say")
	cmd.Flags().Float64("height", 0, "height in cm")
	cmd.Flags().Float64("weight", 0, "weight in kg")
	cmd.Flags().String("level", "", "fitness level: beginner, intermediate, advanced")
	cmd.Flags().StringSlice("goal", nil, "fitness goal (repeatable): lose_weight, build_muscle, stay_active, improve_stamina")
}

func profileUpdateFromFlags(cmd *cobra.Command) (models.ProfileUpdate, error) {
	var u models.ProfileUpdate
	flags := cmd.Flags()

	if flags.Changed("name") {
		name, _ := flags.GetString("name")
		u.Name = &name
	}
	if flags.Changed("age") {
		age, _ := flags.GetInt("age")
		if age <= 0 {
			return u, fmt.Errorf("invalid age: %d", age)
		}
		u.Age = &age
	}
	if flags.Changed("gender") {
		g, _ := flags.GetString("gender")
		if !models.IsValidGender(g) {
			return u, fmt.Errorf("unknown gender: %s", g)
		}
		gender := models.Gender(g)
		u.Gender = &gender
	}
	if flags.Changed("height") {
		h, _ := flags.GetFloat64("height")
		if h <= 0 {
			return u, fmt.Errorf("invalid height: %v", h)
		}
		u.Height = &h
	}
	if flags.Changed("weight") {
		w, _ := flags.GetFloat64("weight")
		if w <= 0 {
			return u, fmt.Errorf("invalid weight: %v", w)
		}
		u.Weight = &w
	}
	if flags.Changed("level") {
		l, _ := flags.GetString("level")
		if !models.IsValidFitnessLevel(l) {
			return u, fmt.Errorf("unknown fitness level: %s", l)
		}
		level := models.FitnessLevel(l)
		u.FitnessLevel = &level
	}
	if flags.Changed("goal") {
		goals, _ := flags.GetStringSlice("goal")
		u.Goals = []models.FitnessGoal{}
		for _, g := range goals {
			if !models.IsValidGoal(g) {
				return u, fmt.Errorf("unknown goal: %s", g)
			}
			u.Goals = append(u.Goals, models.FitnessGoal(g))
		}
	}
	return u, nil
}

func printProfile(out io.Writer, p models.Profile) {
	faint := color.New(color.Faint)

	name := p.Name
	if name == "" {
		name = faint.Sprint("(not set)")
	}
	fmt.Fprintf(out, "Name:      %s\n", name)
	if p.Age != nil {
		fmt.Fprintf(out, "Age:       %d\n", *p.Age)
	}
	if p.Gender != nil {
		fmt.Fprintf(out, "Gender:    %s\n", *p.Gender)
	}
	if p.Height != nil {
		fmt.Fprintf(out, "Height:    %.0f cm\n", *p.Height)
	}
	if p.Weight != nil {
		fmt.Fprintf(out, "Weight:    %.1f kg\n", *p.Weight)
	}
	if p.FitnessLevel != nil {
		fmt.Fprintf(out, "Level:     %s\n", *p.FitnessLevel)
	}
	if len(p.Goals) > 0 {
		goals := make([]string, len(p.Goals))
		for i, g := range p.Goals {
			goals[i] = string(g)
		}
		fmt.Fprintf(out, "Goals:     %s\n", strings.Join(goals, ", "))
	}
	fmt.Fprintf(out, "Onboarded: %t\n", p.Onboarded)

	goals := models.GoalsFor(p)
	fmt.Fprintln(out, faint.Sprintf("Daily goals: %.0f kcal, %.0f g protein", goals.Calories, goals.Protein))
}

func init() {
	addProfileFlags(onboardCmd)
	addProfileFlags(profileSetCmd)

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(profileCmd)
}
