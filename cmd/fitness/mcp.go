// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"github.com/harperreed/fitness/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout; logs go to stderr or the log file.

CONFIGURATION:

  {
    "mcpServers": {
      "fitness": {
        "command": "fitness",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  get_profile          Profile and daily nutrition goals
  update_profile       Change profile fields
  list_workouts        Scheduled workouts
  schedule_workout     Add a workout
  complete_workout     Mark a workout done
  get_today_stats      Today's workouts, calories, minutes
  get_week_progress    Last 7 days
  get_streak           Current and longest streak
  log_food             Log a catalog food
  get_nutrition_today  Today's calories and macros

AVAILABLE RESOURCES:

  fitness://today      Today's workouts, stats, and nutrition
  fitness://week       Last 7 days
  fitness://summary    Profile, totals, and streaks`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcp.NewServer(st, version)
		// The root context is canceled on SIGINT/SIGTERM.
		return server.Serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
