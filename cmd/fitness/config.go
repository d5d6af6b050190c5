// ABOUTME: CLI commands for viewing and editing the config file.
// ABOUTME: Runs without opening storage so a broken backend can be fixed.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "View or change configuration",
	Annotations: map[string]string{noStore: "true"},
	Long: `View or change configuration.

KEYS:

  backend          charm (default), badger, sqlite, redis
  data_dir         root for local backends (default $XDG_DATA_HOME/fitness)
  redis_addr       Redis address (default localhost:6379)
  charm_host       Charm server (default charm.2389.dev)
  log_level        trace, debug, info, warn, error
  log_file         rotating log file (default: stderr)
  log_to_stderr    also log to stderr when log_file is set
  log_format       text (default) or json
  timezone         IANA zone for calendar days (default: local)
  auth_latency_ms  simulated login/signup delay

Environment variables FITNESS_<KEY> override the file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		path := configPath
		if path == "" {
			path = config.GetConfigPath()
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		fmt.Fprintln(out, faint.Sprintf("# %s", path))
		fmt.Fprintf(out, "backend:         %s\n", cfg.GetBackend())
		fmt.Fprintf(out, "data_dir:        %s\n", cfg.GetDataDir())
		fmt.Fprintf(out, "redis_addr:      %s\n", cfg.GetRedisAddr())
		fmt.Fprintf(out, "charm_host:      %s\n", orDefault(cfg.CharmHost, "charm.2389.dev"))
		fmt.Fprintf(out, "log_level:       %s\n", cfg.GetLogLevel())
		fmt.Fprintf(out, "log_file:        %s\n", orDefault(cfg.LogFile, "(stderr)"))
		fmt.Fprintf(out, "log_to_stderr:   %t\n", cfg.LogToStderr)
		fmt.Fprintf(out, "log_format:      %s\n", cfg.GetLogFormat())
		fmt.Fprintf(out, "timezone:        %s\n", orDefault(cfg.Timezone, "(local)"))
		if d, ok := cfg.AuthLatency(); ok {
			fmt.Fprintf(out, "auth_latency_ms: %d\n", d.Milliseconds())
		} else {
			fmt.Fprintf(out, "auth_latency_ms: %s\n", "(default)")
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and save the config file.

Examples:
  fitness config set backend sqlite
  fitness config set timezone Europe/Berlin
  fitness config set auth_latency_ms 0`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := saveConfig(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ %s = %s", args[0], args[1]))
		return nil
	},
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
