// ABOUTME: Root Cobra command for fitness CLI.
// ABOUTME: Handles config, logging, and store lifecycle via PersistentPre/PostRunE.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/fitness/internal/config"
	"github.com/harperreed/fitness/internal/logging"
	"github.com/harperreed/fitness/internal/store"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// noStore marks commands that run without opening the store.
const noStore = "no-store"

var (
	cfg *config.Config
	st  *store.Store

	configPath      string
	backendOverride string
)

var rootCmd = &cobra.Command{
	Use:           "fitness",
	Short:         "Personal fitness tracker",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Fitness is a local-first CLI for tracking workouts, activity, and nutrition.

QUICK START:

  $ fitness onboard --name Alex --weight 72 --level beginner --goal stay_active
  $ fitness workout list                  # Today's and upcoming workouts
  $ fitness workout complete 1            # Mark a workout done
  $ fitness stats today                   # Workouts, calories, minutes
  $ fitness stats week                    # Last 7 days
  $ fitness food log 2                    # Log a serving of chicken breast

ACCOUNT:

  $ fitness signup --email you@example.com --name Alex
  $ fitness login --email you@example.com
  $ fitness whoami
  $ fitness logout

STORAGE:

  Data lives in one of four backends, chosen with 'fitness config set backend':

  charm    Charm KV, E2E encrypted and synced to Charm Cloud (default)
  badger   Local BadgerDB directory
  sqlite   Local SQLite database
  redis    Redis server

  Move data between them with 'fitness migrate --from charm --to sqlite'.

MCP INTEGRATION:

  Run 'fitness mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "fitness": { "command": "fitness", "args": ["mcp"] }
    }
  }`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if skipsStore(cmd) {
			return nil
		}
		if err := loadConfig(); err != nil {
			return err
		}
		return openStore(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/fitness/config.json)")
	rootCmd.PersistentFlags().StringVar(&backendOverride, "backend", "", "storage backend for this run (charm, badger, sqlite, redis)")
}

// Execute runs the root command with a context canceled on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	// PostRun is skipped when RunE fails.
	if cerr := closeStore(); err == nil {
		err = cerr
	}
	return err
}

func skipsStore(cmd *cobra.Command) bool {
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return true
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[noStore] == "true" {
			return true
		}
	}
	return false
}

func loadConfig() error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if backendOverride != "" {
		if err := cfg.Set("backend", backendOverride); err != nil {
			return err
		}
	}

	logging.Setup(cfg.LoggingParams())
	return nil
}

func openStore(ctx context.Context) error {
	loc, err := cfg.GetLocation()
	if err != nil {
		return err
	}

	backend, err := cfg.OpenStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
	}

	opts := []store.Option{
		store.WithLocation(loc),
		store.WithLogger(log.WithField("backend", cfg.GetBackend())),
	}
	if d, ok := cfg.AuthLatency(); ok {
		opts = append(opts, store.WithAuthLatency(d, d))
	}

	st = store.New(backend, opts...)
	st.LoadAll(ctx)
	return nil
}

func closeStore() error {
	if st == nil {
		return nil
	}
	err := st.Close()
	st = nil
	return err
}

// saveConfig writes cfg back to the file it was loaded from.
func saveConfig() error {
	if configPath != "" {
		return cfg.SaveTo(configPath)
	}
	return cfg.Save()
}
