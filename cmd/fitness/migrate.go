// ABOUTME: CLI command for copying fitness data between storage backends.
// ABOUTME: Refuses to overwrite a destination that already holds data unless forced.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/kv"
	"github.com/harperreed/fitness/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateForce  bool
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:         "migrate",
	Short:       "Copy data between storage backends",
	Annotations: map[string]string{noStore: "true"},
	Long: `Copy every fitness document from one storage backend to another.

Backends: charm, badger, sqlite, redis.

IMPORTANT:

  - The source is left untouched
  - Existing destination data is NOT overwritten unless --force is given
  - Run with --dry-run first to see what would be copied
  - Switch to the new backend afterwards with 'fitness config set backend <name>'

USAGE:

  fitness migrate --from charm --to sqlite --dry-run
  fitness migrate --from charm --to sqlite
  fitness migrate --from sqlite --to redis --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if migrateFrom == migrateTo {
			return fmt.Errorf("source and destination are both %s", migrateFrom)
		}
		if err := loadConfig(); err != nil {
			return err
		}

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		src, err := cfg.OpenBackend(ctx, migrateFrom)
		if err != nil {
			return fmt.Errorf("failed to open source %s: %w", migrateFrom, err)
		}
		defer func() { err = multierr.Append(err, src.Close()) }()

		dst, err := cfg.OpenBackend(ctx, migrateTo)
		if err != nil {
			return fmt.Errorf("failed to open destination %s: %w", migrateTo, err)
		}
		defer func() { err = multierr.Append(err, dst.Close()) }()

		if !migrateForce {
			exists, err := kv.HasAny(ctx, dst, store.AllKeys)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("%s already holds fitness data (use --force to overwrite)", migrateTo)
			}
		}

		if migrateDryRun {
			fmt.Fprintln(out, color.YellowString("Dry run mode - no changes will be made"))
			for _, key := range store.AllKeys {
				_, err := src.Get(ctx, key)
				switch {
				case err == nil:
					fmt.Fprintf(out, "  would copy %s\n", key)
				case errors.Is(err, kv.ErrNotFound):
					fmt.Fprintf(out, "  skip %s (not in %s)\n", key, migrateFrom)
				default:
					return fmt.Errorf("read %s: %w", key, err)
				}
			}
			return nil
		}

		summary, err := kv.Migrate(ctx, src, dst, store.AllKeys)
		if err != nil {
			return fmt.Errorf("migration incomplete (%d copied): %w", summary.Copied, err)
		}

		fmt.Fprintln(out, color.GreenString("✓ Migrated %s → %s", migrateFrom, migrateTo))
		fmt.Fprintf(out, "  Copied:  %d\n", summary.Copied)
		fmt.Fprintf(out, "  Skipped: %d\n", summary.Skipped)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "charm", "source backend")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "sqlite", "destination backend")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "overwrite data already in the destination")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
