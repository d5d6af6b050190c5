// ABOUTME: CLI commands for Charm-based sync.
// ABOUTME: Supports link, status, now, and reset on backends that replicate.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/kv"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Sync fitness data across devices",
	Long: `Sync fitness data across devices using Charm Cloud.

Only the charm backend syncs. Data is E2E encrypted with your SSH key
before upload, and syncs automatically after each change.

COMMANDS:

  link        Link this device to your Charm account
  status      Show sync status and account info
  now         Sync immediately
  reset       Reset local data and restore from cloud (destructive)`,
}

var syncLinkCmd = &cobra.Command{
	Use:         "link",
	Short:       "Link this device to Charm",
	Annotations: map[string]string{noStore: "true"},
	Long: `Link this device to your Charm account.

If you don't have a Charm account, one will be created using your SSH key.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		charmCmd := exec.CommandContext(cmd.Context(), "charm", "link")
		charmCmd.Stdin = os.Stdin
		charmCmd.Stdout = os.Stdout
		charmCmd.Stderr = os.Stderr

		if err := charmCmd.Run(); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("\n✓ Device linked to Charm"))
		fmt.Fprintln(cmd.OutOrStdout(), "Run 'fitness sync now' to pull your data.")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Backend: %s\n", cfg.GetBackend())

		keys, err := st.Backend().Keys(cmd.Context(), "@fitness_")
		if err != nil {
			return fmt.Errorf("failed to list keys: %w", err)
		}
		fmt.Fprintf(out, "Documents: %d\n", len(keys))
		fmt.Fprintf(out, "Workouts: %d  Activities: %d  Food entries: %d\n",
			len(st.Workouts()), len(st.Activities()), len(st.NutritionLog()))

		syncer, ok := st.Backend().(kv.Syncer)
		if !ok {
			fmt.Fprintln(out, color.YellowString("\nThis backend does not sync."))
			return nil
		}

		if syncer.IsReadOnly() {
			color.New(color.FgYellow).Fprintln(out, "Read-only: another process holds the database lock")
		}

		id, err := syncer.ID()
		if err != nil {
			fmt.Fprintln(out, color.YellowString("Not linked to Charm"))
			fmt.Fprintln(out, "\nRun 'fitness sync link' to connect to Charm.")
			return nil
		}
		fmt.Fprintln(out, "Charm ID:", id)
		fmt.Fprintln(out, color.GreenString("✓ Connected to Charm"))
		return nil
	},
}

var syncNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Sync immediately",
	RunE: func(cmd *cobra.Command, args []string) error {
		syncer, err := requireSyncer()
		if err != nil {
			return err
		}

		st.Flush()
		if err := syncer.Sync(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Sync complete"))
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local data and restore from cloud",
	Long: `Delete all local data and restore from Charm Cloud.

This is a destructive operation. All local data will be lost and restored from cloud.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		syncer, err := requireSyncer()
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Fprintln(cmd.OutOrStdout(), "This will DELETE all local fitness data and restore from cloud.")
			fmt.Fprint(cmd.OutOrStdout(), "Continue? [y/N]: ")
			confirm, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			confirm = strings.TrimSpace(strings.ToLower(confirm))
			if confirm != "y" && confirm != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
				return nil
			}
		}

		st.Flush()
		if err := syncer.Reset(); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Local data reset and restored from cloud"))
		return nil
	},
}

func requireSyncer() (kv.Syncer, error) {
	syncer, ok := st.Backend().(kv.Syncer)
	if !ok {
		return nil, fmt.Errorf("backend %s does not sync (use 'fitness config set backend charm')", cfg.GetBackend())
	}
	if syncer.IsReadOnly() {
		return nil, kv.ErrReadOnly
	}
	return syncer, nil
}

func init() {
	syncResetCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")

	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncNowCmd)
	syncCmd.AddCommand(syncResetCmd)

	rootCmd.AddCommand(syncCmd)
}
