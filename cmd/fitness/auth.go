// ABOUTME: CLI commands for the local account: signup, login, logout, whoami.
// ABOUTME: Passwords come from --password or a prompt on stdin.
package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	authEmail    string
	authPassword string
	authName     string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create the local account",
	Long: `Create the account for this device and sign in.

Only one account is kept. Signing up with a different email replaces it.

Examples:
  fitness signup --email alex@example.com --name Alex
  fitness signup --email alex@example.com --name Alex --password hunter22`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordFromFlagOrPrompt(cmd)
		if err != nil {
			return err
		}

		if err := st.Signup(cmd.Context(), authEmail, password, authName); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Signed up as %s", authEmail))
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the local account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordFromFlagOrPrompt(cmd)
		if err != nil {
			return err
		}

		if err := st.Login(cmd.Context(), authEmail, password); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Logged in as %s", authEmail))
		if name := st.Profile().Name; name != "" {
			fmt.Fprintf(out, "Welcome back, %s\n", name)
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the account",
	Long: `Sign out. This removes the session token and the stored account.
Workouts and logs stay on this device.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st.Logout()
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Logged out"))
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		state := st.AuthState()
		if !st.IsAuthenticated() || state.Account == nil {
			fmt.Fprintln(out, color.YellowString("Not logged in"))
			return nil
		}
		fmt.Fprintf(out, "Email:   %s\n", state.Account.Email)
		fmt.Fprintf(out, "Account: %s\n", state.Account.ID)
		if name := st.Profile().Name; name != "" {
			fmt.Fprintf(out, "Name:    %s\n", name)
		}
		return nil
	},
}

func passwordFromFlagOrPrompt(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("password") {
		return authPassword, nil
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	for _, c := range []*cobra.Command{signupCmd, loginCmd} {
		c.Flags().StringVarP(&authEmail, "email", "e", "", "account email")
		c.Flags().StringVarP(&authPassword, "password", "p", "", "password (prompted when omitted)")
	}
	signupCmd.Flags().StringVar(&authName, "name", "", "display name")

	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
