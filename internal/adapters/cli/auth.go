package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewAuthCommand creates the auth command with subcommands
func NewAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with the NS Gifts API",
		Long: `Authenticate with the NS Gifts API.

Login verifies your credentials and reports the token expiry. Tokens are
held in memory only; every invocation authenticates again, so there is
nothing to store or revoke locally.

Examples:
  nsgifts auth login --email me@example.com --password secret
  nsgifts auth signup --username me --email me@example.com --password secret`,
	}

	cmd.AddCommand(newAuthLoginCommand())
	cmd.AddCommand(newAuthSignupCommand())

	return cmd
}

func newAuthLoginCommand() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify credentials and obtain a token",
		Long: `Log in to the NS Gifts API with email and password.

Flags override credentials from NSGIFTS_EMAIL / NSGIFTS_PASSWORD or the
config file.

Example:
  nsgifts auth login --email me@example.com --password secret`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			if email == "" {
				email = cfg.Client.Email
			}
			if password == "" {
				password = cfg.Client.Password
			}
			if email == "" || password == "" {
				return fmt.Errorf("credentials required: use --email/--password or set NSGIFTS_EMAIL/NSGIFTS_PASSWORD")
			}

			resp, err := client.Login(context.Background(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if jsonOutput {
				return printJSON(resp)
			}

			fmt.Println("✓ Logged in successfully")
			if resp.UserID != 0 {
				fmt.Printf("  User ID:       %d\n", resp.UserID)
			}
			if resp.ValidThru != 0 {
				expiry := time.Unix(resp.ValidThru, 0).UTC()
				fmt.Printf("  Token expires: %s\n", expiry.Format("2006-01-02 15:04:05 MST"))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")

	return cmd
}

func newAuthSignupCommand() *cobra.Command {
	var (
		username string
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new NS Gifts account",
		Long: `Create a new NS Gifts account.

The account is usable immediately; the response includes a token just
like a login.

Example:
  nsgifts auth signup --username me --email me@example.com --password secret`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || email == "" || password == "" {
				return fmt.Errorf("--username, --email and --password are required")
			}

			client, _, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.Signup(context.Background(), username, email, password)
			if err != nil {
				return fmt.Errorf("signup failed: %w", err)
			}

			if jsonOutput {
				return printJSON(resp)
			}

			fmt.Println("✓ Account created successfully")
			fmt.Printf("  Username: %s\n", username)
			fmt.Printf("  Email:    %s\n", email)
			fmt.Println("\nSet NSGIFTS_EMAIL and NSGIFTS_PASSWORD to use the account in other commands.")

			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username (required)")
	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (required)")

	return cmd
}
