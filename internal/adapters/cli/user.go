package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewUserCommand creates the user command with subcommands
func NewUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Inspect the authenticated account",
		Long: `Inspect the authenticated account.

Examples:
  nsgifts user balance
  nsgifts user info`,
	}

	cmd.AddCommand(newUserBalanceCommand())
	cmd.AddCommand(newUserInfoCommand())

	return cmd
}

func newUserBalanceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the current account balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			balance, err := client.CheckBalance(context.Background())
			if err != nil {
				return fmt.Errorf("failed to check balance: %w", err)
			}

			if jsonOutput {
				return printJSON(map[string]float64{"balance": balance})
			}

			fmt.Printf("Balance: %.2f RUB\n", balance)
			return nil
		},
	}

	return cmd
}

func newUserInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the account profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			info, err := client.GetUserInfo(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get user info: %w", err)
			}

			if jsonOutput {
				return printJSON(info)
			}

			fmt.Printf("Account Information\n")
			fmt.Printf("===================\n\n")
			fmt.Printf("ID:       %d\n", info.ID)
			fmt.Printf("Username: %s\n", info.Username)
			fmt.Printf("Login:    %s\n", info.Login)
			fmt.Printf("Balance:  %.2f RUB\n", info.Balance)
			if len(info.Rights) > 0 {
				fmt.Printf("Rights:   %s\n", strings.Join(info.Rights, ", "))
			}

			return nil
		},
	}

	return cmd
}
