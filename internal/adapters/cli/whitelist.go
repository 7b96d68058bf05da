package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewWhitelistCommand creates the whitelist command with subcommands
func NewWhitelistCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whitelist",
		Short: "Manage the API IP whitelist",
		Long: `Manage the IP whitelist restricting API access for this account.

Examples:
  nsgifts whitelist add 203.0.113.7
  nsgifts whitelist remove 203.0.113.7
  nsgifts whitelist list`,
	}

	cmd.AddCommand(newWhitelistAddCommand())
	cmd.AddCommand(newWhitelistRemoveCommand())
	cmd.AddCommand(newWhitelistListCommand())

	return cmd
}

func newWhitelistAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <ip>",
		Short: "Add an IPv4 address to the whitelist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.AddIPToWhitelist(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to add IP: %w", err)
			}

			if jsonOutput {
				return printJSON(resp)
			}

			fmt.Printf("✓ Added %s to the whitelist\n", resp.Added)
			return nil
		},
	}

	return cmd
}

func newWhitelistRemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <ip>",
		Short: "Remove an IPv4 address from the whitelist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.RemoveIPFromWhitelist(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to remove IP: %w", err)
			}

			if jsonOutput {
				return printJSON(resp)
			}

			fmt.Printf("✓ Removed %s from the whitelist\n", resp.Removed)
			return nil
		},
	}

	return cmd
}

func newWhitelistListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List whitelisted IPv4 addresses",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.ListWhitelistIPs(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list IPs: %w", err)
			}

			if jsonOutput {
				return printJSON(resp)
			}

			if len(resp.IPs) == 0 {
				fmt.Println("Whitelist is empty; access is not IP-restricted.")
				return nil
			}
			for _, ip := range resp.IPs {
				fmt.Println(ip)
			}
			return nil
		},
	}

	return cmd
}
