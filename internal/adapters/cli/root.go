// Package cli implements the nsgifts command tree. Commands build an
// API client from configuration, run one operation, and print the
// result as a table or JSON.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	jsonOutput bool
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nsgifts",
		Short: "NS Gifts CLI - Interact with the NS Gifts API",
		Long: `NS Gifts CLI provides commands to buy and manage digital goods
through the NS Gifts API: account balance, the service catalog, orders,
Steam wallet top-ups, Steam gifts and the IP whitelist.

Credentials come from NSGIFTS_EMAIL / NSGIFTS_PASSWORD, a .env file,
or config.yaml; tokens are obtained automatically and never stored.

Examples:
  nsgifts auth login --email me@example.com
  nsgifts user balance
  nsgifts services categories
  nsgifts order create --service 123 --quantity 1
  nsgifts order pay <custom-id>
  nsgifts steam amount 1000
  nsgifts whitelist add 203.0.113.7`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: config.yaml in ., ./configs, /etc/nsgifts)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Print raw JSON instead of tables")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewAuthCommand())
	rootCmd.AddCommand(NewUserCommand())
	rootCmd.AddCommand(NewServicesCommand())
	rootCmd.AddCommand(NewOrderCommand())
	rootCmd.AddCommand(NewSteamCommand())
	rootCmd.AddCommand(NewWhitelistCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	err := rootCmd.Execute()
	stopMetricsServer()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
