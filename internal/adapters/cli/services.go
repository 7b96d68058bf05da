package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewServicesCommand creates the services command with subcommands
func NewServicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "Browse the service catalog",
		Long: `Browse the NS Gifts service catalog.

Examples:
  nsgifts services categories
  nsgifts services list
  nsgifts services list --category 5`,
	}

	cmd.AddCommand(newServicesCategoriesCommand())
	cmd.AddCommand(newServicesListCommand())

	return cmd
}

func newServicesCategoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List service categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			categories, err := client.GetCategories(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			if jsonOutput {
				return printJSON(categories)
			}

			if len(categories) == 0 {
				fmt.Println("No categories available.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME")
			fmt.Fprintln(w, "--\t----")
			for _, category := range categories {
				fmt.Fprintf(w, "%d\t%s\n", category.ID, category.Name)
			}
			w.Flush()

			return nil
		},
	}

	return cmd
}

func newServicesListCommand() *cobra.Command {
	var categoryID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List services, optionally filtered by category",
		Long: `List services from the catalog.

The catalog schema varies per category, so services are always printed
as JSON.

Examples:
  nsgifts services list
  nsgifts services list --category 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			ctx := context.Background()
			services, err := func() ([]byte, error) {
				if categoryID > 0 {
					raw, err := client.GetServicesByCategory(ctx, categoryID)
					return []byte(raw), err
				}
				raw, err := client.GetAllServices(ctx)
				return []byte(raw), err
			}()
			if err != nil {
				return fmt.Errorf("failed to list services: %w", err)
			}

			// Re-indent for readability
			var v any
			if err := json.Unmarshal(services, &v); err != nil {
				// Not valid JSON; print as-is
				fmt.Println(string(services))
				return nil
			}
			return printJSON(v)
		},
	}

	cmd.Flags().Int64Var(&categoryID, "category", 0, "Category ID to filter by")

	return cmd
}

// parseID parses a positional numeric identifier argument
func parseID(arg, name string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", name, arg)
	}
	return id, nil
}
