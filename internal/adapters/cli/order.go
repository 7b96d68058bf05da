package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lfyzer/nsgifts-go/internal/domain/orders"
	"github.com/lfyzer/nsgifts-go/internal/infrastructure/config"
)

// NewOrderCommand creates the order command with subcommands
func NewOrderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Create, pay and inspect orders",
		Long: `Create, pay and inspect orders.

Created and paid orders are journaled in the local database so they can
be listed later without a network call. Tokens and credentials are never
written to the journal.

Examples:
  nsgifts order create --service 123 --quantity 1
  nsgifts order create --service 123 --quantity 2 --custom-id my-order-1 --data "account:login"
  nsgifts order pay my-order-1
  nsgifts order info my-order-1
  nsgifts order history --limit 20`,
	}

	cmd.AddCommand(newOrderCreateCommand())
	cmd.AddCommand(newOrderPayCommand())
	cmd.AddCommand(newOrderInfoCommand())
	cmd.AddCommand(newOrderHistoryCommand())

	return cmd
}

func newOrderCreateCommand() *cobra.Command {
	var (
		serviceID int64
		quantity  float64
		customID  string
		data      string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new order",
		Long: `Create a new order for a catalog service.

A custom ID is generated when --custom-id is omitted. The order is not
paid until 'order pay' is run with its custom ID.

Example:
  nsgifts order create --service 123 --quantity 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if serviceID <= 0 {
				return fmt.Errorf("--service flag is required")
			}
			if quantity <= 0 {
				return fmt.Errorf("--quantity must be positive")
			}

			client, cfg, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			ctx := context.Background()
			resp, err := client.CreateOrder(ctx, orders.CreateOrderRequest{
				ServiceID: serviceID,
				Quantity:  quantity,
				CustomID:  customID,
				Data:      data,
			})
			if err != nil {
				return fmt.Errorf("failed to create order: %w", err)
			}

			// Journal failures should not mask a successful order
			if journal, db, jerr := openJournal(cfg); jerr == nil {
				if rerr := journal.RecordOrder(ctx, resp); rerr != nil && verbose {
					fmt.Fprintf(os.Stderr, "warning: failed to journal order: %v\n", rerr)
				}
				sqlDB, _ := db.DB()
				if sqlDB != nil {
					sqlDB.Close()
				}
			} else if verbose {
				fmt.Fprintf(os.Stderr, "warning: order journal unavailable: %v\n", jerr)
			}

			if jsonOutput {
				return printJSON(resp)
			}

			fmt.Println("✓ Order created")
			fmt.Printf("  Custom ID: %s\n", resp.CustomID)
			fmt.Printf("  Service:   %d\n", resp.ServiceID)
			fmt.Printf("  Quantity:  %g\n", resp.Quantity)
			fmt.Printf("  Total:     %.2f RUB\n", resp.Total)
			fmt.Printf("  Status:    %s\n", orderStatusLabel(resp.Status))
			fmt.Printf("\nPay it with: nsgifts order pay %s\n", resp.CustomID)

			return nil
		},
	}

	cmd.Flags().Int64Var(&serviceID, "service", 0, "Service ID from the catalog (required)")
	cmd.Flags().Float64Var(&quantity, "quantity", 1, "Quantity to order")
	cmd.Flags().StringVar(&customID, "custom-id", "", "Tracking identifier (generated if omitted)")
	cmd.Flags().StringVar(&data, "data", "", "Service-specific payload, e.g. account credentials")

	return cmd
}

func newOrderPayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pay <custom-id>",
		Short: "Pay a created order from the account balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			customID := args[0]

			client, cfg, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			ctx := context.Background()
			resp, err := client.PayOrder(ctx, customID)
			if err != nil {
				return fmt.Errorf("failed to pay order: %w", err)
			}

			if journal, db, jerr := openJournal(cfg); jerr == nil {
				if merr := journal.MarkPaid(ctx, customID, resp.Status, resp.NewBalance); merr != nil && verbose {
					fmt.Fprintf(os.Stderr, "warning: failed to journal payment: %v\n", merr)
				}
				sqlDB, _ := db.DB()
				if sqlDB != nil {
					sqlDB.Close()
				}
			}

			if jsonOutput {
				return printJSON(resp)
			}

			fmt.Println("✓ Order paid")
			fmt.Printf("  Custom ID:   %s\n", resp.CustomID)
			fmt.Printf("  Status:      %s\n", orderStatusLabel(resp.Status))
			fmt.Printf("  New balance: %s RUB\n", resp.NewBalance)
			if resp.Msg != "" {
				fmt.Printf("  Message:     %s\n", resp.Msg)
			}
			if len(resp.Pins) > 0 {
				fmt.Printf("  Pins:        %s\n", strings.Join(resp.Pins, ", "))
			}

			return nil
		},
	}

	return cmd
}

func newOrderInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <custom-id>",
		Short: "Show the current state of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			info, err := client.GetOrderInfo(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get order info: %w", err)
			}

			if jsonOutput {
				return printJSON(info)
			}

			fmt.Printf("Order %s\n", info.CustomID)
			fmt.Printf("Status: %s", orderStatusLabel(info.Status))
			if info.StatusMessage != "" {
				fmt.Printf(" (%s)", info.StatusMessage)
			}
			fmt.Println()
			if info.Product != "" {
				fmt.Printf("Product:  %s\n", info.Product)
			}
			if info.Quantity != 0 {
				fmt.Printf("Quantity: %g\n", info.Quantity)
			}
			if info.TotalPrice != 0 {
				fmt.Printf("Total:    %.2f RUB\n", info.TotalPrice)
			}
			if len(info.Pins) > 0 {
				fmt.Printf("Pins:     %s\n", strings.Join(info.Pins, ", "))
			}
			if info.CompleteDate != "" {
				fmt.Printf("Completed: %s\n", info.CompleteDate)
			}

			return nil
		},
	}

	return cmd
}

func newOrderHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List orders from the local journal",
		Long: `List orders recorded in the local journal, newest first.

Only orders created through this CLI appear here; use 'order info' for
the authoritative server-side state.

Example:
  nsgifts order history --limit 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			journal, db, err := openJournal(cfg)
			if err != nil {
				return err
			}
			defer func() {
				sqlDB, _ := db.DB()
				if sqlDB != nil {
					sqlDB.Close()
				}
			}()

			records, err := journal.List(context.Background(), limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(records)
			}

			if len(records) == 0 {
				fmt.Println("No journaled orders.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CUSTOM ID\tKIND\tSERVICE\tQTY\tTOTAL\tSTATUS\tCREATED\tPAID")
			for _, r := range records {
				paid := "-"
				if r.PaidAt != nil {
					paid = r.PaidAt.Format("2006-01-02 15:04")
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%g\t%.2f\t%s\t%s\t%s\n",
					r.CustomID,
					r.Kind,
					r.ServiceID,
					r.Quantity,
					r.Total,
					orderStatusLabel(r.Status),
					r.CreatedAt.Format("2006-01-02 15:04"),
					paid,
				)
			}
			w.Flush()

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of orders to show (0 = all)")

	return cmd
}
