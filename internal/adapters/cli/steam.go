package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lfyzer/nsgifts-go/internal/domain/steam"
)

// NewSteamCommand creates the steam command with subcommands
func NewSteamCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "steam",
		Short: "Steam wallet top-ups and Steam gifts",
		Long: `Steam wallet top-ups and Steam gifts.

Gift recipients are identified by their s.team short profile link
(https://s.team/p/...). The gift calculate endpoint is rate-limited
server-side; back off if it returns a rate-limit error.

Examples:
  nsgifts steam amount 1000
  nsgifts steam rate
  nsgifts steam gift calculate --sub 12345 --region ru
  nsgifts steam gift create --sub 12345 --region ru --friend https://s.team/p/abcd-efg
  nsgifts steam gift pay <custom-id>
  nsgifts steam apps`,
	}

	cmd.AddCommand(newSteamAmountCommand())
	cmd.AddCommand(newSteamRateCommand())
	cmd.AddCommand(newSteamGiftCommand())
	cmd.AddCommand(newSteamAppsCommand())

	return cmd
}

func newSteamAmountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amount <rubles>",
		Short: "Convert rubles to a Steam wallet amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseID(args[0], "amount")
			if err != nil {
				return err
			}

			client, _, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.CalculateSteamAmount(context.Background(), amount)
			if err != nil {
				return fmt.Errorf("failed to calculate steam amount: %w", err)
			}

			if jsonOutput {
				return printJSON(resp)
			}

			fmt.Printf("Exchange rate: %.4f\n", resp.ExchangeRate)
			fmt.Printf("USD price:     %.2f\n", resp.USDPrice)
			return nil
		},
	}

	return cmd
}

func newSteamRateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Show current Steam currency rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.GetSteamCurrencyRate(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get currency rate: %w", err)
			}

			if jsonOutput {
				return printJSON(resp)
			}

			fmt.Printf("Steam currency rates (%s)\n", resp.Date)
			fmt.Printf("  RUB/USD: %s\n", resp.RubUSD)
			fmt.Printf("  KZT/USD: %s\n", resp.KztUSD)
			fmt.Printf("  UAH/USD: %s\n", resp.UahUSD)
			return nil
		},
	}

	return cmd
}

func newSteamGiftCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gift",
		Short: "Price, create and pay Steam gift orders",
	}

	cmd.AddCommand(newSteamGiftCalculateCommand())
	cmd.AddCommand(newSteamGiftCreateCommand())
	cmd.AddCommand(newSteamGiftPayCommand())

	return cmd
}

func newSteamGiftCalculateCommand() *cobra.Command {
	var (
		subID  int64
		region string
	)

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Price a Steam package for a region",
		RunE: func(cmd *cobra.Command, args []string) error {
			if subID <= 0 {
				return fmt.Errorf("--sub flag is required")
			}

			client, _, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.CalculateSteamGift(context.Background(), subID, steam.Region(region))
			if err != nil {
				return fmt.Errorf("failed to calculate gift price: %w", err)
			}

			if jsonOutput {
				return printJSON(resp)
			}

			fmt.Printf("Sub ID: %d (region %s)\n", resp.SubID, resp.Region)
			fmt.Printf("Price:  %.2f RUB\n", resp.Price)
			return nil
		},
	}

	cmd.Flags().Int64Var(&subID, "sub", 0, "Steam package (sub) ID (required)")
	cmd.Flags().StringVar(&region, "region", "ru", "Storefront region: ru, kz or ua")

	return cmd
}

func newSteamGiftCreateCommand() *cobra.Command {
	var (
		subID       int64
		region      string
		friendLink  string
		giftName    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a Steam gift order",
		Long: `Create a Steam gift order for a friend's profile.

The friend link must be an s.team short URL (https://s.team/p/...).
The order must be paid afterwards with 'steam gift pay'.

Example:
  nsgifts steam gift create --sub 12345 --region ru --friend https://s.team/p/abcd-efg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if subID <= 0 {
				return fmt.Errorf("--sub flag is required")
			}
			if friendLink == "" {
				return fmt.Errorf("--friend flag is required")
			}

			client, cfg, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			ctx := context.Background()
			resp, err := client.CreateSteamGiftOrder(ctx, steam.GiftOrderRequest{
				FriendLink:      friendLink,
				SubID:           subID,
				Region:          steam.Region(region),
				GiftName:        giftName,
				GiftDescription: description,
			})
			if err != nil {
				return fmt.Errorf("failed to create gift order: %w", err)
			}

			if journal, db, jerr := openJournal(cfg); jerr == nil {
				if rerr := journal.RecordSteamGiftOrder(ctx, resp); rerr != nil && verbose {
					fmt.Fprintf(os.Stderr, "warning: failed to journal gift order: %v\n", rerr)
				}
				sqlDB, _ := db.DB()
				if sqlDB != nil {
					sqlDB.Close()
				}
			}

			if jsonOutput {
				return printJSON(resp)
			}

			fmt.Println("✓ Gift order created")
			fmt.Printf("  Custom ID: %s\n", resp.CustomID)
			fmt.Printf("  Total:     %.2f RUB\n", resp.Total)
			fmt.Printf("\nPay it with: nsgifts steam gift pay %s\n", resp.CustomID)

			return nil
		},
	}

	cmd.Flags().Int64Var(&subID, "sub", 0, "Steam package (sub) ID (required)")
	cmd.Flags().StringVar(&region, "region", "ru", "Storefront region: ru, kz or ua")
	cmd.Flags().StringVar(&friendLink, "friend", "", "Recipient s.team profile link (required)")
	cmd.Flags().StringVar(&giftName, "name", "", "Gift name shown to the recipient")
	cmd.Flags().StringVar(&description, "description", "", "Gift message shown to the recipient")

	return cmd
}

func newSteamGiftPayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pay <custom-id>",
		Short: "Pay a Steam gift order from the account balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			customID := args[0]

			client, cfg, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			ctx := context.Background()
			resp, err := client.PaySteamGiftOrder(ctx, customID)
			if err != nil {
				return fmt.Errorf("failed to pay gift order: %w", err)
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

			fmt.Println("✓ Gift order paid")
			fmt.Printf("  Custom ID:   %s\n", resp.CustomID)
			fmt.Printf("  New balance: %s RUB\n", resp.NewBalance)

			return nil
		},
	}

	return cmd
}

func newSteamAppsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "List giftable Steam apps and packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			raw, err := client.GetSteamApps(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get steam apps: %w", err)
			}

			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				fmt.Println(string(raw))
				return nil
			}
			return printJSON(v)
		},
	}

	return cmd
}
