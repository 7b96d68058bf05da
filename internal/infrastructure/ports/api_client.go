package ports

import (
	"context"
	"encoding/json"

	"github.com/lfyzer/nsgifts-go/internal/domain/account"
	"github.com/lfyzer/nsgifts-go/internal/domain/catalog"
	"github.com/lfyzer/nsgifts-go/internal/domain/orders"
	"github.com/lfyzer/nsgifts-go/internal/domain/steam"
	"github.com/lfyzer/nsgifts-go/internal/domain/whitelist"
)

// APIClient defines the operations of the NS Gifts API client.
// This is in infrastructure/ports because it's an external service
// interface: the CLI holds the client through it, and consumers can
// substitute their own implementation.
type APIClient interface {
	// Auth operations (establish the token, bypass the refresh check)
	Login(ctx context.Context, email, password string) (*account.LoginResponse, error)
	Signup(ctx context.Context, username, email, password string) (*account.SignupResponse, error)

	// User operations
	CheckBalance(ctx context.Context) (float64, error)
	GetUserInfo(ctx context.Context) (*account.UserInfo, error)

	// Catalog operations
	GetAllServices(ctx context.Context) (catalog.ServiceList, error)
	GetCategories(ctx context.Context) ([]catalog.Category, error)
	GetServicesByCategory(ctx context.Context, categoryID int64) (catalog.ServiceList, error)

	// Order operations
	CreateOrder(ctx context.Context, req orders.CreateOrderRequest) (*orders.OrderResponse, error)
	PayOrder(ctx context.Context, customID string) (*orders.PaymentResponse, error)
	GetOrderInfo(ctx context.Context, customID string) (*orders.OrderInfo, error)

	// Steam operations
	CalculateSteamAmount(ctx context.Context, amount int64) (*steam.AmountResponse, error)
	GetSteamCurrencyRate(ctx context.Context) (*steam.CurrencyRateResponse, error)
	CalculateSteamGift(ctx context.Context, subID int64, region steam.Region) (*steam.GiftCalculateResponse, error)
	CreateSteamGiftOrder(ctx context.Context, req steam.GiftOrderRequest) (*steam.GiftOrderResponse, error)
	PaySteamGiftOrder(ctx context.Context, customID string) (*orders.PaymentResponse, error)
	GetSteamApps(ctx context.Context) (json.RawMessage, error)

	// IP whitelist operations
	AddIPToWhitelist(ctx context.Context, ip string) (*whitelist.AddResponse, error)
	RemoveIPFromWhitelist(ctx context.Context, ip string) (*whitelist.RemoveResponse, error)
	ListWhitelistIPs(ctx context.Context) (*whitelist.ListResponse, error)

	// Cooldown introspection
	CooldownActive() bool
	ResetCooldown()

	// Close releases the shared HTTP session
	Close()
}
