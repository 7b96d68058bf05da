package api

import (
	"context"
	"encoding/json"

	"github.com/lfyzer/nsgifts-go/internal/domain/orders"
	"github.com/lfyzer/nsgifts-go/internal/domain/shared"
	"github.com/lfyzer/nsgifts-go/internal/domain/steam"
)

// CalculateSteamAmount converts rubles to a Steam wallet amount
func (c *Client) CalculateSteamAmount(ctx context.Context, amount int64) (*steam.AmountResponse, error) {
	payload := steam.AmountRequest{Amount: amount}
	if err := shared.ValidatePayload(payload); err != nil {
		return nil, err
	}

	var resp steam.AmountResponse
	if err := c.authenticated(ctx, endpointSteamAmount, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSteamCurrencyRate returns the current Steam exchange rates
func (c *Client) GetSteamCurrencyRate(ctx context.Context) (*steam.CurrencyRateResponse, error) {
	var resp steam.CurrencyRateResponse
	if err := c.authenticated(ctx, endpointSteamCurrencyRate, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CalculateSteamGift prices a Steam package for a region. The API
// rate-limits this endpoint server-side; the client's token bucket keeps
// bursts polite but the server remains authoritative.
func (c *Client) CalculateSteamGift(ctx context.Context, subID int64, region steam.Region) (*steam.GiftCalculateResponse, error) {
	payload := steam.GiftCalculateRequest{SubID: subID, Region: region}
	if err := shared.ValidatePayload(payload); err != nil {
		return nil, err
	}

	var resp steam.GiftCalculateResponse
	if err := c.authenticated(ctx, endpointGiftCalculate, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateSteamGiftOrder creates a gift order for a friend's profile
func (c *Client) CreateSteamGiftOrder(ctx context.Context, req steam.GiftOrderRequest) (*steam.GiftOrderResponse, error) {
	if err := shared.ValidatePayload(req); err != nil {
		return nil, err
	}

	var resp steam.GiftOrderResponse
	if err := c.authenticated(ctx, endpointGiftCreateOrder, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PaySteamGiftOrder pays a gift order and triggers delivery
func (c *Client) PaySteamGiftOrder(ctx context.Context, customID string) (*orders.PaymentResponse, error) {
	payload := orders.PayOrderRequest{CustomID: customID}
	if err := shared.ValidatePayload(payload); err != nil {
		return nil, err
	}

	var resp orders.PaymentResponse
	if err := c.authenticated(ctx, endpointGiftPayOrder, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSteamApps returns every Steam package with regional pricing. The
// list schema shifts with the upstream catalog, so it is passed through
// raw for the caller to shape.
func (c *Client) GetSteamApps(ctx context.Context) (json.RawMessage, error) {
	var apps json.RawMessage
	if err := c.authenticated(ctx, endpointSteamApps, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}
