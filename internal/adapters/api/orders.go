package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/lfyzer/nsgifts-go/internal/domain/orders"
	"github.com/lfyzer/nsgifts-go/internal/domain/shared"
)

// CreateOrder creates a new order. A missing CustomID is filled with a
// generated UUID so the order can always be paid and tracked. The payload
// is validated locally; a defective order never reaches the network.
func (c *Client) CreateOrder(ctx context.Context, req orders.CreateOrderRequest) (*orders.OrderResponse, error) {
	if req.CustomID == "" {
		req.CustomID = uuid.NewString()
	}
	if err := shared.ValidatePayload(req); err != nil {
		return nil, err
	}

	var resp orders.OrderResponse
	if err := c.authenticated(ctx, endpointCreateOrder, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PayOrder pays a previously created order by its custom ID
func (c *Client) PayOrder(ctx context.Context, customID string) (*orders.PaymentResponse, error) {
	payload := orders.PayOrderRequest{CustomID: customID}
	if err := shared.ValidatePayload(payload); err != nil {
		return nil, err
	}

	var resp orders.PaymentResponse
	if err := c.authenticated(ctx, endpointPayOrder, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetOrderInfo returns detailed status for an order
func (c *Client) GetOrderInfo(ctx context.Context, customID string) (*orders.OrderInfo, error) {
	payload := orders.PayOrderRequest{CustomID: customID}
	if err := shared.ValidatePayload(payload); err != nil {
		return nil, err
	}

	var resp orders.OrderInfo
	if err := c.authenticated(ctx, endpointOrderInfo, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
