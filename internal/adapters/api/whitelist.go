package api

import (
	"context"

	"github.com/lfyzer/nsgifts-go/internal/domain/shared"
	"github.com/lfyzer/nsgifts-go/internal/domain/whitelist"
)

// AddIPToWhitelist allows API access from the given IPv4 address
func (c *Client) AddIPToWhitelist(ctx context.Context, ip string) (*whitelist.AddResponse, error) {
	payload := whitelist.Request{IP: ip}
	if err := shared.ValidatePayload(payload); err != nil {
		return nil, err
	}

	var resp whitelist.AddResponse
	if err := c.authenticated(ctx, endpointWhitelistAdd, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveIPFromWhitelist revokes API access for the given IPv4 address
func (c *Client) RemoveIPFromWhitelist(ctx context.Context, ip string) (*whitelist.RemoveResponse, error) {
	payload := whitelist.Request{IP: ip}
	if err := shared.ValidatePayload(payload); err != nil {
		return nil, err
	}

	var resp whitelist.RemoveResponse
	if err := c.authenticated(ctx, endpointWhitelistRemove, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListWhitelistIPs returns all whitelisted addresses
func (c *Client) ListWhitelistIPs(ctx context.Context) (*whitelist.ListResponse, error) {
	var resp whitelist.ListResponse
	if err := c.authenticated(ctx, endpointWhitelistList, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
