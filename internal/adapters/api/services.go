package api

import (
	"context"

	"github.com/lfyzer/nsgifts-go/internal/domain/catalog"
	"github.com/lfyzer/nsgifts-go/internal/domain/shared"
)

// GetAllServices returns the full service catalog organized by category
func (c *Client) GetAllServices(ctx context.Context) (catalog.ServiceList, error) {
	var services catalog.ServiceList
	if err := c.authenticated(ctx, endpointAllServices, nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// GetCategories returns all service categories
func (c *Client) GetCategories(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := c.authenticated(ctx, endpointCategories, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetServicesByCategory returns the services of a single category
func (c *Client) GetServicesByCategory(ctx context.Context, categoryID int64) (catalog.ServiceList, error) {
	payload := catalog.CategoryRequest{CategoryID: categoryID}
	if err := shared.ValidatePayload(payload); err != nil {
		return nil, err
	}

	var services catalog.ServiceList
	if err := c.authenticated(ctx, endpointServicesByCategory, payload, &services); err != nil {
		return nil, err
	}
	return services, nil
}
