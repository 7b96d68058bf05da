// Package catalog holds the request shapes of the service catalog
// endpoints. Catalog responses are passed through loosely typed: the
// service list schema varies per category and carries no contract the
// client depends on.
package catalog

import "encoding/json"

// CategoryRequest filters the service list to one category
type CategoryRequest struct {
	CategoryID int64 `json:"category_id" validate:"required,gt=0"`
}

// Category is one entry of the category listing
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ServiceList is the raw catalog payload, organized server-side by
// category. Callers render or re-shape it themselves.
type ServiceList = json.RawMessage
