// Package orders holds the request and response shapes of the order
// endpoints.
package orders

// CreateOrderRequest is the payload of the create_order endpoint.
// CustomID is the caller's tracking identifier; the client generates a
// UUID when it is left empty.
type CreateOrderRequest struct {
	ServiceID int64   `json:"service_id" validate:"required,gt=0"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	CustomID  string  `json:"custom_id" validate:"required,min=1,max=255"`
	Data      string  `json:"data,omitempty" validate:"max=1000"`
}

// PayOrderRequest identifies the order to pay or inspect
type PayOrderRequest struct {
	CustomID string `json:"custom_id" validate:"required,min=1,max=255"`
}

// OrderResponse is returned by create_order
type OrderResponse struct {
	CustomID     string   `json:"custom_id"`
	Status       int      `json:"status"`
	ServiceID    int64    `json:"service_id"`
	Quantity     float64  `json:"quantity"`
	Total        float64  `json:"total"`
	Date         string   `json:"date"`
	Data         string   `json:"data,omitempty"`
	PinCode      []string `json:"pin_code,omitempty"`
	TradeLink    string   `json:"trade_link,omitempty"`
	CompleteDate string   `json:"complete_date,omitempty"`
}

// PaymentResponse is returned by pay_order
type PaymentResponse struct {
	CustomID   string   `json:"custom_id"`
	Status     int      `json:"status"`
	NewBalance string   `json:"new_balance"`
	Msg        string   `json:"msg"`
	Pins       []string `json:"pins,omitempty"`
}

// OrderInfo is returned by order_info
type OrderInfo struct {
	CustomID      string   `json:"custom_id"`
	Status        int      `json:"status"`
	StatusMessage string   `json:"status_message"`
	Product       string   `json:"product,omitempty"`
	Quantity      float64  `json:"quantity,omitempty"`
	TotalPrice    float64  `json:"total_price,omitempty"`
	Data          string   `json:"data,omitempty"`
	Pins          []string `json:"pins,omitempty"`
	TradeLink     string   `json:"trade_link,omitempty"`
	CompleteDate  string   `json:"complete_date,omitempty"`
}
