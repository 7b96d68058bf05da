// Package steam holds the request and response shapes of the Steam
// wallet and Steam gift endpoints.
package steam

// Region selects the Steam storefront used for pricing
type Region string

const (
	RegionRU Region = "ru"
	RegionKZ Region = "kz"
	RegionUA Region = "ua"
)

// AmountRequest converts rubles to a Steam wallet amount
type AmountRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// AmountResponse is returned by the steam amount calculation
type AmountResponse struct {
	ExchangeRate float64 `json:"exchange_rate"`
	USDPrice     float64 `json:"usd_price"`
}

// CurrencyRateResponse carries the current Steam exchange rates. The API
// names the rate fields with slashes.
type CurrencyRateResponse struct {
	Date   string `json:"date"`
	RubUSD string `json:"rub/usd"`
	KztUSD string `json:"kzt/usd"`
	UahUSD string `json:"uah/usd"`
}

// GiftCalculateRequest prices a Steam package for a region before
// ordering. The API rate-limits this endpoint.
type GiftCalculateRequest struct {
	SubID  int64  `json:"subId" validate:"required,gt=0"`
	Region Region `json:"region" validate:"required,oneof=ru kz ua"`
}

// GiftCalculateResponse is returned by the gift price calculation
type GiftCalculateResponse struct {
	SubID  int64   `json:"sub_id"`
	Region string  `json:"region"`
	Price  float64 `json:"price"`
}

// GiftOrderRequest creates a Steam gift order for a friend's profile.
// FriendLink must be an s.team short profile URL.
type GiftOrderRequest struct {
	FriendLink      string `json:"friendLink" validate:"required,max=500,steam_profile"`
	SubID           int64  `json:"sub_id" validate:"required,gt=0"`
	Region          Region `json:"region" validate:"required,oneof=ru kz ua"`
	GiftName        string `json:"giftName,omitempty" validate:"max=100"`
	GiftDescription string `json:"giftDescription,omitempty" validate:"max=500"`
}

// GiftOrderResponse is returned by the gift order creation
type GiftOrderResponse struct {
	CustomID  string  `json:"custom_id"`
	Status    int     `json:"status"`
	ServiceID int64   `json:"service_id"`
	Quantity  int64   `json:"quantity"`
	Total     float64 `json:"total"`
	Date      string  `json:"date"`
}
