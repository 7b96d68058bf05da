package persistence

import "time"

// OrderRecord represents the orders table of the local journal.
// NOTE: tokens and credentials are NEVER persisted - only order outcomes.
type OrderRecord struct {
	ID        uint       `gorm:"column:id;primaryKey;autoIncrement"`
	CustomID  string     `gorm:"column:custom_id;unique;not null"`
	Kind      string     `gorm:"column:kind;not null"` // "order" or "steam_gift"
	ServiceID int64      `gorm:"column:service_id"`
	Quantity  float64    `gorm:"column:quantity"`
	Total     float64    `gorm:"column:total"`
	Status    int        `gorm:"column:status"`
	Data      string     `gorm:"column:data;type:text"`
	CreatedAt time.Time  `gorm:"column:created_at;not null"`
	PaidAt    *time.Time `gorm:"column:paid_at"`

	// NewBalance is recorded as the API reports it (a decimal string)
	NewBalance string `gorm:"column:new_balance"`
}

func (OrderRecord) TableName() string {
	return "orders"
}

// Journal entry kinds
const (
	KindOrder     = "order"
	KindSteamGift = "steam_gift"
)
