// Package persistence implements the local order journal: a record of
// orders created and paid through this client, so past orders can be
// listed without a network call.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lfyzer/nsgifts-go/internal/domain/orders"
	"github.com/lfyzer/nsgifts-go/internal/domain/steam"
)

// ErrOrderNotFound is returned when a custom ID has no journal entry
var ErrOrderNotFound = errors.New("order not found in journal")

// GormOrderJournal implements the order journal using GORM
type GormOrderJournal struct {
	db *gorm.DB
}

// NewGormOrderJournal creates a new GORM order journal
func NewGormOrderJournal(db *gorm.DB) *GormOrderJournal {
	return &GormOrderJournal{db: db}
}

// RecordOrder journals a freshly created order
func (j *GormOrderJournal) RecordOrder(ctx context.Context, resp *orders.OrderResponse) error {
	record := &OrderRecord{
		CustomID:  resp.CustomID,
		Kind:      KindOrder,
		ServiceID: resp.ServiceID,
		Quantity:  resp.Quantity,
		Total:     resp.Total,
		Status:    resp.Status,
		Data:      resp.Data,
		CreatedAt: time.Now().UTC(),
	}

	if result := j.db.WithContext(ctx).Save(record); result.Error != nil {
		return fmt.Errorf("failed to record order %s: %w", resp.CustomID, result.Error)
	}
	return nil
}

// RecordSteamGiftOrder journals a freshly created Steam gift order
func (j *GormOrderJournal) RecordSteamGiftOrder(ctx context.Context, resp *steam.GiftOrderResponse) error {
	record := &OrderRecord{
		CustomID:  resp.CustomID,
		Kind:      KindSteamGift,
		ServiceID: resp.ServiceID,
		Quantity:  float64(resp.Quantity),
		Total:     resp.Total,
		Status:    resp.Status,
		CreatedAt: time.Now().UTC(),
	}

	if result := j.db.WithContext(ctx).Save(record); result.Error != nil {
		return fmt.Errorf("failed to record steam gift order %s: %w", resp.CustomID, result.Error)
	}
	return nil
}

// MarkPaid updates a journaled order with its payment outcome
func (j *GormOrderJournal) MarkPaid(ctx context.Context, customID string, status int, newBalance string) error {
	now := time.Now().UTC()
	result := j.db.WithContext(ctx).
		Model(&OrderRecord{}).
		Where("custom_id = ?", customID).
		Updates(map[string]interface{}{
			"status":      status,
			"new_balance": newBalance,
			"paid_at":     &now,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark order %s paid: %w", customID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, customID)
	}
	return nil
}

// FindByCustomID retrieves one journaled order
func (j *GormOrderJournal) FindByCustomID(ctx context.Context, customID string) (*OrderRecord, error) {
	var record OrderRecord
	result := j.db.WithContext(ctx).Where("custom_id = ?", customID).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, customID)
		}
		return nil, fmt.Errorf("failed to find order: %w", result.Error)
	}
	return &record, nil
}

// List returns journaled orders newest first, up to limit (0 = all)
func (j *GormOrderJournal) List(ctx context.Context, limit int) ([]OrderRecord, error) {
	var records []OrderRecord
	query := j.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if result := query.Find(&records); result.Error != nil {
		return nil, fmt.Errorf("failed to list orders: %w", result.Error)
	}
	return records, nil
}
