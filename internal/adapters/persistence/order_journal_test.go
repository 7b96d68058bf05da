package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfyzer/nsgifts-go/internal/adapters/persistence"
	"github.com/lfyzer/nsgifts-go/internal/domain/orders"
	"github.com/lfyzer/nsgifts-go/internal/domain/steam"
	"github.com/lfyzer/nsgifts-go/test/helpers"
)

func TestOrderJournal_RecordAndFind(t *testing.T) {
	db := helpers.NewTestDB(t)
	journal := persistence.NewGormOrderJournal(db)

	err := journal.RecordOrder(context.Background(), &orders.OrderResponse{
		CustomID:  "order-1",
		Status:    1,
		ServiceID: 123,
		Quantity:  2,
		Total:     199.9,
		Data:      "account:login",
	})
	require.NoError(t, err)

	found, err := journal.FindByCustomID(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", found.CustomID)
	assert.Equal(t, persistence.KindOrder, found.Kind)
	assert.Equal(t, int64(123), found.ServiceID)
	assert.Equal(t, 199.9, found.Total)
	assert.Nil(t, found.PaidAt)
}

func TestOrderJournal_RecordSteamGift(t *testing.T) {
	db := helpers.NewTestDB(t)
	journal := persistence.NewGormOrderJournal(db)

	err := journal.RecordSteamGiftOrder(context.Background(), &steam.GiftOrderResponse{
		CustomID:  "gift-1",
		Status:    1,
		ServiceID: 456,
		Quantity:  1,
		Total:     549.0,
	})
	require.NoError(t, err)

	found, err := journal.FindByCustomID(context.Background(), "gift-1")
	require.NoError(t, err)
	assert.Equal(t, persistence.KindSteamGift, found.Kind)
}

func TestOrderJournal_MarkPaid(t *testing.T) {
	db := helpers.NewTestDB(t)
	journal := persistence.NewGormOrderJournal(db)

	err := journal.RecordOrder(context.Background(), &orders.OrderResponse{
		CustomID: "order-2", Status: 1, ServiceID: 1, Quantity: 1, Total: 10,
	})
	require.NoError(t, err)

	err = journal.MarkPaid(context.Background(), "order-2", 2, "90.00")
	require.NoError(t, err)

	found, err := journal.FindByCustomID(context.Background(), "order-2")
	require.NoError(t, err)
	assert.Equal(t, 2, found.Status)
	assert.Equal(t, "90.00", found.NewBalance)
	assert.NotNil(t, found.PaidAt)
}

func TestOrderJournal_MarkPaidUnknownOrder(t *testing.T) {
	db := helpers.NewTestDB(t)
	journal := persistence.NewGormOrderJournal(db)

	err := journal.MarkPaid(context.Background(), "missing", 2, "0")

	assert.ErrorIs(t, err, persistence.ErrOrderNotFound)
}

func TestOrderJournal_FindNotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	journal := persistence.NewGormOrderJournal(db)

	_, err := journal.FindByCustomID(context.Background(), "missing")

	assert.ErrorIs(t, err, persistence.ErrOrderNotFound)
}

func TestOrderJournal_ListNewestFirst(t *testing.T) {
	db := helpers.NewTestDB(t)
	journal := persistence.NewGormOrderJournal(db)

	for _, id := range []string{"a", "b", "c"} {
		err := journal.RecordOrder(context.Background(), &orders.OrderResponse{
			CustomID: id, Status: 1, ServiceID: 1, Quantity: 1, Total: 1,
		})
		require.NoError(t, err)
	}

	records, err := journal.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	all, err := journal.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
