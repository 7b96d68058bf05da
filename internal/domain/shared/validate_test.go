package shared_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfyzer/nsgifts-go/internal/domain/orders"
	"github.com/lfyzer/nsgifts-go/internal/domain/shared"
	"github.com/lfyzer/nsgifts-go/internal/domain/steam"
)

func TestValidatePayload_ValidOrder(t *testing.T) {
	err := shared.ValidatePayload(orders.CreateOrderRequest{
		ServiceID: 123,
		Quantity:  1,
		CustomID:  "order-1",
	})

	assert.NoError(t, err)
}

func TestValidatePayload_RejectsNonPositiveQuantity(t *testing.T) {
	err := shared.ValidatePayload(orders.CreateOrderRequest{
		ServiceID: 123,
		Quantity:  -1,
		CustomID:  "order-1",
	})

	var apiErr *shared.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, shared.KindValidation, apiErr.Kind)
	require.Len(t, apiErr.Fields, 1)
	assert.Equal(t, "Quantity", apiErr.Fields[0].Field)
}

func TestValidatePayload_CollectsAllRejectedFields(t *testing.T) {
	err := shared.ValidatePayload(orders.CreateOrderRequest{})

	var apiErr *shared.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, shared.KindValidation, apiErr.Kind)
	assert.GreaterOrEqual(t, len(apiErr.Fields), 3)
}

func TestValidatePayload_SteamProfileLink(t *testing.T) {
	valid := steam.GiftOrderRequest{
		FriendLink: "https://s.team/p/abcd-efg",
		SubID:      12345,
		Region:     steam.RegionRU,
	}
	assert.NoError(t, shared.ValidatePayload(valid))

	invalidLinks := []string{
		"https://steamcommunity.com/id/someone",
		"s.team/p/abcd-efg",
		"https://s.team/p/",
		"https://s.team/p/has space",
	}
	for _, link := range invalidLinks {
		req := valid
		req.FriendLink = link
		err := shared.ValidatePayload(req)

		var apiErr *shared.APIError
		require.True(t, errors.As(err, &apiErr), link)
		assert.Equal(t, shared.KindValidation, apiErr.Kind, link)
	}
}

func TestValidatePayload_RejectsUnknownRegion(t *testing.T) {
	err := shared.ValidatePayload(steam.GiftOrderRequest{
		FriendLink: "https://s.team/p/abcd-efg",
		SubID:      12345,
		Region:     "us",
	})

	var apiErr *shared.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, shared.KindValidation, apiErr.Kind)
}
