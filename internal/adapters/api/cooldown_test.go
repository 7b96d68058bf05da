package api_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lfyzer/nsgifts-go/internal/adapters/api"
	"github.com/lfyzer/nsgifts-go/internal/domain/shared"
)

func TestCooldownGate_StartsClosed(t *testing.T) {
	gate := api.NewCooldownGate(5*time.Minute, shared.NewMockClock(time.Now()))

	assert.False(t, gate.Active())
	remaining, active := gate.Remaining()
	assert.False(t, active)
	assert.Zero(t, remaining)
}

func TestCooldownGate_TripOpensWindow(t *testing.T) {
	clock := shared.NewMockClock(time.Now())
	gate := api.NewCooldownGate(5*time.Minute, clock)

	gate.Trip()

	assert.True(t, gate.Active())
	remaining, active := gate.Remaining()
	assert.True(t, active)
	assert.Equal(t, 5*time.Minute, remaining)
}

func TestCooldownGate_RemainingDecreases(t *testing.T) {
	clock := shared.NewMockClock(time.Now())
	gate := api.NewCooldownGate(5*time.Minute, clock)

	gate.Trip()
	clock.Advance(2 * time.Minute)

	remaining, active := gate.Remaining()
	assert.True(t, active)
	assert.Equal(t, 3*time.Minute, remaining)
}

func TestCooldownGate_ExpiresLazily(t *testing.T) {
	clock := shared.NewMockClock(time.Now())
	gate := api.NewCooldownGate(5*time.Minute, clock)

	gate.Trip()
	clock.Advance(5 * time.Minute)

	// First check past the deadline self-resets
	assert.False(t, gate.Active())
	assert.False(t, gate.Active())
}

func TestCooldownGate_RetripRestartsWindow(t *testing.T) {
	clock := shared.NewMockClock(time.Now())
	gate := api.NewCooldownGate(5*time.Minute, clock)

	gate.Trip()
	clock.Advance(4 * time.Minute)
	gate.Trip()
	clock.Advance(4 * time.Minute)

	// 8 minutes past the first trip but only 4 past the second
	assert.True(t, gate.Active())
	remaining, _ := gate.Remaining()
	assert.Equal(t, time.Minute, remaining)
}

func TestCooldownGate_Reset(t *testing.T) {
	clock := shared.NewMockClock(time.Now())
	gate := api.NewCooldownGate(5*time.Minute, clock)

	gate.Trip()
	gate.Reset()

	assert.False(t, gate.Active())
}
