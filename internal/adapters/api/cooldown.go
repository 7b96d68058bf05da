package api

import (
	"sync"
	"time"

	"github.com/lfyzer/nsgifts-go/internal/domain/shared"
)

// CooldownGate is the fail-fast window entered after observing a 5xx
// response. While the window is open, non-auth requests are rejected
// without touching the network so a struggling backend sheds load.
// Expiry is lazy: the state resets on the first check past the deadline,
// no timer involved. The gate is global per client instance.
type CooldownGate struct {
	mu        sync.Mutex
	tripped   bool
	trippedAt time.Time
	duration  time.Duration
	clock     shared.Clock
}

// NewCooldownGate creates a gate with the given window duration.
// If clock is nil, uses RealClock.
func NewCooldownGate(duration time.Duration, clock shared.Clock) *CooldownGate {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CooldownGate{
		duration: duration,
		clock:    clock,
	}
}

// Trip opens the window. Tripping an already-open gate restarts it.
func (g *CooldownGate) Trip() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tripped = true
	g.trippedAt = g.clock.Now()
}

// Remaining returns the time left in the window and whether it is open.
// A gate whose deadline has passed resets itself before answering.
func (g *CooldownGate) Remaining() (time.Duration, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.tripped {
		return 0, false
	}

	elapsed := g.clock.Now().Sub(g.trippedAt)
	if elapsed >= g.duration {
		g.tripped = false
		g.trippedAt = time.Time{}
		return 0, false
	}
	return g.duration - elapsed, true
}

// Active reports whether the window is currently open
func (g *CooldownGate) Active() bool {
	_, active := g.Remaining()
	return active
}

// Reset closes the window immediately
func (g *CooldownGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tripped = false
	g.trippedAt = time.Time{}
}
