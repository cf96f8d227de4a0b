// Package latency models the simulated network round-trips the terminal
// performs: each is a single delay that resolves exactly once, with no retry
// or cancellation beyond context expiry. Tests swap in the instant sleeper.
package latency

import (
	"context"
	"math/rand"
	"time"
)

// Sleeper waits out a simulated round-trip.
type Sleeper interface {
	Wait(ctx context.Context, d time.Duration) error
}

// Real waits on a timer, honoring context cancellation.
type Real struct{}

func (Real) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Instant resolves immediately. Used in tests and when simulated latency is
// disabled.
type Instant struct{}

func (Instant) Wait(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// Jitter returns a duration in [base, base+spread).
func Jitter(base, spread time.Duration) time.Duration {
	if spread <= 0 {
		return base
	}
	return base + time.Duration(rand.Int63n(int64(spread)))
}

// FromConfig picks the sleeper matching the simulated-latency toggle.
func FromConfig(enabled bool) Sleeper {
	if enabled {
		return Real{}
	}
	return Instant{}
}
