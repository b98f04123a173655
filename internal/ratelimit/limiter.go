// Package ratelimit throttles outbound API requests.
package ratelimit

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"
)

// jitterFactor spreads waits by up to ±20% of the computed delay.
const jitterFactor = 0.20

// Limiter is a token-bucket limiter with jittered waits. A nil *Limiter
// never blocks.
type Limiter struct {
	inner *rate.Limiter
}

// New creates a Limiter with the given requests-per-second rate and burst capacity.
func New(rps float64, burst int) *Limiter {
	return &Limiter{inner: rate.NewLimiter(rate.Limit(rps), burst)}
}

// FromConfig returns a Limiter for a configured requests-per-second value,
// or nil when rps is not positive (limiting disabled). The burst equals the
// rate rounded up, with a minimum of one.
func FromConfig(rps float64) *Limiter {
	if rps <= 0 {
		return nil
	}
	burst := int(rps)
	if float64(burst) < rps {
		burst++
	}
	return New(rps, max(burst, 1))
}

// Wait blocks until a token is available or ctx is done. A cancelled wait
// gives its reservation back.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	res := l.inner.Reserve()
	if !res.OK() {
		return ctx.Err()
	}
	delay := jittered(res.Delay(), rand.Float64()) //nolint:gosec // non-cryptographic random is fine for jitter
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		res.Cancel()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// jittered shifts d by up to jitterFactor in either direction; u in [0, 1)
// picks the shift.
func jittered(d time.Duration, u float64) time.Duration {
	if d <= 0 {
		return 0
	}
	shift := time.Duration(float64(d) * jitterFactor * (u*2 - 1))
	return max(0, d+shift)
}
