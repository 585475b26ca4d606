package plug

import (
	"context"

	"golang.org/x/time/rate"
)

const (
	// ProactiveRate is the proactive throttle rate in requests per second.
	// The Plug API publishes no limits; this simply spaces calls out so a
	// scripted loop of downloads stays polite.
	ProactiveRate = 2

	// ProactiveBurst allows the usual auth-then-query pair to go through
	// without waiting.
	ProactiveBurst = 2
)

// throttle spaces outbound requests with a token bucket. It never adds
// requests or retries; it only delays the next call.
type throttle struct {
	bucket *rate.Limiter
}

func newThrottle() *throttle {
	return &throttle{
		bucket: rate.NewLimiter(rate.Limit(ProactiveRate), ProactiveBurst),
	}
}

// Wait blocks until the next request may be sent.
func (t *throttle) Wait(ctx context.Context) error {
	return t.bucket.Wait(ctx)
}
