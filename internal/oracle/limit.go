package oracle

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimited wraps a provider with a token-bucket limiter so batch
// runs cannot flood the oracle API.
type RateLimited struct {
	inner   Provider
	limiter *rate.Limiter
}

// NewRateLimited wraps p with the given call budget. Non-positive
// values fall back to a conservative default.
func NewRateLimited(p Provider, perSecond float64, burst int) *RateLimited {
	if perSecond <= 0 {
		perSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimited{
		inner:   p,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Name returns the wrapped provider's name
func (r *RateLimited) Name() string {
	return r.inner.Name()
}

// Classify waits for rate clearance, then delegates.
func (r *RateLimited) Classify(ctx context.Context, req Request) (*Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.inner.Classify(ctx, req)
}

// IsAvailable delegates to the wrapped provider
func (r *RateLimited) IsAvailable(ctx context.Context) bool {
	return r.inner.IsAvailable(ctx)
}
