package utils

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitedTransport throttles outbound requests with a token bucket
// before delegating to the base round tripper. Waiting respects the
// request's context, so a canceled caller is not held hostage by the bucket.
type RateLimitedTransport struct {
	Base    http.RoundTripper
	Limiter *rate.Limiter
}

// NewRateLimitedTransport wraps base with a limiter allowing
// requestsPerSecond sustained throughput and bursts of burst requests. A nil
// base uses http.DefaultTransport.
func NewRateLimitedTransport(base http.RoundTripper, requestsPerSecond float64, burst int) *RateLimitedTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedTransport{
		Base:    base,
		Limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// RoundTrip implements http.RoundTripper.
func (t *RateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.Limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.Base.RoundTrip(req)
}
