package zhlive

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RateLimiter is a token bucket shared by all requests towards the backend.
type RateLimiter struct {
	mu       sync.Mutex
	clock    Clock
	tokens   float64
	capacity float64
	perSec   float64
	last     time.Time
}

// RateLimitConfig configures the rate limiter.
type RateLimitConfig struct {
	RequestsPerMinute int   // Maximum requests per minute (default: 60)
	BurstSize         int   // Maximum burst size (default: same as RPM)
	Clock             Clock // Time source (default: RealClock)
}

// NewRateLimiter creates a rate limiter with a full bucket.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rpm := float64(cfg.RequestsPerMinute)
	if rpm <= 0 {
		rpm = 60
	}

	burst := float64(cfg.BurstSize)
	if burst <= 0 {
		burst = rpm
	}

	clock := cfg.Clock
	if clock == nil {
		clock = RealClock()
	}

	return &RateLimiter{
		clock:    clock,
		tokens:   burst,
		capacity: burst,
		perSec:   rpm / 60,
		last:     clock.Now(),
	}
}

// Wait blocks until a token is taken or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		delay, ok := r.take()
		if ok {
			return nil
		}

		ready := make(chan struct{})
		t := r.clock.AfterFunc(delay, func() { close(ready) })

		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-ready:
		}
	}
}

// TryAcquire takes a token if one is available.
func (r *RateLimiter) TryAcquire() bool {
	_, ok := r.take()
	return ok
}

// take takes a token, or reports how long until the next one.
func (r *RateLimiter) take() (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refillLocked()
	if r.tokens >= 1 {
		r.tokens--
		return 0, true
	}

	missing := 1 - r.tokens
	delay := time.Duration(missing / r.perSec * float64(time.Second))
	if delay <= 0 {
		delay = time.Millisecond
	}
	return delay, false
}

func (r *RateLimiter) refillLocked() {
	now := r.clock.Now()
	if elapsed := now.Sub(r.last); elapsed > 0 {
		r.tokens = min(r.capacity, r.tokens+elapsed.Seconds()*r.perSec)
	}
	r.last = now
}

// Available returns the number of tokens in the bucket.
func (r *RateLimiter) Available() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refillLocked()
	return r.tokens
}

// RateLimitedBackend wraps a Backend with rate limiting. Speak and Share
// draw from the same bucket as Translate.
type RateLimitedBackend struct {
	backend Backend
	limiter *RateLimiter
}

// NewRateLimitedBackend creates a new rate-limited backend.
func NewRateLimitedBackend(backend Backend, cfg RateLimitConfig) *RateLimitedBackend {
	return &RateLimitedBackend{
		backend: backend,
		limiter: NewRateLimiter(cfg),
	}
}

// Translate implements Backend with rate limiting.
func (b *RateLimitedBackend) Translate(ctx context.Context, req TranslateRequest) (*TranslationResult, error) {
	if err := b.wait(ctx, "/translate"); err != nil {
		return nil, err
	}
	return b.backend.Translate(ctx, req)
}

// Speak implements Backend with rate limiting.
func (b *RateLimitedBackend) Speak(ctx context.Context, req SpeakRequest) (*Audio, error) {
	if err := b.wait(ctx, "/speak"); err != nil {
		return nil, err
	}
	return b.backend.Speak(ctx, req)
}

// Share implements Backend with rate limiting.
func (b *RateLimitedBackend) Share(ctx context.Context, req ShareRequest) (string, error) {
	if err := b.wait(ctx, "/share"); err != nil {
		return "", err
	}
	return b.backend.Share(ctx, req)
}

func (b *RateLimitedBackend) wait(ctx context.Context, endpoint string) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return &TransportError{
			Endpoint: endpoint,
			Cause:    fmt.Errorf("rate limit wait cancelled: %w", err),
		}
	}
	return nil
}

// Limiter returns the underlying rate limiter for inspection.
func (b *RateLimitedBackend) Limiter() *RateLimiter {
	return b.limiter
}

// Verify RateLimitedBackend implements Backend
var _ Backend = (*RateLimitedBackend)(nil)
