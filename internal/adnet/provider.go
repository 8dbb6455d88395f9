// Package adnet talks to external ad networks. A Provider answers one
// question per call: can an ad be served right now for a placement. The
// ProviderSet rotates across providers with per-provider rate limiting
// and circuit breaking so one flaky network never starves ad delivery.
package adnet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/playwatch/rewardd/internal/config"
)

// Provider requests an ad fill from one ad network.
type Provider interface {
	// Name returns the provider identifier (e.g. "postback", "house").
	Name() string
	// Fill requests an ad for the given placement. A nil error means an
	// ad is available and the impression was registered upstream.
	Fill(ctx context.Context, placement string) error
}

// Errors returned by ProviderSet.
var (
	ErrAllProvidersFailed = errors.New("all ad providers failed")
	ErrNoProviders        = errors.New("no ad providers configured")
)

// wrappedProvider pairs a Provider with its rate limiter and circuit breaker.
type wrappedProvider struct {
	provider       Provider
	rateLimiter    *RateLimiter
	circuitBreaker *CircuitBreaker
}

// ProviderSet manages a set of ad providers with round-robin rotation.
// Thread-safe. On failure, rotates to the next provider and retries.
type ProviderSet struct {
	mu        sync.Mutex
	providers []wrappedProvider
	current   int
}

// NewProviderSet wraps each provider with its own rate limiter and circuit breaker.
func NewProviderSet(providers []Provider, rpsPerProvider []int) *ProviderSet {
	wrapped := make([]wrappedProvider, len(providers))
	for i, p := range providers {
		wrapped[i] = wrappedProvider{
			provider:       p,
			rateLimiter:    NewRateLimiter(p.Name(), rpsPerProvider[i]),
			circuitBreaker: NewCircuitBreaker(config.CircuitBreakerThreshold, config.CircuitBreakerCooldown),
		}
	}

	slog.Info("ad provider set created", "providers", len(providers))

	return &ProviderSet{providers: wrapped}
}

// Fill requests an ad fill, rotating through providers on failure until one
// succeeds or all have been tried.
func (ps *ProviderSet) Fill(ctx context.Context, placement string) error {
	ps.mu.Lock()
	n := len(ps.providers)
	if n == 0 {
		ps.mu.Unlock()
		return ErrNoProviders
	}
	startIdx := ps.current
	ps.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt < n; attempt++ {
		ps.mu.Lock()
		idx := (startIdx + attempt) % n
		wp := ps.providers[idx]
		ps.mu.Unlock()

		if !wp.circuitBreaker.Allow() {
			slog.Debug("ad provider circuit open, skipping",
				"provider", wp.provider.Name(),
				"placement", placement,
			)
			lastErr = fmt.Errorf("provider %s circuit open", wp.provider.Name())
			continue
		}

		if err := wp.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter cancelled for %s: %w", wp.provider.Name(), err)
		}

		if err := wp.provider.Fill(ctx, placement); err != nil {
			wp.circuitBreaker.RecordFailure()
			slog.Warn("ad provider fill failed, rotating",
				"provider", wp.provider.Name(),
				"placement", placement,
				"error", err,
				"attempt", attempt+1,
				"totalProviders", n,
			)
			lastErr = err

			ps.mu.Lock()
			ps.current = (idx + 1) % n
			ps.mu.Unlock()
			continue
		}

		wp.circuitBreaker.RecordSuccess()

		slog.Debug("ad fill succeeded",
			"provider", wp.provider.Name(),
			"placement", placement,
		)
		return nil
	}

	slog.Error("all ad providers failed",
		"placement", placement,
		"lastError", lastErr,
	)
	return fmt.Errorf("%w: placement=%s: %v", ErrAllProvidersFailed, placement, lastErr)
}

// ProviderCount returns the number of providers in this set.
func (ps *ProviderSet) ProviderCount() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return len(ps.providers)
}

// NewHTTPClient creates a configured HTTP client for provider use.
func NewHTTPClient() *http.Client {
	transport := &http.Transport{
		MaxConnsPerHost:     8,
		MaxIdleConnsPerHost: 4,
		MaxIdleConns:        16,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   10 * time.Second,
	}
}
