package adnet

import (
	"log/slog"
	"sync"
	"time"

	"github.com/playwatch/rewardd/internal/config"
)

// CircuitBreaker stops fill requests to an ad network that keeps failing.
// Closed passes everything and counts consecutive failures; at the threshold
// the breaker opens and blocks until the cooldown elapses, then lets a single
// probe through (half-open). The probe's outcome closes or reopens it.
type CircuitBreaker struct {
	mu          sync.Mutex
	state       string
	fails       int
	probes      int
	lastFailure time.Time

	threshold int
	cooldown  time.Duration
	now       func() time.Time
}

// NewCircuitBreaker creates a closed breaker.
func NewCircuitBreaker(threshold int, cooldown time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		state:     config.CircuitClosed,
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// Allow reports whether a request may go through right now.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == config.CircuitOpen && cb.now().Sub(cb.lastFailure) >= cb.cooldown {
		slog.Debug("circuit breaker transitioning to half-open",
			"consecutiveFails", cb.fails,
			"cooldown", cb.cooldown,
		)
		cb.state = config.CircuitHalfOpen
		cb.probes = 0
	}

	switch cb.state {
	case config.CircuitClosed:
		return true
	case config.CircuitHalfOpen:
		if cb.probes >= config.CircuitBreakerHalfOpenMax {
			return false
		}
		cb.probes++
		return true
	default:
		return false
	}
}

// RecordSuccess closes the breaker and clears the failure count.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != config.CircuitClosed {
		slog.Info("circuit breaker closed after success", "previousState", cb.state)
	}
	cb.state = config.CircuitClosed
	cb.fails = 0
	cb.probes = 0
}

// RecordFailure counts a failure. A half-open probe failure reopens the
// breaker immediately; in closed state the threshold decides.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.fails++
	cb.lastFailure = cb.now()

	switch {
	case cb.state == config.CircuitHalfOpen:
		slog.Warn("circuit breaker reopened after probe failure", "consecutiveFails", cb.fails)
		cb.open()
	case cb.state == config.CircuitClosed && cb.fails >= cb.threshold:
		slog.Warn("circuit breaker tripped",
			"consecutiveFails", cb.fails,
			"threshold", cb.threshold,
		)
		cb.open()
	}
}

// open is called with the lock held.
func (cb *CircuitBreaker) open() {
	cb.state = config.CircuitOpen
	cb.probes = 0
}

// State returns the current circuit state.
func (cb *CircuitBreaker) State() string {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// ConsecutiveFailures returns the current failure count.
func (cb *CircuitBreaker) ConsecutiveFailures() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.fails
}
