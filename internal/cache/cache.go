// Package cache provides the keyed result cache shared by the report
// endpoints: time-boxed memoization with a stale-on-error fallback, so the
// external interface degrades to "last known good" instead of an outage.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Outcome describes how a GetOrFetch call was satisfied.
type Outcome string

const (
	OutcomeHit     Outcome = "hit"     // fresh entry returned, no fetch
	OutcomeRefresh Outcome = "refresh" // fetched and stored a new value
	OutcomeStale   Outcome = "stale"   // fetch failed, prior value served
	OutcomeError   Outcome = "error"   // fetch failed with nothing to fall back on
)

// Cache memoizes fetch results per key for a fixed TTL. Entries are replaced
// whole on refresh, never mutated in place.
type Cache[T any] struct {
	ttl   time.Duration
	clock clockwork.Clock

	mu      sync.Mutex
	entries map[string]entry[T]
}

type entry[T any] struct {
	value     T
	fetchedAt time.Time
}

// New creates a cache whose entries expire ttl after their fetch. Pass a nil
// clock for real time; tests inject a fake.
func New[T any](ttl time.Duration, clock clockwork.Clock) *Cache[T] {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache[T]{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]entry[T]),
	}
}

// GetOrFetch returns the cached value for key when fresh, otherwise invokes
// fetch. A failed fetch falls back to the prior value, even an expired one,
// and only propagates the error when no prior value exists.
//
// The lock is never held across fetch, so concurrent requests for the same
// expired key may each fetch independently; results are idempotent reads of
// the upstream report and last-write-wins is acceptable.
func (c *Cache[T]) GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, Outcome, error) {
	if value, ok := c.lookup(key, true); ok {
		return value, OutcomeHit, nil
	}

	value, err := fetch(ctx)
	if err != nil {
		if prior, ok := c.lookup(key, false); ok {
			return prior, OutcomeStale, nil
		}
		var zero T
		return zero, OutcomeError, err
	}

	c.store(key, value)
	return value, OutcomeRefresh, nil
}

// lookup returns the entry for key; with freshOnly it also requires the entry
// to be within its TTL.
func (c *Cache[T]) lookup(key string, freshOnly bool) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if freshOnly && c.clock.Since(e.fetchedAt) >= c.ttl {
		var zero T
		return zero, false
	}
	return e.value, true
}

func (c *Cache[T]) store(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[T]{value: value, fetchedAt: c.clock.Now()}
}
