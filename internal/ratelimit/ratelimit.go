// Package ratelimit bounds concurrent in-flight calls per vendor using a
// per-vendor weighted semaphore.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// defaultCaps sets each vendor's default concurrent-call ceiling. Vendors
// not listed here fall back to unknownVendorCap.
var defaultCaps = map[string]int64{
	"openai":   50,
	"claude":   20,
	"gemini":   30,
	"deepseek": 20,
	"xai":      10,
}

const unknownVendorCap = 10

// Limiter holds one weighted semaphore per vendor.
type Limiter struct {
	mu   sync.Mutex
	sems map[string]*semaphore.Weighted
}

// New builds a Limiter using caps, falling back to defaultCaps for any
// vendor caps omits, and to unknownVendorCap for a vendor present in
// neither map.
func New(caps map[string]int64) *Limiter {
	merged := make(map[string]int64, len(defaultCaps))
	for vendor, n := range defaultCaps {
		merged[vendor] = n
	}
	for vendor, n := range caps {
		merged[vendor] = n
	}

	l := &Limiter{sems: make(map[string]*semaphore.Weighted, len(merged))}
	for vendor, n := range merged {
		l.sems[vendor] = semaphore.NewWeighted(n)
	}
	return l
}

// Acquire blocks until a slot for vendor is free or ctx is done. Unknown
// vendors get a semaphore lazily created with unknownVendorCap.
func (l *Limiter) Acquire(ctx context.Context, vendor string) error {
	return l.semFor(vendor).Acquire(ctx, 1)
}

// Release frees the slot acquired for vendor.
func (l *Limiter) Release(vendor string) {
	l.semFor(vendor).Release(1)
}

func (l *Limiter) semFor(vendor string) *semaphore.Weighted {
	l.mu.Lock()
	defer l.mu.Unlock()
	if sem, ok := l.sems[vendor]; ok {
		return sem
	}
	sem := semaphore.NewWeighted(unknownVendorCap)
	l.sems[vendor] = sem
	return sem
}
