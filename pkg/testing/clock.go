package testing

import (
	"sync"
	"time"
)

// FakeClock provides controllable time for deterministic lifecycle
// tests. Components under test subscribe to ticks instead of real
// timers, so a test can advance time synchronously and then pump the
// scheduler. All methods are safe for concurrent use.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

type fakeTicker struct {
	interval time.Duration
	next     time.Time
	fn       func()
	stopped  bool
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// TickEvery registers fn to fire once per interval as the clock
// advances. The returned cancel function stops the ticker; it is safe
// to call more than once and is the natural thing to hand to
// Self.Cleanup.
func (c *FakeClock) TickEvery(interval time.Duration, fn func()) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ticker := &fakeTicker{
		interval: interval,
		next:     c.now.Add(interval),
		fn:       fn,
	}
	c.tickers = append(c.tickers, ticker)
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		ticker.stopped = true
	}
}

// Advance moves the clock forward by d, firing due tickers in time
// order. Ticker callbacks run without the clock lock held, so they may
// mark instances for rerender or even register new tickers.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	deadline := c.now.Add(d)
	c.mu.Unlock()

	for {
		fn := c.popDue(deadline)
		if fn == nil {
			break
		}
		fn()
	}

	c.mu.Lock()
	c.now = deadline
	c.mu.Unlock()
}

// popDue advances the clock to the earliest due ticker at or before
// deadline and returns its callback, or nil when nothing is due.
func (c *FakeClock) popDue(deadline time.Time) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var earliest *fakeTicker
	for _, ticker := range c.tickers {
		if ticker.stopped {
			continue
		}
		if ticker.next.After(deadline) {
			continue
		}
		if earliest == nil || ticker.next.Before(earliest.next) {
			earliest = ticker
		}
	}
	if earliest == nil {
		return nil
	}
	c.now = earliest.next
	earliest.next = earliest.next.Add(earliest.interval)
	return earliest.fn
}
