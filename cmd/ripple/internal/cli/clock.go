package cli

import "time"

// stepClock drives showcase.Ticker callbacks from the command's own
// loop, so all component state stays on one goroutine. The run command
// paces Advance calls against wall time; nothing here ever fires
// concurrently.
type stepClock struct {
	now     time.Duration
	tickers []*stepTicker
}

type stepTicker struct {
	interval time.Duration
	next     time.Duration
	fn       func()
	stopped  bool
}

func newStepClock() *stepClock {
	return &stepClock{}
}

func (c *stepClock) TickEvery(interval time.Duration, fn func()) (cancel func()) {
	tk := &stepTicker{interval: interval, next: c.now + interval, fn: fn}
	c.tickers = append(c.tickers, tk)
	return func() { tk.stopped = true }
}

// Advance moves the clock forward, firing due tickers in time order.
func (c *stepClock) Advance(d time.Duration) {
	target := c.now + d
	for {
		var earliest *stepTicker
		for _, tk := range c.tickers {
			if tk.stopped || tk.next > target {
				continue
			}
			if earliest == nil || tk.next < earliest.next {
				earliest = tk
			}
		}
		if earliest == nil {
			break
		}
		c.now = earliest.next
		earliest.next += earliest.interval
		earliest.fn()
	}
	c.now = target
}
