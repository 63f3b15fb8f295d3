// Package showcase holds small demo components exercised by the ripple
// CLI. Each demo is a plain component registered under a name; the run
// and snapshot commands look demos up here.
package showcase

import (
	"time"

	"github.com/go-ripple/ripple/pkg/core"
)

// Ticker schedules a repeated callback and returns a cancel function.
// Demos that need the passage of time take one as a prop, so tests can
// drive them with a deterministic clock.
type Ticker interface {
	TickEvery(interval time.Duration, fn func()) (cancel func())
}

// Demo is a registered showcase entry.
type Demo struct {
	Name        string
	Description string
	// Build produces the root element for the demo. The ticker is nil
	// for demos that do not track time.
	Build func(ticker Ticker) *core.Element
}

// demos is the registry of all showcase entries.
// Add new demos here to make them reachable from the CLI.
var demos = []Demo{
	{"counter", "Click counter with a reset button", buildCounter},
	{"tasks", "Task list with per-item toggling", buildTasks},
	{"stopwatch", "Greeting that counts elapsed seconds", buildStopwatch},
}

// Demos returns all registered demos in registration order.
func Demos() []Demo {
	return demos
}

// Lookup returns the demo registered under name.
func Lookup(name string) (Demo, bool) {
	for _, d := range demos {
		if d.Name == name {
			return d, true
		}
	}
	return Demo{}, false
}

func buildCounter(Ticker) *core.Element {
	return core.C(Counter, core.Props{"label": "Count"})
}

func buildTasks(Ticker) *core.Element {
	return core.C(TaskList, core.Props{"title": "Today"})
}

func buildStopwatch(ticker Ticker) *core.Element {
	return core.C(GreetingStopwatch, core.Props{"name": "ripple", "ticker": ticker})
}
