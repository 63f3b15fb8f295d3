// Package testing provides an isolated harness for testing Ripple
// components without a real host surface.
//
// # Quick Start
//
// Create a tester, mount a tree, and pump flushes explicitly:
//
//	func TestCounter(t *testing.T) {
//	    tester := rippletest.NewTreeTester(t)
//	    tester.Mount(core.C(Counter, nil))
//
//	    tester.Tap(rippletest.ByTag("button"))
//	    tester.Pump()
//
//	    if len(tester.Find(rippletest.ByText("Count: 1"))) == 0 {
//	        t.Error("expected count to advance")
//	    }
//	}
//
// # Time
//
// Components that tick subscribe to the tester's FakeClock, so tests
// advance time synchronously:
//
//	tester.Clock().Advance(3 * time.Second)
//	tester.PumpAll()
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import rippletest "github.com/go-ripple/ripple/pkg/testing"
package testing
