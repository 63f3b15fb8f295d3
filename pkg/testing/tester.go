package testing

import (
	"fmt"
	"testing"

	"github.com/go-ripple/ripple/pkg/core"
	"github.com/go-ripple/ripple/pkg/host"
)

// TreeTester drives a Ripple tree in isolation: it owns a private
// scheduler (no auto-flush; tests pump explicitly), an in-memory host
// adapter, and a fake clock. It runs the same mount, reconcile, and
// flush paths as a real platform embedding.
type TreeTester struct {
	adapter   *host.MemoryAdapter
	container *host.MemNode
	sched     *core.Scheduler
	clock     *FakeClock
	rt        *core.Runtime
}

// NewTreeTester creates a tester that unmounts its tree via t.Cleanup.
func NewTreeTester(t *testing.T) *TreeTester {
	t.Helper()
	adapter := host.NewMemoryAdapter()
	tester := &TreeTester{
		adapter:   adapter,
		container: adapter.NewContainer(),
		sched:     core.NewScheduler(),
		clock:     NewFakeClock(),
	}
	t.Cleanup(func() {
		if tester.rt != nil {
			tester.rt.Unmount()
			tester.rt = nil
		}
	})
	return tester
}

// Mount performs the initial mount of a descriptor tree. Mounting a
// second tree unmounts the first.
func (tt *TreeTester) Mount(root *core.Element) error {
	if tt.rt != nil {
		tt.rt.Unmount()
		tt.rt = nil
	}
	rt, err := core.Render(root, tt.adapter, tt.container, core.WithScheduler(tt.sched))
	tt.rt = rt
	return err
}

// Update reconciles the mounted tree against a new root descriptor.
// Errors when nothing is mounted yet.
func (tt *TreeTester) Update(root *core.Element) error {
	if tt.rt == nil {
		return fmt.Errorf("update before mount: call Mount first")
	}
	return tt.rt.Update(root)
}

// Pump runs a single scheduler flush.
func (tt *TreeTester) Pump() error {
	return tt.sched.Flush()
}

// PumpAll flushes until the scheduler settles.
func (tt *TreeTester) PumpAll() error {
	return tt.sched.FlushAll()
}

// Pending returns how many instances wait in the current batch.
func (tt *TreeTester) Pending() int {
	return tt.sched.Pending()
}

// Clock returns the fake clock for advancing time.
func (tt *TreeTester) Clock() *FakeClock {
	return tt.clock
}

// Adapter returns the in-memory host adapter.
func (tt *TreeTester) Adapter() *host.MemoryAdapter {
	return tt.adapter
}

// Container returns the host container the tree is mounted into.
func (tt *TreeTester) Container() *host.MemNode {
	return tt.container
}

// Snapshot renders the committed host tree as an indented dump.
func (tt *TreeTester) Snapshot() string {
	return tt.adapter.String(tt.container)
}

// Ops returns the host mutations recorded since the last ResetOps.
func (tt *TreeTester) Ops() []string {
	return tt.adapter.OpStrings()
}

// ResetOps clears the recorded host mutations.
func (tt *TreeTester) ResetOps() {
	tt.adapter.ResetOps()
}

// Find returns every committed node matching the predicate, in
// depth-first order.
func (tt *TreeTester) Find(pred func(*host.MemNode) bool) []*host.MemNode {
	var out []*host.MemNode
	var walk func(n *host.MemNode)
	walk = func(n *host.MemNode) {
		if pred(n) {
			out = append(out, n)
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	for _, child := range tt.container.Children {
		walk(child)
	}
	return out
}

// ByTag matches element nodes with the given tag.
func ByTag(tag string) func(*host.MemNode) bool {
	return func(n *host.MemNode) bool {
		return !n.IsText && n.Tag == tag
	}
}

// ByText matches text nodes with exactly the given content.
func ByText(text string) func(*host.MemNode) bool {
	return func(n *host.MemNode) bool {
		return n.IsText && n.Text == text
	}
}

// Fire dispatches a host event on the first node matching the
// predicate and reports whether a handler was bound.
func (tt *TreeTester) Fire(pred func(*host.MemNode) bool, event string, args ...any) bool {
	nodes := tt.Find(pred)
	if len(nodes) == 0 {
		return false
	}
	return tt.adapter.FireEvent(nodes[0], event, args...)
}

// Tap dispatches a "click" event on the first matching node.
func (tt *TreeTester) Tap(pred func(*host.MemNode) bool) bool {
	return tt.Fire(pred, "click")
}
