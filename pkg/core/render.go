package core

import (
	"github.com/go-ripple/ripple/pkg/host"
)

// Runtime holds a mounted tree: the host adapter it commits through, the
// scheduler that drives its rerenders, and the committed root slot.
type Runtime struct {
	adapter   host.Adapter
	sched     *Scheduler
	container host.Node
	root      *mountedNode
}

// Option configures a Runtime before the initial mount.
type Option func(*Runtime)

// WithScheduler injects the scheduler the mounted tree enqueues into.
// Defaults to DefaultScheduler. Tests inject their own so flushes can be
// pumped deterministically.
func WithScheduler(s *Scheduler) Option {
	return func(rt *Runtime) {
		rt.sched = s
	}
}

// Render performs the unconditional synchronous initial mount of a
// descriptor tree into the given host container. The initial mount is
// not a flush: it bypasses the dirty queue entirely. It fails only when
// a component's setup or render fails; the error propagates to the
// caller and nothing is retried.
func Render(root *Element, adapter host.Adapter, container host.Node, opts ...Option) (*Runtime, error) {
	rt := &Runtime{
		adapter:   adapter,
		sched:     DefaultScheduler,
		container: container,
	}
	for _, opt := range opts {
		opt(rt)
	}

	mounted, err := rt.reconcileSlot(nil, container, nil, treeChild(root), 0, 0)
	rt.root = mounted
	return rt, err
}

// Update reconciles the live tree against a newly supplied root
// descriptor, the same way a parent render updates its subtree. Like
// Render, it runs outside the dirty queue.
func (rt *Runtime) Update(root *Element) error {
	mounted, err := rt.reconcileSlot(nil, rt.container, rt.root, treeChild(root), 0, 0)
	rt.root = mounted
	return err
}

// Unmount tears the whole tree down. Every instance's cleanups run; the
// committed host nodes are removed from the container.
func (rt *Runtime) Unmount() {
	if rt.root != nil {
		rt.unmountNode(rt.root, true)
		rt.root = nil
	}
}

// Scheduler returns the scheduler driving this tree's rerenders.
func (rt *Runtime) Scheduler() *Scheduler {
	return rt.sched
}

// Adapter returns the host adapter the tree commits through.
func (rt *Runtime) Adapter() host.Adapter {
	return rt.adapter
}
