package core

import (
	"fmt"

	"github.com/go-ripple/ripple/pkg/host"
)

// Self is the handle a component's setup function receives and closes
// over. Exactly one Self exists per mounted instance; prop updates mutate
// it in place, so closures formed during setup always observe the latest
// committed props without re-subscription.
//
// Self is owned exclusively by its instance and must only be touched from
// the runtime's logical thread, with one exception: MarkForRerender is
// safe to call from any asynchronous callback; it only enqueues.
type Self struct {
	inst     *Instance
	props    Props
	children []any
}

// Props returns the live prop map. The map identity is stable for the
// life of the instance; reconciliation replaces its contents in place.
func (s *Self) Props() Props {
	return s.props
}

// Children returns the element children the parent passed to this
// component, as of the latest committed update.
func (s *Self) Children() []any {
	return s.children
}

// MarkForRerender marks the owning instance dirty. Repeated calls within
// one batch collapse to a single render. Calling it on an unmounted
// instance is a no-op.
func (s *Self) MarkForRerender() {
	s.inst.MarkForRerender()
}

// Cleanup registers a teardown callback, invoked exactly once when the
// instance unmounts or immediately before a remount replaces it.
// Callbacks run in registration order.
func (s *Self) Cleanup(fn func()) {
	if fn == nil {
		return
	}
	s.inst.cleanups = append(s.inst.cleanups, fn)
}

// AfterRender registers a callback invoked after each commit of this
// instance's rendered output, every render, not just the first.
// Callbacks run in registration order.
func (s *Self) AfterRender(fn func()) {
	if fn == nil {
		return
	}
	s.inst.afterRender = append(s.inst.afterRender, fn)
}

// RemountIf registers a predicate evaluated with (oldProps, newProps) on
// every prop update. When it returns true the instance is torn down
// (cleanups run, closure state is discarded) and a fresh instance mounts
// in its place with the new props.
func (s *Self) RemountIf(pred func(old, new Props) bool) {
	s.inst.remountIf = pred
}

// Measure reads the measurable properties of the instance's committed
// root host node. Returns zero metrics while nothing is committed.
func (s *Self) Measure() host.Metrics {
	node := firstHost(s.inst.output)
	if node == nil {
		return host.Metrics{}
	}
	return s.inst.rt.adapter.Measure(node)
}

// String returns the named prop as a string, or "" when absent.
func (s *Self) String(name string) string {
	v, ok := s.props[name]
	if !ok || v == nil {
		return ""
	}
	if str, ok := v.(string); ok {
		return str
	}
	return fmt.Sprint(v)
}

// Int returns the named prop as an int, or 0 when absent or not an int.
func (s *Self) Int(name string) int {
	if v, ok := s.props[name].(int); ok {
		return v
	}
	return 0
}

// Float returns the named prop as a float64, or 0 when absent.
func (s *Self) Float(name string) float64 {
	switch v := s.props[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// Bool returns the named prop as a bool, or false when absent.
func (s *Self) Bool(name string) bool {
	v, _ := s.props[name].(bool)
	return v
}
