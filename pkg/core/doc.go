// Package core implements the Ripple component runtime: element
// descriptors, component instances, the rerender scheduler, and the
// reconciler that keeps a live tree of mounted instances in sync with
// freshly rendered descriptor trees.
//
// # Components
//
// A component is a plain setup function. It runs exactly once per
// instance, closes over whatever state it needs, and returns the render
// function the runtime calls on every render pass:
//
//	func Counter(self *core.Self) core.RenderFunc {
//	    count := 0
//	    return func() *core.Element {
//	        return core.E("button", core.Props{
//	            "click": func() { count++ },
//	        }, fmt.Sprintf("Count: %d", count))
//	    }
//	}
//
// There is no dependency-array bookkeeping: closures over setup-scoped
// variables are stable for the life of the instance, and the Self handle
// mutates in place so those closures always see current props.
//
// # Rerenders
//
// Callbacks defined inside a render are wrapped automatically: firing
// one marks the defining instance dirty before the callback body runs,
// so the click handler above needs no explicit MarkForRerender. The
// Scheduler batches dirty instances and flushes them ancestors-first;
// marks arriving during a flush defer to the next one.
//
// A committed handler is not rebound on later renders of the same node:
// the runtime cannot tell one render's wrapper from the next, so the
// handler bound at mount keeps firing. Handlers should therefore close
// over setup-scoped state (as the counter above does), not over values
// computed inside a render pass; a render-scoped capture would stay
// frozen at its mount-time value.
//
// # Lifecycle
//
// Self exposes Cleanup for teardown callbacks, AfterRender for
// post-commit callbacks, and RemountIf for predicates that trade an
// in-place prop update for a fresh mount, discarding closure state.
package core
