package core

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/go-ripple/ripple/pkg/errors"
	"github.com/go-ripple/ripple/pkg/host"
)

// Instance is the live, stateful realization of a component at a specific
// tree position. Identity is the position established by the parent plus
// the descriptor key; closure state lives in the setup scope and survives
// every render until unmount or remount discards it.
type Instance struct {
	id        string
	name      string
	component ComponentFunc
	self      *Self
	render    RenderFunc

	rt    *Runtime
	depth int

	slot       *mountedNode
	hostParent host.Node
	hostIndex  int
	output     *mountedNode

	mounted bool
	dead    bool
	dirty   bool

	cleanups    []func()
	afterRender []func()
	remountIf   func(old, new Props) bool
	lastProps   Props
}

// ID returns the runtime-assigned instance identifier.
func (inst *Instance) ID() string { return inst.id }

// Name returns the component's function name, used in error reports.
func (inst *Instance) Name() string { return inst.name }

// Depth returns the instance's depth in the element tree. The scheduler
// flushes shallower instances first.
func (inst *Instance) Depth() int { return inst.depth }

// Mounted reports whether the instance is currently mounted.
func (inst *Instance) Mounted() bool { return inst.mounted }

// MarkForRerender marks the instance dirty and enqueues it with the
// scheduler. Idempotent within a batch; a no-op after unmount.
func (inst *Instance) MarkForRerender() {
	if inst.dead || inst.dirty {
		return
	}
	inst.dirty = true
	inst.rt.sched.Schedule(inst)
}

// newInstance runs the component's setup function. A panic or a nil
// render function propagates as *errors.SetupError and no instance is
// created.
func (rt *Runtime) newInstance(el *Element, depth int, hostParent host.Node, hostIndex int) (*Instance, error) {
	inst := &Instance{
		id:         uuid.NewString(),
		name:       componentName(el.component),
		component:  el.component,
		rt:         rt,
		depth:      depth,
		hostParent: hostParent,
		hostIndex:  hostIndex,
		lastProps:  copyProps(el.Props),
	}
	inst.self = &Self{
		inst:     inst,
		props:    copyProps(el.Props),
		children: el.Children,
	}

	var render RenderFunc
	var setupErr *errors.SetupError
	func() {
		defer func() {
			if r := recover(); r != nil {
				setupErr = &errors.SetupError{
					Component:  inst.name,
					Instance:   inst.id,
					Recovered:  r,
					StackTrace: errors.CaptureStack(),
					Timestamp:  time.Now(),
				}
			}
		}()
		render = el.component(inst.self)
	}()

	if setupErr != nil {
		errors.ReportSetupError(setupErr)
		return nil, setupErr
	}
	if render == nil {
		setupErr = &errors.SetupError{
			Component: inst.name,
			Instance:  inst.id,
			Err:       fmt.Errorf("setup returned a nil render function"),
			Timestamp: time.Now(),
		}
		errors.ReportSetupError(setupErr)
		return nil, setupErr
	}

	inst.render = render
	inst.mounted = true
	return inst, nil
}

// updateFrom applies a matched descriptor's props to the live Self.
// It first evaluates the remount predicate with (old, new); a true result
// means the caller must tear this instance down and mount a fresh one
// instead of updating in place.
func (inst *Instance) updateFrom(el *Element) (remount bool) {
	newProps := copyProps(el.Props)
	if inst.remountIf != nil && inst.remountIf(inst.lastProps, newProps) {
		return true
	}

	// Shallow in-place replace: the map identity is what setup-scoped
	// closures captured.
	clear(inst.self.props)
	for name, value := range el.Props {
		inst.self.props[name] = value
	}
	inst.self.children = el.Children
	inst.lastProps = newProps
	return false
}

// renderOnce invokes the current render function and runs the callback
// wrap pass over its output. It never re-runs setup. A panic propagates
// as *errors.RenderError; the previously committed output is untouched.
func (inst *Instance) renderOnce() (*Element, error) {
	var out *Element
	var renderErr *errors.RenderError
	func() {
		defer func() {
			if r := recover(); r != nil {
				renderErr = &errors.RenderError{
					Component:  inst.name,
					Instance:   inst.id,
					Recovered:  r,
					StackTrace: errors.CaptureStack(),
					Timestamp:  time.Now(),
				}
			}
		}()
		out = inst.render()
	}()

	if renderErr != nil {
		errors.ReportRenderError(renderErr)
		return nil, renderErr
	}
	wrapTree(inst, out)
	return out, nil
}

// rerender runs one full render-and-commit pass: render phase, subtree
// reconciliation, then after-render callbacks. Used for the initial
// mount, for prop updates, and for scheduler flushes alike.
func (inst *Instance) rerender() error {
	inst.dirty = false

	out, err := inst.renderOnce()
	if err != nil {
		return err
	}

	inst.output, err = inst.rt.reconcileSlot(inst.slot, inst.hostParent, inst.output, treeChild(out), inst.hostIndex, inst.depth+1)
	if err != nil {
		return err
	}

	return inst.runAfterRender()
}

// rebuild is the scheduler-driven render path. The committed tree is
// quiescent during a flush entry, so the instance re-derives its host
// position from it first: the index stored at mount time is stale once
// an earlier sibling's host contribution changed through its own flush.
// Parent-driven updates keep calling rerender directly, because there
// the parent's running index is authoritative and the committed sibling
// list is mid-update.
func (inst *Instance) rebuild() error {
	if inst.slot != nil {
		inst.hostIndex = currentHostIndex(inst.slot)
		inst.slot.hostIndex = inst.hostIndex
	}
	return inst.rerender()
}

// runAfterRender invokes the after-render callbacks in registration
// order. A panicking callback does not stop the remaining callbacks; the
// failures are aggregated, reported, and returned, but the commit
// stands.
func (inst *Instance) runAfterRender() error {
	if len(inst.afterRender) == 0 {
		return nil
	}
	var recovered []any
	for _, fn := range inst.afterRender {
		func() {
			defer func() {
				if r := recover(); r != nil {
					recovered = append(recovered, r)
				}
			}()
			fn()
		}()
	}
	if len(recovered) == 0 {
		return nil
	}
	cerr := &errors.CleanupError{
		Component: inst.name,
		Instance:  inst.id,
		Phase:     "after-render",
		Recovered: recovered,
		Timestamp: time.Now(),
	}
	errors.ReportCleanupError(cerr)
	return cerr
}

// unmount runs the registered cleanup callbacks in registration order and
// marks the instance dead. Idempotent: a second call is a no-op. A
// panicking cleanup does not stop the remaining ones; failures are
// aggregated and reported.
func (inst *Instance) unmount() {
	if inst.dead {
		return
	}
	inst.dead = true
	inst.mounted = false

	var recovered []any
	for _, fn := range inst.cleanups {
		func() {
			defer func() {
				if r := recover(); r != nil {
					recovered = append(recovered, r)
				}
			}()
			fn()
		}()
	}
	inst.cleanups = nil
	inst.afterRender = nil

	if len(recovered) > 0 {
		errors.ReportCleanupError(&errors.CleanupError{
			Component: inst.name,
			Instance:  inst.id,
			Phase:     "cleanup",
			Recovered: recovered,
			Timestamp: time.Now(),
		})
	}
}

// treeChild converts a render result into a reconcilable child slot
// value. A nil element renders nothing.
func treeChild(el *Element) any {
	if el == nil {
		return nil
	}
	return el
}

// componentName derives a short display name from the setup function.
func componentName(fn ComponentFunc) string {
	if fn == nil {
		return "<nil>"
	}
	pc := funcPtr(any(fn))
	rf := runtime.FuncForPC(pc)
	if rf == nil {
		return "<unknown>"
	}
	name := rf.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	return name
}
