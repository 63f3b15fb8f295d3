package core

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-ripple/ripple/pkg/errors"
	"github.com/go-ripple/ripple/pkg/host"
)

// quietHandler swallows reported errors so expected failures don't spam
// the test log, while keeping them inspectable.
type quietHandler struct {
	setup   []*errors.SetupError
	render  []*errors.RenderError
	cleanup []*errors.CleanupError
}

func (h *quietHandler) HandleSetupError(err *errors.SetupError) { h.setup = append(h.setup, err) }
func (h *quietHandler) HandleRenderError(err *errors.RenderError) {
	h.render = append(h.render, err)
}
func (h *quietHandler) HandleCleanupError(err *errors.CleanupError) {
	h.cleanup = append(h.cleanup, err)
}

func newTestTree(t *testing.T) (*host.MemoryAdapter, *host.MemNode, *Scheduler) {
	t.Helper()
	adapter := host.NewMemoryAdapter()
	return adapter, adapter.NewContainer(), NewScheduler()
}

func TestSetupRunsExactlyOnce(t *testing.T) {
	adapter, container, sched := newTestTree(t)

	setups := 0
	renders := 0
	comp := func(self *Self) RenderFunc {
		setups++
		return func() *Element {
			renders++
			return E("div", nil, fmt.Sprintf("render %d", renders))
		}
	}

	var selfRef *Self
	wrapped := func(self *Self) RenderFunc {
		selfRef = self
		return comp(self)
	}

	if _, err := Render(C(wrapped, nil), adapter, container, WithScheduler(sched)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		selfRef.MarkForRerender()
		if err := sched.Flush(); err != nil {
			t.Fatalf("flush %d failed: %v", i, err)
		}
	}

	if setups != 1 {
		t.Errorf("setup ran %d times, want exactly 1", setups)
	}
	if renders != 6 {
		t.Errorf("expected 6 renders (1 mount + 5 flushes), got %d", renders)
	}
}

func TestPropsUpdateInPlacePreservesClosureView(t *testing.T) {
	adapter, container, sched := newTestTree(t)

	var observed []string
	comp := func(self *Self) RenderFunc {
		// Closure formed during setup; must see props committed later.
		report := func() { observed = append(observed, self.String("name")) }
		self.AfterRender(report)
		return func() *Element {
			return E("div", nil, self.String("name"))
		}
	}

	rt, err := Render(C(comp, Props{"name": "A"}), adapter, container, WithScheduler(sched))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if err := rt.Update(C(comp, Props{"name": "B"})); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	want := []string{"A", "B"}
	if fmt.Sprint(observed) != fmt.Sprint(want) {
		t.Errorf("closure observed %v, want %v", observed, want)
	}
}

func TestCleanupRunsOnceInRegistrationOrder(t *testing.T) {
	adapter, container, sched := newTestTree(t)

	var events []string
	comp := func(self *Self) RenderFunc {
		self.Cleanup(func() { events = append(events, "first") })
		self.Cleanup(func() { events = append(events, "second") })
		return func() *Element { return E("div", nil) }
	}

	rt, err := Render(C(comp, nil), adapter, container, WithScheduler(sched))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	rt.Unmount()
	rt.Unmount() // idempotent

	want := []string{"first", "second"}
	if fmt.Sprint(events) != fmt.Sprint(want) {
		t.Errorf("cleanup events %v, want %v", events, want)
	}
}

func TestRemountDiscardsClosureState(t *testing.T) {
	adapter, container, sched := newTestTree(t)

	setups := 0
	comp := func(self *Self) RenderFunc {
		setups++
		count := 0
		self.RemountIf(func(old, new Props) bool {
			return old["name"] != new["name"]
		})
		return func() *Element {
			count++
			return E("div", nil, fmt.Sprintf("%s:%d", self.String("name"), count))
		}
	}

	rt, err := Render(C(comp, Props{"name": "A"}), adapter, container, WithScheduler(sched))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Same name: in-place update, closure counter advances.
	if err := rt.Update(C(comp, Props{"name": "A"})); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got := adapter.String(container); !strings.Contains(got, `"A:2"`) {
		t.Errorf("expected A:2 after in-place update, tree:\n%s", got)
	}

	// New name: predicate fires, fresh instance, counter resets.
	if err := rt.Update(C(comp, Props{"name": "B"})); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if setups != 2 {
		t.Errorf("expected 2 setups after remount, got %d", setups)
	}
	if got := adapter.String(container); !strings.Contains(got, `"B:1"`) {
		t.Errorf("expected B:1 after remount, tree:\n%s", got)
	}
}

func TestCleanupRunsBeforeReplacementSetup(t *testing.T) {
	adapter, container, sched := newTestTree(t)

	var events []string
	comp := func(self *Self) RenderFunc {
		generation := self.String("gen")
		events = append(events, "setup "+generation)
		self.Cleanup(func() { events = append(events, "cleanup "+generation) })
		self.RemountIf(func(old, new Props) bool { return old["gen"] != new["gen"] })
		return func() *Element { return E("div", nil) }
	}

	rt, err := Render(C(comp, Props{"gen": "1"}), adapter, container, WithScheduler(sched))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if err := rt.Update(C(comp, Props{"gen": "2"})); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	want := []string{"setup 1", "cleanup 1", "setup 2"}
	if fmt.Sprint(events) != fmt.Sprint(want) {
		t.Errorf("event order %v, want %v", events, want)
	}
}

func TestAfterRenderFiresPerCommit(t *testing.T) {
	adapter, container, sched := newTestTree(t)

	var widths []float64
	comp := func(self *Self) RenderFunc {
		self.AfterRender(func() {
			widths = append(widths, self.Measure().Width)
		})
		return func() *Element {
			return E("div", nil, self.String("label"))
		}
	}

	rt, err := Render(C(comp, Props{"label": "ab"}), adapter, container, WithScheduler(sched))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if err := rt.Update(C(comp, Props{"label": "abcd"})); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if len(widths) != 2 {
		t.Fatalf("expected 2 after-render invocations, got %d", len(widths))
	}
	if widths[0] != 16 || widths[1] != 32 {
		t.Errorf("expected widths [16 32] reflecting two separate commits, got %v", widths)
	}
}

func TestSetupPanicPropagatesAndNoInstanceRemains(t *testing.T) {
	handler := &quietHandler{}
	errors.SetHandler(handler)
	defer errors.SetHandler(nil)

	adapter, container, sched := newTestTree(t)

	comp := func(self *Self) RenderFunc {
		panic("setup exploded")
	}

	_, err := Render(C(comp, nil), adapter, container, WithScheduler(sched))
	if err == nil {
		t.Fatal("expected setup failure to propagate from Render")
	}
	var serr *errors.SetupError
	if !asError(err, &serr) {
		t.Fatalf("expected *errors.SetupError, got %T: %v", err, err)
	}
	if serr.Recovered != "setup exploded" {
		t.Errorf("unexpected panic value: %v", serr.Recovered)
	}
	if len(container.Children) != 0 {
		t.Errorf("no host output expected after setup failure, tree:\n%s", adapter.String(container))
	}
	if len(handler.setup) != 1 {
		t.Errorf("expected 1 reported setup error, got %d", len(handler.setup))
	}
}

func TestNilRenderFunctionIsSetupFailure(t *testing.T) {
	handler := &quietHandler{}
	errors.SetHandler(handler)
	defer errors.SetHandler(nil)

	adapter, container, sched := newTestTree(t)
	comp := func(self *Self) RenderFunc { return nil }

	_, err := Render(C(comp, nil), adapter, container, WithScheduler(sched))
	if err == nil {
		t.Fatal("expected error for nil render function")
	}
}

func TestRenderPanicKeepsLastCommittedOutput(t *testing.T) {
	handler := &quietHandler{}
	errors.SetHandler(handler)
	defer errors.SetHandler(nil)

	adapter, container, sched := newTestTree(t)

	explode := false
	var selfRef *Self
	comp := func(self *Self) RenderFunc {
		selfRef = self
		return func() *Element {
			if explode {
				panic("render exploded")
			}
			return E("div", nil, "good output")
		}
	}

	if _, err := Render(C(comp, nil), adapter, container, WithScheduler(sched)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	explode = true
	selfRef.MarkForRerender()
	err := sched.Flush()
	if err == nil {
		t.Fatal("expected render failure to surface from the flush")
	}
	var rerr *errors.RenderError
	if !asError(err, &rerr) {
		t.Fatalf("expected *errors.RenderError, got %T: %v", err, err)
	}
	if got := adapter.String(container); !strings.Contains(got, `"good output"`) {
		t.Errorf("last committed output should remain, tree:\n%s", got)
	}
}

func TestCleanupPanicDoesNotBlockRemainingCleanups(t *testing.T) {
	handler := &quietHandler{}
	errors.SetHandler(handler)
	defer errors.SetHandler(nil)

	adapter, container, sched := newTestTree(t)

	var events []string
	comp := func(self *Self) RenderFunc {
		self.Cleanup(func() { panic("cleanup one") })
		self.Cleanup(func() { events = append(events, "ran") })
		self.Cleanup(func() { panic("cleanup three") })
		return func() *Element { return E("div", nil) }
	}

	rt, err := Render(C(comp, nil), adapter, container, WithScheduler(sched))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	rt.Unmount()

	if len(events) != 1 {
		t.Errorf("middle cleanup should still run, events: %v", events)
	}
	if len(handler.cleanup) != 1 {
		t.Fatalf("expected one aggregated cleanup report, got %d", len(handler.cleanup))
	}
	if got := len(handler.cleanup[0].Recovered); got != 2 {
		t.Errorf("expected 2 aggregated panics, got %d", got)
	}
}

// asError is errors.As without colliding with the runtime errors package.
func asError(err error, target any) bool {
	return stderrors.As(err, target)
}
