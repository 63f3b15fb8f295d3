package core

import (
	"reflect"
)

// Props maps prop names to values. Keys are unique by construction.
type Props map[string]any

// ComponentFunc is a component's setup function. It runs exactly once per
// instance, receives the instance's Self handle, and returns the render
// function the runtime will invoke on every render pass.
type ComponentFunc func(self *Self) RenderFunc

// RenderFunc is the repeated render phase: it produces a fresh element
// tree describing the component's current output. Returning nil renders
// nothing.
type RenderFunc func() *Element

// ElementKind distinguishes the two element variants. The variant is
// resolved once at construction, never re-derived.
type ElementKind uint8

const (
	// KindTag is a native host node ("div", "text", ...).
	KindTag ElementKind = iota
	// KindComponent is a component node backed by a ComponentFunc.
	KindComponent
)

// Element is an immutable descriptor: "render this component or tag with
// these props and children". The runtime treats descriptors handed to it
// as frozen; the only rewrite it performs is the callback-wrap pass over
// a tree freshly produced by a render function it owns.
type Element struct {
	kind         ElementKind
	tag          string
	component    ComponentFunc
	componentPtr uintptr

	// Props is the prop mapping. Function-typed values on tag elements
	// become event handlers.
	Props Props
	// Children is the ordered child sequence: *Element or primitive
	// text (string, fmt.Stringer, or any value formatted with %v).
	Children []any
	// Key is the optional identity key used during reconciliation.
	Key any

	// wrapped is set once the callback wrap pass of the defining
	// instance has processed this element. Elements forwarded through
	// another component's render keep their original owner's wrappers.
	wrapped bool
}

// E creates a native tag element. A "key" entry in props is lifted into
// the element's Key. The props map is copied; the caller keeps ownership
// of its own map.
func E(tag string, props Props, children ...any) *Element {
	el := &Element{kind: KindTag, tag: tag}
	el.Props, el.Key = liftKey(props)
	el.Children = compactChildren(children)
	return el
}

// C creates a component element. A "key" entry in props is lifted into
// the element's Key.
func C(component ComponentFunc, props Props, children ...any) *Element {
	el := &Element{
		kind:         KindComponent,
		component:    component,
		componentPtr: reflect.ValueOf(component).Pointer(),
	}
	el.Props, el.Key = liftKey(props)
	el.Children = compactChildren(children)
	return el
}

// WithKey returns a copy of the element carrying the given identity key.
func (e *Element) WithKey(key any) *Element {
	dup := *e
	dup.Key = key
	return &dup
}

// Kind returns the element's variant.
func (e *Element) Kind() ElementKind { return e.kind }

// Tag returns the native tag name. Empty for component elements.
func (e *Element) Tag() string { return e.tag }

// Component returns the component setup function. Nil for tag elements.
func (e *Element) Component() ComponentFunc { return e.component }

func liftKey(props Props) (Props, any) {
	if props == nil {
		return Props{}, nil
	}
	out := make(Props, len(props))
	var key any
	for name, value := range props {
		if name == "key" {
			key = value
			continue
		}
		out[name] = value
	}
	return out, key
}

func compactChildren(children []any) []any {
	out := make([]any, 0, len(children))
	for _, child := range children {
		if child == nil {
			continue
		}
		out = append(out, child)
	}
	return out
}

// sameIdentity reports whether a new descriptor may update the node
// mounted from an old one: same variant, same tag or component function,
// and same explicit key (a key on either side must match the other).
func sameIdentity(old, next *Element) bool {
	if old == nil || next == nil {
		return false
	}
	if old.kind != next.kind {
		return false
	}
	if old.kind == KindTag {
		if old.tag != next.tag {
			return false
		}
	} else if old.componentPtr != next.componentPtr {
		return false
	}
	return reflect.DeepEqual(old.Key, next.Key)
}

// passthroughProp marks a forwarded callback so the wrap pass leaves it
// untouched. See Passthrough.
type passthroughProp struct {
	fn any
}

// Passthrough marks a callback prop as forwarded rather than locally
// defined. The wrap pass normally detects forwarding by function
// identity against the owning component's incoming props; Passthrough
// makes the intent explicit for callbacks that were transformed on the
// way through and no longer compare identical.
func Passthrough(fn any) any {
	return passthroughProp{fn: fn}
}

// isFunc reports whether v is a function value.
func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}

// funcPtr returns the identity pointer used to compare function values.
// Note that distinct closures over the same function literal share a code
// pointer and therefore compare identical.
func funcPtr(v any) uintptr {
	return reflect.ValueOf(v).Pointer()
}

func copyProps(props Props) Props {
	out := make(Props, len(props))
	for name, value := range props {
		out[name] = value
	}
	return out
}
