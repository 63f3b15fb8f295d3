package core

import "reflect"

// wrapTree runs the callback wrap pass over a freshly rendered element
// tree. Every function-typed prop that was defined during this render,
// as opposed to forwarded verbatim from the owning instance's own
// incoming props, is replaced with a wrapper that marks the owner dirty
// before invoking the original. A locally defined callback is assumed
// capable of mutating setup-scoped state, so firing it must eventually
// rerender the instance that defined it.
//
// Every occurrence wraps separately. Distinct closures over the same
// function literal share a code pointer, so a shared wrap cache keyed by
// pointer would collapse per-item closures built in a loop onto the
// first item's handler. Wrapper identity is not stable across renders.
func wrapTree(inst *Instance, root *Element) {
	if root == nil {
		return
	}
	incoming := incomingFuncs(inst.self.props)
	wrapElement(inst, root, incoming)
}

func wrapElement(inst *Instance, el *Element, incoming map[uintptr]bool) {
	if el.wrapped {
		// Created and wrapped during another instance's render, then
		// forwarded here. Its callbacks already mark their owner.
		return
	}
	el.wrapped = true
	for name, value := range el.Props {
		if marker, ok := value.(passthroughProp); ok {
			el.Props[name] = marker.fn
			continue
		}
		if !isFunc(value) {
			continue
		}
		if incoming[funcPtr(value)] {
			continue
		}
		el.Props[name] = wrapCallback(inst, value)
	}
	for _, child := range el.Children {
		if childEl, ok := child.(*Element); ok {
			wrapElement(inst, childEl, incoming)
		}
	}
}

// incomingFuncs collects the identity pointers of every function value in
// the instance's own incoming props, including those nested one level
// inside passthrough markers.
func incomingFuncs(props Props) map[uintptr]bool {
	out := make(map[uintptr]bool)
	for _, value := range props {
		if marker, ok := value.(passthroughProp); ok {
			value = marker.fn
		}
		if isFunc(value) {
			out[funcPtr(value)] = true
		}
	}
	return out
}

// wrapCallback builds a function of the same signature that marks the
// owning instance for rerender and then calls the original. MakeFunc
// keeps arbitrary handler signatures intact through the wrap.
func wrapCallback(inst *Instance, fn any) any {
	original := reflect.ValueOf(fn)
	wrapper := reflect.MakeFunc(original.Type(), func(args []reflect.Value) []reflect.Value {
		inst.MarkForRerender()
		return original.Call(args)
	})
	return wrapper.Interface()
}
