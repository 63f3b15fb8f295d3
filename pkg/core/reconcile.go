package core

import (
	"fmt"
	"reflect"

	"github.com/go-ripple/ripple/pkg/host"
)

// mountedNode is one committed slot in the live tree: a component
// instance, a primitive host node, or a text node.
type mountedNode struct {
	el     *Element
	isText bool
	text   string

	inst     *Instance
	hostNode host.Node

	// parent is the slot this one is committed under: a tag slot for
	// sibling lists, a component slot for that component's output, nil
	// for the root slot.
	parent     *mountedNode
	hostParent host.Node
	hostIndex  int
	children   []*mountedNode
}

// hostCount returns how many host nodes this slot contributes to its
// host parent: one for primitives, zero or one for components (a render
// chain eventually bottoms out in a primitive or in nothing).
func hostCount(n *mountedNode) int {
	if n == nil {
		return 0
	}
	if n.inst != nil {
		return hostCount(n.inst.output)
	}
	return 1
}

// firstHost returns the host node committed for a slot, unwrapping
// component output chains. Nil when the slot renders nothing.
func firstHost(n *mountedNode) host.Node {
	if n == nil {
		return nil
	}
	if n.inst != nil {
		return firstHost(n.inst.output)
	}
	return n.hostNode
}

// currentHostIndex derives a slot's insertion index within its host
// parent from the committed tree as it stands right now. The index
// stored at mount time goes stale when an earlier sibling's host
// contribution grows or shrinks through its own flush, so
// scheduler-driven rebuilds must not trust it.
func currentHostIndex(n *mountedNode) int {
	p := n.parent
	if p == nil {
		return 0
	}
	if p.inst != nil {
		// n is that component's rendered output; it occupies the
		// component's own slot position.
		return currentHostIndex(p)
	}
	idx := 0
	for _, sib := range p.children {
		if sib == n {
			break
		}
		idx += hostCount(sib)
	}
	return idx
}

// reconcileChildren walks a parent's committed children against a new
// descriptor list. Matching is positional: slot i of the old list is
// compared with slot i of the new one. Extra new descriptors mount,
// extra old slots unmount. This is linear per sibling list; unkeyed
// reordering tears down and remounts, which is the documented trade.
func (rt *Runtime) reconcileChildren(parent *mountedNode, hostParent host.Node, old []*mountedNode, newKids []any, depth int) ([]*mountedNode, error) {
	result := make([]*mountedNode, 0, len(newKids))
	hostIndex := 0

	for i, kid := range newKids {
		var oldNode *mountedNode
		if i < len(old) {
			oldNode = old[i]
		}
		n, err := rt.reconcileSlot(parent, hostParent, oldNode, kid, hostIndex, depth)
		if n != nil {
			result = append(result, n)
			hostIndex += hostCount(n)
		}
		if err != nil {
			// Keep the remaining old slots committed so the tree stays
			// consistent for the caller that handles the error.
			if i+1 < len(old) {
				result = append(result, old[i+1:]...)
			}
			return result, err
		}
	}

	for i := len(newKids); i < len(old); i++ {
		rt.unmountNode(old[i], true)
	}
	return result, nil
}

// reconcileSlot updates one committed slot to match a new child value
// (*Element or primitive text). It decides between in-place update,
// remount, replace, and fresh mount.
func (rt *Runtime) reconcileSlot(parent *mountedNode, hostParent host.Node, old *mountedNode, kid any, hostIndex int, depth int) (*mountedNode, error) {
	if kid == nil {
		if old != nil {
			rt.unmountNode(old, true)
		}
		return nil, nil
	}
	if old == nil {
		return rt.mountSlot(parent, hostParent, kid, hostIndex, depth)
	}

	newEl, isEl := kid.(*Element)

	// Primitive text slot.
	if !isEl {
		text := textOf(kid)
		if old.isText {
			if old.text != text {
				rt.adapter.SetText(old.hostNode, text)
				old.text = text
			}
			old.parent = parent
			old.hostParent = hostParent
			old.hostIndex = hostIndex
			return old, nil
		}
		rt.unmountNode(old, true)
		return rt.mountSlot(parent, hostParent, kid, hostIndex, depth)
	}

	if old.isText || !sameIdentity(old.el, newEl) {
		rt.unmountNode(old, true)
		return rt.mountSlot(parent, hostParent, kid, hostIndex, depth)
	}

	// Matched component: run the remount predicate, then update props in
	// place and rerender the subtree. A remount is indistinguishable
	// downstream from a failed match.
	if old.inst != nil {
		if old.inst.updateFrom(newEl) {
			rt.unmountNode(old, true)
			return rt.mountSlot(parent, hostParent, kid, hostIndex, depth)
		}
		old.el = newEl
		old.parent = parent
		old.hostParent = hostParent
		old.hostIndex = hostIndex
		old.inst.hostParent = hostParent
		old.inst.hostIndex = hostIndex
		return old, old.inst.rerender()
	}

	// Matched primitive: patch attributes, recurse into children.
	rt.patchProps(old.hostNode, old.el.Props, newEl.Props)
	old.parent = parent
	old.hostParent = hostParent
	old.hostIndex = hostIndex
	children, err := rt.reconcileChildren(old, old.hostNode, old.children, newEl.Children, depth+1)
	old.children = children
	old.el = newEl
	return old, err
}

// mountSlot commits a new child value with no existing slot to reuse.
func (rt *Runtime) mountSlot(parent *mountedNode, hostParent host.Node, kid any, hostIndex int, depth int) (*mountedNode, error) {
	if el, ok := kid.(*Element); ok {
		if el.kind == KindComponent {
			return rt.mountComponent(parent, el, hostParent, hostIndex, depth)
		}
		return rt.mountTag(parent, el, hostParent, hostIndex, depth)
	}

	text := textOf(kid)
	node := rt.adapter.CreateText(text)
	rt.adapter.InsertChild(hostParent, node, hostIndex)
	return &mountedNode{
		isText:     true,
		text:       text,
		hostNode:   node,
		parent:     parent,
		hostParent: hostParent,
		hostIndex:  hostIndex,
	}, nil
}

func (rt *Runtime) mountComponent(parent *mountedNode, el *Element, hostParent host.Node, hostIndex int, depth int) (*mountedNode, error) {
	inst, err := rt.newInstance(el, depth, hostParent, hostIndex)
	if err != nil {
		return nil, err
	}
	n := &mountedNode{
		el:         el,
		inst:       inst,
		parent:     parent,
		hostParent: hostParent,
		hostIndex:  hostIndex,
	}
	inst.slot = n
	if err := inst.rerender(); err != nil {
		return n, err
	}
	return n, nil
}

func (rt *Runtime) mountTag(parent *mountedNode, el *Element, hostParent host.Node, hostIndex int, depth int) (*mountedNode, error) {
	node := rt.adapter.CreateNode(el.tag)
	for name, value := range el.Props {
		if isFunc(value) {
			rt.adapter.SetHandler(node, name, value)
		} else {
			rt.adapter.SetAttribute(node, name, value)
		}
	}
	rt.adapter.InsertChild(hostParent, node, hostIndex)

	n := &mountedNode{
		el:         el,
		hostNode:   node,
		parent:     parent,
		hostParent: hostParent,
		hostIndex:  hostIndex,
	}
	children, err := rt.reconcileChildren(n, node, nil, el.Children, depth+1)
	n.children = children
	return n, err
}

// unmountNode tears down a committed slot. Component cleanups run after
// the output subtree has been torn down, so a child never outlives its
// own teardown inside a dying parent. Only the slot's own host node is
// detached from the host parent; nodes below it leave with it.
func (rt *Runtime) unmountNode(n *mountedNode, removeHost bool) {
	if n == nil {
		return
	}
	if n.inst != nil {
		rt.unmountNode(n.inst.output, removeHost)
		n.inst.output = nil
		n.inst.unmount()
		return
	}
	for _, child := range n.children {
		rt.unmountNode(child, false)
	}
	if removeHost {
		rt.adapter.RemoveChild(n.hostParent, n.hostNode)
	}
}

// patchProps diffs two prop maps onto a committed host node. Unchanged
// values (function identity for handlers, deep equality for attributes)
// produce no adapter calls, so reconciling an unchanged tree is a pure
// no-op at the host boundary.
func (rt *Runtime) patchProps(node host.Node, old, next Props) {
	for name, nv := range next {
		ov, had := old[name]
		if isFunc(nv) {
			if had && !isFunc(ov) {
				rt.adapter.RemoveAttribute(node, name)
				had = false
			}
			if !had || funcPtr(ov) != funcPtr(nv) {
				rt.adapter.SetHandler(node, name, nv)
			}
			continue
		}
		if had && isFunc(ov) {
			rt.adapter.RemoveHandler(node, name)
			had = false
		}
		if !had || !reflect.DeepEqual(ov, nv) {
			rt.adapter.SetAttribute(node, name, nv)
		}
	}
	for name, ov := range old {
		if _, ok := next[name]; ok {
			continue
		}
		if isFunc(ov) {
			rt.adapter.RemoveHandler(node, name)
		} else {
			rt.adapter.RemoveAttribute(node, name)
		}
	}
}

func textOf(kid any) string {
	switch v := kid.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
