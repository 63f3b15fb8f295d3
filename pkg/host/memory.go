package host

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// MemNode is the node type used by MemoryAdapter.
type MemNode struct {
	Tag      string
	Text     string
	IsText   bool
	Attrs    map[string]any
	Handlers map[string]any
	Children []*MemNode
	Parent   *MemNode
}

// Op records a single adapter mutation for later inspection.
type Op struct {
	Kind  string
	Node  *MemNode
	Name  string
	Value any
	Index int
}

func (o Op) String() string {
	switch o.Kind {
	case "createNode":
		return fmt.Sprintf("createNode(%s)", o.Node.Tag)
	case "createText":
		return fmt.Sprintf("createText(%q)", o.Node.Text)
	case "setText":
		return fmt.Sprintf("setText(%q)", o.Value)
	case "setAttribute":
		return fmt.Sprintf("setAttribute(%s=%v)", o.Name, o.Value)
	case "removeAttribute":
		return fmt.Sprintf("removeAttribute(%s)", o.Name)
	case "setHandler":
		return fmt.Sprintf("setHandler(%s)", o.Name)
	case "removeHandler":
		return fmt.Sprintf("removeHandler(%s)", o.Name)
	case "insertChild":
		return fmt.Sprintf("insertChild(%s@%d)", nodeLabel(o.Value.(*MemNode)), o.Index)
	case "removeChild":
		return fmt.Sprintf("removeChild(%s)", nodeLabel(o.Value.(*MemNode)))
	case "moveChild":
		return fmt.Sprintf("moveChild(%s@%d)", nodeLabel(o.Value.(*MemNode)), o.Index)
	default:
		return o.Kind
	}
}

func nodeLabel(n *MemNode) string {
	if n.IsText {
		return fmt.Sprintf("%q", n.Text)
	}
	return n.Tag
}

// MemoryAdapter is an in-memory Adapter used by tests and the snapshot
// tooling. It keeps a real node tree and records every mutation it is
// asked to perform, so a pure no-op reconciliation is observable as an
// empty op log.
type MemoryAdapter struct {
	ops []Op
}

// NewMemoryAdapter creates an empty MemoryAdapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{}
}

// NewContainer creates a detached container node suitable as a render root.
func (a *MemoryAdapter) NewContainer() *MemNode {
	return &MemNode{Tag: "root"}
}

// Ops returns the mutations recorded since the last ResetOps.
func (a *MemoryAdapter) Ops() []Op {
	return a.ops
}

// OpStrings returns the recorded mutations in printable form.
func (a *MemoryAdapter) OpStrings() []string {
	out := make([]string, len(a.ops))
	for i, op := range a.ops {
		out[i] = op.String()
	}
	return out
}

// ResetOps clears the op log without touching the node tree.
func (a *MemoryAdapter) ResetOps() {
	a.ops = nil
}

func (a *MemoryAdapter) record(op Op) {
	a.ops = append(a.ops, op)
}

func (a *MemoryAdapter) CreateNode(tag string) Node {
	n := &MemNode{Tag: tag}
	a.record(Op{Kind: "createNode", Node: n})
	return n
}

func (a *MemoryAdapter) CreateText(text string) Node {
	n := &MemNode{IsText: true, Text: text}
	a.record(Op{Kind: "createText", Node: n})
	return n
}

func (a *MemoryAdapter) SetText(n Node, text string) {
	node := n.(*MemNode)
	node.Text = text
	a.record(Op{Kind: "setText", Node: node, Value: text})
}

func (a *MemoryAdapter) SetAttribute(n Node, name string, value any) {
	node := n.(*MemNode)
	if node.Attrs == nil {
		node.Attrs = make(map[string]any)
	}
	node.Attrs[name] = value
	a.record(Op{Kind: "setAttribute", Node: node, Name: name, Value: value})
}

func (a *MemoryAdapter) RemoveAttribute(n Node, name string) {
	node := n.(*MemNode)
	delete(node.Attrs, name)
	a.record(Op{Kind: "removeAttribute", Node: node, Name: name})
}

func (a *MemoryAdapter) SetHandler(n Node, event string, handler any) {
	node := n.(*MemNode)
	if node.Handlers == nil {
		node.Handlers = make(map[string]any)
	}
	node.Handlers[event] = handler
	a.record(Op{Kind: "setHandler", Node: node, Name: event})
}

func (a *MemoryAdapter) RemoveHandler(n Node, event string) {
	node := n.(*MemNode)
	delete(node.Handlers, event)
	a.record(Op{Kind: "removeHandler", Node: node, Name: event})
}

func (a *MemoryAdapter) InsertChild(parent, child Node, index int) {
	p := parent.(*MemNode)
	c := child.(*MemNode)
	if index < 0 || index > len(p.Children) {
		index = len(p.Children)
	}
	p.Children = append(p.Children, nil)
	copy(p.Children[index+1:], p.Children[index:])
	p.Children[index] = c
	c.Parent = p
	a.record(Op{Kind: "insertChild", Node: p, Value: c, Index: index})
}

func (a *MemoryAdapter) RemoveChild(parent, child Node) {
	p := parent.(*MemNode)
	c := child.(*MemNode)
	for i, existing := range p.Children {
		if existing == c {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			c.Parent = nil
			break
		}
	}
	a.record(Op{Kind: "removeChild", Node: p, Value: c})
}

func (a *MemoryAdapter) MoveChild(parent, child Node, index int) {
	p := parent.(*MemNode)
	c := child.(*MemNode)
	current := -1
	for i, existing := range p.Children {
		if existing == c {
			current = i
			break
		}
	}
	if current == -1 {
		return
	}
	p.Children = append(p.Children[:current], p.Children[current+1:]...)
	if index < 0 || index > len(p.Children) {
		index = len(p.Children)
	}
	p.Children = append(p.Children, nil)
	copy(p.Children[index+1:], p.Children[index:])
	p.Children[index] = c
	a.record(Op{Kind: "moveChild", Node: p, Value: c, Index: index})
}

// Measure returns deterministic metrics: text nodes measure 8x16 per rune
// line, element nodes wrap their children.
func (a *MemoryAdapter) Measure(n Node) Metrics {
	node := n.(*MemNode)
	if node.IsText {
		return Metrics{
			Width:  float64(8 * len([]rune(node.Text))),
			Height: 16,
		}
	}
	var m Metrics
	m.ChildCount = len(node.Children)
	for _, child := range node.Children {
		cm := a.Measure(child)
		if cm.Width > m.Width {
			m.Width = cm.Width
		}
		m.Height += cm.Height
	}
	return m
}

// FireEvent invokes the handler bound to event on the given node,
// simulating host-driven event dispatch. It returns false when no
// handler is bound. Handlers of arbitrary signature are invoked via
// reflection; surplus arguments are dropped, missing ones are zero.
func (a *MemoryAdapter) FireEvent(n Node, event string, args ...any) bool {
	node := n.(*MemNode)
	handler, ok := node.Handlers[event]
	if !ok || handler == nil {
		return false
	}
	CallHandler(handler, args...)
	return true
}

// CallHandler invokes an arbitrary function value with the given
// arguments, adapting the argument list to the function's signature.
func CallHandler(handler any, args ...any) {
	fn := reflect.ValueOf(handler)
	if fn.Kind() != reflect.Func {
		return
	}
	t := fn.Type()
	in := make([]reflect.Value, 0, t.NumIn())
	for i := 0; i < t.NumIn(); i++ {
		if t.IsVariadic() && i == t.NumIn()-1 {
			for j := i; j < len(args); j++ {
				in = append(in, reflect.ValueOf(args[j]))
			}
			break
		}
		if i < len(args) && args[i] != nil {
			in = append(in, reflect.ValueOf(args[i]))
		} else {
			in = append(in, reflect.Zero(t.In(i)))
		}
	}
	fn.Call(in)
}

// String renders the committed tree as an indented dump, attributes in
// sorted order. Useful in test failure messages and golden snapshots.
func (a *MemoryAdapter) String(root *MemNode) string {
	var sb strings.Builder
	dumpNode(&sb, root, 0)
	return sb.String()
}

func dumpNode(sb *strings.Builder, n *MemNode, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.IsText {
		fmt.Fprintf(sb, "%s%q\n", indent, n.Text)
		return
	}
	sb.WriteString(indent)
	sb.WriteString("<")
	sb.WriteString(n.Tag)
	names := make([]string, 0, len(n.Attrs))
	for name := range n.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(sb, " %s=%v", name, n.Attrs[name])
	}
	events := make([]string, 0, len(n.Handlers))
	for event := range n.Handlers {
		events = append(events, event)
	}
	sort.Strings(events)
	for _, event := range events {
		fmt.Fprintf(sb, " @%s", event)
	}
	sb.WriteString(">\n")
	for _, child := range n.Children {
		dumpNode(sb, child, depth+1)
	}
}
