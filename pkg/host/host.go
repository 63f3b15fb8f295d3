// Package host defines the boundary between the Ripple runtime and the
// UI surface it renders onto.
//
// The runtime never touches a platform directly. During reconciliation it
// issues synchronous primitive operations (create a node, patch an
// attribute, move a child) against an Adapter, and the adapter translates
// them into actual UI-surface mutations. Adapters must not assume any
// asynchronous completion: when a call returns, the mutation is committed.
package host

// Node is an opaque handle to a primitive node owned by the host surface.
// The runtime stores and passes these handles back to the adapter but
// never inspects them.
type Node any

// Metrics describes the measurable properties of a committed node.
// Adapters fill in what their surface can answer; zero values mean
// "not measurable here".
type Metrics struct {
	Width  float64
	Height float64
	// ChildCount is the number of committed child nodes.
	ChildCount int
}

// Adapter translates primitive tree operations into UI-surface mutations.
// All methods are called synchronously from the runtime's single logical
// thread during mount and reconciliation.
type Adapter interface {
	// CreateNode creates a detached element node for the given tag.
	CreateNode(tag string) Node
	// CreateText creates a detached text node.
	CreateText(text string) Node
	// SetText replaces the content of a text node.
	SetText(n Node, text string)
	// SetAttribute sets or replaces a named attribute.
	SetAttribute(n Node, name string, value any)
	// RemoveAttribute removes a named attribute if present.
	RemoveAttribute(n Node, name string)
	// SetHandler binds an event handler. The handler is an arbitrary
	// function value; the adapter invokes it when the event fires.
	SetHandler(n Node, event string, handler any)
	// RemoveHandler unbinds an event handler if present.
	RemoveHandler(n Node, event string)
	// InsertChild inserts child under parent at the given index.
	// An index equal to the current child count appends.
	InsertChild(parent, child Node, index int)
	// RemoveChild detaches child from parent.
	RemoveChild(parent, child Node)
	// MoveChild moves an existing child of parent to a new index.
	MoveChild(parent, child Node, index int)
	// Measure reads the committed node's measurable properties.
	Measure(n Node) Metrics
}
