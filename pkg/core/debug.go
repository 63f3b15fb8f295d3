package core

import (
	"fmt"
	"strings"
)

// DebugMode controls whether instance IDs appear in tree dumps.
var DebugMode = false

// SetDebugMode enables or disables debug mode for the runtime.
func SetDebugMode(debug bool) {
	DebugMode = debug
}

// DumpTree renders the committed instance tree as an indented listing,
// one line per slot. Intended for debugging and test failure messages.
func (rt *Runtime) DumpTree() string {
	var sb strings.Builder
	dumpMounted(&sb, rt.root, 0)
	return sb.String()
}

func dumpMounted(sb *strings.Builder, n *mountedNode, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	switch {
	case n.inst != nil:
		sb.WriteString(indent)
		sb.WriteString(n.inst.name)
		if DebugMode {
			fmt.Fprintf(sb, " [%s]", n.inst.id)
		}
		if n.inst.dirty {
			sb.WriteString(" *dirty")
		}
		sb.WriteString("\n")
		dumpMounted(sb, n.inst.output, depth+1)
	case n.isText:
		fmt.Fprintf(sb, "%s%q\n", indent, n.text)
	default:
		fmt.Fprintf(sb, "%s<%s>\n", indent, n.el.tag)
		for _, child := range n.children {
			dumpMounted(sb, child, depth+1)
		}
	}
}
