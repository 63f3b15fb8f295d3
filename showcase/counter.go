package showcase

import (
	"fmt"

	"github.com/go-ripple/ripple/pkg/core"
)

// Counter renders a click counter. It keeps its count in setup scope,
// so remounting the component resets it to zero.
func Counter(self *core.Self) core.RenderFunc {
	count := 0

	increment := func() { count++ }
	reset := func() { count = 0 }

	return func() *core.Element {
		return core.E("div", core.Props{"class": "counter"},
			core.E("button", core.Props{"click": increment},
				fmt.Sprintf("%s: %d", self.String("label"), count),
			),
			core.E("button", core.Props{"click": reset, "class": "secondary"},
				"Reset",
			),
		)
	}
}

// IconButton wraps a button with an icon glyph, forwarding the click
// callback it was given rather than owning it.
func IconButton(self *core.Self) core.RenderFunc {
	return func() *core.Element {
		return core.E("button", core.Props{
			"class": "icon",
			"click": core.Passthrough(self.Props()["click"]),
		},
			core.E("span", core.Props{"class": "glyph"}, self.String("icon")),
			self.String("label"),
		)
	}
}
