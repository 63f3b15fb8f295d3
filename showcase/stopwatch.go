package showcase

import (
	"fmt"
	"time"

	"github.com/go-ripple/ripple/pkg/core"
)

// GreetingStopwatch greets the person named in its props and counts the
// seconds since mount. Changing the name remounts the instance, so the
// stopwatch restarts for each new name. With no ticker prop it renders
// a frozen zero-second greeting.
func GreetingStopwatch(self *core.Self) core.RenderFunc {
	seconds := 0

	self.RemountIf(func(old, new core.Props) bool {
		return old["name"] != new["name"]
	})

	if ticker, ok := self.Props()["ticker"].(Ticker); ok && ticker != nil {
		cancel := ticker.TickEvery(time.Second, func() {
			seconds++
			self.MarkForRerender()
		})
		self.Cleanup(cancel)
	}

	return func() *core.Element {
		return core.E("p", core.Props{"class": "greeting"},
			fmt.Sprintf("Hello %s: %ds", self.String("name"), seconds),
		)
	}
}
