package showcase

import (
	"fmt"

	"github.com/go-ripple/ripple/pkg/core"
)

type taskItem struct {
	title string
	done  bool
}

// TaskList renders a toggleable task list. Item rows are keyed by
// title, so reordering the backing slice preserves row identity.
func TaskList(self *core.Self) core.RenderFunc {
	items := []taskItem{
		{title: "write spec"},
		{title: "ship it"},
	}

	toggle := func(title string) {
		for i := range items {
			if items[i].title == title {
				items[i].done = !items[i].done
			}
		}
	}
	add := func(title string) {
		if title == "" {
			return
		}
		items = append(items, taskItem{title: title})
	}

	return func() *core.Element {
		rows := make([]any, 0, len(items))
		for _, item := range items {
			rows = append(rows, taskRow(item, toggle))
		}

		remaining := 0
		for _, item := range items {
			if !item.done {
				remaining++
			}
		}

		return core.E("main", core.Props{"class": "tasks"},
			core.E("h1", nil, self.String("title")),
			core.E("ul", nil, rows...),
			core.E("footer", core.Props{"add": add},
				fmt.Sprintf("%d remaining", remaining),
			),
		)
	}
}

func taskRow(item taskItem, toggle func(string)) *core.Element {
	title := item.title
	return core.E("li", core.Props{
		"key":   item.title,
		"done":  item.done,
		"click": func() { toggle(title) },
	}, item.title)
}
