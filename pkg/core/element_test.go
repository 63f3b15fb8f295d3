package core

import (
	"testing"
)

func noopComponent(self *Self) RenderFunc {
	return func() *Element { return nil }
}

func otherComponent(self *Self) RenderFunc {
	return func() *Element { return nil }
}

func TestE_Basics(t *testing.T) {
	el := E("div", Props{"class": "box"}, "hello", nil, E("span", nil))
	if el.Kind() != KindTag {
		t.Errorf("expected KindTag, got %v", el.Kind())
	}
	if el.Tag() != "div" {
		t.Errorf("expected tag div, got %q", el.Tag())
	}
	if el.Props["class"] != "box" {
		t.Errorf("expected class prop, got %v", el.Props["class"])
	}
	if len(el.Children) != 2 {
		t.Errorf("nil children should be dropped, got %d children", len(el.Children))
	}
}

func TestC_Basics(t *testing.T) {
	el := C(noopComponent, Props{"name": "A"})
	if el.Kind() != KindComponent {
		t.Errorf("expected KindComponent, got %v", el.Kind())
	}
	if el.Component() == nil {
		t.Error("expected component function")
	}
	if el.Tag() != "" {
		t.Errorf("component element should have no tag, got %q", el.Tag())
	}
}

func TestKeyLiftedFromProps(t *testing.T) {
	props := Props{"key": "row-1", "label": "x"}
	el := E("li", props)
	if el.Key != "row-1" {
		t.Errorf("expected key row-1, got %v", el.Key)
	}
	if _, ok := el.Props["key"]; ok {
		t.Error("key should be lifted out of props")
	}
	// Caller's map is untouched.
	if props["key"] != "row-1" {
		t.Error("constructor must not mutate the caller's props map")
	}
}

func TestWithKey(t *testing.T) {
	el := E("li", nil).WithKey(7)
	if el.Key != 7 {
		t.Errorf("expected key 7, got %v", el.Key)
	}
}

func TestSameIdentity(t *testing.T) {
	tests := []struct {
		name string
		a, b *Element
		want bool
	}{
		{"same tag", E("div", nil), E("div", nil), true},
		{"different tag", E("div", nil), E("span", nil), false},
		{"same component", C(noopComponent, nil), C(noopComponent, nil), true},
		{"different component", C(noopComponent, nil), C(otherComponent, nil), false},
		{"tag vs component", E("div", nil), C(noopComponent, nil), false},
		{"same key", E("li", nil).WithKey("a"), E("li", nil).WithKey("a"), true},
		{"different key", E("li", nil).WithKey("a"), E("li", nil).WithKey("b"), false},
		{"key on one side only", E("li", nil).WithKey("a"), E("li", nil), false},
		{"no keys", E("li", nil), E("li", nil), true},
		{"nil elements", nil, E("div", nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sameIdentity(tt.a, tt.b); got != tt.want {
				t.Errorf("sameIdentity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsFunc(t *testing.T) {
	if !isFunc(func() {}) {
		t.Error("closure should be a func")
	}
	if isFunc("nope") || isFunc(nil) || isFunc(3) {
		t.Error("non-functions reported as func")
	}
}

func TestPassthroughMarker(t *testing.T) {
	fn := func() {}
	marked := Passthrough(fn)
	marker, ok := marked.(passthroughProp)
	if !ok {
		t.Fatalf("expected passthroughProp, got %T", marked)
	}
	if funcPtr(marker.fn) != funcPtr(fn) {
		t.Error("marker should carry the original function")
	}
}
