package vdom

import "testing"

type testRef struct{ name string }

func (r *testRef) ComponentName() string { return r.name }

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindComponent, "Component"},
		{KindForeign, "Foreign"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodeIsInteractive(t *testing.T) {
	tests := []struct {
		name string
		node *VNode
		want bool
	}{
		{
			name: "nil node",
			node: nil,
			want: false,
		},
		{
			name: "text node",
			node: Text("hello"),
			want: false,
		},
		{
			name: "element without handlers",
			node: H("div", Props{"class": "test"}),
			want: false,
		},
		{
			name: "element with onClick",
			node: H("button", Props{"onClick": func() {}}),
			want: true,
		},
		{
			name: "on-prefixed key with a string value",
			node: H("div", Props{"one": "two"}),
			want: false,
		},
		{
			name: "element helper with handler",
			node: Button(OnClick(func() {}), "go"),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsInteractive(); got != tt.want {
				t.Errorf("IsInteractive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEventName(t *testing.T) {
	tests := map[string]string{
		"onClick":     "click",
		"onclick":     "click",
		"onMouseDown": "mousedown",
	}
	for key, want := range tests {
		if got := EventName(key); got != want {
			t.Errorf("EventName(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestTagName(t *testing.T) {
	ref := &testRef{name: "Card"}
	if got := C(ref, nil).TagName(); got != "Card" {
		t.Errorf("component TagName() = %q, want Card", got)
	}
	if got := H("section", nil).TagName(); got != "section" {
		t.Errorf("element TagName() = %q, want section", got)
	}
	var nilNode *VNode
	if got := nilNode.TagName(); got != "" {
		t.Errorf("nil TagName() = %q, want empty", got)
	}
}

func TestPropsAccessors(t *testing.T) {
	child := Text("x")
	p := Props{"name": "n", "count": 3, ChildrenKey: []*VNode{child}}

	if p.String("name") != "n" {
		t.Errorf("String(name) = %q", p.String("name"))
	}
	if p.Int("count") != 3 {
		t.Errorf("Int(count) = %d", p.Int("count"))
	}
	if got := p.Children(); len(got) != 1 || got[0] != child {
		t.Errorf("Children() = %v", got)
	}

	clone := p.Clone()
	clone["name"] = "changed"
	if p.String("name") != "n" {
		t.Error("Clone() aliases the original map")
	}

	var empty Props
	if empty.Children() != nil {
		t.Error("nil Props should have no children")
	}
}
