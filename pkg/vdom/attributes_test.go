package vdom

import "testing"

func TestAttributeHelpers(t *testing.T) {
	tests := []struct {
		name  string
		attr  Attr
		key   string
		value any
	}{
		{"ID", ID("main"), "id", "main"},
		{"Class", Class("btn", "primary"), "class", "btn primary"},
		{"ClassName", ClassName("btn"), "className", "btn"},
		{"ClassIf true", ClassIf(true, "on"), "class", "on"},
		{"StyleAttr", StyleAttr("color: red"), "style", "color: red"},
		{"Data", Data("id", "123"), "data-id", "123"},
		{"Role", Role("button"), "role", "button"},
		{"AriaLabel", AriaLabel("Close"), "aria-label", "Close"},
		{"TitleAttr", TitleAttr("tip"), "title", "tip"},
		{"Href", Href("/about"), "href", "/about"},
		{"Target", Target("_blank"), "target", "_blank"},
		{"Name", Name("email"), "name", "email"},
		{"Value", Value("x"), "value", "x"},
		{"Type", Type("checkbox"), "type", "checkbox"},
		{"Placeholder", Placeholder("Search"), "placeholder", "Search"},
		{"For", For("email"), "htmlFor", "email"},
		{"Disabled", Disabled(true), "disabled", true},
		{"Checked", Checked(false), "checked", false},
		{"Selected", Selected(true), "selected", true},
		{"Src", Src("/a.png"), "src", "/a.png"},
		{"Alt", Alt("logo"), "alt", "logo"},
		{"A", A("tabindex", 0), "tabindex", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.attr.Key, tt.key)
			}
			if tt.attr.Value != tt.value {
				t.Errorf("Value = %#v, want %#v", tt.attr.Value, tt.value)
			}
		})
	}
}

func TestClassIfFalseIsEmpty(t *testing.T) {
	if a := ClassIf(false, "hidden"); !a.IsEmpty() {
		t.Errorf("ClassIf(false) = %+v, want empty", a)
	}
	if node := Span(ClassIf(false, "hidden")); len(node.Props) != 0 {
		t.Errorf("empty attr leaked into props: %v", node.Props)
	}
}

func TestCSSName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"color", "color"},
		{"backgroundColor", "background-color"},
		{"borderTopLeftRadius", "border-top-left-radius"},
		{"font-size", "font-size"},
		{"--brandColor", "--brandColor"},
	}

	for _, tt := range tests {
		if got := CSSName(tt.in); got != tt.want {
			t.Errorf("CSSName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsFunc(t *testing.T) {
	var nilFunc func()
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, false},
		{"typed nil func", nilFunc, false},
		{"func", func() {}, true},
		{"func with args", func(string, int) error { return nil }, true},
		{"string", "onclick", false},
		{"int", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFunc(tt.v); got != tt.want {
				t.Errorf("IsFunc(%#v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}
