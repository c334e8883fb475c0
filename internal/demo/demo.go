package demo

import (
	"sort"

	"github.com/vango-dev/vtree/pkg/vdom"
	"github.com/vango-dev/vtree/pkg/vtree"
)

// Demo is a named tree.
type Demo struct {
	Name        string
	Description string

	// Root returns a fresh description of the tree.
	Root func() *vdom.VNode
}

var catalog = map[string]Demo{
	"app": {
		Name:        "app",
		Description: "Themed shell with a counter, a todo list and an async profile card",
		Root:        func() *vdom.VNode { return vdom.C(App, vdom.Props{"title": "vtree"}) },
	},
	"counter": {
		Name:        "counter",
		Description: "Stateful counter with click handlers",
		Root:        func() *vdom.VNode { return vdom.C(Counter, vdom.Props{"start": 0}) },
	},
	"todos": {
		Name:        "todos",
		Description: "List that grows and trims children",
		Root: func() *vdom.VNode {
			return vdom.C(Todos, vdom.Props{"items": []string{"Write the reconciler", "Batch renders"}})
		},
	},
	"profile": {
		Name:        "profile",
		Description: "Component with asynchronously loaded initial props",
		Root:        func() *vdom.VNode { return vdom.C(Profile, vdom.Props{"user": "ada"}) },
	},
	"static": {
		Name:        "static",
		Description: "Plain elements, no components",
		Root:        staticTree,
	},
}

// Lookup returns the demo registered under name.
func Lookup(name string) (Demo, bool) {
	d, ok := catalog[name]
	return d, ok
}

// Names returns the registered demo names in order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Classes returns every component class the demos use, for shallow previews.
func Classes() []*vtree.Class {
	return []*vtree.Class{App, Counter, Todos, Profile, Header}
}

func staticTree() *vdom.VNode {
	return vdom.Article(vdom.Class("static"),
		vdom.H1("Static tree"),
		vdom.P("Elements, ", vdom.Strong("inline"), " text and ", vdom.Code("void"), " nodes."),
		vdom.Hr(),
		vdom.Ul(vdom.Range([]string{"one", "two", "three"}, func(s string, _ int) *vdom.VNode {
			return vdom.Li(s)
		})),
	)
}
