package demo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vango-dev/vtree/pkg/vdom"
	"github.com/vango-dev/vtree/pkg/vtree"
)

// Theme is the context App provides to its subtree.
type Theme struct {
	Name   string
	Accent string
}

// DefaultTheme is used when no App is above a component.
var DefaultTheme = Theme{Name: "light", Accent: "#3b82f6"}

func themeOf(ctx any) Theme {
	if t, ok := ctx.(*Theme); ok && t != nil {
		return *t
	}
	return DefaultTheme
}

// App is the demo shell. It provides a *Theme to its subtree.
var App = vtree.Define[app]("App")

type app struct {
	vtree.Base
	theme Theme
}

func (a *app) Init() {
	a.theme = DefaultTheme
	if name, _ := a.Props()["theme"].(string); name == "dark" {
		a.theme = Theme{Name: "dark", Accent: "#f59e0b"}
	}
	a.SetContext(&a.theme)
}

func (a *app) Render(props vdom.Props, _ vtree.State, _ any) *vdom.VNode {
	title, _ := props["title"].(string)
	return vdom.Main(vdom.Class("app", "theme-"+a.theme.Name),
		vdom.C(Header, vdom.Props{"title": title}),
		vdom.C(Counter, vdom.Props{"start": 1}),
		vdom.C(Todos, vdom.Props{"items": []string{"Read the docs"}}),
		vdom.C(Profile, vdom.Props{"user": "grace"}),
	)
}

// Header renders the page title in the theme accent color.
var Header = vtree.FuncClass("Header", func(_ *vtree.FuncComponent, props vdom.Props, _ vtree.State, ctx any) *vdom.VNode {
	theme := themeOf(ctx)
	title, _ := props["title"].(string)
	return vdom.Header(
		vdom.H1(vdom.Style(vdom.StyleMap{"color": theme.Accent, "fontWeight": "600"}), title),
	)
})

// Counter is a stateful counter. Its buttons have ids "inc" and "dec".
var Counter = vtree.Define[counter]("Counter")

type counter struct {
	vtree.Base
}

func (c *counter) Init() {
	start, _ := c.Props()["start"].(int)
	_ = c.SetState(vtree.State{"count": start})
}

func (c *counter) add(delta int) func() {
	return func() {
		n, _ := c.State()["count"].(int)
		_ = c.SetState(vtree.State{"count": n + delta})
	}
}

func (c *counter) Render(_ vdom.Props, state vtree.State, ctx any) *vdom.VNode {
	n, _ := state["count"].(int)
	return vdom.Section(vdom.Class("counter"),
		vdom.Button(vdom.ID("dec"), vdom.OnClick(c.add(-1)), vdom.Disabled(n <= 0), "-"),
		vdom.El("output", vdom.Style(vdom.StyleMap{"color": themeOf(ctx).Accent}), vdom.Textf("%d", n)),
		vdom.Button(vdom.ID("inc"), vdom.OnClick(c.add(1)), "+"),
	)
}

// Todos renders a list whose "add" and "pop" buttons grow and trim it.
var Todos = vtree.Define[todos]("Todos")

type todos struct {
	vtree.Base
}

func (t *todos) Init() {
	items, _ := t.Props()["items"].([]string)
	_ = t.SetState(vtree.State{"items": append([]string(nil), items...)})
}

func (t *todos) items() []string {
	items, _ := t.State()["items"].([]string)
	return items
}

func (t *todos) add() {
	items := t.items()
	next := append(append([]string(nil), items...), fmt.Sprintf("Item %d", len(items)+1))
	_ = t.SetState(vtree.State{"items": next})
}

func (t *todos) pop() {
	items := t.items()
	if len(items) == 0 {
		return
	}
	_ = t.SetState(vtree.State{"items": items[:len(items)-1]})
}

func (t *todos) Render(_ vdom.Props, _ vtree.State, _ any) *vdom.VNode {
	items := t.items()
	return vdom.Section(vdom.Class("todos"),
		vdom.Ul(vdom.Range(items, func(item string, i int) *vdom.VNode {
			return vdom.Li(vdom.Data("index", fmt.Sprint(i)), item)
		})),
		vdom.If(len(items) == 0, vdom.P(vdom.Class("empty"), "Nothing to do")),
		vdom.Button(vdom.ID("add"), vdom.OnClick(t.add), "Add"),
		vdom.Button(vdom.ID("pop"), vdom.OnClick(t.pop), vdom.Disabled(len(items) == 0), "Pop"),
	)
}

// LoadDelay is how long Profile's loader takes. Tests set it to zero.
var LoadDelay = 300 * time.Millisecond

// Profile loads a display name for its "user" prop.
var Profile = vtree.Define[profile]("Profile")

type profile struct {
	vtree.AsyncBase
}

func (p *profile) LoadInitialProps(ctx context.Context) (vdom.Props, error) {
	user, _ := p.Props()["user"].(string)
	if user == "" {
		return nil, fmt.Errorf("profile: no user")
	}
	select {
	case <-time.After(LoadDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return vdom.Props{"displayName": strings.ToUpper(user[:1]) + user[1:]}, nil
}

func (p *profile) Render(props vdom.Props, _ vtree.State, _ any) *vdom.VNode {
	switch {
	case p.LoadErr() != nil:
		return vdom.Div(vdom.Class("profile", "error"), p.LoadErr().Error())
	case p.Loading():
		return vdom.Div(vdom.Class("profile", "loading"), "Loading...")
	}
	name, _ := props["displayName"].(string)
	return vdom.Div(vdom.Class("profile"), vdom.Strong(name))
}
