package render

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/vtree/pkg/host/memdom"
	"github.com/vango-dev/vtree/pkg/vdom"
	"github.com/vango-dev/vtree/pkg/vtree"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRenderSimpleTrees(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{
			name: "element with text",
			node: vdom.H("div", vdom.Props{"class": "test"}, "my content"),
			want: `<div class="test">my content</div>`,
		},
		{
			name: "nested",
			node: vdom.H("div", nil, vdom.H("p", nil, "Lorem ipsum", vdom.H("a", vdom.Props{"href": "#"}, "click me")), "dolor sit amet"),
			want: `<div><p>Lorem ipsum<a href="#">click me</a></p>dolor sit amet</div>`,
		},
		{
			name: "escaped text",
			node: vdom.P("<script>alert('x')</script>"),
			want: `<p>&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;</p>`,
		},
		{
			name: "void element",
			node: vdom.Div(vdom.Input(vdom.Type("text"), vdom.Value("a\"b")), vdom.Br()),
			want: `<div><input type="text" value="a&quot;b"><br></div>`,
		},
		{
			name: "aliases and booleans",
			node: vdom.Label(vdom.For("name"), vdom.ClassName("field"), vdom.Disabled(true), vdom.Checked(false)),
			want: `<label class="field" disabled for="name"></label>`,
		},
		{
			name: "handlers and refs skipped",
			node: vdom.Button(vdom.OnClick(func() {}), vdom.Ref(func(any) {}), "go"),
			want: `<button>go</button>`,
		},
		{
			name: "style object",
			node: vdom.Div(vdom.Style(vdom.StyleMap{"color": "red", "backgroundColor": "blue"})),
			want: `<div style="background-color: blue; color: red;"></div>`,
		},
		{
			name: "raw content",
			node: vdom.Div(vdom.InnerHTML("<b>raw</b>"), "ignored"),
			want: `<div><b>raw</b></div>`,
		},
		{
			name: "placeholders",
			node: vdom.H("ul", nil, nil, vdom.Li("a"), false, vdom.Li("b")),
			want: `<ul><li>a</li><li>b</li></ul>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.node, nil)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderShallowSimpleTree(t *testing.T) {
	node := vdom.H("div", nil, vdom.H("p", nil, "Lorem ipsum", vdom.H("a", vdom.Props{"href": "#"}, "click me")), "dolor sit amet")
	want := `<div><p>Lorem ipsum<a href="#">click me</a></p>dolor sit amet</div>`
	if got := RenderShallow(node); got != want {
		t.Errorf("RenderShallow() = %q, want %q", got, want)
	}
}

type x struct{ vtree.Base }

func (c *x) Render(props vdom.Props, _ vtree.State, _ any) *vdom.VNode {
	var text strings.Builder
	for _, child := range props.Children() {
		text.WriteString(child.Text)
	}
	return vdom.H("p", vdom.Props{"class": props["data"]}, "lorem "+text.String()+" ipsum")
}

var xClass = vtree.Define[x]("X")

func TestRenderComponents(t *testing.T) {
	got, err := Render(vdom.H("div", nil, vdom.C(xClass, vdom.Props{"data": 1234}, "test")), nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := `<div><p class="1234">lorem test ipsum</p></div>`; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderShallowComponents(t *testing.T) {
	got := RenderShallow(vdom.H("div", nil, vdom.C(xClass, vdom.Props{"data": 1234}, "test")))
	if want := `<div><X data="1234">test</X></div>`; got != want {
		t.Errorf("RenderShallow() = %q, want %q", got, want)
	}
}

type contextProvider struct{ vtree.Base }

func (c *contextProvider) Init() { c.SetContext("my-new-context") }

func (c *contextProvider) Render(props vdom.Props, _ vtree.State, _ any) *vdom.VNode {
	return vdom.H("h2", nil, props.Children())
}

func TestRenderContextualizedComponents(t *testing.T) {
	consumer := vtree.FuncClass("Consumer", func(_ *vtree.FuncComponent, _ vdom.Props, _ vtree.State, ctx any) *vdom.VNode {
		return vdom.H("h3", nil, ctx)
	})
	provider := vtree.Define[contextProvider]("ContextProvider")

	got, err := Render(vdom.H("div", nil, vdom.C(provider, nil, vdom.C(consumer, nil))), nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := `<div><h2><h3>my-new-context</h3></h2></div>`; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderComponentChain(t *testing.T) {
	inner := vtree.Pure("Inner", func(props vdom.Props) *vdom.VNode {
		return vdom.Em(props.String("word"))
	})
	outer := vtree.Pure("Outer", func(vdom.Props) *vdom.VNode {
		return vdom.C(inner, vdom.Props{"word": "deep"})
	})

	got, err := Render(vdom.Div(vdom.C(outer, nil), vdom.C(outer, nil)), nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := `<div><em>deep</em><em>deep</em></div>`; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

type loaded struct{ vtree.AsyncBase }

func (l *loaded) LoadInitialProps(context.Context) (vdom.Props, error) {
	return vdom.Props{"who": "loaded"}, nil
}

func (l *loaded) Render(props vdom.Props, _ vtree.State, _ any) *vdom.VNode {
	if l.Loading() {
		return vdom.Span("loading")
	}
	return vdom.Span(props.String("who"))
}

func TestRenderWaitsForInlineProps(t *testing.T) {
	got, err := Render(vdom.C(vtree.Define[loaded]("Loaded"), nil), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "<span>loaded</span>" {
		t.Errorf("Render() = %q", got)
	}
}

func TestRenderHostNodeChildren(t *testing.T) {
	doc := memdom.MustDocument("")
	b := doc.CreateElement("b")
	b.SetAttribute("title", "t")
	b.AppendChild(doc.CreateTextNode("bold"))

	got, err := Render(vdom.Div(b), nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := `<div><b title="t">bold</b></div>`; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if b.Parent() != nil {
		t.Error("host node must not be attached")
	}
}

func TestRenderErrors(t *testing.T) {
	_, err := Render(vdom.Div(struct{}{}), nil)
	if !errors.Is(err, ErrUnsupportedNode) {
		t.Errorf("foreign value: err = %v", err)
	}

	boom := vtree.Pure("Boom", func(vdom.Props) *vdom.VNode { panic("boom") })
	_, err = Render(vdom.Div(vdom.C(boom, nil)), nil, vtree.WithLogger(quietLogger()))
	var rerr *vtree.RenderError
	if !errors.As(err, &rerr) || rerr.Component != "Boom" {
		t.Errorf("panicking component: err = %v", err)
	}
}

func TestRenderPretty(t *testing.T) {
	r := NewRenderer(RendererConfig{Pretty: true})
	got, err := r.RenderToString(vdom.Div(vdom.Span("a"), vdom.Br()), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := "<div>\n  <span>a</span>\n  <br>\n</div>\n"
	if got != want {
		t.Errorf("pretty output = %q, want %q", got, want)
	}
}

func TestIsInlineElement(t *testing.T) {
	for tag, want := range map[string]bool{
		"span": true, "a": true, "wbr": true, "strong": true,
		"div": false, "p": false, "section": false, "": false,
	} {
		if got := isInlineElement(tag); got != want {
			t.Errorf("isInlineElement(%q) = %v, want %v", tag, got, want)
		}
	}
}
