package vtree

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/host/memdom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func TestPatchSimpleNode(t *testing.T) {
	rt := newTestRuntime()
	_, main, div := newMain(t)

	_, err := rt.Patch(div, vdom.H("div", vdom.Props{"className": "test"}, "Hello World!"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := main.InnerHTML(), `<div class="test">Hello World!</div>`; got != want {
		t.Errorf("InnerHTML() = %q, want %q", got, want)
	}
}

func TestPatchTextHostBecomesElement(t *testing.T) {
	rt := newTestRuntime()
	_, _, div := newMain(t)
	div.SetInnerHTML("test")

	if _, err := rt.Patch(div, vdom.H("div", nil, vdom.H("p", nil, "test2")), nil); err != nil {
		t.Fatal(err)
	}
	first := div.Children()[0]
	if first.Type() != host.ElementNode || first.Tag() != "p" {
		t.Fatalf("first child = %s <%s>, want element <p>", first.Type(), first.Tag())
	}
	if got := inner(first); got != "test2" {
		t.Errorf("p content = %q", got)
	}
}

func TestPatchTree(t *testing.T) {
	rt := newTestRuntime()
	_, _, div := newMain(t)

	tree := vdom.H("div", nil, []any{
		"text for starters",
		vdom.H("div", vdom.Props{"data-name": "name-value"}, []any{
			vdom.H("em", nil, "Lorem ipsum"),
			vdom.H("strong", nil, "dolor sit amet"),
		}, "consect etutor"),
		"text for enders",
	})
	if _, err := rt.Patch(div, tree, nil); err != nil {
		t.Fatal(err)
	}
	want := `text for starters<div data-name="name-value"><em>Lorem ipsum</em><strong>dolor sit amet</strong>consect etutor</div>text for enders`
	if got := inner(div); got != want {
		t.Errorf("InnerHTML() mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestPatchUpdatesExistingNodes(t *testing.T) {
	rt := newTestRuntime()
	_, _, div := newMain(t)
	div.SetInnerHTML(`<div class="test" name="hello"><p>test</p><q>test2</q></div>`)

	tree := vdom.H("div", nil, vdom.H("div", vdom.Props{"class": "test", "for": "me"}, vdom.H("i", nil, "test")))
	if _, err := rt.Patch(div, tree, nil); err != nil {
		t.Fatal(err)
	}
	if got, want := inner(div), `<div class="test" for="me"><i>test</i></div>`; got != want {
		t.Errorf("InnerHTML() = %q, want %q", got, want)
	}
}

func TestPatchIdempotent(t *testing.T) {
	rt := newTestRuntime()
	_, _, div := newMain(t)
	tree := vdom.H("ul", vdom.Props{"class": "list"}, vdom.H("li", nil, "a"), vdom.H("li", nil, "b"))

	h, err := rt.Patch(div, tree, nil)
	if err != nil {
		t.Fatal(err)
	}
	first := outer(h)

	// A foreign mutation survives the second pass because the hash matches.
	h.Children()[0].SetAttribute("data-marker", "1")
	h2, err := rt.Patch(h, tree, nil)
	if err != nil {
		t.Fatal(err)
	}
	if h2 != h {
		t.Error("second patch replaced the host")
	}
	if _, ok := h.Children()[0].Attribute("data-marker"); !ok {
		t.Error("unchanged tree should short-circuit")
	}

	h.Children()[0].RemoveAttribute("data-marker")
	if got := outer(h); got != first {
		t.Errorf("tree changed:\n%s\nwant\n%s", got, first)
	}
}

func TestPatchShortCircuitDisabled(t *testing.T) {
	rt := newTestRuntime(WithShortCircuit(false))
	_, _, div := newMain(t)
	tree := vdom.H("div", nil, vdom.H("p", nil, "x"))

	if _, err := rt.Patch(div, tree, nil); err != nil {
		t.Fatal(err)
	}
	p := div.Children()[0]
	p.SetAttribute("data-marker", "1")
	if _, err := rt.Patch(div, tree, nil); err != nil {
		t.Fatal(err)
	}
	if _, ok := p.Attribute("data-marker"); ok {
		t.Error("without short-circuit the stray attribute should be removed")
	}
}

func TestPatchAttributeFidelity(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.VNode
	}{
		{"type first", vdom.Input(vdom.Type("radio"), vdom.Value("123"))},
		{"value first", vdom.Input(vdom.Value("123"), vdom.Type("radio"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newTestRuntime()
			_, _, div := newMain(t)

			h, err := rt.Patch(div, tt.node, nil)
			if err != nil {
				t.Fatal(err)
			}
			if got := h.Property("value"); got != "123" {
				t.Errorf("value property = %v, want 123", got)
			}
			if got, _ := h.Attribute("type"); got != "radio" {
				t.Errorf("type attribute = %q, want radio", got)
			}
		})
	}
}

func TestPatchChildrenAlignment(t *testing.T) {
	rt := newTestRuntime()
	_, _, div := newMain(t)

	h, err := rt.Patch(div, vdom.H("div", nil, nil, "a", nil, "b"), nil)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, c := range h.Children() {
		got = append(got, c.Type().String()+":"+c.Text())
	}
	want := []string{"Text:a", "Text:b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestPatchTrimsTrailingChildren(t *testing.T) {
	rt := newTestRuntime()
	_, _, div := newMain(t)
	div.SetInnerHTML("<p>1</p><p>2</p><p>3</p>")

	if _, err := rt.Patch(div, vdom.H("div", nil, vdom.H("p", nil, "1")), nil); err != nil {
		t.Fatal(err)
	}
	if got := inner(div); got != "<p>1</p>" {
		t.Errorf("InnerHTML() = %q", got)
	}
}

func TestPatchPrimitive(t *testing.T) {
	t.Run("element host is replaced", func(t *testing.T) {
		rt := newTestRuntime()
		_, main, div := newMain(t)
		h, err := rt.Patch(div, vdom.Text("plain"), nil)
		if err != nil {
			t.Fatal(err)
		}
		if h.Type() != host.TextNode || main.InnerHTML() != "plain" {
			t.Errorf("host = %s, main = %q", h.Type(), main.InnerHTML())
		}
	})

	t.Run("text host is mutated", func(t *testing.T) {
		rt := newTestRuntime()
		doc := memdom.MustDocument("")
		text := doc.CreateTextNode("old")
		h, err := rt.Patch(text, vdom.Text("new"), nil)
		if err != nil {
			t.Fatal(err)
		}
		if h != text || text.Text() != "new" {
			t.Errorf("text = %q, same node = %v", text.Text(), h == text)
		}
	})

	t.Run("nil node is a no-op", func(t *testing.T) {
		rt := newTestRuntime()
		_, main, div := newMain(t)
		before := main.InnerHTML()
		h, err := rt.Patch(div, nil, nil)
		if err != nil || h != div || main.InnerHTML() != before {
			t.Errorf("Patch(nil) = %v, %v", h, err)
		}
	})

	t.Run("detached element cannot be replaced", func(t *testing.T) {
		rt := newTestRuntime()
		doc := memdom.MustDocument("")
		_, err := rt.Patch(doc.CreateElement("div"), vdom.Text("x"), nil)
		var perr *PatchError
		if !asPatchError(err, &perr) || perr.Code() != "E110" {
			t.Errorf("err = %v, want E110 PatchError", err)
		}
	})
}

func TestPatchNilHost(t *testing.T) {
	rt := newTestRuntime()
	_, err := rt.Patch(nil, vdom.H("div", nil), nil)
	var perr *PatchError
	if !asPatchError(err, &perr) || perr.Code() != "E111" {
		t.Errorf("err = %v, want E111 PatchError", err)
	}
}

func TestPatchEventListeners(t *testing.T) {
	rt := newTestRuntime()
	doc, _, div := newMain(t)

	counter := 0
	tree := vdom.H("div", vdom.Props{"class": "to-click", "onClick": func() { counter++ }}, nil, "test")
	if _, err := rt.Patch(div, tree, nil); err != nil {
		t.Fatal(err)
	}
	n, _ := doc.QuerySelector(".to-click")
	n.Click()
	if counter != 1 {
		t.Fatalf("counter = %d, want 1", counter)
	}

	// Handlers do not contribute to the hash, so the content changes too.
	other := 0
	tree = vdom.H("div", vdom.Props{"class": "to-click", "onClick": func() { other++ }}, nil, "changed")
	if _, err := rt.Patch(div, tree, nil); err != nil {
		t.Fatal(err)
	}
	n.Click()
	if counter != 1 || other != 1 {
		t.Errorf("counter = %d, other = %d", counter, other)
	}
	if _, ok := n.Attribute("onClick"); ok {
		t.Error("handlers must not become attributes")
	}
}

func TestPatchInnerHTML(t *testing.T) {
	rt := newTestRuntime()
	doc, _, div := newMain(t)
	div.SetAttribute("data-stale", "x")

	tree := vdom.H("div", vdom.Props{
		"class":             "to-click",
		vdom.InnerHTMLKey: map[string]any{"__html": `<div class="test">do exist</div>`},
	})
	if _, err := rt.Patch(div, tree, nil); err != nil {
		t.Fatal(err)
	}
	n, _ := doc.QuerySelector(".test")
	if n == nil || inner(n) != "do exist" {
		t.Fatalf("injected content missing: %v", n)
	}
	if _, ok := div.Attribute("data-stale"); !ok {
		t.Error("raw content suppresses attribute removal")
	}

	// Raw content owns the children: patched children are not trimmed.
	if _, err := rt.Patch(div, vdom.Div(vdom.InnerHTML("<b>1</b><b>2</b>")), nil); err != nil {
		t.Fatal(err)
	}
	if got := inner(div); got != "<b>1</b><b>2</b>" {
		t.Errorf("InnerHTML() = %q", got)
	}
}

func TestPatchInnerHTMLUnmountsChildren(t *testing.T) {
	rt := newTestRuntime()
	_, _, div := newMain(t)

	var ys []*lifecycle
	y := lifecycleClass("Y", &ys, func(*lifecycle) *vdom.VNode { return vdom.P("y") })
	if _, err := rt.Patch(div, vdom.Div(vdom.C(y, nil)), nil); err != nil {
		t.Fatal(err)
	}
	if len(ys) != 1 || ys[0].mounts != 1 {
		t.Fatalf("Y instances = %d", len(ys))
	}
	p := div.Children()[0]
	if rt.Owner(p) == nil {
		t.Fatal("child host is not bound")
	}

	if _, err := rt.Patch(div, vdom.H("div", vdom.Props{vdom.InnerHTMLKey: "<b>x</b>"}), nil); err != nil {
		t.Fatal(err)
	}
	if got := inner(div); got != "<b>x</b>" {
		t.Errorf("InnerHTML() = %q", got)
	}
	if ys[0].unmounts != 1 || !ys[0].Unmounted() {
		t.Errorf("Y unmounts = %d, unmounted = %v", ys[0].unmounts, ys[0].Unmounted())
	}
	if !ys[0].attachedAtU {
		t.Error("Y host should still be attached while WillUnmount runs")
	}
	if rt.Owner(p) != nil {
		t.Error("replaced child keeps its component binding")
	}
	if _, ok := rt.hashes[p]; ok {
		t.Error("replaced child keeps its hash")
	}

	// Patching the raw content again does not unmount twice.
	if _, err := rt.Patch(div, vdom.H("div", vdom.Props{vdom.InnerHTMLKey: "<b>z</b>"}), nil); err != nil {
		t.Fatal(err)
	}
	if ys[0].unmounts != 1 {
		t.Errorf("Y unmounts = %d after second patch", ys[0].unmounts)
	}
}

func TestPatchStyleObject(t *testing.T) {
	rt := newTestRuntime()
	_, _, div := newMain(t)

	tree := vdom.H("div", vdom.Props{"style": vdom.StyleMap{"color": "red", "backgroundColor": "green"}})
	if _, err := rt.Patch(div, tree, nil); err != nil {
		t.Fatal(err)
	}
	if got := div.Style().Get("color"); got != "red" {
		t.Errorf("color = %q", got)
	}
	if got := div.Style().Get("backgroundColor"); got != "green" {
		t.Errorf("backgroundColor = %q", got)
	}

	// The style object is reset, not merged with previous entries.
	if _, err := rt.Patch(div, vdom.H("div", vdom.Props{"style": map[string]any{"margin": 0}}), nil); err != nil {
		t.Fatal(err)
	}
	if div.Style().Get("color") != "" || div.Style().Get("margin") != "0" {
		t.Errorf("style after reset = %q", attrText(div.Attribute("style")))
	}
}

func TestPatchAttributeValues(t *testing.T) {
	rt := newTestRuntime()
	_, _, div := newMain(t)
	div.SetAttribute("title", "stale")

	tree := vdom.H("label", vdom.Props{
		"htmlFor":   "name",
		"className": "field",
		"hidden":    true,
		"draggable": false,
		"tabindex":  2,
		"title":     nil,
	})
	h, err := rt.Patch(div, tree, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]string{}
	for _, a := range h.Attributes() {
		got[a.Name] = a.Value
	}
	want := map[string]string{"for": "name", "class": "field", "hidden": "", "tabindex": "2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestPatchLiveProperties(t *testing.T) {
	rt := newTestRuntime()
	_, _, div := newMain(t)

	h, err := rt.Patch(div, vdom.Input(vdom.Checked(true), vdom.Disabled(true), vdom.A("value", nil)), nil)
	if err != nil {
		t.Fatal(err)
	}
	if h.Property("checked") != true || h.Property("disabled") != true {
		t.Errorf("checked = %v, disabled = %v", h.Property("checked"), h.Property("disabled"))
	}
	if h.Property("value") != "" {
		t.Errorf("nil value should write the empty string, got %v", h.Property("value"))
	}
}

func TestPatchRef(t *testing.T) {
	rt := newTestRuntime()
	_, _, div := newMain(t)

	var got *memdom.Node
	var any_ host.Node
	tree := vdom.H("div", nil,
		vdom.Span(vdom.Ref(func(n *memdom.Node) { got = n })),
		vdom.P(vdom.Ref(func(n host.Node) { any_ = n })),
	)
	if _, err := rt.Patch(div, tree, nil); err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Tag() != "span" {
		t.Errorf("typed ref got %v", got)
	}
	if any_ == nil || any_.Tag() != "p" {
		t.Errorf("host.Node ref got %v", any_)
	}
	if _, ok := got.Attribute("ref"); ok {
		t.Error("ref must not become an attribute")
	}
}

func TestPatchForeignHostNode(t *testing.T) {
	rt := newTestRuntime()
	doc, _, div := newMain(t)
	src := doc.CreateElement("em")
	src.AppendChild(doc.CreateTextNode("cloned"))

	if _, err := rt.Patch(div, vdom.H("div", nil, src), nil); err != nil {
		t.Fatal(err)
	}
	if got := inner(div); got != "<em>cloned</em>" {
		t.Errorf("InnerHTML() = %q", got)
	}
	if src.Parent() != nil {
		t.Error("source node must not be moved into the tree")
	}
}

func TestPatchUnsupportedForeign(t *testing.T) {
	rt := newTestRuntime()
	_, _, div := newMain(t)

	_, err := rt.Patch(div, vdom.H("div", nil, struct{ X int }{1}), nil)
	var perr *PatchError
	if !asPatchError(err, &perr) || perr.Code() != "E112" {
		t.Errorf("err = %v, want E112", err)
	}
}

func TestPatchManyChildren(t *testing.T) {
	rt := newTestRuntime()
	_, _, div := newMain(t)

	items := vdom.Repeat(20, func(i int) *vdom.VNode { return vdom.Li(fmt.Sprint(i)) })
	h, err := rt.Patch(div, vdom.Ul(items), nil)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(h.Children()); n != 20 {
		t.Fatalf("children = %d", n)
	}
	if _, err := rt.Patch(h, vdom.Ul(items[:5]), nil); err != nil {
		t.Fatal(err)
	}
	if n := len(h.Children()); n != 5 {
		t.Errorf("children after shrink = %d", n)
	}
}
