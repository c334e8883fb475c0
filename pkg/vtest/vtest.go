package vtest

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/vtree/pkg/host/memdom"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
	"github.com/vango-dev/vtree/pkg/vtree"
)

// Harness is a tree mounted into an in-memory document.
type Harness struct {
	t    testing.TB
	doc  *memdom.Document
	root *memdom.Node
	rt   *vtree.Runtime
	node any
}

type config struct {
	ctx  any
	opts []vtree.Option
}

// Option configures Mount.
type Option func(*config)

// WithContext sets the context value passed to the root.
func WithContext(ctx any) Option {
	return func(c *config) { c.ctx = ctx }
}

// WithOptions adds runtime options. Logging is discarded unless an option
// installs a logger.
func WithOptions(opts ...vtree.Option) Option {
	return func(c *config) { c.opts = append(c.opts, opts...) }
}

// Mount patches v into a fresh document and fails the test on error.
//
// Example:
//
//	h := vtest.Mount(t, vdom.C(Todos, vdom.Props{"items": items}))
//	if n := h.Count("li"); n != 2 {
//	    t.Errorf("items = %d", n)
//	}
func Mount(t testing.TB, v *vdom.VNode, opts ...Option) *Harness {
	t.Helper()
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	doc := memdom.MustDocument(`<div id="root"><div></div></div>`)
	root, err := doc.QuerySelector("#root")
	if err != nil {
		t.Fatalf("vtest: %v", err)
	}
	rtOpts := append([]vtree.Option{vtree.WithLogger(discard())}, cfg.opts...)
	rt := vtree.NewRuntime(rtOpts...)

	n, err := rt.Patch(root.Children()[0], v, cfg.ctx)
	if err != nil {
		t.Fatalf("vtest: mount failed: %v", err)
	}
	return &Harness{t: t, doc: doc, root: root, rt: rt, node: n}
}

// Runtime returns the runtime the tree is mounted with.
func (h *Harness) Runtime() *vtree.Runtime { return h.rt }

// Document returns the document the tree is mounted into.
func (h *Harness) Document() *memdom.Document { return h.doc }

// Root returns the component owning the mounted root node, if any.
func (h *Harness) Root() vtree.Component {
	if n, ok := h.node.(*memdom.Node); ok {
		return h.rt.Owner(n)
	}
	return nil
}

// HTML returns the markup of the mounted tree.
func (h *Harness) HTML() string { return h.root.InnerHTML() }

// Find returns the first node matching selector and fails the test when
// there is none.
func (h *Harness) Find(selector string) *memdom.Node {
	h.t.Helper()
	n, err := h.doc.QuerySelector(selector)
	if err != nil {
		h.t.Fatalf("vtest: %v", err)
	}
	if n == nil {
		h.t.Fatalf("vtest: no node matches %q in:\n%s", selector, truncate(h.HTML(), 500))
	}
	return n
}

// Count returns the number of mounted nodes matching selector.
func (h *Harness) Count(selector string) int {
	h.t.Helper()
	nodes, err := h.root.QuerySelectorAll(selector)
	if err != nil {
		h.t.Fatalf("vtest: %v", err)
	}
	return len(nodes)
}

// Dispatch invokes the event listener on the node matching selector and
// flushes pending renders.
func (h *Harness) Dispatch(selector, event, value string) {
	h.t.Helper()
	n := h.Find(selector)
	if !n.Dispatch(event, &memdom.Event{Type: event, Target: n, Value: value}) {
		h.t.Fatalf("vtest: %s has no %s listener", selector, event)
	}
	h.Flush()
}

// Click dispatches a click on the node matching selector.
func (h *Harness) Click(selector string) {
	h.t.Helper()
	h.Dispatch(selector, "click", "")
}

// Flush renders every dirty component.
func (h *Harness) Flush() {
	h.t.Helper()
	if _, err := h.rt.Flush(); err != nil {
		h.t.Errorf("vtest: flush: %v", err)
	}
}

// ExpectContains asserts that the mounted markup contains expected.
func (h *Harness) ExpectContains(expected string) {
	h.t.Helper()
	if html := h.HTML(); !strings.Contains(html, expected) {
		h.t.Errorf("expected mounted tree to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the mounted markup does not contain unexpected.
func (h *Harness) ExpectNotContains(unexpected string) {
	h.t.Helper()
	if html := h.HTML(); strings.Contains(html, unexpected) {
		h.t.Errorf("expected mounted tree to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// RenderToString renders a VNode and returns the HTML string, or an empty
// string when rendering fails.
//
// Example:
//
//	html := vtest.RenderToString(vdom.C(Card, nil))
//	if !strings.Contains(html, "expected text") {
//	    t.Error("missing expected text")
//	}
func RenderToString(node *vdom.VNode) string {
	html, err := render.Render(node, nil, vtree.WithLogger(discard()))
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, vdom.C(Greeting, nil), "Welcome")
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t testing.TB, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
//
// Example:
//
//	vtest.ExpectAttribute(t, vdom.C(Button, nil), "class", "btn-primary")
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
