package memdom

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/vtree/pkg/host"
)

// Node wraps an html.Node and keeps the live state that markup cannot
// hold, namely properties and bound listeners.
type Node struct {
	doc *Document
	n   *html.Node

	props     map[string]any
	listeners map[string]any
}

var (
	_ host.Node    = (*Node)(nil)
	_ host.Querier = (*Node)(nil)
)

// HTML returns the underlying html node.
func (n *Node) HTML() *html.Node { return n.n }

func (n *Node) Type() host.NodeType {
	switch n.n.Type {
	case html.TextNode, html.CommentNode:
		return host.TextNode
	default:
		return host.ElementNode
	}
}

func (n *Node) Tag() string {
	switch n.n.Type {
	case html.ElementNode:
		return n.n.Data
	case html.DocumentNode:
		return "#document"
	}
	return ""
}

func (n *Node) Text() string {
	if n.n.Type == html.TextNode || n.n.Type == html.CommentNode {
		return n.n.Data
	}
	return textContent(n.n)
}

func (n *Node) SetText(value string) {
	if n.n.Type == html.TextNode {
		n.n.Data = value
		return
	}
	n.clear()
	n.n.AppendChild(&html.Node{Type: html.TextNode, Data: value})
}

// Attributes

func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (n *Node) SetAttribute(name, value string) {
	for i, a := range n.n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.n.Attr[i].Val = value
			return
		}
	}
	n.n.Attr = append(n.n.Attr, html.Attribute{Key: name, Val: value})
}

func (n *Node) RemoveAttribute(name string) {
	attrs := n.n.Attr[:0]
	for _, a := range n.n.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		attrs = append(attrs, a)
	}
	n.n.Attr = attrs
}

func (n *Node) Attributes() []host.Attribute {
	out := make([]host.Attribute, 0, len(n.n.Attr))
	for _, a := range n.n.Attr {
		out = append(out, host.Attribute{Name: a.Key, Value: a.Val})
	}
	return out
}

// Properties

func (n *Node) Property(name string) any {
	if v, ok := n.props[name]; ok {
		return v
	}
	// Unset properties read their markup default.
	v, ok := n.Attribute(name)
	switch name {
	case "checked", "selected", "disabled":
		return ok
	}
	return v
}

func (n *Node) SetProperty(name string, value any) {
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[name] = value

	// disabled reflects to its content attribute.
	if name == "disabled" {
		if on, _ := value.(bool); on {
			n.SetAttribute(name, "")
		} else {
			n.RemoveAttribute(name)
		}
	}
}

func (n *Node) Style() host.Style {
	return style{owner: n}
}

func (n *Node) SetInnerHTML(markup string) {
	n.clear()
	nodes, err := html.ParseFragment(strings.NewReader(markup), n.context())
	if err != nil {
		// Unparseable content is kept verbatim.
		n.n.AppendChild(&html.Node{Type: html.TextNode, Data: markup})
		return
	}
	for _, c := range nodes {
		n.n.AppendChild(c)
	}
}

// Events

func (n *Node) AddEventListener(event string, handler any) {
	if n.listeners == nil {
		n.listeners = make(map[string]any)
	}
	n.listeners[event] = handler
}

func (n *Node) RemoveEventListener(event string) {
	delete(n.listeners, event)
}

// Listener returns the handler bound to event, if any.
func (n *Node) Listener(event string) any { return n.listeners[event] }

// Dispatch invokes the listener bound to event with payload. It reports
// whether a listener was found.
func (n *Node) Dispatch(event string, payload any) bool {
	h, ok := n.listeners[event]
	if !ok {
		return false
	}
	switch fn := h.(type) {
	case func():
		fn()
	case func(any):
		fn(payload)
	case func(*Event):
		ev, _ := payload.(*Event)
		if ev == nil {
			ev = &Event{Type: event, Target: n}
		}
		fn(ev)
	case func(host.Node):
		fn(n)
	default:
		return false
	}
	return true
}

// Click dispatches a click event.
func (n *Node) Click() bool {
	return n.Dispatch("click", &Event{Type: "click", Target: n})
}

// Tree

func (n *Node) Parent() host.Node {
	if n.n.Parent == nil {
		return nil
	}
	return n.doc.wrap(n.n.Parent)
}

func (n *Node) Children() []host.Node {
	var out []host.Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, n.doc.wrap(c))
	}
	return out
}

func (n *Node) AppendChild(child host.Node) {
	c := n.own(child)
	detach(c)
	n.n.AppendChild(c)
}

func (n *Node) InsertBefore(child, ref host.Node) {
	if ref == nil {
		n.AppendChild(child)
		return
	}
	c, r := n.own(child), n.own(ref)
	if r.Parent != n.n {
		n.AppendChild(child)
		return
	}
	detach(c)
	n.n.InsertBefore(c, r)
}

func (n *Node) ReplaceChild(newChild, oldChild host.Node) {
	c, old := n.own(newChild), n.own(oldChild)
	if old.Parent != n.n || c == old {
		return
	}
	detach(c)
	n.n.InsertBefore(c, old)
	n.n.RemoveChild(old)
	n.doc.forget(old)
}

func (n *Node) RemoveChild(child host.Node) {
	c := n.own(child)
	if c.Parent != n.n {
		return
	}
	n.n.RemoveChild(c)
	n.doc.forget(c)
}

func (n *Node) Document() host.Document { return n.doc }

// QuerySelector returns the first descendant matching a CSS selector.
func (n *Node) QuerySelector(selector string) (host.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, err
	}
	found := cascadia.Query(n.n, sel)
	if found == nil {
		return nil, nil
	}
	return n.doc.wrap(found), nil
}

// QuerySelectorAll returns every descendant matching a CSS selector.
func (n *Node) QuerySelectorAll(selector string) ([]host.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, err
	}
	var out []host.Node
	for _, found := range cascadia.QueryAll(n.n, sel) {
		out = append(out, n.doc.wrap(found))
	}
	return out, nil
}

// OuterHTML serializes the node and its descendants.
func (n *Node) OuterHTML() string {
	var b strings.Builder
	if n.n.Type == html.DocumentNode {
		return n.InnerHTML()
	}
	_ = html.Render(&b, n.n)
	return b.String()
}

// InnerHTML serializes the node's descendants.
func (n *Node) InnerHTML() string {
	var b strings.Builder
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String()
}

// own unwraps a host node created by this package.
func (n *Node) own(child host.Node) *html.Node {
	c, ok := child.(*Node)
	if !ok {
		panic("memdom: foreign host node")
	}
	if c.doc != n.doc {
		delete(c.doc.nodes, c.n)
		c.doc = n.doc
	}
	// Re-register so later lookups return this wrapper.
	n.doc.nodes[c.n] = c
	return c.n
}

func (n *Node) clear() {
	for c := n.n.FirstChild; c != nil; {
		next := c.NextSibling
		n.n.RemoveChild(c)
		n.doc.forget(c)
		c = next
	}
}

// context returns the element used as fragment parsing context.
func (n *Node) context() *html.Node {
	if n.n.Type == html.ElementNode {
		return n.n
	}
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}

func detach(c *html.Node) {
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// Event is the payload passed to func(*Event) listeners.
type Event struct {
	Type   string
	Target *Node
	Value  string
}
