package host

import (
	"strings"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// Clone converts a live node into an equivalent VDOM description.
// Text nodes become text VNodes; elements keep their attributes and children.
func Clone(n Node, b *vdom.Builder) *vdom.VNode {
	if n == nil {
		return nil
	}
	if b == nil {
		b = vdom.Default()
	}
	if n.Type() == TextNode {
		return b.Text(n.Text())
	}

	attrs := n.Attributes()
	props := make(vdom.Props, len(attrs))
	for _, a := range attrs {
		props[a.Name] = a.Value
	}

	children := n.Children()
	kids := make([]any, 0, len(children))
	for _, c := range children {
		kids = append(kids, Clone(c, b))
	}
	return b.H(strings.ToLower(n.Tag()), props, kids...)
}

// Normalize replaces every foreign child that wraps a Node with its clone.
// Slices without foreign entries are returned unchanged, so normalizing
// twice is a no-op.
func Normalize(children []*vdom.VNode, b *vdom.Builder) []*vdom.VNode {
	dirty := false
	for _, c := range children {
		if c != nil && c.Kind == vdom.KindForeign {
			dirty = true
			break
		}
	}
	if !dirty {
		return children
	}

	out := make([]*vdom.VNode, len(children))
	for i, c := range children {
		if c == nil || c.Kind != vdom.KindForeign {
			out[i] = c
			continue
		}
		if n, ok := c.Foreign.(Node); ok {
			out[i] = Clone(n, b)
			continue
		}
		out[i] = c
	}
	return out
}
