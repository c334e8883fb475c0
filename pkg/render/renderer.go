package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
	"github.com/vango-dev/vtree/pkg/vtree"
)

// ErrUnsupportedNode is returned for foreign children that are not host nodes.
var ErrUnsupportedNode = errors.New("render: unsupported node")

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Should only be used in development as it increases output size.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// Options configure the runtime components are constructed with, for
	// example vtree.WithLogger. The renderer installs its own applier.
	Options []vtree.Option
}

// Renderer serializes VNode trees to HTML. It never touches a host tree.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// Render renders v to HTML with a default renderer.
func Render(v *vdom.VNode, ctx any, opts ...vtree.Option) (string, error) {
	return NewRenderer(RendererConfig{Options: opts}).RenderToString(v, ctx)
}

// RenderShallow renders v without constructing components. A component
// appears as a tag named after it, carrying its props as attributes.
func RenderShallow(v *vdom.VNode) string {
	var buf bytes.Buffer
	_ = NewRenderer(RendererConfig{}).RenderShallowToWriter(&buf, v)
	return buf.String()
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode, ctx any) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node, ctx); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to w. Components are constructed and
// mounted against a string-writing applier; a component whose initial props
// load inline is written with its loaded output.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode, ctx any) error {
	s := &session{r: r}
	opts := append(append([]vtree.Option{}, r.config.Options...), vtree.WithApplier(s))
	s.rt = vtree.NewRuntime(opts...)
	return s.renderNode(w, node, ctx, 0)
}

// RenderShallowToWriter streams v to w without constructing components.
func (r *Renderer) RenderShallowToWriter(w io.Writer, node *vdom.VNode) error {
	s := &session{r: r, shallow: true}
	return s.renderNode(w, node, nil, 0)
}

// session carries the state of one render call.
type session struct {
	r       *Renderer
	rt      *vtree.Runtime
	shallow bool

	// frames holds one output buffer per component being mounted. The
	// applier always writes to the innermost frame.
	frames []*frame
}

type frame struct {
	buf   bytes.Buffer
	depth int
}

// Apply implements vtree.Applier. Each render replaces the frame's output.
func (s *session) Apply(_ vtree.Component, h host.Node, v *vdom.VNode, ctx any) (host.Node, error) {
	if len(s.frames) == 0 {
		return h, nil
	}
	f := s.frames[len(s.frames)-1]
	f.buf.Reset()
	return h, s.renderNode(&f.buf, v, ctx, f.depth)
}

// renderNode dispatches rendering based on node kind.
func (s *session) renderNode(w io.Writer, node *vdom.VNode, ctx any, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return s.renderElement(w, node, node.Tag, node.Props, ctx, depth)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindComponent:
		if s.shallow {
			return s.renderElement(w, node, node.TagName(), withoutChildren(node.Props), ctx, depth)
		}
		return s.renderComponent(w, node, ctx, depth)
	case vdom.KindForeign:
		if n, ok := node.Foreign.(host.Node); ok {
			return s.renderNode(w, host.Clone(n, nil), ctx, depth)
		}
		return fmt.Errorf("%w: %T", ErrUnsupportedNode, node.Foreign)
	default:
		return fmt.Errorf("render: unknown node kind: %d", node.Kind)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (s *session) renderElement(w io.Writer, node *vdom.VNode, tag string, props vdom.Props, ctx any, depth int) error {
	pretty := s.r.config.Pretty

	if pretty && depth > 0 {
		s.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}
	if err := renderAttributes(w, props); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if vdom.IsVoidElement(tag) {
		if pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	if raw, ok := props[vdom.InnerHTMLKey]; ok {
		if _, err := io.WriteString(w, vtree.RawContent(raw)); err != nil {
			return err
		}
	} else {
		hasBlockChildren := len(node.Children) > 0 && !isInlineElement(tag)
		if pretty && hasBlockChildren {
			io.WriteString(w, "\n")
		}

		for _, child := range node.Children {
			if err := s.renderNode(w, child, ctx, depth+1); err != nil {
				return err
			}
		}

		if pretty && hasBlockChildren {
			s.writeIndent(w, depth)
		}
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

// renderComponent mounts a fresh instance with no host and writes whatever
// its last render produced while mounting.
func (s *session) renderComponent(w io.Writer, node *vdom.VNode, ctx any, depth int) error {
	class, ok := node.Comp.(*vtree.Class)
	if !ok {
		return fmt.Errorf("%w: component %s", ErrUnsupportedNode, node.TagName())
	}

	props := node.Props.Clone()
	props[vdom.ChildrenKey] = node.Children

	f := &frame{depth: depth}
	s.frames = append(s.frames, f)
	_, err := s.rt.Mount(class, props, ctx, nil)
	s.frames = s.frames[:len(s.frames)-1]
	if err != nil {
		return err
	}
	_, err = w.Write(f.buf.Bytes())
	return err
}

// renderAttributes renders props as attributes in key order. Handlers, refs
// and raw content are not attributes.
func renderAttributes(w io.Writer, props vdom.Props) error {
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := props[key]

		switch {
		case key == vdom.InnerHTMLKey, key == vdom.ChildrenKey:
			continue
		case vdom.IsEventKey(key, value), vdom.IsFunc(value):
			continue
		}

		name := vtree.AttributeName(key)
		if key == vdom.StyleKey {
			if css, ok := styleText(value); ok {
				if css != "" {
					if _, err := fmt.Fprintf(w, ` style="%s"`, escapeAttr(css)); err != nil {
						return err
					}
				}
				continue
			}
		}

		switch v := value.(type) {
		case nil:
			continue
		case bool:
			if v {
				if _, err := fmt.Fprintf(w, " %s", name); err != nil {
					return err
				}
			}
			continue
		}

		if _, err := fmt.Fprintf(w, ` %s="%s"`, name, escapeAttr(vtree.AttributeValue(value))); err != nil {
			return err
		}
	}
	return nil
}

// styleText serializes an object-valued style prop.
func styleText(value any) (string, bool) {
	entries, ok := vtree.StyleEntries(value)
	if !ok {
		return "", false
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		if entries[name] == "" {
			continue
		}
		parts = append(parts, vdom.CSSName(name)+": "+entries[name]+";")
	}
	return strings.Join(parts, " "), true
}

func withoutChildren(props vdom.Props) vdom.Props {
	if _, ok := props[vdom.ChildrenKey]; !ok {
		return props
	}
	out := props.Clone()
	delete(out, vdom.ChildrenKey)
	return out
}

// writeIndent writes indentation for pretty printing.
func (s *session) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, s.r.config.Indent)
	}
}
