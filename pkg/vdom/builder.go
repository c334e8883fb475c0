package vdom

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Builder constructs VNodes and stamps their structural hash.
// The zero value is not usable; use NewBuilder.
type Builder struct {
	hasher Hasher
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithHasher sets the structural hash function.
func WithHasher(h Hasher) BuilderOption {
	return func(b *Builder) {
		if h != nil {
			b.hasher = h
		}
	}
}

// NewBuilder creates a Builder. The default hasher is DJB2.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{hasher: DJB2}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// defaultBuilder backs the package-level constructors.
var defaultBuilder atomic.Pointer[Builder]

func init() { defaultBuilder.Store(NewBuilder()) }

// Default returns the builder used by H, C and Text.
func Default() *Builder { return defaultBuilder.Load() }

// SetDefault replaces the builder used by the package-level constructors
// and returns the previous one. A nil b restores a DJB2 builder. Trees built
// before the call keep their hashes, so install it before rendering.
func SetDefault(b *Builder) *Builder {
	if b == nil {
		b = NewBuilder()
	}
	return defaultBuilder.Swap(b)
}

// H creates an element node with the default builder.
func H(tag string, props Props, children ...any) *VNode {
	return Default().H(tag, props, children...)
}

// C creates a component node with the default builder.
func C(ref ComponentRef, props Props, children ...any) *VNode {
	return Default().C(ref, props, children...)
}

// Text creates a text node with the default builder.
func Text(content string) *VNode {
	return Default().Text(content)
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// H creates an element node.
func (b *Builder) H(tag string, props Props, children ...any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    ownProps(props),
		Children: b.flatten(children),
	}
	node.Hash = b.hasher(describe(tag, node.Props, node.Children))
	return node
}

// C creates a component node. A nil ref yields a placeholder.
func (b *Builder) C(ref ComponentRef, props Props, children ...any) *VNode {
	if ref == nil {
		return nil
	}
	node := &VNode{
		Kind:     KindComponent,
		Comp:     ref,
		Props:    ownProps(props),
		Children: b.flatten(children),
	}
	node.Hash = b.hasher(describe(componentTag(ref), node.Props, node.Children))
	return node
}

// Text creates a text node.
func (b *Builder) Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
		Hash: b.hasher(content),
	}
}

// Foreign wraps an external value as a child awaiting normalization.
func (b *Builder) Foreign(v any) *VNode {
	return &VNode{
		Kind:    KindForeign,
		Foreign: v,
		Hash:    b.hasher(foreignTag(v)),
	}
}

// Element creates an element from variadic helper arguments:
// Attr and []Attr become props, everything else becomes children.
func (b *Builder) Element(tag string, args []any) *VNode {
	var props Props
	children := make([]any, 0, len(args))
	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			if v.IsEmpty() {
				continue
			}
			if props == nil {
				props = make(Props)
			}
			props[v.Key] = v.Value
		case []Attr:
			for _, a := range v {
				if a.IsEmpty() {
					continue
				}
				if props == nil {
					props = make(Props)
				}
				props[a.Key] = a.Value
			}
		case Props:
			if props == nil {
				props = make(Props, len(v))
			}
			for k, val := range v {
				props[k] = val
			}
		default:
			children = append(children, arg)
		}
	}
	return b.H(tag, props, children...)
}

// ownProps copies props so the node never aliases a caller's map.
func ownProps(props Props) Props {
	out := make(Props, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}

// flatten resolves nested child sequences into a single level. Empty
// sub-sequences disappear; nil and false become placeholders.
func (b *Builder) flatten(children []any) []*VNode {
	out := make([]*VNode, 0, len(children))
	for _, child := range children {
		out = b.appendChild(out, child)
	}
	return out
}

func (b *Builder) appendChild(out []*VNode, child any) []*VNode {
	switch v := child.(type) {
	case nil:
		return append(out, nil)
	case *VNode:
		return append(out, v)
	case string:
		return append(out, b.Text(v))
	case bool:
		if !v {
			return append(out, nil)
		}
		return append(out, b.Text(strconv.FormatBool(v)))
	case int:
		return append(out, b.Text(strconv.Itoa(v)))
	case int64:
		return append(out, b.Text(strconv.FormatInt(v, 10)))
	case float64:
		return append(out, b.Text(strconv.FormatFloat(v, 'f', -1, 64)))
	case []*VNode:
		return append(out, v...)
	case []string:
		for _, s := range v {
			out = append(out, b.Text(s))
		}
		return out
	case []any:
		for _, c := range v {
			out = b.appendChild(out, c)
		}
		return out
	default:
		return append(out, b.Foreign(v))
	}
}
