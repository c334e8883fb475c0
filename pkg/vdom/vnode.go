package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Primitive child rendered as text
	KindComponent              // Component reference
	KindForeign                // External value (usually a host node) awaiting normalization
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComponent:
		return "Component"
	case KindForeign:
		return "Foreign"
	default:
		return "Unknown"
	}
}

// VNode is an immutable description of a desired tree shape.
//
// A nil entry in Children is a placeholder left by a nil or false child. It
// occupies no host slot during reconciliation.
type VNode struct {
	Kind     VKind        // Node type
	Tag      string       // Element tag name (e.g., "div")
	Comp     ComponentRef // For KindComponent
	Props    Props        // Attributes, event handlers, refs
	Children []*VNode     // Child nodes, nil entries are placeholders
	Text     string       // For KindText
	Foreign  any          // For KindForeign
	Hash     uint64       // Structural fingerprint
}

// Props holds attributes and event handlers.
type Props map[string]any

// ChildrenKey is the props key under which components receive their children.
const ChildrenKey = "children"

// Clone returns a shallow copy of the props. A nil receiver yields an empty map.
func (p Props) Clone() Props {
	out := make(Props, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Children returns the children slice stored under ChildrenKey, if any.
func (p Props) Children() []*VNode {
	if p == nil {
		return nil
	}
	children, _ := p[ChildrenKey].([]*VNode)
	return children
}

// String returns the string stored under key, or "" when absent or not a string.
func (p Props) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// Int returns the int stored under key, or 0.
func (p Props) Int(key string) int {
	n, _ := p[key].(int)
	return n
}

// ComponentRef identifies a component constructor in a VNode tag position.
// Two references denote the same constructor only when they are the same value.
type ComponentRef interface {
	ComponentName() string
}

// TagName returns the tag for elements and the component name for components.
func (v *VNode) TagName() string {
	if v == nil {
		return ""
	}
	if v.Kind == KindComponent && v.Comp != nil {
		return v.Comp.ComponentName()
	}
	return v.Tag
}

// IsInteractive returns true if this node has event handlers.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key, value := range v.Props {
		if IsEventKey(key, value) {
			return true
		}
	}
	return false
}

// HasInnerHTML reports whether the node carries raw content that owns its children.
func (v *VNode) HasInnerHTML() bool {
	if v == nil || v.Props == nil {
		return false
	}
	_, ok := v.Props[InnerHTMLKey]
	return ok
}

// IsEventKey returns true for "on"-prefixed keys bound to a function value.
func IsEventKey(key string, value any) bool {
	if len(key) <= 2 || !strings.EqualFold(key[:2], "on") {
		return false
	}
	return isFunc(value)
}

// EventName converts an event key ("onClick") into a listener name ("click").
func EventName(key string) string {
	return strings.ToLower(key[2:])
}
