package host

// NodeType distinguishes element nodes from text nodes.
type NodeType uint8

const (
	ElementNode NodeType = 1
	TextNode    NodeType = 3
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

// Attribute is a single name/value pair stored on an element.
type Attribute struct {
	Name  string
	Value string
}

// Document creates nodes belonging to one tree.
type Document interface {
	CreateElement(tag string) Node
	CreateTextNode(value string) Node
}

// Style is the live style object of an element.
type Style interface {
	Get(property string) string
	Set(property, value string)
	Reset()
}

// Node is a live, mutable tree node of the rendering surface.
//
// Implementations must be comparable (usually pointers): the reconciler keys
// its association tables by node identity.
type Node interface {
	Type() NodeType

	// Tag returns the element tag name. Empty for text nodes.
	Tag() string

	// Text returns the value of a text node.
	Text() string
	SetText(value string)

	Attribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)
	Attributes() []Attribute

	// Property and SetProperty access mirrored live properties
	// (value, checked, selected, disabled).
	Property(name string) any
	SetProperty(name string, value any)
	Style() Style

	// SetInnerHTML replaces all children with parsed raw content.
	SetInnerHTML(html string)

	// AddEventListener binds handler to the named event. RemoveEventListener
	// unbinds whatever handler the library bound to that event.
	AddEventListener(event string, handler any)
	RemoveEventListener(event string)

	Parent() Node
	Children() []Node
	AppendChild(child Node)
	InsertBefore(child, ref Node)
	ReplaceChild(newChild, oldChild Node)
	RemoveChild(child Node)

	Document() Document
}

// Querier is implemented by hosts that can select descendants by selector.
type Querier interface {
	QuerySelector(selector string) (Node, error)
	QuerySelectorAll(selector string) ([]Node, error)
}

// IndexOf returns the position of child among parent's children, or -1.
func IndexOf(parent, child Node) int {
	if parent == nil {
		return -1
	}
	for i, c := range parent.Children() {
		if c == child {
			return i
		}
	}
	return -1
}

// ChildAt returns the child at index i, or nil when out of range.
func ChildAt(parent Node, i int) Node {
	children := parent.Children()
	if i < 0 || i >= len(children) {
		return nil
	}
	return children[i]
}

// Walk visits n and its descendants depth-first, parents before children.
func Walk(n Node, fn func(Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}
