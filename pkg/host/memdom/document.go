package memdom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/vtree/pkg/host"
)

// Document is an in-memory tree satisfying host.Document.
// It is not safe for concurrent use.
type Document struct {
	root  *html.Node
	nodes map[*html.Node]*Node
}

var _ host.Document = (*Document)(nil)

// NewDocument parses markup into a full document. Missing html, head and
// body elements are synthesized the way a browser would.
func NewDocument(markup string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("memdom: parse document: %w", err)
	}
	return &Document{
		root:  root,
		nodes: make(map[*html.Node]*Node),
	}, nil
}

// MustDocument is NewDocument that panics on error. For tests and fixtures.
func MustDocument(markup string) *Document {
	doc, err := NewDocument(markup)
	if err != nil {
		panic(err)
	}
	return doc
}

// Root returns the document node.
func (d *Document) Root() *Node { return d.wrap(d.root) }

// Body returns the body element.
func (d *Document) Body() *Node {
	n, _ := d.Root().QuerySelector("body")
	if n == nil {
		return nil
	}
	return n.(*Node)
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) host.Node {
	tag = strings.ToLower(tag)
	return d.wrap(&html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	})
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(value string) host.Node {
	return d.wrap(&html.Node{
		Type: html.TextNode,
		Data: value,
	})
}

// QuerySelector returns the first descendant of the document matching selector.
func (d *Document) QuerySelector(selector string) (*Node, error) {
	n, err := d.Root().QuerySelector(selector)
	if n == nil || err != nil {
		return nil, err
	}
	return n.(*Node), nil
}

// wrap returns the one wrapper for an underlying html node.
func (d *Document) wrap(n *html.Node) *Node {
	if n == nil {
		return nil
	}
	if w, ok := d.nodes[n]; ok {
		return w
	}
	w := &Node{doc: d, n: n}
	d.nodes[n] = w
	return w
}

// forget drops wrappers for a detached subtree so the document does not
// retain nodes the tree no longer references.
func (d *Document) forget(n *html.Node) {
	delete(d.nodes, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.forget(c)
	}
}
