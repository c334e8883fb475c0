package vtree

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/host/memdom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// quietLogger discards output so tests stay readable.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRuntime(opts ...Option) *Runtime {
	return NewRuntime(append([]Option{WithLogger(quietLogger())}, opts...)...)
}

// newMain returns a document shaped <main><div></div></main> and its main
// and inner div nodes.
func newMain(t *testing.T) (*memdom.Document, *memdom.Node, host.Node) {
	t.Helper()
	doc := memdom.MustDocument("<main><div></div></main>")
	main, err := doc.QuerySelector("main")
	if err != nil || main == nil {
		t.Fatalf("main element missing: %v", err)
	}
	return doc, main, main.Children()[0]
}

func outer(n host.Node) string { return n.(*memdom.Node).OuterHTML() }
func inner(n host.Node) string { return n.(*memdom.Node).InnerHTML() }

// lifecycle is a class component recording its lifecycle.
type lifecycle struct {
	Base
	render      func(p *lifecycle) *vdom.VNode
	renders     int
	mounts      int
	unmounts    int
	updates     int
	attachedAtU bool
}

func (p *lifecycle) Render(props vdom.Props, state State, ctx any) *vdom.VNode {
	p.renders++
	if p.render != nil {
		return p.render(p)
	}
	return vdom.H("div", vdom.Props{"class": "test"}, "test-text")
}

func (p *lifecycle) DidMount()  { p.mounts++ }
func (p *lifecycle) DidUpdate() { p.updates++ }
func (p *lifecycle) WillUnmount() {
	p.unmounts++
	if h := p.Host(); h != nil {
		p.attachedAtU = h.Parent() != nil
	}
}

// lifecycleClass returns a class whose instances are appended to made.
func lifecycleClass(name string, made *[]*lifecycle, render func(p *lifecycle) *vdom.VNode) *Class {
	return NewClass(name, func() Component {
		p := &lifecycle{render: render}
		*made = append(*made, p)
		return p
	})
}

func attrText(v string, _ bool) string { return v }

func asPatchError(err error, target **PatchError) bool {
	return errors.As(err, target)
}
