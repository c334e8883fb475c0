package vtree

import (
	"context"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// InitialPropsLoader is implemented by components that fetch extra props
// when they mount. The loader runs on its own goroutine and its result is
// delivered through the runtime's TaskQueue, then merged into props before
// a SetState(nil) re-render. ctx is canceled when the component unmounts.
type InitialPropsLoader interface {
	LoadInitialProps(ctx context.Context) (vdom.Props, error)
}

// AsyncBase is Base for components that implement InitialPropsLoader.
// The default loader returns no props.
type AsyncBase struct {
	Base
}

// LoadInitialProps returns no props. Embedders override it.
func (a *AsyncBase) LoadInitialProps(context.Context) (vdom.Props, error) {
	return nil, nil
}

// Loading reports whether the loader is still running.
func (a *AsyncBase) Loading() bool { return a.loading }

// LoadErr returns the loader failure, if any.
func (a *AsyncBase) LoadErr() error { return a.loadErr }

// startLoad runs at will-mount. Without a task queue the load is deferred
// until after did-mount and runs inline.
func (b *Base) startLoad() {
	loader, ok := b.self.(InitialPropsLoader)
	if !ok {
		return
	}
	b.loading = true
	tasks := b.rt.tasks
	if tasks == nil {
		b.loadInline = true
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancelLoad = cancel
	go func() {
		props, err := loader.LoadInitialProps(ctx)
		tasks.Post(func() {
			if err := b.finishLoad(props, err); err != nil {
				b.rt.logger.Error("async component update failed", "component", b.Name(), "error", err)
			}
		})
	}()
}

func (b *Base) loadNow() error {
	loader := b.self.(InitialPropsLoader)
	ctx, cancel := context.WithCancel(context.Background())
	b.cancelLoad = cancel
	props, err := loader.LoadInitialProps(ctx)
	return b.finishLoad(props, err)
}

// finishLoad merges loaded props and re-renders. A failed load keeps the
// current props and still re-renders so the component can show the error.
func (b *Base) finishLoad(props vdom.Props, err error) error {
	b.loading = false
	if b.cancelLoad != nil {
		b.cancelLoad()
		b.cancelLoad = nil
	}
	if b.unmounted {
		return nil
	}
	if err != nil {
		b.loadErr = &LoadError{Component: b.Name(), Err: err}
		b.rt.logger.Warn("initial props failed", "component", b.Name(), "error", err)
	} else if len(props) > 0 {
		merged := b.props.Clone()
		for k, v := range props {
			merged[k] = v
		}
		b.props = merged
	}
	return b.SetState(nil)
}
