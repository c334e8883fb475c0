package vtree

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// State holds a component's local state. SetState shallow-merges into it.
type State map[string]any

// Clone returns a shallow copy.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Component is a unit producing a VDOM subtree from props, state and
// context. Implementations embed Base:
//
//	type Counter struct{ vtree.Base }
//
//	func (c *Counter) Render(props vdom.Props, state vtree.State, ctx any) *vdom.VNode {
//	    return vdom.Span(fmt.Sprint(state["n"]))
//	}
type Component interface {
	Render(props vdom.Props, state State, ctx any) *vdom.VNode
	base() *Base
}

// Optional lifecycle hooks. A component implements the ones it needs.
type (
	Initializer        interface{ Init() }
	WillMounter        interface{ WillMount() }
	DidMounter         interface{ DidMount() }
	WillUnmounter      interface{ WillUnmount() }
	WillUpdater        interface{ WillUpdate() }
	DidUpdater         interface{ DidUpdate() }
	WillReceivePropser interface {
		WillReceiveProps(next vdom.Props, state State)
	}
	ShouldUpdater interface {
		ShouldUpdate(props vdom.Props, state State) bool
	}

	// DidCatcher receives render and patch failures. Returning nil swallows
	// the error; returning it (the default) fails the caller.
	DidCatcher interface {
		DidCatch(err error) error
	}
)

// Base carries the lifecycle state of a component instance.
type Base struct {
	self    Component
	rt      *Runtime
	class   *Class
	props   vdom.Props
	state   State
	context any

	host      host.Node
	bound     bool
	mounted   bool
	unmounted bool
	dirtyAt   time.Time

	// child is the component this one's render returned, sharing its host.
	// parent is the component whose render returned this one.
	child  Component
	parent Component

	loading    bool
	loadErr    error
	loadInline bool
	cancelLoad context.CancelFunc
}

func (b *Base) base() *Base { return b }

// Props returns the current props.
func (b *Base) Props() vdom.Props { return b.props }

// State returns the current state.
func (b *Base) State() State { return b.state }

// Context returns the context value passed down to this component's subtree.
func (b *Base) Context() any { return b.context }

// SetContext replaces the context seen by this component's descendants.
func (b *Base) SetContext(ctx any) { b.context = ctx }

// Host returns the bound host node, nil when unmounted.
func (b *Base) Host() host.Node { return b.host }

// Mounted reports whether Mount completed and Unmount has not run.
func (b *Base) Mounted() bool { return b.mounted }

// Unmounted reports whether the instance reached its terminal state.
func (b *Base) Unmounted() bool { return b.unmounted }

// Runtime returns the runtime the instance was constructed with.
func (b *Base) Runtime() *Runtime { return b.rt }

// Name returns the class name, or "Component" for instances without a class.
func (b *Base) Name() string {
	if b.class != nil {
		return b.class.name
	}
	return "Component"
}

// UpdateProps replaces the props. Host nodes passed as children are cloned
// into VDOM. A bound instance re-renders unless ShouldUpdate declines.
func (b *Base) UpdateProps(next vdom.Props) error {
	if b.unmounted {
		return ErrUnmounted
	}
	if h, ok := b.self.(WillReceivePropser); ok {
		h.WillReceiveProps(next, b.state)
	}

	props := next.Clone()
	if kids := props.Children(); kids != nil {
		props[vdom.ChildrenKey] = host.Normalize(kids, b.rt.builder)
	}
	b.props = props

	if !b.shouldUpdate() || !b.bound {
		return nil
	}
	return b.ForceUpdate()
}

// Mount binds the instance to h and performs the first render.
func (b *Base) Mount(h host.Node) error {
	if b.unmounted {
		return ErrUnmounted
	}
	if b.bound {
		return ErrAlreadyMounted
	}
	if m, ok := b.self.(WillMounter); ok {
		m.WillMount()
	}
	b.startLoad()

	b.host = h
	b.bound = true
	if err := b.ForceUpdate(); err != nil {
		return err
	}
	if b.parent == nil {
		b.rt.associate(b.host, b.self)
	}
	b.mounted = true
	b.rt.logger.Debug("component mounted", "component", b.Name())
	b.rt.afterMount(b.self)
	if m, ok := b.self.(DidMounter); ok {
		m.DidMount()
	}

	if b.loadInline {
		b.loadInline = false
		return b.loadNow()
	}
	return nil
}

// SetState merges partial into the state and schedules a render. With a
// scheduler, calls within one tick coalesce into a single render.
func (b *Base) SetState(partial State) error {
	if b.unmounted {
		return ErrUnmounted
	}
	if h, ok := b.self.(WillReceivePropser); ok {
		h.WillReceiveProps(b.props, partial)
	}
	next := b.state.Clone()
	for k, v := range partial {
		next[k] = v
	}
	b.state = next

	if !b.shouldUpdate() || !b.bound {
		return nil
	}
	if s := b.rt.scheduler; s != nil {
		b.dirtyAt = b.rt.now()
		s.Enqueue(b.self)
		return nil
	}
	return b.ForceUpdate()
}

// ForceUpdate renders and patches the bound host node. A failure is passed to
// DidCatch once; when DidCatch returns it, ForceUpdate returns it too.
func (b *Base) ForceUpdate() error {
	if b.unmounted {
		return ErrUnmounted
	}
	if u, ok := b.self.(WillUpdater); ok {
		u.WillUpdate()
	}

	start := b.rt.now()
	var delay time.Duration
	if !b.dirtyAt.IsZero() {
		delay = start.Sub(b.dirtyAt)
		b.dirtyAt = time.Time{}
		if b.rt.tardy > 0 && delay > b.rt.tardy {
			b.rt.logger.Warn("render delayed", "component", b.Name(), "delay", delay)
		}
	}

	err := b.render()
	b.rt.observer.Rendered(RenderInfo{
		Component: b.Name(),
		Start:     start,
		Duration:  b.rt.now().Sub(start),
		Delay:     delay,
		Err:       err,
	})
	if err != nil {
		if err = b.catch(err); err != nil {
			return err
		}
	}

	b.rt.afterUpdate(b.self)
	if b.mounted {
		if u, ok := b.self.(DidUpdater); ok {
			u.DidUpdate()
		}
	}
	return nil
}

// Unmount runs the unmount hooks, unmounts the component this one rendered
// and releases the host binding. It is terminal.
func (b *Base) Unmount() error {
	if b.unmounted {
		return ErrUnmounted
	}
	b.rt.beforeUnmount(b.self)
	if u, ok := b.self.(WillUnmounter); ok {
		u.WillUnmount()
	}
	if b.child != nil {
		child := b.child
		b.child = nil
		if err := child.base().Unmount(); err != nil && !errors.Is(err, ErrUnmounted) {
			return err
		}
	}
	if b.cancelLoad != nil {
		b.cancelLoad()
		b.cancelLoad = nil
	}
	if b.parent == nil {
		b.rt.dissociate(b.host, b.self)
	}
	b.rt.logger.Debug("component unmounted", "component", b.Name())

	b.host = nil
	b.bound = false
	b.mounted = false
	b.unmounted = true
	return nil
}

// release drops an instance whose mount never completed, without hooks.
func (b *Base) release() {
	if b.child != nil {
		b.child.base().release()
		b.child = nil
	}
	if b.cancelLoad != nil {
		b.cancelLoad()
		b.cancelLoad = nil
	}
	b.rt.dissociate(b.host, b.self)
	b.host = nil
	b.bound = false
	b.unmounted = true
}

func (b *Base) shouldUpdate() bool {
	if s, ok := b.self.(ShouldUpdater); ok {
		return s.ShouldUpdate(b.props, b.state)
	}
	return true
}

func (b *Base) catch(err error) error {
	if c, ok := b.self.(DidCatcher); ok {
		return c.DidCatch(err)
	}
	return err
}

// render runs Render then applies the result. Panics in either phase are
// recovered into errors. Errors from nested components pass through as is.
func (b *Base) render() (err error) {
	var v *vdom.VNode
	rendering := true
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if rendering {
			b.rt.logger.Error("component render panicked", "component", b.Name(), "panic", r)
			err = newRenderError(b.Name(), r, debug.Stack())
			return
		}
		perr, ok := r.(error)
		if !ok {
			perr = newRenderError(b.Name(), r, debug.Stack())
		}
		err = newPatchError("E113", "apply", v.TagName(), perr)
	}()

	v = b.self.Render(b.props, b.state, b.context)
	rendering = false

	h, err := b.rt.apply(b.self, b.host, v, b.context)
	b.setHost(h)
	return err
}

// setHost records a replacement host node for the whole render chain and
// moves the association of the outermost component.
func (b *Base) setHost(h host.Node) {
	old := b.host
	if h == old {
		return
	}
	top := b
	for c := b; c != nil; {
		c.host = h
		top = c
		if c.parent == nil {
			break
		}
		c = c.parent.base()
	}
	if top.mounted {
		top.rt.dissociate(old, top.self)
		top.rt.associate(h, top.self)
	}
}
