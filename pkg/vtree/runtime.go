package vtree

import (
	"log/slog"
	"time"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// DefaultTardyThreshold is the queue delay after which a render logs a warning.
const DefaultTardyThreshold = 150 * time.Millisecond

// TaskQueue runs deferred continuations on the rendering goroutine.
// Post must be safe to call from any goroutine.
type TaskQueue interface {
	Post(fn func())
}

// Applier applies a component's rendered tree to its host node and returns
// the resulting host node. The default applier is the reconciler.
type Applier interface {
	Apply(c Component, h host.Node, v *vdom.VNode, ctx any) (host.Node, error)
}

// ApplierFunc adapts a function to Applier.
type ApplierFunc func(c Component, h host.Node, v *vdom.VNode, ctx any) (host.Node, error)

// Apply calls f.
func (f ApplierFunc) Apply(c Component, h host.Node, v *vdom.VNode, ctx any) (host.Node, error) {
	return f(c, h, v, ctx)
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithScheduler batches SetState renders into s. Without a scheduler every
// state change renders synchronously.
func WithScheduler(s *Scheduler) Option {
	return func(rt *Runtime) { rt.scheduler = s }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(rt *Runtime) {
		if l != nil {
			rt.logger = l
		}
	}
}

// WithObserver sets the measurement sink.
func WithObserver(o Observer) Option {
	return func(rt *Runtime) {
		if o != nil {
			rt.observer = o
		}
	}
}

// WithShortCircuit toggles the structural-hash skip. It is on by default.
func WithShortCircuit(on bool) Option {
	return func(rt *Runtime) { rt.shortCircuit = on }
}

// WithTardyThreshold sets the queue delay that triggers a slow render warning.
func WithTardyThreshold(d time.Duration) Option {
	return func(rt *Runtime) { rt.tardy = d }
}

// WithTaskQueue sets where async initial-props results are delivered.
func WithTaskQueue(q TaskQueue) Option {
	return func(rt *Runtime) { rt.tasks = q }
}

// WithApplier replaces the reconciler as the target of component renders.
func WithApplier(a Applier) Option {
	return func(rt *Runtime) { rt.applier = a }
}

// WithHooks installs runtime-wide lifecycle callbacks.
func WithHooks(h Hooks) Option {
	return func(rt *Runtime) { rt.hooks = h }
}

// WithBuilder sets the builder used to normalize host nodes passed as children.
func WithBuilder(b *vdom.Builder) Option {
	return func(rt *Runtime) {
		if b != nil {
			rt.builder = b
		}
	}
}

// Runtime owns the reconciler state for one host tree: the association of
// host nodes to components and to their last applied hash. A Runtime and the
// tree it patches must be used from a single goroutine.
type Runtime struct {
	builder      *vdom.Builder
	scheduler    *Scheduler
	tasks        TaskQueue
	applier      Applier
	logger       *slog.Logger
	observer     Observer
	hooks        Hooks
	shortCircuit bool
	tardy        time.Duration
	now          func() time.Time

	owners map[host.Node]Component
	hashes map[host.Node]uint64
}

// NewRuntime creates a Runtime.
func NewRuntime(opts ...Option) *Runtime {
	rt := &Runtime{
		builder:      vdom.Default(),
		logger:       slog.Default(),
		observer:     NopObserver{},
		shortCircuit: true,
		tardy:        DefaultTardyThreshold,
		now:          time.Now,
		owners:       make(map[host.Node]Component),
		hashes:       make(map[host.Node]uint64),
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.scheduler != nil {
		rt.scheduler.bind(rt)
	}
	return rt
}

// Logger returns the runtime logger.
func (rt *Runtime) Logger() *slog.Logger { return rt.logger }

// Builder returns the builder used for host node normalization.
func (rt *Runtime) Builder() *vdom.Builder { return rt.builder }

// Scheduler returns the batching scheduler, or nil when renders are synchronous.
func (rt *Runtime) Scheduler() *Scheduler { return rt.scheduler }

// Owner returns the outermost component bound to h, if any.
func (rt *Runtime) Owner(h host.Node) Component { return rt.owners[h] }

// Flush renders every queued component. It is a no-op without a scheduler.
func (rt *Runtime) Flush() (int, error) {
	if rt.scheduler == nil {
		return 0, nil
	}
	return rt.scheduler.Flush()
}

// Patch reconciles h against v and returns the current or replacement host
// node. Applying an unchanged v twice leaves the host tree unchanged.
func (rt *Runtime) Patch(h host.Node, v *vdom.VNode, ctx any) (host.Node, error) {
	return rt.patch(h, v, ctx, nil)
}

// Construct prepares an instance for use with this runtime: it initializes
// empty state, stores ctx, applies props and runs Init. Instances created by
// a Class are constructed already.
func (rt *Runtime) Construct(c Component, props vdom.Props, ctx any) Component {
	b := c.base()
	b.self = c
	b.rt = rt
	b.state = State{}
	b.context = ctx
	if err := b.UpdateProps(props); err != nil {
		rt.logger.Warn("construct props failed", "component", b.Name(), "error", err)
	}
	if i, ok := c.(Initializer); ok {
		i.Init()
	}
	return c
}

// Mount constructs an instance of class and mounts it onto h.
func (rt *Runtime) Mount(class *Class, props vdom.Props, ctx any, h host.Node) (Component, error) {
	c := class.New(rt, props, ctx)
	return c, c.base().Mount(h)
}

func (rt *Runtime) apply(c Component, h host.Node, v *vdom.VNode, ctx any) (host.Node, error) {
	if rt.applier != nil {
		return rt.applier.Apply(c, h, v, ctx)
	}
	return rt.patch(h, v, ctx, c)
}

func (rt *Runtime) associate(h host.Node, c Component) {
	if h != nil {
		rt.owners[h] = c
	}
}

func (rt *Runtime) dissociate(h host.Node, c Component) {
	if h != nil && rt.owners[h] == c {
		delete(rt.owners, h)
	}
}

func (rt *Runtime) afterMount(c Component) {
	rt.observer.Mounted(c.base().Name())
	if rt.hooks.AfterMount != nil {
		rt.hooks.AfterMount(c)
	}
}

func (rt *Runtime) afterUpdate(c Component) {
	if rt.hooks.AfterUpdate != nil {
		rt.hooks.AfterUpdate(c)
	}
}

func (rt *Runtime) beforeUnmount(c Component) {
	rt.observer.Unmounted(c.base().Name())
	if rt.hooks.BeforeUnmount != nil {
		rt.hooks.BeforeUnmount(c)
	}
}
