package vtree

import "github.com/vango-dev/vtree/pkg/vdom"

// Class is a component constructor usable as a vdom.ComponentRef. Two
// component nodes refer to the same constructor only when they share the
// same *Class.
type Class struct {
	name string
	ctor func() Component
}

// NewClass registers a constructor under name. ctor must return a fresh
// instance on every call.
func NewClass(name string, ctor func() Component) *Class {
	return &Class{name: name, ctor: ctor}
}

// Define returns a Class whose instances are new(T).
//
//	var Counter = vtree.Define[CounterComponent]("Counter")
func Define[T any, PT interface {
	*T
	Component
}](name string) *Class {
	return NewClass(name, func() Component { return PT(new(T)) })
}

// ComponentName returns the class name.
func (k *Class) ComponentName() string { return k.name }

// New constructs an instance with props and context.
func (k *Class) New(rt *Runtime, props vdom.Props, ctx any) Component {
	c := k.ctor()
	c.base().class = k
	return rt.Construct(c, props, ctx)
}

// RenderFunc is a function component. self is the adapter instance, so the
// function can read context and call SetState like a class component.
type RenderFunc func(self *FuncComponent, props vdom.Props, state State, ctx any) *vdom.VNode

// FuncComponent adapts a RenderFunc to Component.
type FuncComponent struct {
	Base
	render RenderFunc
}

// Render calls the wrapped function bound to the adapter.
func (f *FuncComponent) Render(props vdom.Props, state State, ctx any) *vdom.VNode {
	return f.render(f, props, state, ctx)
}

// FuncClass wraps a plain render function in a Class.
func FuncClass(name string, fn RenderFunc) *Class {
	return NewClass(name, func() Component { return &FuncComponent{render: fn} })
}

// Pure wraps a function that only depends on its props.
func Pure(name string, fn func(props vdom.Props) *vdom.VNode) *Class {
	return FuncClass(name, func(_ *FuncComponent, props vdom.Props, _ State, _ any) *vdom.VNode {
		return fn(props)
	})
}
