// Package vtree reconciles VDOM trees against a live host tree and runs
// the component lifecycle.
//
// A Runtime holds the reconciler state for one host tree. Patch diffs a
// vdom.VNode against a host.Node and applies only the mutations needed:
//
//	rt := vtree.NewRuntime()
//	root, err := rt.Patch(container, vdom.H("div", nil, "hello"), nil)
//
// # Components
//
// Components embed Base and implement Render. Optional hook interfaces
// (WillMounter, DidMounter, ShouldUpdater, DidCatcher and so on) extend the
// lifecycle. A Class wraps the constructor and is what vdom.C takes:
//
//	type Counter struct{ vtree.Base }
//
//	func (c *Counter) Render(props vdom.Props, state vtree.State, _ any) *vdom.VNode {
//	    n, _ := state["n"].(int)
//	    return vdom.Button(vdom.OnClick(func() { c.SetState(vtree.State{"n": n + 1}) }), n)
//	}
//
//	var CounterClass = vtree.Define[Counter]("Counter")
//
// Plain functions become components through FuncClass.
//
// # Scheduling
//
// Without a Scheduler, SetState renders synchronously. WithScheduler
// queues dirty components instead, and a Loop flushes the queue once per
// tick. Calls to SetState within one tick coalesce into one render.
//
// # Errors
//
// Panics inside Render are recovered into *RenderError and passed to the
// component's DidCatch hook, which rethrows by default. Inconsistent host
// state is reported as *PatchError.
package vtree
