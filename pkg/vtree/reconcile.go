package vtree

import (
	"errors"
	"strings"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

var (
	errNoParent    = errors.New("host node has no parent")
	errNoHost      = errors.New("nil host node")
	errUnsupported = errors.New("unsupported node")
)

// placeholderTag is created for child positions the host does not have yet.
const placeholderTag = "div"

// patch applies v to h. owner is the component whose render produced v, or
// nil when v is a child position of an element.
func (rt *Runtime) patch(h host.Node, v *vdom.VNode, ctx any, owner Component) (host.Node, error) {
	if v == nil {
		return h, nil
	}
	if h == nil {
		return nil, newPatchError("E111", "host", v.TagName(), errNoHost)
	}

	switch v.Kind {
	case vdom.KindText:
		return rt.patchText(h, v, owner)
	case vdom.KindElement:
		return rt.patchElement(h, v, ctx, owner)
	case vdom.KindComponent:
		return rt.patchComponent(h, v, ctx, owner)
	case vdom.KindForeign:
		if n, ok := v.Foreign.(host.Node); ok {
			return rt.patchElement(h, host.Clone(n, rt.builder), ctx, owner)
		}
	}
	return h, newPatchError("E112", "unsupported", v.TagName(), errUnsupported)
}

func (rt *Runtime) patchText(h host.Node, v *vdom.VNode, owner Component) (host.Node, error) {
	if err := rt.claim(h, owner); err != nil {
		return h, err
	}
	if h.Type() == host.TextNode {
		if h.Text() != v.Text {
			h.SetText(v.Text)
		}
		return h, nil
	}

	parent := h.Parent()
	if parent == nil {
		return h, newPatchError("E110", "replace", "#text", errNoParent)
	}
	text := h.Document().CreateTextNode(v.Text)
	rt.discard(h, owner)
	parent.ReplaceChild(text, h)
	return text, nil
}

func (rt *Runtime) patchElement(h host.Node, v *vdom.VNode, ctx any, owner Component) (host.Node, error) {
	if err := rt.claim(h, owner); err != nil {
		return h, err
	}

	if rt.shortCircuit {
		if stamp, ok := rt.hashes[h]; ok && stamp == v.Hash {
			return h, nil
		}
	}

	if h.Type() == host.TextNode || !strings.EqualFold(h.Tag(), v.Tag) {
		parent := h.Parent()
		if parent == nil {
			return h, newPatchError("E110", "replace", v.Tag, errNoParent)
		}
		el := h.Document().CreateElement(v.Tag)
		rt.discard(h, owner)
		parent.ReplaceChild(el, h)
		h = el
	}

	inner := rt.applyAttributes(h, v.Props)
	if !inner {
		if err := rt.patchChildren(h, v, ctx); err != nil {
			delete(rt.hashes, h)
			return h, err
		}
	}
	rt.hashes[h] = v.Hash
	return h, nil
}

func (rt *Runtime) patchChildren(h host.Node, v *vdom.VNode, ctx any) error {
	skipped := 0
	for i, child := range v.Children {
		if child == nil {
			skipped++
			continue
		}
		target := host.ChildAt(h, i-skipped)
		if target == nil {
			target = h.Document().CreateElement(placeholderTag)
			h.AppendChild(target)
		}
		if _, err := rt.patch(target, child, ctx, nil); err != nil {
			return err
		}
	}

	live := len(v.Children) - skipped
	for kids := h.Children(); len(kids) > live; kids = h.Children() {
		last := kids[len(kids)-1]
		rt.discard(last, nil)
		h.RemoveChild(last)
	}
	return nil
}

func (rt *Runtime) patchComponent(h host.Node, v *vdom.VNode, ctx any, owner Component) (host.Node, error) {
	class, ok := v.Comp.(*Class)
	if !ok {
		return h, newPatchError("E112", "unsupported", v.TagName(), errUnsupported)
	}

	var existing Component
	if owner != nil {
		existing = owner.base().child
	} else {
		existing = rt.owners[h]
	}

	props := v.Props.Clone()
	props[vdom.ChildrenKey] = v.Children

	if existing != nil {
		eb := existing.base()
		if eb.class == class && eb.mounted {
			err := eb.UpdateProps(props)
			return eb.host, err
		}
		if eb.mounted {
			if err := eb.Unmount(); err != nil && !errors.Is(err, ErrUnmounted) {
				return h, err
			}
		} else {
			eb.release()
		}
		if owner != nil {
			owner.base().child = nil
		}
	}

	inst := class.New(rt, props, ctx)
	if owner != nil {
		owner.base().child = inst
		inst.base().parent = owner
	}
	ib := inst.base()
	if err := ib.Mount(h); err != nil {
		if ib.host != nil {
			return ib.host, err
		}
		return h, err
	}
	return ib.host, nil
}

// claim prepares h to be described by a primitive or element rendered by
// owner. A component owner rendered last time no longer describes the node,
// and neither does a component bound to h from outside the render chain.
func (rt *Runtime) claim(h host.Node, owner Component) error {
	rt.releaseChild(owner)
	existing := rt.owners[h]
	if existing == nil || inChain(existing, owner) {
		return nil
	}
	delete(rt.owners, h)
	if !existing.base().mounted {
		existing.base().release()
		return nil
	}
	if err := existing.base().Unmount(); err != nil && !errors.Is(err, ErrUnmounted) {
		return err
	}
	return nil
}

// releaseChild unmounts the component owner rendered last time.
func (rt *Runtime) releaseChild(owner Component) {
	if owner == nil {
		return
	}
	ob := owner.base()
	child := ob.child
	if child == nil {
		return
	}
	ob.child = nil
	rt.unmount(child)
}

// discard unmounts every component bound within the subtree rooted at n,
// parents first, and forgets the subtree's hashes. Components of the
// current render chain keep their binding: they move to the replacement.
func (rt *Runtime) discard(n host.Node, owner Component) {
	host.Walk(n, func(node host.Node) {
		delete(rt.hashes, node)
		c := rt.owners[node]
		if c == nil {
			return
		}
		if node == n && inChain(c, owner) {
			return
		}
		delete(rt.owners, node)
		rt.unmount(c)
	})
}

// unmount unmounts a mounted c and releases one that never mounted.
func (rt *Runtime) unmount(c Component) {
	b := c.base()
	if !b.mounted {
		b.release()
		return
	}
	if err := b.Unmount(); err != nil {
		rt.logger.Error("component unmount failed", "component", b.Name(), "error", err)
	}
}

// inChain reports whether c is owner or one of the components whose
// render returned owner.
func inChain(c, owner Component) bool {
	for o := owner; o != nil; o = o.base().parent {
		if o == c {
			return true
		}
	}
	return false
}
