package observe

import "github.com/vango-dev/vtree/pkg/vtree"

type multi []vtree.Observer

// Multi fans every notification out to each non-nil observer in order.
func Multi(observers ...vtree.Observer) vtree.Observer {
	out := make(multi, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

func (m multi) Rendered(info vtree.RenderInfo) {
	for _, o := range m {
		o.Rendered(info)
	}
}

func (m multi) Mounted(component string) {
	for _, o := range m {
		o.Mounted(component)
	}
}

func (m multi) Unmounted(component string) {
	for _, o := range m {
		o.Unmounted(component)
	}
}

func (m multi) Flushed(info vtree.FlushInfo) {
	for _, o := range m {
		o.Flushed(info)
	}
}
