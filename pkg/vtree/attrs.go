package vtree

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// attributeAliases maps framework-only prop names to host attribute names.
var attributeAliases = map[string]string{
	"className": "class",
	"htmlFor":   "for",
}

// liveProperties are written as properties rather than attributes.
var liveProperties = map[string]bool{
	"value":    true,
	"checked":  true,
	"selected": true,
	"disabled": true,
}

// AttributeName returns the host attribute name for a prop key.
func AttributeName(key string) string {
	if alias, ok := attributeAliases[key]; ok {
		return alias
	}
	return key
}

// applyAttributes reconciles the host's attributes, properties, listeners
// and style with props. It reports whether raw inner HTML took ownership of
// the node's content.
func (rt *Runtime) applyAttributes(h host.Node, props vdom.Props) (inner bool) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	keep := make(map[string]bool, len(keys))
	for _, key := range keys {
		value := props[key]
		switch {
		case vdom.IsEventKey(key, value):
			name := vdom.EventName(key)
			h.RemoveEventListener(name)
			h.AddEventListener(name, value)
			keep[key] = true

		case key == vdom.InnerHTMLKey:
			inner = true
			for _, child := range h.Children() {
				rt.discard(child, nil)
			}
			h.SetInnerHTML(RawContent(value))

		case key == vdom.RefKey && vdom.IsFunc(value):
			callRef(value, h)

		case key == vdom.StyleKey && isStyleObject(value):
			st := h.Style()
			st.Reset()
			styles, _ := StyleEntries(value)
			names := make([]string, 0, len(styles))
			for name := range styles {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				st.Set(name, styles[name])
			}
			keep[vdom.StyleKey] = true

		case liveProperties[key]:
			if value == nil {
				value = ""
			}
			h.SetProperty(key, value)
			keep[key] = true

		default:
			name := AttributeName(key)
			keep[name] = true
			setAttribute(h, name, value)
		}
	}

	if inner {
		return true
	}
	for _, a := range h.Attributes() {
		if !keep[a.Name] {
			h.RemoveAttribute(a.Name)
		}
	}
	return false
}

// setAttribute writes value only when it differs from the host's current
// value. true renders as the empty attribute; false and nil remove it.
func setAttribute(h host.Node, name string, value any) {
	var s string
	switch v := value.(type) {
	case nil:
		h.RemoveAttribute(name)
		return
	case bool:
		if !v {
			h.RemoveAttribute(name)
			return
		}
		s = ""
	default:
		s = AttributeValue(value)
	}
	if cur, ok := h.Attribute(name); ok && cur == s {
		return
	}
	h.SetAttribute(name, s)
}

// AttributeValue formats a prop value as attribute text.
func AttributeValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// RawContent returns the markup carried by a raw-content prop value: a
// vdom.RawHTML, a string or an {"__html": ...} map.
func RawContent(value any) string {
	switch v := value.(type) {
	case vdom.RawHTML:
		return v.HTML
	case *vdom.RawHTML:
		if v != nil {
			return v.HTML
		}
	case string:
		return v
	case map[string]any:
		s, _ := v["__html"].(string)
		return s
	case map[string]string:
		return v["__html"]
	}
	return ""
}

func isStyleObject(value any) bool {
	switch value.(type) {
	case vdom.StyleMap, map[string]string, map[string]any:
		return true
	}
	return false
}

// StyleEntries returns the declarations of an object-valued style prop.
// It reports false for values that are not style objects.
func StyleEntries(value any) (map[string]string, bool) {
	switch v := value.(type) {
	case vdom.StyleMap:
		return v, true
	case map[string]string:
		return v, true
	case map[string]any:
		out := make(map[string]string, len(v))
		for k, val := range v {
			if val != nil {
				out[k] = AttributeValue(val)
			}
		}
		return out, true
	}
	return nil, false
}

// callRef invokes a ref callback with the host node when its parameter
// type accepts it.
func callRef(fn any, h host.Node) {
	switch f := fn.(type) {
	case func(host.Node):
		f(h)
		return
	case func(any):
		f(h)
		return
	}
	rv := reflect.ValueOf(fn)
	t := rv.Type()
	if t.NumIn() != 1 {
		return
	}
	arg := reflect.ValueOf(h)
	if !arg.Type().AssignableTo(t.In(0)) {
		return
	}
	rv.Call([]reflect.Value{arg})
}
