package memdom

import (
	"strings"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// style edits the element's style attribute in place, so the markup is
// always the source of truth.
type style struct {
	owner *Node
}

type declaration struct {
	property string
	value    string
}

func (s style) Get(property string) string {
	property = vdom.CSSName(property)
	for _, d := range s.parse() {
		if d.property == property {
			return d.value
		}
	}
	return ""
}

func (s style) Set(property, value string) {
	property = vdom.CSSName(property)
	decls := s.parse()
	for i, d := range decls {
		if d.property == property {
			if value == "" {
				decls = append(decls[:i], decls[i+1:]...)
			} else {
				decls[i].value = value
			}
			s.write(decls)
			return
		}
	}
	if value == "" {
		return
	}
	s.write(append(decls, declaration{property, value}))
}

func (s style) Reset() {
	s.owner.RemoveAttribute("style")
}

func (s style) parse() []declaration {
	raw, _ := s.owner.Attribute("style")
	var out []declaration
	for _, part := range strings.Split(raw, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, declaration{strings.ToLower(name), strings.TrimSpace(value)})
	}
	return out
}

func (s style) write(decls []declaration) {
	if len(decls) == 0 {
		s.owner.RemoveAttribute("style")
		return
	}
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.property + ": " + d.value + ";"
	}
	s.owner.SetAttribute("style", strings.Join(parts, " "))
}
