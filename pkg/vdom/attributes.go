package vdom

import (
	"reflect"
	"strings"
	"unicode"
)

// Reserved prop keys with reconciler-level meaning.
const (
	InnerHTMLKey = "dangerouslySetInnerHTML"
	RefKey       = "ref"
	StyleKey     = "style"
)

// Attr represents a single attribute passed to an element helper.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// RawHTML is the value of the raw-content-injection prop.
type RawHTML struct {
	HTML string `json:"__html"`
}

// StyleMap is an object-valued style prop, shallow-merged onto the live style.
type StyleMap map[string]string

// CSSName converts a camelCase style property such as backgroundColor into
// its declaration form. Custom properties (--name) are unchanged.
func CSSName(property string) string {
	if strings.HasPrefix(property, "--") {
		return property
	}
	var b strings.Builder
	for _, r := range property {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// A creates an arbitrary attribute.
func A(key string, value any) Attr { return attr(key, value) }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// ClassName sets the class attribute under its framework alias.
func ClassName(classes ...string) Attr { return attr("className", strings.Join(classes, " ")) }

// ClassIf conditionally adds a class.
func ClassIf(condition bool, class string) Attr {
	if condition {
		return Class(class)
	}
	return Attr{}
}

// Style sets the style prop from a map of CSS properties.
func Style(style StyleMap) Attr { return attr(StyleKey, style) }

// StyleAttr sets the style attribute as a literal string.
func StyleAttr(style string) Attr { return attr(StyleKey, style) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// TitleAttr sets the title attribute (named to avoid conflict with Title element).
func TitleAttr(title string) Attr { return attr("title", title) }

// Link attributes

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Target sets the target attribute.
func Target(target string) Attr { return attr("target", target) }

// Form attributes

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the value of a form control. Written as a live property.
func Value(value string) Attr { return attr("value", value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// For sets the for attribute under its framework alias.
func For(id string) Attr { return attr("htmlFor", id) }

// Disabled sets the disabled live property.
func Disabled(disabled bool) Attr { return attr("disabled", disabled) }

// Checked sets the checked live property.
func Checked(checked bool) Attr { return attr("checked", checked) }

// Selected sets the selected live property.
func Selected(selected bool) Attr { return attr("selected", selected) }

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Alt sets the alt attribute.
func Alt(text string) Attr { return attr("alt", text) }

// Special props

// InnerHTML injects raw content. The element's children and attribute removal
// are owned by the raw content while this prop is present.
func InnerHTML(html string) Attr { return attr(InnerHTMLKey, RawHTML{HTML: html}) }

// Ref registers a callback that receives the live host node on every patch.
func Ref[N any](fn func(N)) Attr { return attr(RefKey, fn) }

// isFunc reports whether v holds a non-nil function.
func isFunc(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

// IsFunc reports whether v holds a non-nil function value.
func IsFunc(v any) bool { return isFunc(v) }
