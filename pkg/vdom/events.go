package vdom

// event creates an Attr binding handler under the "on"-prefixed key.
// The reconciler strips the prefix and lowercases the rest for the listener name.
func event(name string, handler any) Attr {
	return Attr{Key: "on" + name, Value: handler}
}

// On binds a handler to an arbitrary event name.
func On(name string, handler any) Attr { return event(name, handler) }

// Mouse events

// OnClick handles click events.
func OnClick(handler any) Attr { return event("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler any) Attr { return event("dblclick", handler) }

// OnMouseEnter handles mouseenter events.
func OnMouseEnter(handler any) Attr { return event("mouseenter", handler) }

// OnMouseLeave handles mouseleave events.
func OnMouseLeave(handler any) Attr { return event("mouseleave", handler) }

// Keyboard events

// OnKeyDown handles keydown events.
func OnKeyDown(handler any) Attr { return event("keydown", handler) }

// OnKeyUp handles keyup events.
func OnKeyUp(handler any) Attr { return event("keyup", handler) }

// Form events

// OnInput handles input events.
func OnInput(handler any) Attr { return event("input", handler) }

// OnChange handles change events.
func OnChange(handler any) Attr { return event("change", handler) }

// OnSubmit handles submit events.
func OnSubmit(handler any) Attr { return event("submit", handler) }

// OnFocus handles focus events.
func OnFocus(handler any) Attr { return event("focus", handler) }

// OnBlur handles blur events.
func OnBlur(handler any) Attr { return event("blur", handler) }
