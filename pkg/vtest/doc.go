// Package vtest provides testing helpers for vtree components.
//
// The vtest package reduces boilerplate when testing components by mounting
// trees into an in-memory document and providing render assertions.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.Mount(t, vdom.C(Counter, vdom.Props{"start": 0}))
//	    h.Click("#inc")
//	    h.ExpectContains(">1</output>")
//	}
//
// # Mount Options
//
// Runtime options are passed through, and a context value reaches the
// root component:
//
//	h := vtest.Mount(t, root,
//	    vtest.WithContext(theme),
//	    vtest.WithOptions(vtree.WithShortCircuit(false)),
//	)
//
// # String Assertions
//
// For trees that need no host, assert on the string renderer directly:
//
//	vtest.ExpectContains(t, vdom.C(Card, nil), "<h2>")
//	vtest.ExpectAttribute(t, vdom.C(Card, nil), "class", "card")
package vtest
