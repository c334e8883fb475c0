// Package vdom builds immutable virtual tree descriptions.
//
// A VNode describes a desired element, text or component node. Nodes are
// built once, stamped with a structural hash and never mutated afterwards.
// The reconciler in package vtree compares them against a live host tree.
//
// # Building
//
// H and C are the two constructors. H takes a string tag, C takes a
// ComponentRef, which keeps element and component dispatch explicit:
//
//	vdom.H("div", vdom.Props{"className": "card"},
//	    vdom.H("h1", nil, "Title"),
//	    nil, // placeholder, occupies no host slot
//	    vdom.C(Counter, vdom.Props{"start": 1}),
//	)
//
// Element helpers accept the variadic style, where Attr arguments become
// props and everything else becomes children:
//
//	Div(Class("card"), H1("Title"), P("Content"), OnClick(handler))
//
// # Structural hash
//
// Each node carries a fingerprint of its tag, a canonical serialization of
// its props and the hashes of its children. Function-valued props do not
// take part. The hash is a fast skip heuristic, not an equality proof: the
// default DJB2 hasher is 32 bits wide. Use NewBuilder(WithHasher(XXHash))
// for a wider fingerprint.
package vdom
