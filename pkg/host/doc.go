// Package host defines the capability contract vtree needs from a live,
// mutable rendering surface.
//
// The reconciler never depends on a concrete tree. Anything implementing
// Document and Node can be patched: the in-memory tree in package memdom,
// a browser DOM bridge, a terminal cell buffer. Clone goes the other way
// and turns existing host nodes into VDOM descriptions.
package host
