// Package memdom is an in-memory host tree built on golang.org/x/net/html.
//
// It backs server-side rendering, the preview server and tests. Markup
// serializes through html.Render, selectors resolve through cascadia, and
// live properties and listeners are held beside the parsed nodes.
package memdom
