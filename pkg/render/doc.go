// Package render serializes VNode trees to HTML strings or streams.
//
// Rendering is pure: components are constructed and mounted against a
// string-writing applier instead of a host tree, so no host node is ever
// created or mutated.
//
//   - Text and attribute escaping
//   - Void elements without closing tags
//   - className/htmlFor aliases; true booleans as bare attributes
//   - Event handlers and refs skipped
//
// # Basic Usage
//
//	html, err := render.Render(node, nil)
//
// A component's output reflects its last render during mount, so initial
// props loaded inline are included.
//
// # Shallow Rendering
//
// RenderShallow never constructs components. A component appears as a tag
// named after its class:
//
//	render.RenderShallow(vdom.H("div", nil, vdom.C(card, vdom.Props{"id": 7})))
//	// <div><Card id="7"></Card></div>
//
// # Full Page Rendering
//
// RenderPage wraps a body in a complete HTML document. StreamingRenderer
// does the same, flushing after the head for faster first paint:
//
//	sr := render.NewStreamingRenderer(w, render.RendererConfig{})
//	err := sr.RenderPage(render.PageData{Title: "Preview", BodyHTML: snapshot})
//
// # Security
//
// All text content is escaped. Raw content props are written verbatim and
// should only carry trusted markup.
package render
