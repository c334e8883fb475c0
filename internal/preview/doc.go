// Package preview serves a live demo tree over HTTP.
//
// A Session owns a memdom document and the render loop that patches it.
// The Server streams the current snapshot as a page, accepts events by
// element selector and pushes every flushed render to websocket clients.
//
//	GET  /            full page with the live client script
//	GET  /snapshot    current HTML of the mounted tree
//	GET  /render      string render of a fresh tree
//	GET  /shallow     shallow render, components as named tags
//	POST /events/{type}?target=#inc&value=...
//	GET  /ws          render pushes
//	GET  /healthz
//	GET  /metrics     when a metrics handler is configured
package preview
