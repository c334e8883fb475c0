// Package demo contains the component trees shipped with the vtree CLI.
//
// Each Demo is mounted into a memdom document by "vtree render" and "vtree
// serve". Interactive demos bind click handlers that the preview server
// dispatches by element id.
package demo
