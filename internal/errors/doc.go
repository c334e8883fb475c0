// Package errors provides coded, actionable error messages for vtree.
//
// Every failure the library and CLI can report maps to a registry code:
//   - render (E100-E109): component render panics, failed async loaders
//   - patch (E110-E119): inconsistent host state during reconciliation
//   - config (E120-E129): malformed files, invalid values, bad env overrides
//   - lifecycle (E130-E139): calls on unmounted or already mounted instances
//   - cli (E150-E159) and export (E160-E169)
//
// Library errors such as *vtree.RenderError implement Coder, so FromError
// resolves them to their own template:
//
//	if _, err := rt.Mount(app, nil, nil, root); err != nil {
//	    errors.Fprint(os.Stderr, err, "E100")
//	}
//
// Output is colored when stderr is a terminal and NO_COLOR is unset.
package errors
