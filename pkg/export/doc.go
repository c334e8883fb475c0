// Package export writes rendered documents to a destination.
//
// A Sink stores one named object per call. Open picks a sink from a target
// string:
//
//	sink, err := export.Open(ctx, "s3://site-bucket/previews/")
//	loc, err := sink.Write(ctx, "index.html", strings.NewReader(page), export.ContentTypeHTML)
//
// Targets without a scheme are local directories.
package export
