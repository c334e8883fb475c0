package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"
)

// ContentTypeHTML is the content type of rendered pages.
const ContentTypeHTML = "text/html; charset=utf-8"

// ErrInvalidTarget is returned by Open for targets it cannot parse.
var ErrInvalidTarget = errors.New("export: invalid target")

// ErrInvalidName is returned for object names that escape the sink root.
var ErrInvalidName = errors.New("export: invalid object name")

// Sink stores named objects.
type Sink interface {
	// Write stores the contents of r under name and returns its location.
	Write(ctx context.Context, name string, r io.Reader, contentType string) (string, error)
}

// Open returns the sink for target: "s3://bucket/prefix" for S3, otherwise a
// local directory, optionally written as "file:///dir".
func Open(ctx context.Context, target string) (Sink, error) {
	if target == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidTarget)
	}
	if !strings.Contains(target, "://") {
		return NewFileSink(target)
	}

	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}
	switch u.Scheme {
	case "file":
		return NewFileSink(u.Path)
	case "s3":
		if u.Host == "" {
			return nil, fmt.Errorf("%w: missing bucket in %q", ErrInvalidTarget, target)
		}
		client, err := NewS3ClientFromEnv(ctx)
		if err != nil {
			return nil, err
		}
		return NewS3Sink(client, u.Host, strings.TrimPrefix(u.Path, "/")), nil
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidTarget, u.Scheme)
	}
}

// cleanName validates an object name relative to a sink root.
func cleanName(name string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(name, "\\", "/"))[1:]
	if clean == "" || clean != strings.TrimPrefix(name, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return clean, nil
}

// env reads the first set variable of keys.
func env(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
