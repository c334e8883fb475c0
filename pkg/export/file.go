package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileSink writes objects below a local directory.
type FileSink struct {
	dir string
}

// NewFileSink creates a FileSink, creating dir if needed.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileSink{dir: dir}, nil
}

// Dir returns the sink root.
func (s *FileSink) Dir() string { return s.dir }

// Write stores r at dir/name. The file is written to a temporary name first
// and renamed, so readers never observe a partial document.
func (s *FileSink) Write(ctx context.Context, name string, r io.Reader, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}
	dest := filepath.Join(s.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", err
	}

	f, err := os.CreateTemp(filepath.Dir(dest), ".export-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("export: write %s: %w", clean, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	if err := os.Rename(f.Name(), dest); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return dest, nil
}
