package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Category represents the type of error.
type Category string

const (
	CategoryRender    Category = "render"
	CategoryPatch     Category = "patch"
	CategoryLifecycle Category = "lifecycle"
	CategoryConfig    Category = "config"
	CategoryCLI       Category = "cli"
	CategoryExport    Category = "export"
)

// Location represents a source location, usually inside a config file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// VtreeError is a structured error with a code, suggestion and documentation link.
type VtreeError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error family (render, patch, config, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the file position the error refers to, if any.
	Location *Location

	// Context contains surrounding source lines.
	Context []string

	contextStart int

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *VtreeError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *VtreeError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a VtreeError with the same code, so
//
//	errors.Is(err, errors.New("E150"))
//
// matches any unknown-demo error regardless of detail.
func (e *VtreeError) Is(target error) bool {
	t, ok := target.(*VtreeError)
	return ok && t.Code != "" && t.Code == e.Code
}

// WithLocation adds a file location and reads the surrounding lines.
func (e *VtreeError) WithLocation(file string, line, column int) *VtreeError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context, e.contextStart = readContextLines(file, line, 5)
	return e
}

var lineRe = regexp.MustCompile(`line (\d+)`)

// WithLocationFromError extracts a line number from parser errors such as
// "yaml: line 3: mapping values are not allowed here".
func (e *VtreeError) WithLocationFromError(file string, err error) *VtreeError {
	if err == nil {
		return e
	}
	m := lineRe.FindStringSubmatch(err.Error())
	if m == nil {
		return e
	}
	line, _ := strconv.Atoi(m[1])
	if line > 0 {
		e.WithLocation(file, line, 0)
	}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *VtreeError) WithSuggestion(s string) *VtreeError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *VtreeError) WithDetail(d string) *VtreeError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *VtreeError) Wrap(err error) *VtreeError {
	e.Wrapped = err
	return e
}

// readContextLines returns up to size lines of filename centered on line,
// and the number of the first one.
func readContextLines(filename string, line, size int) ([]string, int) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, 0
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if line < 1 || line > len(lines) {
		return nil, 0
	}
	lo := max(line-1-size/2, 0)
	hi := min(line+size/2, len(lines))
	return lines[lo:hi], lo + 1
}

// New creates a VtreeError from a registered error code.
func New(code string) *VtreeError {
	template, ok := registry[code]
	if !ok {
		return &VtreeError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &VtreeError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new VtreeError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *VtreeError {
	return &VtreeError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Coder is implemented by errors that carry a registry code.
type Coder interface {
	Code() string
}

// FromError wraps a standard error in a VtreeError. Errors anywhere in the
// chain that implement Coder pick their own code over fallback.
func FromError(err error, fallback string) *VtreeError {
	if err == nil {
		return nil
	}
	var ve *VtreeError
	if stderrors.As(err, &ve) {
		return ve
	}
	code := fallback
	var c Coder
	if stderrors.As(err, &c) {
		code = c.Code()
	}
	return New(code).Wrap(err)
}
