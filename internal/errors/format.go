package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ANSI escape sequences used by Format.
const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiBlue   = "\033[34m"
	ansiCyan   = "\033[36m"
	ansiGray   = "\033[90m"
)

// colorEnabled defaults to on when stderr is a terminal and NO_COLOR is unset.
var colorEnabled = isTerminal(os.Stderr)

func isTerminal(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// DisableColors disables ANSI color output.
func DisableColors() { colorEnabled = false }

// EnableColors enables ANSI color output.
func EnableColors() { colorEnabled = true }

func paint(text string, codes ...string) string {
	if !colorEnabled || len(codes) == 0 {
		return text
	}
	return strings.Join(codes, "") + text + ansiReset
}

func red(text string) string  { return paint(text, ansiRed) }
func bold(text string) string { return paint(text, ansiBold) }
func cyan(text string) string { return paint(text, ansiCyan) }
func gray(text string) string { return paint(text, ansiGray) }

// Format returns a multi-line message for terminal display.
//
//	ERROR E121: Invalid configuration value
//
//	  vtree.yaml:2
//
//	      1 │ frameInterval: 16ms
//	  →   2 │ hash: md5
//
//	  A configuration value is out of range or not one of the allowed values.
//
//	  Hint: Use "djb2" or "xxhash"
func (e *VtreeError) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(paint("ERROR", ansiBold, ansiRed))
	if e.Code != "" {
		b.WriteString(" " + bold(e.Code))
	}
	b.WriteString(bold(":") + " " + e.Message + "\n\n")

	if e.Location != nil {
		b.WriteString("  " + cyan(e.Location.String()) + "\n\n")
		if len(e.Context) > 0 {
			e.writeSnippet(&b)
			b.WriteString("\n")
		}
	}

	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, 70) {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
	}

	section := func(label, color, text string) {
		if text != "" {
			b.WriteString("  " + paint(label+":", color) + " " + text + "\n\n")
		}
	}
	section("Hint", ansiCyan, e.Suggestion)
	if e.Wrapped != nil {
		section("Cause", ansiYellow, e.Wrapped.Error())
	}

	if e.DocURL != "" {
		b.WriteString("  " + gray("Learn more:") + " " + paint(e.DocURL, ansiBlue) + "\n")
	}
	return b.String()
}

// writeSnippet writes the context lines with the error line marked.
func (e *VtreeError) writeSnippet(b *strings.Builder) {
	first := e.contextStart
	if first == 0 {
		first = e.Location.Line - len(e.Context)/2
	}
	for i, line := range e.Context {
		n := first + i
		marker := "    "
		if n == e.Location.Line {
			marker = "  " + red("→") + " "
		}
		fmt.Fprintf(b, "%s%4d %s %s\n", marker, n, gray("│"), line)

		if n == e.Location.Line && e.Location.Column > 0 {
			fmt.Fprintf(b, "         %s %s%s\n", gray("│"), strings.Repeat(" ", e.Location.Column-1), red("^"))
		}
	}
}

// FormatCompact returns a single-line "file:line: code: message" form.
func (e *VtreeError) FormatCompact() string {
	parts := make([]string, 0, 4)
	if e.Location != nil {
		parts = append(parts, e.Location.String())
	}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	parts = append(parts, e.Message)
	if e.Wrapped != nil {
		parts = append(parts, e.Wrapped.Error())
	}
	return strings.Join(parts, ": ")
}

type jsonLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column,omitempty"`
}

type jsonError struct {
	Code       string        `json:"code,omitempty"`
	Category   Category      `json:"category"`
	Message    string        `json:"message"`
	Detail     string        `json:"detail,omitempty"`
	Location   *jsonLocation `json:"location,omitempty"`
	Suggestion string        `json:"suggestion,omitempty"`
	DocURL     string        `json:"docUrl,omitempty"`
	Cause      string        `json:"cause,omitempty"`
}

// FormatJSON returns the error as a JSON object, for log lines and the
// preview server's error responses.
func (e *VtreeError) FormatJSON() string {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
		DocURL:     e.DocURL,
	}
	if e.Location != nil {
		out.Location = &jsonLocation{File: e.Location.File, Line: e.Location.Line, Column: e.Location.Column}
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Error())
	}
	return string(data)
}

// wrapText splits text into lines of at most width bytes, breaking on spaces.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}

// Fprint writes err to w, formatted through the registry. Errors without
// a code of their own use fallback.
func Fprint(w io.Writer, err error, fallback string) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FromError(err, fallback).Format())
}

// PrintError prints a formatted error to stderr. Errors without a code are
// printed on one line.
func PrintError(err error) {
	if ve, ok := err.(*VtreeError); ok {
		fmt.Fprint(os.Stderr, ve.Format())
		return
	}
	fmt.Fprintf(os.Stderr, "\n%s %s\n\n", paint("ERROR:", ansiBold, ansiRed), err)
}
