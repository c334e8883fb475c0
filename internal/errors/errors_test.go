package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "render error",
			code:    "E100",
			wantMsg: "Component render panicked",
			wantCat: CategoryRender,
		},
		{
			name:    "patch error",
			code:    "E110",
			wantMsg: "Host node has no parent",
			wantCat: CategoryPatch,
		},
		{
			name:    "config error",
			code:    "E120",
			wantMsg: "Invalid configuration file",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "demo %q not found", "clock")
	if err.Message != `demo "clock" not found` {
		t.Errorf("Message = %q, want %q", err.Message, `demo "clock" not found`)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestVtreeError_Error(t *testing.T) {
	err := New("E130")
	if got, want := err.Error(), "E130: Component is unmounted"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := New("E161").Wrap(stderrors.New("disk full"))
	if got, want := wrapped.Error(), "E161: Export write failed: disk full"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := &VtreeError{Message: "test error"}
	if plain.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "test error")
	}
}

func TestVtreeError_WithLocation(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "vtree.yaml")
	content := "frameInterval: 16ms\nhash: md5\nshortCircuit: true\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("E121").WithLocation(tmpFile, 2, 7)
	if err.Location == nil {
		t.Fatal("Location is nil")
	}
	if err.Location.File != tmpFile || err.Location.Line != 2 || err.Location.Column != 7 {
		t.Errorf("Location = %+v", err.Location)
	}
	if len(err.Context) != 3 {
		t.Errorf("Context = %q, want all 3 lines", err.Context)
	}

	DisableColors()
	defer EnableColors()
	first := New("E121").WithLocation(tmpFile, 1, 0).Format()
	if !strings.Contains(first, "→    1 │ frameInterval: 16ms") {
		t.Errorf("Format() does not mark line 1:\n%s", first)
	}
}

func TestVtreeError_Is(t *testing.T) {
	err := fmt.Errorf("render: %w", New("E150").WithDetail("no demo named x"))
	if !stderrors.Is(err, New("E150")) {
		t.Error("errors.Is should match on code")
	}
	if stderrors.Is(err, New("E151")) {
		t.Error("errors.Is matched a different code")
	}
	if stderrors.Is(New(""), New("")) {
		t.Error("codeless errors should not match each other")
	}
}

func TestWithLocationFromError(t *testing.T) {
	err := New("E120").WithLocationFromError("vtree.yaml", stderrors.New("yaml: line 3: did not find expected key"))
	if err.Location == nil || err.Location.Line != 3 {
		t.Errorf("Location = %+v, want line 3", err.Location)
	}

	none := New("E120").WithLocationFromError("vtree.json", stderrors.New("unexpected end of JSON input"))
	if none.Location != nil {
		t.Errorf("Location = %+v, want nil", none.Location)
	}
}

func TestVtreeError_Wrap(t *testing.T) {
	inner := New("E110")
	outer := New("E100").Wrap(inner)

	if outer.Wrapped != inner {
		t.Error("Wrapped error mismatch")
	}
	if !stderrors.Is(outer, inner) {
		t.Error("errors.Is should see the wrapped error")
	}
}

type codedError struct{ code string }

func (e *codedError) Error() string { return "coded" }
func (e *codedError) Code() string  { return e.code }

func TestFromError(t *testing.T) {
	if FromError(nil, "E100") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	ve := New("E100")
	if FromError(ve, "E110") != ve {
		t.Error("FromError should return VtreeError as-is")
	}

	std := stderrors.New("plain")
	if got := FromError(std, "E161"); got.Code != "E161" || got.Wrapped != std {
		t.Errorf("FromError(std) = %+v", got)
	}

	coded := &codedError{code: "E130"}
	if got := FromError(coded, "E100"); got.Code != "E130" {
		t.Errorf("Code = %q, want the error's own code E130", got.Code)
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		name string
		loc  *Location
		want string
	}{
		{"nil location", nil, ""},
		{"with column", &Location{File: "vtree.json", Line: 10, Column: 5}, "vtree.json:10:5"},
		{"without column", &Location{File: "vtree.json", Line: 10}, "vtree.json:10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loc.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E121").
		WithLocation("vtree.yaml", 2, 0).
		WithSuggestion(`Use "djb2" or "xxhash"`).
		Wrap(stderrors.New(`hash "md5"`))

	formatted := err.Format()
	for _, want := range []string{"E121", "Invalid configuration value", "vtree.yaml:2", "Hint:", "Cause:", "Learn more:"} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() missing %q:\n%s", want, formatted)
		}
	}
	if strings.Contains(formatted, "\033[") {
		t.Error("Format() should not contain ANSI codes when colors are disabled")
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E121").WithLocation("vtree.json", 10, 5)
	want := "vtree.json:10:5: E121: Invalid configuration value"
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	json := New("E110").Wrap(stderrors.New("detached")).FormatJSON()
	for _, want := range []string{`"code":"E110"`, `"category":"patch"`, `"message":"Host node has no parent"`, `"cause":"detached"`} {
		if !strings.Contains(json, want) {
			t.Errorf("FormatJSON() missing %s: %s", want, json)
		}
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var b strings.Builder
	Fprint(&b, &codedError{code: "E131"}, "E100")
	if !strings.Contains(b.String(), "E131") {
		t.Errorf("Fprint() = %q", b.String())
	}

	b.Reset()
	Fprint(&b, nil, "E100")
	if b.Len() != 0 {
		t.Error("Fprint(nil) should write nothing")
	}
}

func TestRegistry(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("GetAllCodes() should return codes")
	}
	for _, code := range codes {
		tmpl, ok := GetTemplate(code)
		if !ok || tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("template %s incomplete: %+v", code, tmpl)
		}
		if !strings.HasSuffix(tmpl.DocURL, code) {
			t.Errorf("template %s DocURL = %q", code, tmpl.DocURL)
		}
	}

	Register("E999", ErrorTemplate{Category: CategoryCLI, Message: "Custom test error"})
	defer delete(registry, "E999")
	if New("E999").Message != "Custom test error" {
		t.Error("Register() did not add the template")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("short text", 100)
	if len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}

	got = wrapText("this is a longer text that should be wrapped", 20)
	if len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}

	if got := wrapText("", 10); len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}

func TestColorFunctions(t *testing.T) {
	EnableColors()
	if !strings.Contains(red("test"), "\033[31m") {
		t.Error("red should contain ANSI code when colors enabled")
	}

	DisableColors()
	if strings.Contains(red("test"), "\033[") {
		t.Error("red should not contain ANSI code when colors disabled")
	}
	EnableColors()
}
