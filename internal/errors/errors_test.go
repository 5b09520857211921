package errors

import (
	"strings"
	"testing"
)

func TestParserErrorMessage(t *testing.T) {
	e := &ParserError{Message: "unexpected token", Line: 3}
	if got, want := e.Error(), "parse error at line 3: unexpected token"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNewRuntimeErrorFormatsArgs(t *testing.T) {
	e := NewRuntimeError(5, "undefined variable '%s'", "x")
	if e.Line != 5 {
		t.Errorf("got line %d, want 5", e.Line)
	}
	if got, want := e.Message, "undefined variable 'x'"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatIncludesSourceLine(t *testing.T) {
	src := "auto x = 1;\nauto y = x + ;\n"
	err := &ParserError{Message: "unexpected token ;", Line: 2}
	out := Format("script.nyx", src, err)
	if !strings.Contains(out, "script.nyx:2:") {
		t.Errorf("missing file:line header: %q", out)
	}
	if !strings.Contains(out, "auto y = x + ;") {
		t.Errorf("missing source line: %q", out)
	}
}

func TestFormatErrorsNumbersEachEntry(t *testing.T) {
	src := "a;\nb;\n"
	errs := []error{
		&ParserError{Message: "first", Line: 1},
		&ParserError{Message: "second", Line: 2},
	}
	out := FormatErrors("s.nyx", src, errs)
	if !strings.Contains(out, "[1/2]") || !strings.Contains(out, "[2/2]") {
		t.Errorf("missing numbering: %q", out)
	}
}
