// Package errors formats parser and runtime diagnostics in a uniform,
// source-line-aware style.
package errors

import (
	"fmt"
	"strings"
)

// ParserError is a single recoverable parse failure, tagged with the line
// it occurred on.
type ParserError struct {
	Message string
	Line    int
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Message)
}

// RuntimeError is a single evaluator failure, tagged with the line of the
// offending statement or expression.
type RuntimeError struct {
	Message string
	Line    int
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at line %d: %s", e.Line, e.Message)
}

// NewRuntimeError builds a RuntimeError from a format string.
func NewRuntimeError(line int, format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Line: line}
}

// Format renders a single error against its source text, printing the
// offending line with a caret-free line-number header (Nyx's Token carries
// no column, so no caret indicator is drawn, unlike the teacher's
// column-aware CompilerError.Format).
func Format(file string, source string, err error) string {
	var line int
	var msg string
	switch e := err.(type) {
	case *ParserError:
		line, msg = e.Line, e.Message
	case *RuntimeError:
		line, msg = e.Line, e.Message
	default:
		return err.Error()
	}

	lines := strings.Split(source, "\n")
	var srcLine string
	if line >= 1 && line <= len(lines) {
		srcLine = lines[line-1]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d: %s\n", file, line, msg)
	if srcLine != "" {
		fmt.Fprintf(&b, "    %s\n", srcLine)
	}
	return b.String()
}

// FormatErrors renders a numbered list of errors sharing one source file,
// following the teacher's multi-error numbering convention.
func FormatErrors(file string, source string, errs []error) string {
	var b strings.Builder
	for i, e := range errs {
		fmt.Fprintf(&b, "[%d/%d] %s", i+1, len(errs), Format(file, source, e))
	}
	return b.String()
}
