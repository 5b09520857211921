package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	nyxerrors "github.com/nyxlang/nyx/internal/errors"
)

// resetFlags restores the package-level flag variables between tests, since
// they are shared cobra.Flags() targets and tests mutate them directly.
func resetFlags() {
	aboutFlag = false
	evalExpr = ""
	dumpAST = false
	trace = false
	verboseFlag = false
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	w.Close()
	out, _ := io.ReadAll(r)
	return string(out)
}

func TestRunRootEvalFlagExecutesInlineCode(t *testing.T) {
	resetFlags()
	defer resetFlags()
	evalExpr = `output(1 + 1);`

	out := captureStdout(t, func() {
		if err := runRoot(nil, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
	if out != "2\n" {
		t.Errorf("got %q, want %q", out, "2\n")
	}
}

func TestRunRootRejectsNonNyxExtension(t *testing.T) {
	resetFlags()
	defer resetFlags()

	dir := t.TempDir()
	path := filepath.Join(dir, "script.txt")
	if err := os.WriteFile(path, []byte(`output(1);`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runRoot(nil, []string{path}); err == nil {
		t.Fatal("expected an error for a non-.nyx script path")
	}
}

func TestRunRootRequiresScriptOrEval(t *testing.T) {
	resetFlags()
	defer resetFlags()

	if err := runRoot(nil, nil); err == nil {
		t.Fatal("expected an error when neither a script path nor -e is given")
	}
}

func TestRunRootReportsLexErrors(t *testing.T) {
	resetFlags()
	defer resetFlags()
	evalExpr = `auto x = "unterminated;`

	if err := runRoot(nil, nil); err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestRunRootReportsParseErrors(t *testing.T) {
	resetFlags()
	defer resetFlags()
	evalExpr = `auto x = ;`

	if err := runRoot(nil, nil); err == nil {
		t.Fatal("expected an error for a malformed declaration")
	}
}

func TestRunRootAboutFlagShortCircuits(t *testing.T) {
	resetFlags()
	defer resetFlags()
	aboutFlag = true
	evalExpr = `this is not valid nyx at all (((`

	out := captureStdout(t, func() {
		if err := runRoot(nil, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
	if out == "" {
		t.Error("expected --about to print something")
	}
}

func TestRunRootPropagatesRuntimeErrorFromScript(t *testing.T) {
	resetFlags()
	defer resetFlags()
	evalExpr = `output(undefinedThing);`

	_ = captureStdout(t, func() {
		if err := runRoot(nil, nil); err == nil {
			t.Fatal("expected a runtime error to propagate from an undefined reference")
		}
	})
}

func TestFormatRuntimeErrorIncludesLineWhenPresent(t *testing.T) {
	err := nyxerrors.NewRuntimeError(7, "boom")
	got := formatRuntimeError(err)
	want := "Runtime Error: at line 7: boom"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatRuntimeErrorOmitsLineWhenZero(t *testing.T) {
	err := nyxerrors.NewRuntimeError(0, "boom")
	got := formatRuntimeError(err)
	want := "Runtime Error: boom"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
