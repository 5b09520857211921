package evaluator

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/nyxlang/nyx/internal/module"
	"github.com/nyxlang/nyx/internal/parser"
	"github.com/nyxlang/nyx/internal/stdlib"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	prog, lexErrs, parseErrs := parser.ParseSource(src)
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}

	cache := module.NewCache()
	stdlib.RegisterAll(cache)

	cfg := DefaultConfig()
	cfg.ScriptDir = "."
	in := New(cfg, cache, nil)
	var out bytes.Buffer
	in.Out = &out
	in.Err = &out

	err := in.Run(prog)
	return out.String(), err
}

func TestOutputArithmeticAndPrecedence(t *testing.T) {
	out, err := run(t, `output(1 + 2 * 3);`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "7\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestClosureCounter(t *testing.T) {
	src := `
func makeCounter() = {
	auto count = 0;
	func increment() = {
		count = count + 1;
		return count;
	}
	return increment;
}
auto counter = makeCounter();
output(counter());
output(counter());
output(counter());
`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "1\n2\n3\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStringInterpolation(t *testing.T) {
	out, err := run(t, `auto name = "World"; output("Hello, #{name}! #{1 + 1}");`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "Hello, World! 2\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestShortCircuitOr(t *testing.T) {
	src := `
func boom() = {
	output("should not run");
	return true;
}
auto x = true or boom();
output(x);
`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "should not run") {
		t.Errorf("'or' did not short-circuit: %q", out)
	}
	if got, want := out, "true\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestShortCircuitAnd(t *testing.T) {
	src := `
func boom() = {
	output("should not run");
	return true;
}
auto x = false and boom();
output(x);
`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "should not run") {
		t.Errorf("'and' did not short-circuit: %q", out)
	}
	if got, want := out, "false\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestListRepetitionAndConcatenation(t *testing.T) {
	out, err := run(t, `auto a = [1, 2] * 3; output(a); auto b = [1] + [2, 3]; output(b);`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "[1, 2, 1, 2, 1, 2]\n[1, 2, 3]\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestNegativeIndexing(t *testing.T) {
	out, err := run(t, `auto a = [10, 20, 30]; output(a[-1]); output(a[-3]);`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "30\n10\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSubscriptAssignmentRebindsWithoutMutatingAliases(t *testing.T) {
	src := `
auto a = [1, 2, 3];
auto b = a;
a[0] = 99;
output(a);
output(b);
`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "[99, 2, 3]\n[1, 2, 3]\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestForLoopBreakAndContinue(t *testing.T) {
	src := `
auto sum = 0;
for (auto i = 0; i < 10; i++) {
	if (i == 5) { break; }
	if (i % 2 == 0) { continue; }
	sum = sum + i;
}
output(sum);
`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "4\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	_, err := run(t, `auto x = 1 / 0;`)
	if err == nil {
		t.Fatal("expected a runtime error for division by zero")
	}
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, `output(doesNotExist);`)
	if err == nil {
		t.Fatal("expected a runtime error for an undefined variable")
	}
}

func TestEscapedSignalIsSwallowedAndLogged(t *testing.T) {
	out, err := run(t, `break; output("still runs");`)
	if err != nil {
		t.Fatalf("an escaped control-flow signal must not abort the program: %v", err)
	}
	if !strings.Contains(out, "still runs") {
		t.Errorf("execution should continue after the escaped signal: %q", out)
	}
}

func TestStdMathImportAndCall(t *testing.T) {
	out, err := run(t, `import "std:math" as m; output(m.sqrt(16));`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "4\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSourceModuleGlobalsSeeHostGlobals(t *testing.T) {
	// A source module's global environment must be a child of the host's
	// globals (nyx_null, SCRIPT_ARGS), not a bare root environment.
	dir := t.TempDir()
	libPath := dir + "/lib.nyx"
	if err := os.WriteFile(libPath, []byte(`output(len(SCRIPT_ARGS));`), 0o644); err != nil {
		t.Fatal(err)
	}

	src := `import "./lib.nyx" as lib;`
	prog, lexErrs, parseErrs := parser.ParseSource(src)
	if len(lexErrs) != 0 || len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v %v", lexErrs, parseErrs)
	}

	cache := module.NewCache()
	stdlib.RegisterAll(cache)
	cfg := DefaultConfig()
	cfg.ScriptDir = dir
	in := New(cfg, cache, []string{"a", "b"})
	var out bytes.Buffer
	in.Out = &out
	in.Err = &out

	if err := in.Run(prog); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out.String(), "2\n"; got != want {
		t.Errorf("got %q, want %q — module did not see host's SCRIPT_ARGS", got, want)
	}
}

func TestUnknownStdModuleIsRuntimeError(t *testing.T) {
	_, err := run(t, `import "std:graphics" as g;`)
	if err == nil {
		t.Fatal("expected a runtime error for importing an unregistered std: module")
	}
}

func TestArityMismatchIsRuntimeError(t *testing.T) {
	_, err := run(t, `
func add(a, b) = { return a + b; }
add(1);
`)
	if err == nil {
		t.Fatal("expected a runtime error for an arity mismatch")
	}
}

func TestTypedefPrintsTypeName(t *testing.T) {
	out, err := run(t, `@Typedef(1);`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "NUMBER\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPutResolvesEscapesWhileEqualityComparesRawBytes(t *testing.T) {
	src := `
auto a = "x\ny";
auto b = "x\ny";
output(a == b);
put(a);
`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "true\n") {
		t.Errorf("equality must compare raw bytes: %q", out)
	}
	if !strings.Contains(out, "x\ny") {
		t.Errorf("put should resolve \\n to a real newline: %q", out)
	}
}
