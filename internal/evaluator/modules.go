package evaluator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/nyxlang/nyx/internal/ast"
	nyxerrors "github.com/nyxlang/nyx/internal/errors"
	"github.com/nyxlang/nyx/internal/lexer"
	"github.com/nyxlang/nyx/internal/parser"
	"github.com/nyxlang/nyx/internal/runtime"
	"github.com/nyxlang/nyx/internal/value"
)

// logExports prints a module's top-level bindings to the trace stream, via
// Environment.Range. Triggered only under --trace, since it exists purely
// as a diagnostic aid, not part of import's evaluation contract.
func (in *Interpreter) logExports(origin string, env *runtime.Environment) {
	if !in.Config.Trace {
		return
	}
	var names []string
	env.Range(func(name string, _ value.Value) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	fmt.Fprintf(in.Err, "trace: import %s exports %v\n", origin, names)
}

// execImport resolves and binds one import statement, per spec.md §4.7.
// A `std:` import invokes the registered native builder (cached under the
// literal `std:<name>` key); a source import resolves the path relative to
// the importing file's directory, canonicalizes it, and — per the Open
// Question resolution recorded in DESIGN.md — checks the cache BEFORE
// doing any work, so a module already being loaded (or previously loaded)
// is never re-executed and re-imports observe prior mutations to its
// top-level environment.
func (in *Interpreter) execImport(s *ast.Import, env *runtime.Environment) error {
	if s.IsStd {
		return in.importNative(s, env)
	}
	return in.importSource(s, env)
}

func (in *Interpreter) importNative(s *ast.Import, env *runtime.Environment) error {
	key := "std:" + s.Path
	if m, ok := in.Modules.Get(key); ok {
		env.Define(s.Alias, m)
		return nil
	}

	builder, ok := in.Modules.Builder(s.Path)
	if !ok {
		return nyxerrors.NewRuntimeError(s.Pos(), "unknown std: module '%s'", s.Path)
	}
	modEnv, err := builder()
	if err != nil {
		return nyxerrors.NewRuntimeError(s.Pos(), "failed to load std:%s: %s", s.Path, err.Error())
	}
	m := &value.Module{Origin: key, Env: modEnv}
	in.Modules.Put(key, m)
	in.logExports(key, modEnv)
	env.Define(s.Alias, m)
	return nil
}

func (in *Interpreter) importSource(s *ast.Import, env *runtime.Environment) error {
	dir := in.Config.ScriptDir
	if dir == "" {
		dir = "."
	}
	resolved := s.Path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(dir, resolved)
	}
	canonical, err := filepath.Abs(resolved)
	if err != nil {
		return nyxerrors.NewRuntimeError(s.Pos(), "cannot resolve import path '%s': %s", s.Path, err.Error())
	}
	if real, err := filepath.EvalSymlinks(canonical); err == nil {
		canonical = real
	}

	if m, ok := in.Modules.Get(canonical); ok {
		env.Define(s.Alias, m)
		return nil
	}

	src, err := os.ReadFile(canonical)
	if err != nil {
		return nyxerrors.NewRuntimeError(s.Pos(), "cannot read import '%s': %s", s.Path, err.Error())
	}

	tokens, lexErrs := lexer.Tokenize(string(src))
	if len(lexErrs) > 0 {
		return nyxerrors.NewRuntimeError(s.Pos(), "import '%s': %s", s.Path, lexErrs[0].Message)
	}
	p := parser.New(tokens)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nyxerrors.NewRuntimeError(s.Pos(), "import '%s': %s", s.Path, errs[0].Message)
	}

	modEnv := runtime.NewChild(in.Globals)
	subCfg := in.Config
	subCfg.SourceFile = canonical
	subCfg.ScriptDir = filepath.Dir(canonical)
	sub := &Interpreter{
		Globals: modEnv,
		Modules: in.Modules,
		Config:  subCfg,
		Out:     in.Out,
		Err:     in.Err,
	}

	m := &value.Module{Origin: canonical, Env: modEnv}
	// Cache before executing, so a module that (directly or transitively)
	// imports itself observes its own partially-populated environment
	// rather than recursing into another full execution.
	in.Modules.Put(canonical, m)

	if err := sub.Run(prog); err != nil {
		return err
	}
	in.logExports(canonical, modEnv)

	env.Define(s.Alias, m)
	return nil
}
