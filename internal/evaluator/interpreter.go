// Package evaluator drives the statement/expression visitor over a Nyx
// AST against a lexically-scoped environment chain, dispatching
// dynamically-typed operations over the tagged value domain and
// propagating control-flow unwind signals (spec.md §4.6).
package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/nyxlang/nyx/internal/ast"
	"github.com/nyxlang/nyx/internal/module"
	"github.com/nyxlang/nyx/internal/runtime"
	"github.com/nyxlang/nyx/internal/value"
)

// Config carries the evaluator's tunables, following the teacher's
// evaluator.Config pattern (internal/interp/evaluator/evaluator.go).
type Config struct {
	SourceFile        string
	ScriptDir         string
	MaxRecursionDepth int
	Trace             bool
}

// DefaultConfig returns the evaluator's default tunables: no trace output,
// a 1024-frame call-depth guard (Supplement, spec.md §8 "MODULE —
// Evaluator" additions) against runaway recursion.
func DefaultConfig() Config {
	return Config{MaxRecursionDepth: 1024}
}

// Interpreter is one execution context: a global environment, the module
// cache and native-builder registry (shared with the interpreters that run
// imported source modules), and the I/O
// streams native modules and output/put statements write to.
type Interpreter struct {
	Globals *runtime.Environment
	Modules *module.Cache
	Config  Config
	Out     io.Writer
	Err     io.Writer

	depth int
}

// New builds an Interpreter with fresh globals, pre-defining nyx_null and
// SCRIPT_ARGS per spec.md §6.
func New(cfg Config, cache *module.Cache, scriptArgs []string) *Interpreter {
	in := &Interpreter{
		Globals: runtime.New(),
		Modules: cache,
		Config:  cfg,
		Out:     os.Stdout,
		Err:     os.Stderr,
	}
	in.Globals.Define("nyx_null", value.Nil)
	args := make([]value.Value, len(scriptArgs))
	for i, a := range scriptArgs {
		args[i] = value.String(a)
	}
	in.Globals.Define("SCRIPT_ARGS", value.NewList(args))
	return in
}

// Run executes prog's top-level statements in order. Escaped control-flow
// signals are logged and swallowed per spec.md §7's propagation policy;
// any other error (a runtime error) is returned to the caller, which
// prints it and exits 1.
func (in *Interpreter) Run(prog *ast.Program) error {
	for _, stmt := range prog.Statements {
		if err := in.execStmt(stmt, in.Globals); err != nil {
			if sig, ok := asSignal(err); ok {
				fmt.Fprintf(in.Err, "Runtime Error: %s\n", sig.Error())
				continue
			}
			return err
		}
	}
	return nil
}

// callValue is the value.Caller implementation passed to native functions
// so they can invoke a Function or Native argument (e.g. std:list.each).
func (in *Interpreter) callValue(callee value.Value, args []value.Value) (value.Value, error) {
	return in.call(callee, args, 0)
}
