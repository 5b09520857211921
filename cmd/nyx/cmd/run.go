package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	nyxerrors "github.com/nyxlang/nyx/internal/errors"
	"github.com/nyxlang/nyx/internal/evaluator"
	"github.com/nyxlang/nyx/internal/lexer"
	"github.com/nyxlang/nyx/internal/module"
	"github.com/nyxlang/nyx/internal/parser"
	"github.com/nyxlang/nyx/internal/stdlib"
	"github.com/spf13/cobra"
)

const scriptExt = ".nyx"

func runRoot(_ *cobra.Command, args []string) error {
	if aboutFlag {
		printAbout()
		return nil
	}

	var (
		input      string
		filename   string
		scriptArgs []string
	)

	switch {
	case evalExpr != "":
		input = evalExpr
		filename = "<eval>"
		scriptArgs = args
	case len(args) >= 1:
		script := args[0]
		if !strings.HasSuffix(script, scriptExt) {
			return fmt.Errorf("script path must end with '%s'", scriptExt)
		}
		canonical := script
		if !filepath.IsAbs(canonical) {
			abs, err := filepath.Abs(canonical)
			if err != nil {
				return fmt.Errorf("cannot resolve script path '%s': %w", script, err)
			}
			canonical = abs
		}
		content, err := os.ReadFile(canonical)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", script, err)
		}
		input = string(content)
		filename = canonical
		scriptArgs = args[1:]
	default:
		return fmt.Errorf("either provide a script path ending in '%s' or use -e for inline code", scriptExt)
	}

	tokens, lexErrs := lexer.Tokenize(input)
	if len(lexErrs) > 0 {
		asErrors := make([]error, len(lexErrs))
		for i, le := range lexErrs {
			asErrors[i] = &nyxerrors.ParserError{Message: le.Message, Line: le.Line}
		}
		fmt.Fprint(os.Stderr, nyxerrors.FormatErrors(filename, input, asErrors))
		return fmt.Errorf("lexing failed with %d error(s)", len(lexErrs))
	}

	p := parser.New(tokens)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		asErrors := make([]error, len(errs))
		for i, pe := range errs {
			asErrors[i] = pe
		}
		fmt.Fprint(os.Stderr, nyxerrors.FormatErrors(filename, input, asErrors))
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if dumpAST {
		fmt.Println("AST:")
		fmt.Println(program.String())
		fmt.Println()
	}

	cache := module.NewCache()
	stdlib.RegisterAll(cache)

	cfg := evaluator.DefaultConfig()
	cfg.SourceFile = filename
	cfg.Trace = trace
	if filename != "<eval>" {
		cfg.ScriptDir = filepath.Dir(filename)
	} else {
		if wd, err := os.Getwd(); err == nil {
			cfg.ScriptDir = wd
		}
	}

	if verboseFlag && filename != "<eval>" {
		fmt.Fprintf(os.Stderr, "Executing %s\n", filename)
	}

	in := evaluator.New(cfg, cache, scriptArgs)
	if err := in.Run(program); err != nil {
		fmt.Fprintln(os.Stderr, formatRuntimeError(err))
		return err
	}

	return nil
}

// formatRuntimeError renders a runtime error per spec.md §6: "Runtime
// Error: <message>", with an "at line N" prefix when the error carries a
// line number greater than 0. This contract is narrower than
// nyxerrors.Format's file:line + source-line rendering (used above for lex
// and parse diagnostics), so it is not delegated to Format/FormatErrors.
func formatRuntimeError(err error) string {
	if re, ok := err.(*nyxerrors.RuntimeError); ok {
		if re.Line > 0 {
			return fmt.Sprintf("Runtime Error: at line %d: %s", re.Line, re.Message)
		}
		return fmt.Sprintf("Runtime Error: %s", re.Message)
	}
	return fmt.Sprintf("Runtime Error: %s", err.Error())
}
