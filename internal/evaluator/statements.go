package evaluator

import (
	"fmt"
	"strings"

	"github.com/nyxlang/nyx/internal/ast"
	nyxerrors "github.com/nyxlang/nyx/internal/errors"
	"github.com/nyxlang/nyx/internal/runtime"
	"github.com/nyxlang/nyx/internal/value"
)

// execStmt executes one statement against env, per spec.md §4.6's
// statement semantics.
func (in *Interpreter) execStmt(stmt ast.Statement, env *runtime.Environment) error {
	if in.Config.Trace {
		fmt.Fprintf(in.Err, "trace: line %d: %T\n", stmt.Pos(), stmt)
	}

	switch s := stmt.(type) {
	case *ast.VarDecl:
		var v value.Value = value.Nil
		if s.Init != nil {
			var err error
			v, err = in.evalExpr(s.Init, env)
			if err != nil {
				return err
			}
		}
		env.Define(s.Name, v)
		return nil

	case *ast.Block:
		child := runtime.NewChild(env)
		for _, inner := range s.Statements {
			if err := in.execStmt(inner, child); err != nil {
				return err
			}
		}
		return nil

	case *ast.Output:
		v, err := in.evalExpr(s.Arg, env)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.Out, in.project(v))
		return nil

	case *ast.Put:
		v, err := in.evalExpr(s.Arg, env)
		if err != nil {
			return err
		}
		fmt.Fprint(in.Out, in.project(v))
		if f, ok := in.Out.(interface{ Sync() error }); ok {
			_ = f.Sync()
		} else if f, ok := in.Out.(interface{ Flush() error }); ok {
			_ = f.Flush()
		}
		return nil

	case *ast.FuncDecl:
		fn := &value.Function{Name: s.Name, Params: s.Params, Body: s.Body, Closure: env}
		env.Define(s.Name, fn)
		return nil

	case *ast.Return:
		var v value.Value = value.Nil
		if s.Value != nil {
			var err error
			v, err = in.evalExpr(s.Value, env)
			if err != nil {
				return err
			}
		}
		return &signal{kind: sigReturn, value: v}

	case *ast.If:
		cond, err := in.evalExpr(s.Condition, env)
		if err != nil {
			return err
		}
		if value.Truthy(cond) {
			return in.execStmt(s.Then, env)
		}
		if s.Else != nil {
			return in.execStmt(s.Else, env)
		}
		return nil

	case *ast.For:
		return in.execFor(s, env)

	case *ast.Break:
		return &signal{kind: sigBreak}

	case *ast.Continue:
		return &signal{kind: sigContinue}

	case *ast.Import:
		return in.execImport(s, env)

	case *ast.Typedef:
		v, err := in.evalExpr(s.Arg, env)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.Out, value.TypeName(v))
		return nil

	case *ast.ExpressionStmt:
		_, err := in.evalExpr(s.Expr, env)
		return err

	default:
		return nyxerrors.NewRuntimeError(stmt.Pos(), "unsupported statement type %T", stmt)
	}
}

// execFor implements spec.md §4.6's For semantics: a new environment for
// the loop-header bindings, condition re-evaluated each iteration (absent
// = true), Continue skips to the increment, Break exits, Return unwinds
// through.
func (in *Interpreter) execFor(s *ast.For, env *runtime.Environment) error {
	loopEnv := runtime.NewChild(env)
	if s.Init != nil {
		if err := in.execStmt(s.Init, loopEnv); err != nil {
			return err
		}
	}
	for {
		if s.Condition != nil {
			cond, err := in.evalExpr(s.Condition, loopEnv)
			if err != nil {
				return err
			}
			if !value.Truthy(cond) {
				return nil
			}
		}

		err := in.execStmt(s.Body, loopEnv)
		if err != nil {
			if sig, ok := asSignal(err); ok {
				switch sig.kind {
				case sigBreak:
					return nil
				case sigContinue:
					// fall through to increment
				default: // sigReturn
					return err
				}
			} else {
				return err
			}
		}

		if s.Increment != nil {
			if _, err := in.evalExpr(s.Increment, loopEnv); err != nil {
				return err
			}
		}
	}
}

// project implements Output/Put's shared projection rule: a String value
// has its escape sequences resolved; every other value is rendered.
func (in *Interpreter) project(v value.Value) string {
	if s, ok := v.(value.String); ok {
		return resolveEscapes(string(s))
	}
	return value.Render(v)
}

// resolveEscapes expands \n \r \t \e \\ \" in s. The lexer already turns
// \" and \\ inside a literal into a plain quote and backslash; every other
// escape is left raw by the lexer and resolved only here, at output/put
// time, so every other operation (equality, concatenation, length,
// interpolation) sees those escapes as raw bytes.
func resolveEscapes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'e':
			b.WriteByte(0x1b)
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
