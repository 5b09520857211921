package evaluator

import (
	"math"
	"strings"

	"github.com/nyxlang/nyx/internal/ast"
	nyxerrors "github.com/nyxlang/nyx/internal/errors"
	"github.com/nyxlang/nyx/internal/runtime"
	"github.com/nyxlang/nyx/internal/value"
)

// evalExpr evaluates one expression against env, per spec.md §4.6's
// expression semantics.
func (in *Interpreter) evalExpr(expr ast.Expression, env *runtime.Environment) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e), nil

	case *ast.Identifier:
		v, ok := env.Get(e.Name)
		if !ok {
			return nil, nyxerrors.NewRuntimeError(e.Pos(), "undefined variable '%s'", e.Name)
		}
		return v, nil

	case *ast.Assignment:
		return in.evalAssignment(e, env)

	case *ast.Unary:
		return in.evalUnary(e, env)

	case *ast.Binary:
		return in.evalBinary(e, env)

	case *ast.PostfixUpdate:
		return in.evalPostfixUpdate(e, env)

	case *ast.ListLiteral:
		elems := make([]value.Value, len(e.Elements))
		for i, el := range e.Elements {
			v, err := in.evalExpr(el, env)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.NewList(elems), nil

	case *ast.Len:
		return in.evalLen(e, env)

	case *ast.Subscript:
		return in.evalSubscriptRead(e, env)

	case *ast.InterpolatedString:
		return in.evalInterpolatedString(e, env)

	case *ast.Call:
		return in.evalCall(e, env)

	case *ast.MemberAccess:
		return in.evalMemberAccess(e, env)

	default:
		return nil, nyxerrors.NewRuntimeError(expr.Pos(), "unsupported expression type %T", expr)
	}
}

func literalValue(l *ast.Literal) value.Value {
	switch l.Kind {
	case "number":
		return value.Number(l.Num)
	case "string":
		return value.String(l.Str)
	case "bool":
		return value.Bool(l.Bool)
	default:
		return value.Nil
	}
}

func (in *Interpreter) evalInterpolatedString(e *ast.InterpolatedString, env *runtime.Environment) (value.Value, error) {
	var b strings.Builder
	for _, seg := range e.Segments {
		if !seg.IsExpr {
			b.WriteString(seg.Text)
			continue
		}
		v, err := in.evalExpr(seg.Expr, env)
		if err != nil {
			return nil, err
		}
		b.WriteString(value.Render(v))
	}
	return value.String(b.String()), nil
}

func (in *Interpreter) evalLen(e *ast.Len, env *runtime.Environment) (value.Value, error) {
	v, err := in.evalExpr(e.Arg, env)
	if err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case *value.List:
		return value.Number(len(t.Elements)), nil
	case value.String:
		return value.Number(len(t)), nil
	default:
		return nil, nyxerrors.NewRuntimeError(e.Pos(), "len() expects List or String, got %s", v.Type())
	}
}

// effectiveIndex resolves a Number index against length per spec.md §3's
// negative-wraparound invariant, reporting whether it is in range.
func effectiveIndex(n float64, length int) (int, bool) {
	if n != math.Trunc(n) {
		return 0, false
	}
	i := int(n)
	if i < 0 {
		i += length
	}
	return i, i >= 0 && i < length
}

func (in *Interpreter) evalSubscriptRead(e *ast.Subscript, env *runtime.Environment) (value.Value, error) {
	base, err := in.evalExpr(e.Base, env)
	if err != nil {
		return nil, err
	}
	idxVal, err := in.evalExpr(e.Index, env)
	if err != nil {
		return nil, err
	}
	n, ok := idxVal.(value.Number)
	if !ok {
		return nil, nyxerrors.NewRuntimeError(e.Pos(), "subscript index must be a Number")
	}

	switch t := base.(type) {
	case *value.List:
		idx, inRange := effectiveIndex(float64(n), len(t.Elements))
		if !inRange {
			return nil, nyxerrors.NewRuntimeError(e.Pos(), "list index out of range")
		}
		return t.Elements[idx], nil
	case value.String:
		idx, inRange := effectiveIndex(float64(n), len(t))
		if !inRange {
			return nil, nyxerrors.NewRuntimeError(e.Pos(), "string index out of range")
		}
		return value.String(t[idx : idx+1]), nil
	default:
		return nil, nyxerrors.NewRuntimeError(e.Pos(), "cannot subscript a %s", base.Type())
	}
}

func (in *Interpreter) evalUnary(e *ast.Unary, env *runtime.Environment) (value.Value, error) {
	v, err := in.evalExpr(e.Right, env)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case "-":
		n, ok := v.(value.Number)
		if !ok {
			return nil, nyxerrors.NewRuntimeError(e.Pos(), "unary '-' expects Number, got %s", v.Type())
		}
		return -n, nil
	case "!", "not":
		return value.Bool(!value.Truthy(v)), nil
	default:
		return nil, nyxerrors.NewRuntimeError(e.Pos(), "unknown unary operator '%s'", e.Operator)
	}
}

func (in *Interpreter) evalBinary(e *ast.Binary, env *runtime.Environment) (value.Value, error) {
	if e.Operator == "and" || e.Operator == "or" {
		left, err := in.evalExpr(e.Left, env)
		if err != nil {
			return nil, err
		}
		truthy := value.Truthy(left)
		if e.Operator == "or" && truthy {
			return left, nil
		}
		if e.Operator == "and" && !truthy {
			return left, nil
		}
		return in.evalExpr(e.Right, env)
	}

	left, err := in.evalExpr(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := in.evalExpr(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case "==":
		return value.Bool(value.Equals(left, right)), nil
	case "!=":
		return value.Bool(!value.Equals(left, right)), nil
	case "+":
		return in.evalAdd(e, left, right)
	case "-":
		ln, lok := left.(value.Number)
		rn, rok := right.(value.Number)
		if !lok || !rok {
			return nil, nyxerrors.NewRuntimeError(e.Pos(), "'-' expects Number operands, got %s and %s", left.Type(), right.Type())
		}
		return ln - rn, nil
	case "*":
		return in.evalMul(e, left, right)
	case "/":
		ln, lok := left.(value.Number)
		rn, rok := right.(value.Number)
		if !lok || !rok {
			return nil, nyxerrors.NewRuntimeError(e.Pos(), "'/' expects Number operands, got %s and %s", left.Type(), right.Type())
		}
		if rn == 0 {
			return nil, nyxerrors.NewRuntimeError(e.Pos(), "division by zero")
		}
		return ln / rn, nil
	case "%":
		ln, lok := left.(value.Number)
		rn, rok := right.(value.Number)
		if !lok || !rok {
			return nil, nyxerrors.NewRuntimeError(e.Pos(), "'%%' expects Number operands, got %s and %s", left.Type(), right.Type())
		}
		if rn == 0 {
			return nil, nyxerrors.NewRuntimeError(e.Pos(), "modulo by zero")
		}
		return value.Number(math.Mod(float64(ln), float64(rn))), nil
	case "<", "<=", ">", ">=":
		ln, lok := left.(value.Number)
		rn, rok := right.(value.Number)
		if !lok || !rok {
			return nil, nyxerrors.NewRuntimeError(e.Pos(), "'%s' expects Number operands, got %s and %s", e.Operator, left.Type(), right.Type())
		}
		switch e.Operator {
		case "<":
			return value.Bool(ln < rn), nil
		case "<=":
			return value.Bool(ln <= rn), nil
		case ">":
			return value.Bool(ln > rn), nil
		default:
			return value.Bool(ln >= rn), nil
		}
	default:
		return nil, nyxerrors.NewRuntimeError(e.Pos(), "unknown binary operator '%s'", e.Operator)
	}
}

func (in *Interpreter) evalAdd(e *ast.Binary, left, right value.Value) (value.Value, error) {
	switch l := left.(type) {
	case value.Number:
		if r, ok := right.(value.Number); ok {
			return l + r, nil
		}
	case value.String:
		if r, ok := right.(value.String); ok {
			return l + r, nil
		}
	case *value.List:
		if r, ok := right.(*value.List); ok {
			out := make([]value.Value, 0, len(l.Elements)+len(r.Elements))
			out = append(out, l.Elements...)
			out = append(out, r.Elements...)
			return value.NewList(out), nil
		}
	}
	return nil, nyxerrors.NewRuntimeError(e.Pos(), "'+' not defined for %s and %s", left.Type(), right.Type())
}

func (in *Interpreter) evalMul(e *ast.Binary, left, right value.Value) (value.Value, error) {
	ln, lNum := left.(value.Number)
	rn, rNum := right.(value.Number)
	if lNum && rNum {
		return ln * rn, nil
	}
	if l, ok := left.(*value.List); ok && rNum {
		return repeatList(e, l, float64(rn))
	}
	if r, ok := right.(*value.List); ok && lNum {
		return repeatList(e, r, float64(ln))
	}
	return nil, nyxerrors.NewRuntimeError(e.Pos(), "'*' not defined for %s and %s", left.Type(), right.Type())
}

func repeatList(e *ast.Binary, l *value.List, countF float64) (value.Value, error) {
	if countF != math.Trunc(countF) || countF < 0 {
		return nil, nyxerrors.NewRuntimeError(e.Pos(), "list repetition count must be a non-negative integer")
	}
	count := int(countF)
	out := make([]value.Value, 0, len(l.Elements)*count)
	for i := 0; i < count; i++ {
		out = append(out, l.Elements...)
	}
	return value.NewList(out), nil
}

func (in *Interpreter) evalPostfixUpdate(e *ast.PostfixUpdate, env *runtime.Environment) (value.Value, error) {
	old, err := in.evalExpr(e.Target, env)
	if err != nil {
		return nil, err
	}
	oldNum, ok := old.(value.Number)
	if !ok {
		return nil, nyxerrors.NewRuntimeError(e.Pos(), "'%s' expects a Number target, got %s", e.Operator, old.Type())
	}
	delta := value.Number(1)
	if e.Operator == "--" {
		delta = -1
	}
	newVal := oldNum + delta

	switch target := e.Target.(type) {
	case *ast.Identifier:
		if !env.Assign(target.Name, newVal) {
			return nil, nyxerrors.NewRuntimeError(e.Pos(), "undefined variable '%s'", target.Name)
		}
	case *ast.Subscript:
		if err := in.assignSubscript(target, newVal, env); err != nil {
			return nil, err
		}
	default:
		return nil, nyxerrors.NewRuntimeError(e.Pos(), "invalid target for '%s'", e.Operator)
	}
	return oldNum, nil
}

func (in *Interpreter) evalMemberAccess(e *ast.MemberAccess, env *runtime.Environment) (value.Value, error) {
	base, err := in.evalExpr(e.Base, env)
	if err != nil {
		return nil, err
	}
	switch b := base.(type) {
	case *value.Module:
		v, ok := b.Env.Get(e.Name)
		if !ok {
			return nil, nyxerrors.NewRuntimeError(e.Pos(), "undefined member '%s' on module '%s'", e.Name, b.Origin)
		}
		return v, nil
	case *value.StructInst:
		v, ok := b.Get(e.Name)
		if !ok {
			return nil, nyxerrors.NewRuntimeError(e.Pos(), "unknown field '%s' on struct '%s'", e.Name, b.Def.Name)
		}
		return v, nil
	default:
		return nil, nyxerrors.NewRuntimeError(e.Pos(), "cannot access member '%s' on %s", e.Name, base.Type())
	}
}

func (in *Interpreter) evalCall(e *ast.Call, env *runtime.Environment) (value.Value, error) {
	callee, err := in.evalExpr(e.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]value.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.evalExpr(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return in.call(callee, args, e.Pos())
}

// call dispatches a Function or Native value with args, enforcing arity
// and (for Functions) the recursion-depth guard.
func (in *Interpreter) call(callee value.Value, args []value.Value, line int) (value.Value, error) {
	switch fn := callee.(type) {
	case *value.Function:
		if len(args) != len(fn.Params) {
			return nil, nyxerrors.NewRuntimeError(line, "function '%s' expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
		}
		in.depth++
		defer func() { in.depth-- }()
		if in.Config.MaxRecursionDepth > 0 && in.depth > in.Config.MaxRecursionDepth {
			return nil, nyxerrors.NewRuntimeError(line, "stack depth exceeded")
		}

		callEnv, ok := fn.Closure.(*runtime.Environment)
		if !ok {
			return nil, nyxerrors.NewRuntimeError(line, "internal error: function closure has no environment")
		}
		frame := runtime.NewChild(callEnv)
		for i, p := range fn.Params {
			frame.Define(p.Name, args[i])
		}
		for _, stmt := range fn.Body.Statements {
			if err := in.execStmt(stmt, frame); err != nil {
				if sig, ok := asSignal(err); ok && sig.kind == sigReturn {
					return sig.value, nil
				}
				return nil, err
			}
		}
		return value.Nil, nil

	case *value.Native:
		if fn.Arity >= 0 && len(args) != fn.Arity {
			return nil, nyxerrors.NewRuntimeError(line, "native function '%s' expects %d argument(s), got %d", fn.Name, fn.Arity, len(args))
		}
		return fn.Fn(in.callValue, args)

	default:
		return nil, nyxerrors.NewRuntimeError(line, "cannot call a %s", callee.Type())
	}
}

func (in *Interpreter) evalAssignment(e *ast.Assignment, env *runtime.Environment) (value.Value, error) {
	val, err := in.evalExpr(e.Value, env)
	if err != nil {
		return nil, err
	}
	switch target := e.Target.(type) {
	case *ast.Identifier:
		if !env.Assign(target.Name, val) {
			return nil, nyxerrors.NewRuntimeError(e.Pos(), "undefined variable '%s'", target.Name)
		}
		return val, nil
	case *ast.Subscript:
		if err := in.assignSubscript(target, val, env); err != nil {
			return nil, err
		}
		return val, nil
	case *ast.MemberAccess:
		base, err := in.evalExpr(target.Base, env)
		if err != nil {
			return nil, err
		}
		switch b := base.(type) {
		case *value.Module:
			if !b.Env.Assign(target.Name, val) {
				return nil, nyxerrors.NewRuntimeError(e.Pos(), "undefined member '%s' on module '%s'", target.Name, b.Origin)
			}
		case *value.StructInst:
			if !b.Set(target.Name, val) {
				return nil, nyxerrors.NewRuntimeError(e.Pos(), "unknown field '%s' on struct '%s'", target.Name, b.Def.Name)
			}
		default:
			return nil, nyxerrors.NewRuntimeError(e.Pos(), "cannot assign member '%s' on %s", target.Name, base.Type())
		}
		return val, nil
	default:
		return nil, nyxerrors.NewRuntimeError(e.Pos(), "invalid assignment target")
	}
}

// assignSubscript implements spec.md §4.6's copy-on-write-through-binding
// subscript assignment: the base list is read, copied, bounds-checked,
// mutated in the copy, then the whole list is rebound to the base
// identifier. A non-identifier base is a runtime error (temporary lists
// cannot be subscript-assigned).
func (in *Interpreter) assignSubscript(sub *ast.Subscript, val value.Value, env *runtime.Environment) error {
	ident, ok := sub.Base.(*ast.Identifier)
	if !ok {
		return nyxerrors.NewRuntimeError(sub.Pos(), "subscript assignment requires a named list")
	}
	baseVal, ok := env.Get(ident.Name)
	if !ok {
		return nyxerrors.NewRuntimeError(sub.Pos(), "undefined variable '%s'", ident.Name)
	}
	list, ok := baseVal.(*value.List)
	if !ok {
		return nyxerrors.NewRuntimeError(sub.Pos(), "cannot subscript-assign a %s", baseVal.Type())
	}
	idxVal, err := in.evalExpr(sub.Index, env)
	if err != nil {
		return err
	}
	n, ok := idxVal.(value.Number)
	if !ok {
		return nyxerrors.NewRuntimeError(sub.Pos(), "subscript index must be a Number")
	}
	idx, inRange := effectiveIndex(float64(n), len(list.Elements))
	if !inRange {
		return nyxerrors.NewRuntimeError(sub.Pos(), "list index out of range")
	}

	newElems := make([]value.Value, len(list.Elements))
	copy(newElems, list.Elements)
	newElems[idx] = val
	newList := value.NewList(newElems)

	if !env.Assign(ident.Name, newList) {
		return nyxerrors.NewRuntimeError(sub.Pos(), "undefined variable '%s'", ident.Name)
	}
	return nil
}
