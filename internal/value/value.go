// Package value defines the tagged Value domain shared by the evaluator,
// module loader, and native-function implementations.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nyxlang/nyx/internal/ast"
)

// Value is the single tagged-sum interface every runtime value implements.
// A closed set of concrete types below are the only permitted variants,
// mirroring the original host's tagged-union value representation.
type Value interface {
	Type() string
	value()
}

// Null is the sentinel absence-of-value. There is exactly one logical null;
// Nil is provided as the canonical instance.
type Null struct{}

func (Null) value()        {}
func (Null) Type() string  { return "NULL" }

// Nil is the canonical Null value.
var Nil = Null{}

// Bool wraps a boolean.
type Bool bool

func (Bool) value()       {}
func (Bool) Type() string { return "BOOLEAN" }

// Number is the sole numeric representation: a 64-bit float.
type Number float64

func (Number) value()       {}
func (Number) Type() string { return "NUMBER" }

// String is immutable UTF-8 text, indexed per byte.
type String string

func (String) value()       {}
func (String) Type() string { return "STRING" }

// List is an ordered, shared-reference sequence of Values. Copies of a List
// value (assignment, arguments) share one *List, but no operation mutates a
// List in place: element assignment via subscript rebinds a *new* List to
// the base name (see internal/evaluator), matching the
// copy-on-write-through-binding model, so other names bound to the old List
// do not see the change.
type List struct {
	Elements []Value
}

func (*List) value()       {}
func (*List) Type() string { return "LIST" }

// NewList builds a List from the given elements.
func NewList(elems []Value) *List { return &List{Elements: elems} }

// Function is a user-defined closure.
type Function struct {
	Name    string
	Params  []ast.Parameter
	Body    *ast.Block
	Closure Env
}

func (*Function) value()       {}
func (*Function) Type() string { return "FUNCTION" }

// Env is the narrow interface the value package needs from an environment,
// avoiding an import cycle with internal/runtime.
type Env interface {
	Get(name string) (Value, bool)
	Define(name string, v Value)
	Assign(name string, v Value) bool
}

// Caller lets a native function call back into a Function or Native Value
// (e.g. std:list.each's callback argument) without the stdlib package
// needing to import the evaluator. The evaluator supplies the concrete
// implementation at call time.
type Caller func(callee Value, args []Value) (Value, error)

// NativeFunc is the Go callback backing a Native value. call is the
// current evaluator's Caller, present so natives like std:list.each can
// invoke a Nyx function argument; natives that never call back into Nyx
// code may ignore it.
type NativeFunc func(call Caller, args []Value) (Value, error)

// Native wraps a host-implemented function. Arity -1 marks variadic.
type Native struct {
	Name  string
	Arity int
	Fn    NativeFunc
}

func (*Native) value()       {}
func (*Native) Type() string { return "NATIVE_FUNCTION" }

// Module exposes a set of named members through its own environment.
type Module struct {
	Origin string
	Env    Env
}

func (*Module) value()       {}
func (*Module) Type() string { return "MODULE" }

// StructDef is a struct type descriptor: ordered field names and their
// indices within a StructInst's parallel value vector.
type StructDef struct {
	Name    string
	Fields  []string
	Indices map[string]int
}

func (*StructDef) value()       {}
func (*StructDef) Type() string { return "STRUCT_DEF" }

// StructInst is an instance of a StructDef, with mutable fields addressed
// by the definition's name→index map.
type StructInst struct {
	Def    *StructDef
	Values []Value
}

func (*StructInst) value()       {}
func (*StructInst) Type() string { return "STRUCT_INSTANCE" }

// Get returns the field's current value and whether it exists.
func (s *StructInst) Get(name string) (Value, bool) {
	idx, ok := s.Def.Indices[name]
	if !ok {
		return nil, false
	}
	return s.Values[idx], true
}

// Set overwrites the field's value by name, reporting whether it existed.
func (s *StructInst) Set(name string, v Value) bool {
	idx, ok := s.Def.Indices[name]
	if !ok {
		return false
	}
	s.Values[idx] = v
	return true
}

// Handle is a wrapper around a host-native resource (window, renderer,
// font, surface, texture, ...). Copies of a Handle value share one *Handle.
// The core uses its kind tag for display/type_name purposes. Handle keeps
// no reference count and nothing releases it automatically when its last
// reference drops: the resource is released only by an explicit Close,
// which runs Closer at most once. No host module is implemented in core
// (spec §1), so Closer may be nil.
type Handle struct {
	Kind   string
	Closer func() error
	closed bool
}

func (h *Handle) value()       {}
func (h *Handle) Type() string { return strings.ToUpper(h.Kind) + "_HANDLE" }

// Close releases the handle's underlying resource at most once.
func (h *Handle) Close() error {
	if h.closed || h.Closer == nil {
		h.closed = true
		return nil
	}
	h.closed = true
	return h.Closer()
}

// Truthy implements spec truthiness: Null false; Bool itself; Number != 0;
// String/List non-empty; every callable/module/struct/handle variant truthy.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case Null:
		return false
	case Bool:
		return bool(t)
	case Number:
		return float64(t) != 0.0
	case String:
		return len(t) > 0
	case *List:
		return len(t.Elements) > 0
	default:
		return true
	}
}

// Equals implements tag-aware equality: different tags are never equal,
// primitives compare by value, Lists recursively element-wise, and every
// reference variant (Function/Module/Native/Handle/StructInst) by identity.
func Equals(a, b Value) bool {
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case *List:
		bv, ok := b.(*List)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equals(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Function:
		bv, ok := b.(*Function)
		return ok && av == bv
	case *Native:
		bv, ok := b.(*Native)
		return ok && av == bv
	case *Module:
		bv, ok := b.(*Module)
		return ok && av == bv
	case *StructDef:
		bv, ok := b.(*StructDef)
		return ok && av == bv
	case *StructInst:
		bv, ok := b.(*StructInst)
		return ok && av == bv
	case *Handle:
		bv, ok := b.(*Handle)
		return ok && av == bv
	default:
		return false
	}
}

// Render produces the display form of v per the spec's formatting table.
func Render(v Value) string {
	switch t := v.(type) {
	case Null:
		return "null"
	case Bool:
		if t {
			return "true"
		}
		return "false"
	case Number:
		return formatNumber(float64(t))
	case String:
		return string(t)
	case *List:
		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			if s, ok := e.(String); ok {
				parts[i] = "\"" + string(s) + "\""
			} else {
				parts[i] = Render(e)
			}
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Function:
		return fmt.Sprintf("<func %s>", t.Name)
	case *Native:
		return fmt.Sprintf("<native_func %s>", t.Name)
	case *Module:
		return fmt.Sprintf("<module '%s'>", t.Origin)
	case *StructDef:
		return fmt.Sprintf("<struct_def %s>", t.Name)
	case *StructInst:
		parts := make([]string, len(t.Def.Fields))
		for i, f := range t.Def.Fields {
			parts[i] = fmt.Sprintf("%s: %s", f, Render(t.Values[i]))
		}
		return fmt.Sprintf("%s{%s}", t.Def.Name, strings.Join(parts, ", "))
	case *Handle:
		return fmt.Sprintf("<%s_HANDLE>", strings.ToUpper(t.Kind))
	default:
		return ""
	}
}

// formatNumber trims a float64 to the spec's decimal display form: trailing
// zeros trimmed, trailing '.' dropped.
func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "" || s == "-" {
		s = "0"
	}
	return s
}

// TypeName returns the uppercase domain tag used by std:type.getType and
// the @Typedef statement.
func TypeName(v Value) string {
	return v.Type()
}
