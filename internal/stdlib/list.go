package stdlib

import (
	"strings"

	"github.com/nyxlang/nyx/internal/runtime"
	"github.com/nyxlang/nyx/internal/value"
)

// buildList implements std:list — append, prepend, isEmpty, slice, join,
// each (original_source/src/stdlib/list_module.h). append/prepend return a
// new List rather than mutating the argument in place, consistent with
// the core's copy-on-write-through-binding model for list mutation.
func buildList() (*runtime.Environment, error) {
	env := runtime.New()

	native(env, "append", 2, simple(func(args []value.Value) (value.Value, error) {
		l, err := asList("append", args[0])
		if err != nil {
			return nil, err
		}
		out := make([]value.Value, len(l.Elements)+1)
		copy(out, l.Elements)
		out[len(l.Elements)] = args[1]
		return value.NewList(out), nil
	}))

	native(env, "prepend", 2, simple(func(args []value.Value) (value.Value, error) {
		l, err := asList("prepend", args[0])
		if err != nil {
			return nil, err
		}
		out := make([]value.Value, len(l.Elements)+1)
		out[0] = args[1]
		copy(out[1:], l.Elements)
		return value.NewList(out), nil
	}))

	native(env, "isEmpty", 1, simple(func(args []value.Value) (value.Value, error) {
		l, err := asList("isEmpty", args[0])
		if err != nil {
			return nil, err
		}
		return value.Bool(len(l.Elements) == 0), nil
	}))

	native(env, "slice", 3, simple(func(args []value.Value) (value.Value, error) {
		l, err := asList("slice", args[0])
		if err != nil {
			return nil, err
		}
		start, err := asNumber("slice", args[1])
		if err != nil {
			return nil, err
		}
		end, err := asNumber("slice", args[2])
		if err != nil {
			return nil, err
		}
		si, ei := int(start), int(end)
		if si < 0 || ei > len(l.Elements) || si > ei {
			return nil, nyxerrorsNative("slice: range [%d,%d) out of bounds for length %d", si, ei, len(l.Elements))
		}
		out := make([]value.Value, ei-si)
		copy(out, l.Elements[si:ei])
		return value.NewList(out), nil
	}))

	native(env, "join", 2, simple(func(args []value.Value) (value.Value, error) {
		l, err := asList("join", args[0])
		if err != nil {
			return nil, err
		}
		sep, err := asString("join", args[1])
		if err != nil {
			return nil, err
		}
		parts := make([]string, len(l.Elements))
		for i, e := range l.Elements {
			parts[i] = value.Render(e)
		}
		return value.String(strings.Join(parts, sep)), nil
	}))

	native(env, "each", 2, func(call value.Caller, args []value.Value) (value.Value, error) {
		l, err := asList("each", args[0])
		if err != nil {
			return nil, err
		}
		switch args[1].(type) {
		case *value.Function, *value.Native:
		default:
			return nil, typeErr("each", "Function or Native", args[1])
		}
		for _, e := range l.Elements {
			if _, cerr := call(args[1], []value.Value{e}); cerr != nil {
				return nil, cerr
			}
		}
		return value.Nil, nil
	})

	return env, nil
}
