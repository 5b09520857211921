package stdlib

import (
	"strconv"
	"strings"

	"github.com/nyxlang/nyx/internal/runtime"
	"github.com/nyxlang/nyx/internal/value"
)

// buildString implements std:string — toNumber, trim, toLowerCase,
// toUpperCase, contains, startsWith, endsWith, split, substring, replace
// (original_source/src/stdlib/string_module.h).
func buildString() (*runtime.Environment, error) {
	env := runtime.New()

	native(env, "toNumber", 1, simple(func(args []value.Value) (value.Value, error) {
		s, err := asString("toNumber", args[0])
		if err != nil {
			return nil, err
		}
		n, perr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if perr != nil {
			return nil, nyxerrorsNative("toNumber: %q is not a number", s)
		}
		return value.Number(n), nil
	}))

	native(env, "trim", 1, simple(func(args []value.Value) (value.Value, error) {
		s, err := asString("trim", args[0])
		if err != nil {
			return nil, err
		}
		return value.String(strings.TrimSpace(s)), nil
	}))

	native(env, "toLowerCase", 1, simple(func(args []value.Value) (value.Value, error) {
		s, err := asString("toLowerCase", args[0])
		if err != nil {
			return nil, err
		}
		return value.String(strings.ToLower(s)), nil
	}))

	native(env, "toUpperCase", 1, simple(func(args []value.Value) (value.Value, error) {
		s, err := asString("toUpperCase", args[0])
		if err != nil {
			return nil, err
		}
		return value.String(strings.ToUpper(s)), nil
	}))

	native(env, "contains", 2, simple(func(args []value.Value) (value.Value, error) {
		s, err := asString("contains", args[0])
		if err != nil {
			return nil, err
		}
		sub, err := asString("contains", args[1])
		if err != nil {
			return nil, err
		}
		return value.Bool(strings.Contains(s, sub)), nil
	}))

	native(env, "startsWith", 2, simple(func(args []value.Value) (value.Value, error) {
		s, err := asString("startsWith", args[0])
		if err != nil {
			return nil, err
		}
		prefix, err := asString("startsWith", args[1])
		if err != nil {
			return nil, err
		}
		return value.Bool(strings.HasPrefix(s, prefix)), nil
	}))

	native(env, "endsWith", 2, simple(func(args []value.Value) (value.Value, error) {
		s, err := asString("endsWith", args[0])
		if err != nil {
			return nil, err
		}
		suffix, err := asString("endsWith", args[1])
		if err != nil {
			return nil, err
		}
		return value.Bool(strings.HasSuffix(s, suffix)), nil
	}))

	native(env, "split", 2, simple(func(args []value.Value) (value.Value, error) {
		s, err := asString("split", args[0])
		if err != nil {
			return nil, err
		}
		sep, err := asString("split", args[1])
		if err != nil {
			return nil, err
		}
		parts := strings.Split(s, sep)
		elems := make([]value.Value, len(parts))
		for i, p := range parts {
			elems[i] = value.String(p)
		}
		return value.NewList(elems), nil
	}))

	native(env, "substring", 3, simple(func(args []value.Value) (value.Value, error) {
		s, err := asString("substring", args[0])
		if err != nil {
			return nil, err
		}
		start, err := asNumber("substring", args[1])
		if err != nil {
			return nil, err
		}
		end, err := asNumber("substring", args[2])
		if err != nil {
			return nil, err
		}
		si, ei := int(start), int(end)
		if si < 0 || ei > len(s) || si > ei {
			return nil, nyxerrorsNative("substring: range [%d,%d) out of bounds for length %d", si, ei, len(s))
		}
		return value.String(s[si:ei]), nil
	}))

	native(env, "replace", 3, simple(func(args []value.Value) (value.Value, error) {
		s, err := asString("replace", args[0])
		if err != nil {
			return nil, err
		}
		old, err := asString("replace", args[1])
		if err != nil {
			return nil, err
		}
		repl, err := asString("replace", args[2])
		if err != nil {
			return nil, err
		}
		return value.String(strings.ReplaceAll(s, old, repl)), nil
	}))

	return env, nil
}
