// Package stdlib implements Nyx's native standard-library modules
// (std:io, std:math, std:string, std:list, std:time, std:type), registered
// against a module.Cache's native-builder registry.
//
// Every function here is grounded on the exact name list enumerated by
// the original source's stdlib headers; internal behavior is free to
// follow Go idiom since spec.md scopes native-module internals out of the
// core contract.
package stdlib

import (
	nyxerrors "github.com/nyxlang/nyx/internal/errors"
	"github.com/nyxlang/nyx/internal/module"
	"github.com/nyxlang/nyx/internal/runtime"
	"github.com/nyxlang/nyx/internal/value"
)

// RegisterAll installs every implemented native-module builder (io, math,
// string, list, time, type) into cache. std:graphics is deliberately not
// registered; importing it surfaces the spec'd "unknown std: name" error.
func RegisterAll(cache *module.Cache) {
	cache.RegisterNative("io", buildIO)
	cache.RegisterNative("math", buildMath)
	cache.RegisterNative("string", buildString)
	cache.RegisterNative("list", buildList)
	cache.RegisterNative("time", buildTime)
	cache.RegisterNative("type", buildType)
}

func nyxerrorsNative(format string, args ...any) error {
	return nyxerrors.NewRuntimeError(0, format, args...)
}

func argErr(name string, want, got int) error {
	return nyxerrors.NewRuntimeError(0, "%s() expects %d argument(s), got %d", name, want, got)
}

func typeErr(name, want string, got value.Value) error {
	return nyxerrors.NewRuntimeError(0, "%s() expects %s, got %s", name, want, got.Type())
}

func native(env *runtime.Environment, name string, arity int, fn value.NativeFunc) {
	env.Define(name, &value.Native{Name: name, Arity: arity, Fn: fn})
}

// simple wraps a native implementation that never calls back into Nyx
// code, so callers don't have to name an unused value.Caller parameter.
func simple(fn func(args []value.Value) (value.Value, error)) value.NativeFunc {
	return func(_ value.Caller, args []value.Value) (value.Value, error) {
		return fn(args)
	}
}

func asNumber(name string, v value.Value) (float64, error) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, typeErr(name, "Number", v)
	}
	return float64(n), nil
}

func asString(name string, v value.Value) (string, error) {
	s, ok := v.(value.String)
	if !ok {
		return "", typeErr(name, "String", v)
	}
	return string(s), nil
}

func asList(name string, v value.Value) (*value.List, error) {
	l, ok := v.(*value.List)
	if !ok {
		return nil, typeErr(name, "List", v)
	}
	return l, nil
}
