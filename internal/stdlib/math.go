package stdlib

import (
	"math"
	"math/rand"

	"github.com/nyxlang/nyx/internal/runtime"
	"github.com/nyxlang/nyx/internal/value"
)

// buildMath implements std:math — the trig/rounding/log family plus min,
// max, random, randomInt, and the PI/E constants
// (original_source/src/stdlib/math_module.h).
func buildMath() (*runtime.Environment, error) {
	env := runtime.New()
	env.Define("PI", value.Number(math.Pi))
	env.Define("E", value.Number(math.E))

	unary := func(name string, fn func(float64) float64) {
		native(env, name, 1, simple(func(args []value.Value) (value.Value, error) {
			n, err := asNumber(name, args[0])
			if err != nil {
				return nil, err
			}
			return value.Number(fn(n)), nil
		}))
	}

	unary("abs", math.Abs)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("round", math.Round)
	unary("trunc", math.Trunc)
	unary("sqrt", math.Sqrt)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("asin", math.Asin)
	unary("acos", math.Acos)
	unary("atan", math.Atan)
	unary("degrees", func(r float64) float64 { return r * 180 / math.Pi })
	unary("radians", func(d float64) float64 { return d * math.Pi / 180 })
	unary("log", math.Log)
	unary("log10", math.Log10)
	unary("exp", math.Exp)

	native(env, "pow", 2, simple(func(args []value.Value) (value.Value, error) {
		base, err := asNumber("pow", args[0])
		if err != nil {
			return nil, err
		}
		exp, err := asNumber("pow", args[1])
		if err != nil {
			return nil, err
		}
		return value.Number(math.Pow(base, exp)), nil
	}))

	native(env, "atan2", 2, simple(func(args []value.Value) (value.Value, error) {
		y, err := asNumber("atan2", args[0])
		if err != nil {
			return nil, err
		}
		x, err := asNumber("atan2", args[1])
		if err != nil {
			return nil, err
		}
		return value.Number(math.Atan2(y, x)), nil
	}))

	native(env, "min", 2, simple(func(args []value.Value) (value.Value, error) {
		a, err := asNumber("min", args[0])
		if err != nil {
			return nil, err
		}
		b, err := asNumber("min", args[1])
		if err != nil {
			return nil, err
		}
		return value.Number(math.Min(a, b)), nil
	}))

	native(env, "max", 2, simple(func(args []value.Value) (value.Value, error) {
		a, err := asNumber("max", args[0])
		if err != nil {
			return nil, err
		}
		b, err := asNumber("max", args[1])
		if err != nil {
			return nil, err
		}
		return value.Number(math.Max(a, b)), nil
	}))

	native(env, "random", 0, simple(func(args []value.Value) (value.Value, error) {
		return value.Number(rand.Float64()), nil
	}))

	native(env, "randomInt", 2, simple(func(args []value.Value) (value.Value, error) {
		lo, err := asNumber("randomInt", args[0])
		if err != nil {
			return nil, err
		}
		hi, err := asNumber("randomInt", args[1])
		if err != nil {
			return nil, err
		}
		loi, hii := int(lo), int(hi)
		if hii < loi {
			return nil, nyxerrorsNative("randomInt: high must be >= low")
		}
		return value.Number(float64(loi + rand.Intn(hii-loi+1))), nil
	}))

	return env, nil
}
