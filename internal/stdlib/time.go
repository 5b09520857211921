package stdlib

import (
	"strings"
	"time"

	"github.com/nyxlang/nyx/internal/runtime"
	"github.com/nyxlang/nyx/internal/value"
)

var processStart = time.Now()

// buildTime implements std:time — clock, now, sleep, getLocalTime,
// getUtcTime, monotonic, format (original_source/src/stdlib/
// time_module.h).
func buildTime() (*runtime.Environment, error) {
	env := runtime.New()

	native(env, "clock", 0, simple(func(args []value.Value) (value.Value, error) {
		return value.Number(float64(time.Since(processStart)) / float64(time.Second)), nil
	}))

	native(env, "now", 0, simple(func(args []value.Value) (value.Value, error) {
		return value.Number(float64(time.Now().UnixMilli()) / 1000.0), nil
	}))

	native(env, "sleep", 1, simple(func(args []value.Value) (value.Value, error) {
		seconds, err := asNumber("sleep", args[0])
		if err != nil {
			return nil, err
		}
		if seconds > 0 {
			time.Sleep(time.Duration(seconds * float64(time.Second)))
		}
		return value.Nil, nil
	}))

	native(env, "getLocalTime", 0, simple(func(args []value.Value) (value.Value, error) {
		return value.String(time.Now().Format("2006-01-02 15:04:05")), nil
	}))

	native(env, "getUtcTime", 0, simple(func(args []value.Value) (value.Value, error) {
		return value.String(time.Now().UTC().Format("2006-01-02 15:04:05")), nil
	}))

	native(env, "monotonic", 0, simple(func(args []value.Value) (value.Value, error) {
		return value.Number(float64(time.Since(processStart))), nil
	}))

	native(env, "format", 2, simple(func(args []value.Value) (value.Value, error) {
		epochSeconds, err := asNumber("format", args[0])
		if err != nil {
			return nil, err
		}
		layout, err := asString("format", args[1])
		if err != nil {
			return nil, err
		}
		t := time.UnixMilli(int64(epochSeconds * 1000))
		return value.String(t.Format(goLayout(layout))), nil
	}))

	return env, nil
}

// goLayout maps the small set of strftime-style directives the original
// source's time_module supports onto Go's reference-time layout syntax.
func goLayout(layout string) string {
	replacer := strings.NewReplacer(
		"%Y", "2006", "%m", "01", "%d", "02",
		"%H", "15", "%M", "04", "%S", "05",
	)
	return replacer.Replace(layout)
}
