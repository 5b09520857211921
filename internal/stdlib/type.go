package stdlib

import (
	"github.com/nyxlang/nyx/internal/runtime"
	"github.com/nyxlang/nyx/internal/value"
)

// buildType implements std:type — getType, a thin wrapper over the core's
// type_name (original_source/src/stdlib/type_utils_module.h).
func buildType() (*runtime.Environment, error) {
	env := runtime.New()

	native(env, "getType", 1, simple(func(args []value.Value) (value.Value, error) {
		return value.String(value.TypeName(args[0])), nil
	}))

	return env, nil
}
