// Package runtime implements the lexically-scoped environment chain shared
// by the evaluator, closures, and module instances.
package runtime

import "github.com/nyxlang/nyx/internal/value"

// Environment is a parent-pointer scope frame: an ordered pair of a
// name→Value map and an optional parent. Multiple closures may share the
// same frame; mutation through Define/Assign is visible through all holders.
type Environment struct {
	store  map[string]value.Value
	parent *Environment
}

// New creates a root environment with no parent.
func New() *Environment {
	return &Environment{store: make(map[string]value.Value)}
}

// NewChild creates a new environment whose parent is e.
func NewChild(parent *Environment) *Environment {
	return &Environment{store: make(map[string]value.Value), parent: parent}
}

// Define creates or overwrites name's binding in the current frame,
// unconditionally.
func (e *Environment) Define(name string, v value.Value) {
	e.store[name] = v
}

// Get walks the parent chain and returns the value bound to name in the
// nearest frame that holds it, or false if no frame does.
func (e *Environment) Get(name string) (value.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.store[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Assign updates name's binding in the nearest frame that already holds it,
// and reports false if no frame does (the evaluator surfaces this as an
// undefined-variable runtime error).
func (e *Environment) Assign(name string, v value.Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.store[name]; ok {
			env.store[name] = v
			return true
		}
	}
	return false
}

// Has reports whether name is bound in the current frame only (not parents).
func (e *Environment) Has(name string) bool {
	_, ok := e.store[name]
	return ok
}

// Parent returns e's enclosing environment, or nil at the root.
func (e *Environment) Parent() *Environment { return e.parent }

// Range calls fn for every name→value binding in the current frame only,
// stopping early if fn returns false. A debug/introspection helper used by
// module-export listing; it has no effect on Define/Get/Assign semantics.
func (e *Environment) Range(fn func(name string, v value.Value) bool) {
	for k, v := range e.store {
		if !fn(k, v) {
			return
		}
	}
}
