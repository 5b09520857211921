// Package module holds the native-module builder registry and the
// source/native module cache shared by every interpreter instance
// (spec.md §4.7).
package module

import (
	"github.com/nyxlang/nyx/internal/runtime"
	"github.com/nyxlang/nyx/internal/value"
)

// NativeBuilder produces a freshly-populated environment for one std:
// module, invoked once on first import.
type NativeBuilder func() (*runtime.Environment, error)

// Cache holds the native-module builder registry and the module cache
// keyed by `std:<name>` or canonical source path.
//
// The source this was distilled from keeps these as static, process-wide
// members (Interpreter.h: loaded_modules_cache, native_module_builders).
// spec.md §9 recommends per-interpreter state instead, to enable test
// isolation and multi-tenant hosting; Cache is therefore owned by each
// Interpreter rather than held in package-level globals.
type Cache struct {
	natives map[string]NativeBuilder
	modules map[string]*value.Module
}

// NewCache builds an empty Cache.
func NewCache() *Cache {
	return &Cache{
		natives: make(map[string]NativeBuilder),
		modules: make(map[string]*value.Module),
	}
}

// RegisterNative installs the builder for std:<name>. Re-registering the
// same name replaces the previous builder (used by tests).
func (c *Cache) RegisterNative(name string, b NativeBuilder) {
	c.natives[name] = b
}

// Builder returns the registered builder for name, if any.
func (c *Cache) Builder(name string) (NativeBuilder, bool) {
	b, ok := c.natives[name]
	return b, ok
}

// Get returns the cached Module for key (a `std:<name>` literal or a
// canonical source path), if present.
func (c *Cache) Get(key string) (*value.Module, bool) {
	m, ok := c.modules[key]
	return m, ok
}

// Put inserts m under key, overwriting any previous entry.
func (c *Cache) Put(key string, m *value.Module) {
	c.modules[key] = m
}
