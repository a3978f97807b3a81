// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package types

import (
	"reflect"
	"strings"
	"sync"
)

// Registry maps stable string tags to Go types. Tags are resolved once at
// startup through Register and then looked up for every decoded frame.
type Registry interface {
	// Register adds each value's type under its derived name. Values are
	// usually pointers to zero values, e.g. new(MyConfig).
	Register(values ...any)
	// RegisterAs adds the value's type under an explicit tag.
	RegisterAs(tag string, v any)
	// Deregister removes the value's type from the registry
	Deregister(v any)
	// Exists returns true when the value's type is registered
	Exists(v any) bool
	// TypesMap returns a copy of the registered tags and types
	TypesMap() map[string]reflect.Type
	// TagOf returns the tag under which the value's type was registered
	TagOf(v any) (string, bool)
	// TypeOf returns the type registered under the given tag
	TypeOf(tag string) (reflect.Type, bool)
}

type registry struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
	tags  map[reflect.Type]string
}

var _ Registry = (*registry)(nil)

// NewRegistry creates a new types registry
func NewRegistry() Registry {
	return &registry{
		types: make(map[string]reflect.Type),
		tags:  make(map[reflect.Type]string),
	}
}

// Register adds each value's type under its derived name.
func (r *registry) Register(values ...any) {
	for _, v := range values {
		r.RegisterAs(Name(v), v)
	}
}

// RegisterAs adds the value's type under an explicit tag.
// Registering another type under an existing tag replaces it.
func (r *registry) RegisterAs(tag string, v any) {
	rtype := elemType(v)
	if rtype == nil {
		return
	}

	tag = lowTrim(tag)
	r.mu.Lock()
	if previous, ok := r.types[tag]; ok {
		delete(r.tags, previous)
	}
	r.types[tag] = rtype
	r.tags[rtype] = tag
	r.mu.Unlock()
}

// Deregister removes the value's type from the registry
func (r *registry) Deregister(v any) {
	rtype := elemType(v)
	r.mu.Lock()
	if tag, ok := r.tags[rtype]; ok {
		delete(r.types, tag)
		delete(r.tags, rtype)
	}
	r.mu.Unlock()
}

// Exists returns true when the value's type is registered
func (r *registry) Exists(v any) bool {
	_, ok := r.TagOf(v)
	return ok
}

// TypesMap returns a copy of the registered tags and types
func (r *registry) TypesMap() map[string]reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]reflect.Type, len(r.types))
	for tag, rtype := range r.types {
		out[tag] = rtype
	}
	return out
}

// TagOf returns the tag under which the value's type was registered
func (r *registry) TagOf(v any) (string, bool) {
	rtype := elemType(v)
	if rtype == nil {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	tag, ok := r.tags[rtype]
	return tag, ok
}

// TypeOf returns the type registered under the given tag
func (r *registry) TypeOf(tag string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out, ok := r.types[lowTrim(tag)]
	return out, ok
}

// elemType returns the type a value stands for. Pointers are dereferenced
// once so that new(T) and T{} resolve to the same entry.
func elemType(v any) reflect.Type {
	switch typ := v.(type) {
	case nil:
		return nil
	case reflect.Type:
		if typ.Kind() == reflect.Ptr {
			return typ.Elem()
		}
		return typ
	default:
		rtype := reflect.TypeOf(v)
		if rtype.Kind() == reflect.Ptr {
			return rtype.Elem()
		}
		return rtype
	}
}

// Name returns the derived tag of a given value
func Name(v any) string {
	rtype := elemType(v)
	if rtype == nil {
		return ""
	}
	return lowTrim(rtype.String())
}

// lowTrim trim any space and lower the string value
func lowTrim(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
