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

package serialization

import (
	"time"

	"github.com/tochemey/remoting/internal/types"
)

// typesRegistry resolves the class name of a parameter to the Go type its
// value is decoded into. Built-in scalar types are always registered.
var typesRegistry = newTypesRegistry()

func newTypesRegistry() types.Registry {
	registry := types.NewRegistry()
	registry.Register(
		"",
		false,
		int(0),
		int8(0),
		int16(0),
		int32(0),
		int64(0),
		uint(0),
		uint8(0),
		uint16(0),
		uint32(0),
		uint64(0),
		float32(0),
		float64(0),
		[]byte(nil),
		[]string(nil),
		[]int(nil),
		map[string]string(nil),
		map[string]any(nil),
		time.Time{},
		time.Duration(0),
	)
	return registry
}

// RegisterParameterTypes registers the Go types of parameter values so that
// the receiving side decodes them into the same concrete type. Pass a value of
// each type, typically a pointer to the zero value:
//
//	serialization.RegisterParameterTypes(new(Order), new(Invoice))
//
// Values of unregistered types are decoded generically (maps, slices and
// scalars). Protobuf messages never need to be registered.
func RegisterParameterTypes(values ...any) {
	typesRegistry.Register(values...)
}
