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

package wire

import (
	"github.com/tochemey/remoting/internal/bufferpool"
	"github.com/tochemey/remoting/log"
)

// Option is the interface that applies a Codec option.
type Option interface {
	// Apply sets the Option value of a Codec.
	Apply(*Codec)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Codec)

// Apply applies the option
func (f OptionFunc) Apply(c *Codec) {
	f(c)
}

// WithHeaderSerializer sets the serializer used for headers.
// The default is a CBORHeaderSerializer with an empty registry.
func WithHeaderSerializer(serializer HeaderSerializer) Option {
	return OptionFunc(func(c *Codec) {
		if serializer != nil {
			c.serializer = serializer
		}
	})
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(c *Codec) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithBufferPool sets the pool header scratch buffers are taken from.
// Codecs of the same process can share one pool.
func WithBufferPool(pool *bufferpool.Pool) Option {
	return OptionFunc(func(c *Codec) {
		if pool != nil {
			c.pool = pool
		}
	})
}
