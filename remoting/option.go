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

package remoting

import (
	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/remoting/log"
	"github.com/tochemey/remoting/serialization"
	"github.com/tochemey/remoting/wire"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(*Config)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(config *Config)

// Apply applies the option
func (f OptionFunc) Apply(c *Config) {
	f(c)
}

// WithMaxMessageSize sets the largest header and the largest body a channel
// writes or accepts. Zero or a negative value disables the bound.
func WithMaxMessageSize(size int) Option {
	return OptionFunc(func(config *Config) {
		config.maxMessageSize = size
	})
}

// WithMaxStreamSize bounds the declared size of every stream-backed parameter
// a channel sends or accepts. Streams are not part of the message size, so the
// default is unbounded: a peer may then declare a section of any length and
// the channel reads it to the end.
func WithMaxStreamSize(size int64) Option {
	return OptionFunc(func(config *Config) {
		config.maxStreamSize = size
	})
}

// WithCompression sets the compression algorithm
func WithCompression(compression Compression) Option {
	return OptionFunc(func(config *Config) {
		config.compression = compression
	})
}

// WithSerializer sets the body serializer
func WithSerializer(serializer serialization.Serializer) Option {
	return OptionFunc(func(config *Config) {
		config.serializer = serializer
	})
}

// WithHeaderSerializer sets the header serializer. A custom serializer is
// responsible for its own sink configuration types: WithSinkConfiguration
// only feeds the default one.
func WithHeaderSerializer(serializer wire.HeaderSerializer) Option {
	return OptionFunc(func(config *Config) {
		config.headerSerializer = serializer
	})
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(config *Config) {
		config.logger = logger
	})
}

// WithMeterProvider sets the OpenTelemetry meter provider used for frame metrics
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(config *Config) {
		config.meterProvider = provider
	})
}

// WithSinkConfiguration registers sink configuration types. Pass a value of
// each type, typically a pointer to the zero value.
func WithSinkConfiguration(values ...any) Option {
	return OptionFunc(func(config *Config) {
		config.sinkConfigs.Register(values...)
	})
}
