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

	"github.com/tochemey/remoting/internal/size"
	"github.com/tochemey/remoting/internal/validation"
	"github.com/tochemey/remoting/log"
	"github.com/tochemey/remoting/serialization"
	"github.com/tochemey/remoting/wire"
)

// DefaultMaxMessageSize is the bound applied to headers and bodies when
// WithMaxMessageSize is not used.
const DefaultMaxMessageSize = 16 * size.MB

// Config defines how a Channel frames, encodes and observes its traffic.
type Config struct {
	maxMessageSize   int
	maxStreamSize    int64
	compression      Compression
	serializer       serialization.Serializer
	headerSerializer wire.HeaderSerializer
	sinkConfigs      *wire.SinkConfigRegistry
	logger           log.Logger
	meterProvider    metric.MeterProvider
}

var _ validation.Validator = (*Config)(nil)

// NewConfig returns a Config with the given options applied on top of the
// defaults: a 16 MiB bound, no compression, CBOR bodies and CBOR headers.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		maxMessageSize: DefaultMaxMessageSize,
		compression:    NoCompression,
		serializer:     serialization.NewCBORSerializer(),
		sinkConfigs:    wire.NewSinkConfigRegistry(),
		logger:         log.DiscardLogger,
	}

	for _, opt := range opts {
		opt.Apply(cfg)
	}

	if cfg.headerSerializer == nil {
		cfg.headerSerializer = wire.NewCBORHeaderSerializer(cfg.sinkConfigs)
	}
	return cfg
}

// DefaultConfig returns the default Config
func DefaultConfig() *Config {
	return NewConfig()
}

// MaxMessageSize returns the bound on header and body sizes.
// Zero or less means unbounded.
func (x *Config) MaxMessageSize() int {
	return x.maxMessageSize
}

// MaxStreamSize returns the bound on the declared size of each stream-backed
// parameter. Zero or less means unbounded.
func (x *Config) MaxStreamSize() int64 {
	return x.maxStreamSize
}

// Compression returns the compression algorithm
func (x *Config) Compression() Compression {
	return x.compression
}

// Serializer returns the body serializer
func (x *Config) Serializer() serialization.Serializer {
	return x.serializer
}

// HeaderSerializer returns the header serializer
func (x *Config) HeaderSerializer() wire.HeaderSerializer {
	return x.headerSerializer
}

// SinkConfigurations returns the registry of sink configuration types
func (x *Config) SinkConfigurations() *wire.SinkConfigRegistry {
	return x.sinkConfigs
}

// Logger returns the logger
func (x *Config) Logger() log.Logger {
	return x.logger
}

// MeterProvider returns the meter provider, or nil when none was set.
func (x *Config) MeterProvider() metric.MeterProvider {
	return x.meterProvider
}

// Validate checks the configuration
func (x *Config) Validate() error {
	return validation.
		New(validation.FailFast()).
		AddAssertion(x.compression.valid(), "invalid compression").
		AddAssertion(x.serializer != nil, "serializer is required").
		AddAssertion(x.headerSerializer != nil, "header serializer is required").
		AddAssertion(x.logger != nil, "logger is required").
		Validate()
}
