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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/tochemey/remoting/log"
	"github.com/tochemey/remoting/serialization"
	"github.com/tochemey/remoting/wire"
)

func TestConfig(t *testing.T) {
	t.Run("With defaults", func(t *testing.T) {
		config := DefaultConfig()
		require.NoError(t, config.Validate())
		assert.Equal(t, DefaultMaxMessageSize, config.MaxMessageSize())
		assert.Equal(t, NoCompression, config.Compression())
		assert.IsType(t, &serialization.CBORSerializer{}, config.Serializer())
		assert.IsType(t, &wire.CBORHeaderSerializer{}, config.HeaderSerializer())
		assert.Equal(t, log.DiscardLogger, config.Logger())
		assert.Nil(t, config.MeterProvider())
		assert.NotNil(t, config.SinkConfigurations())
		assert.Zero(t, config.MaxStreamSize())
	})
	t.Run("With options", func(t *testing.T) {
		provider := noop.NewMeterProvider()
		headerSerializer := wire.NewCBORHeaderSerializer(nil)
		config := NewConfig(
			WithMaxMessageSize(0),
			WithMaxStreamSize(4096),
			WithCompression(BrotliCompression),
			WithHeaderSerializer(headerSerializer),
			WithMeterProvider(provider),
			WithSinkConfiguration(new(routing)),
		)
		require.NoError(t, config.Validate())
		assert.Zero(t, config.MaxMessageSize())
		assert.EqualValues(t, 4096, config.MaxStreamSize())
		assert.Equal(t, BrotliCompression, config.Compression())
		assert.Same(t, headerSerializer, config.HeaderSerializer())
		assert.Equal(t, provider, config.MeterProvider())
		assert.True(t, config.SinkConfigurations().Registered(&routing{}))
	})
	t.Run("With nil serializer", func(t *testing.T) {
		config := NewConfig(WithSerializer(nil))
		assert.EqualError(t, config.Validate(), "serializer is required")
	})
	t.Run("With nil logger", func(t *testing.T) {
		config := NewConfig(WithLogger(nil))
		assert.EqualError(t, config.Validate(), "logger is required")
	})
	t.Run("With invalid compression", func(t *testing.T) {
		config := NewConfig(WithCompression(Compression(-1)))
		assert.EqualError(t, config.Validate(), "invalid compression")
		assert.Equal(t, "Compression(-1)", Compression(-1).String())
	})
}
