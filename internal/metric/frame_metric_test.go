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

package metric

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestNewFrameMetric(t *testing.T) {
	t.Run("With noop meter", func(t *testing.T) {
		frameMetric, err := NewFrameMetric(noop.NewMeterProvider().Meter("test"))
		require.NoError(t, err)
		require.NotNil(t, frameMetric)
		assert.NotNil(t, frameMetric.framesSent)
		assert.NotNil(t, frameMetric.framesReceived)
		assert.NotNil(t, frameMetric.bytesSent)
		assert.NotNil(t, frameMetric.bytesReceived)
		assert.NotNil(t, frameMetric.frameErrors)
		assert.NotNil(t, frameMetric.bodySize)

		ctx := context.Background()
		frameMetric.RecordSent(ctx, 12)
		frameMetric.RecordReceived(ctx, 12)
		frameMetric.RecordError(ctx, "framing")
	})
	t.Run("With failing meter", func(t *testing.T) {
		frameMetric, err := NewFrameMetric(&failingMeter{Meter: noop.NewMeterProvider().Meter("test")})
		require.Error(t, err)
		assert.Nil(t, frameMetric)
		assert.Contains(t, err.Error(), "failed to create framesSent instrument")
	})
}

type failingMeter struct {
	metric.Meter
}

func (m *failingMeter) Int64Counter(string, ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	return nil, errors.New("instrument failure")
}
