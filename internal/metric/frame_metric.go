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
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	framesSentCounterName     = "remoting_frames_sent"
	framesReceivedCounterName = "remoting_frames_received"
	bytesSentCounterName      = "remoting_bytes_sent"
	bytesReceivedCounterName  = "remoting_bytes_received"
	frameErrorsCounterName    = "remoting_frame_errors"
	bodySizeHistogramName     = "remoting_body_size"

	errorKindKey = "kind"
)

// FrameMetric defines the channel instrumentation
type FrameMetric struct {
	framesSent     metric.Int64Counter
	framesReceived metric.Int64Counter
	bytesSent      metric.Int64Counter
	bytesReceived  metric.Int64Counter
	frameErrors    metric.Int64Counter
	bodySize       metric.Int64Histogram
}

// NewFrameMetric creates an instance of FrameMetric
func NewFrameMetric(meter metric.Meter) (*FrameMetric, error) {
	frameMetric := new(FrameMetric)
	var err error

	if frameMetric.framesSent, err = meter.Int64Counter(
		framesSentCounterName,
		metric.WithDescription("Total number of frames written"),
	); err != nil {
		return nil, fmt.Errorf("failed to create framesSent instrument, %w", err)
	}

	if frameMetric.framesReceived, err = meter.Int64Counter(
		framesReceivedCounterName,
		metric.WithDescription("Total number of frames read"),
	); err != nil {
		return nil, fmt.Errorf("failed to create framesReceived instrument, %w", err)
	}

	if frameMetric.bytesSent, err = meter.Int64Counter(
		bytesSentCounterName,
		metric.WithDescription("Total number of body and stream bytes written"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, fmt.Errorf("failed to create bytesSent instrument, %w", err)
	}

	if frameMetric.bytesReceived, err = meter.Int64Counter(
		bytesReceivedCounterName,
		metric.WithDescription("Total number of body bytes read"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, fmt.Errorf("failed to create bytesReceived instrument, %w", err)
	}

	if frameMetric.frameErrors, err = meter.Int64Counter(
		frameErrorsCounterName,
		metric.WithDescription("Total number of frames rejected or aborted"),
	); err != nil {
		return nil, fmt.Errorf("failed to create frameErrors instrument, %w", err)
	}

	if frameMetric.bodySize, err = meter.Int64Histogram(
		bodySizeHistogramName,
		metric.WithDescription("Size of the frame bodies"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, fmt.Errorf("failed to create bodySize instrument, %w", err)
	}

	return frameMetric, nil
}

// RecordSent records one written frame and its byte count.
func (x *FrameMetric) RecordSent(ctx context.Context, bytes int64) {
	x.framesSent.Add(ctx, 1)
	x.bytesSent.Add(ctx, bytes)
	x.bodySize.Record(ctx, bytes)
}

// RecordReceived records one read frame and its byte count.
func (x *FrameMetric) RecordReceived(ctx context.Context, bytes int64) {
	x.framesReceived.Add(ctx, 1)
	x.bytesReceived.Add(ctx, bytes)
	x.bodySize.Record(ctx, bytes)
}

// RecordError records a rejected frame tagged with the error kind.
func (x *FrameMetric) RecordError(ctx context.Context, kind string) {
	x.frameErrors.Add(ctx, 1, metric.WithAttributes(attribute.String(errorKindKey, kind)))
}
