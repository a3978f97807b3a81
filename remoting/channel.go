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
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"go.uber.org/atomic"

	gerrors "github.com/tochemey/remoting/errors"
	"github.com/tochemey/remoting/internal/errorschain"
	"github.com/tochemey/remoting/internal/metric"
	"github.com/tochemey/remoting/log"
	"github.com/tochemey/remoting/message"
	"github.com/tochemey/remoting/wire"
)

// Channel carries messages over one duplex byte stream.
//
// Every message travels as one frame followed, for each stream-backed
// parameter in parameter order, by exactly Size bytes copied from the
// parameter stream. Those bytes never go through the serializer.
//
// A Channel is safe for concurrent use: writes are serialized by one lock
// and reads by another, so one goroutine may Send while another Receives.
type Channel struct {
	raw        io.ReadWriter
	stream     io.ReadWriter
	compressed io.ReadWriteCloser

	config  *Config
	codec   *wire.Codec
	logger  log.Logger
	metrics *metric.FrameMetric

	writeMu sync.Mutex
	readMu  sync.Mutex
	// last is the last stream section of the previously received message
	last *section

	closed *atomic.Bool
}

// NewChannel binds a Channel to stream. A nil config means DefaultConfig.
// When compression is configured the stream is wrapped and every byte written
// or read goes through the compressor.
func NewChannel(stream io.ReadWriter, config *Config) (*Channel, error) {
	if stream == nil {
		return nil, gerrors.NewErrInvalidArgument("stream is nil")
	}

	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", gerrors.ErrInvalidArgument, err)
	}

	frameMetric, err := metric.NewFrameMetric(metric.New(metric.WithMeterProvider(config.meterProvider)).Meter())
	if err != nil {
		return nil, fmt.Errorf("failed to create channel metrics: %w", err)
	}

	channel := &Channel{
		raw:     stream,
		stream:  stream,
		config:  config,
		logger:  config.logger,
		metrics: frameMetric,
		closed:  atomic.NewBool(false),
		codec: wire.NewCodec(
			wire.WithHeaderSerializer(config.headerSerializer),
			wire.WithLogger(config.logger),
		),
	}

	wrapper, err := config.compression.streamWrapper()
	if err != nil {
		return nil, err
	}

	if wrapper != nil {
		compressed, err := wrapper.Wrap(stream)
		if err != nil {
			return nil, fmt.Errorf("failed to wrap stream with %s compression: %w", config.compression, err)
		}
		channel.compressed = compressed
		channel.stream = compressed
	}

	return channel, nil
}

// Send writes msg for the given sink.
func (c *Channel) Send(sinkID string, msg message.Message) error {
	return c.SendWithConfiguration(sinkID, nil, msg)
}

// SendWithConfiguration writes msg for the given sink with a sink configuration
// in its header. The configuration type must be registered with WithSinkConfiguration
// unless it is a protobuf message.
//
// The stream of every stream-backed parameter is copied to the wire and the
// parameter value is cleared. A stream that ends before its declared size fails
// with ErrStreamLengthMismatch; the peer can no longer find the next frame
// and the channel should be closed.
func (c *Channel) SendWithConfiguration(sinkID string, sinkConfig any, msg message.Message) error {
	if c.closed.Load() {
		return gerrors.ErrChannelClosed
	}

	if msg == nil {
		return gerrors.NewErrInvalidArgument("message is nil")
	}

	ctx := context.Background()
	logger := c.logger.With("sinkID", sinkID, "correlationID", msg.CorrelationID())

	streams, err := streamParameters(msg)
	if err != nil {
		return err
	}

	for _, parameter := range streams {
		if err := c.checkStreamSize(parameter); err != nil {
			c.metrics.RecordError(ctx, errorKind(err))
			logger.Warnf("refusing stream parameter: %v", err)
			return err
		}
	}

	body, err := c.config.serializer.Serialize(msg)
	if err != nil {
		c.metrics.RecordError(ctx, errorKind(err))
		logger.Warnf("failed to serialize %s message: %v", msg.Type(), err)
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	// Close may have run while the body was serialized
	if c.closed.Load() {
		return gerrors.ErrChannelClosed
	}

	if err := c.codec.Write(c.stream, body, sinkID, sinkConfig, c.config.maxMessageSize); err != nil {
		c.metrics.RecordError(ctx, errorKind(err))
		logger.Warnf("failed to write %s message: %v", msg.Type(), err)
		return err
	}

	written := int64(len(body))
	for _, parameter := range streams {
		reader, _ := parameter.Stream()
		copied, err := io.CopyN(c.stream, reader, parameter.Size())
		written += copied
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = fmt.Errorf("parameter %d declared %d bytes, stream yielded %d: %w",
					parameter.ID(), parameter.Size(), copied, gerrors.ErrStreamLengthMismatch)
			}
			c.metrics.RecordError(ctx, errorKind(err))
			logger.Warnf("failed to write stream of parameter %d: %v", parameter.ID(), err)
			return err
		}
		parameter.ClearValue()
	}

	c.metrics.RecordSent(ctx, written)
	if logger.Enabled(log.DebugLevel) {
		logger.Debugf("sent %s message (%d body bytes, %d stream parameters)", msg.Type(), len(body), len(streams))
	}
	return nil
}

// Receive reads the next message.
//
// Unread bytes of the stream-backed parameters of the previous message are
// discarded first. Every stream-backed parameter of the returned message is
// attached to a reader of exactly its declared size, valid until the next call
// to Receive.
func (c *Channel) Receive() (*Envelope, error) {
	if c.closed.Load() {
		return nil, gerrors.ErrChannelClosed
	}

	ctx := context.Background()

	c.readMu.Lock()
	defer c.readMu.Unlock()

	if c.closed.Load() {
		return nil, gerrors.ErrChannelClosed
	}

	if c.last != nil {
		if err := c.last.drain(); err != nil {
			c.metrics.RecordError(ctx, errorKind(err))
			c.logger.Warnf("failed to skip unread stream bytes: %v", err)
			return nil, err
		}
		c.last = nil
	}

	frame, err := c.codec.Read(c.stream, c.config.maxMessageSize)
	if err != nil {
		c.metrics.RecordError(ctx, errorKind(err))
		if gerrors.IsConnectionClosed(err) {
			c.logger.Debugf("stream closed: %v", err)
			return nil, err
		}
		c.logger.Warnf("failed to read frame: %v", err)
		return nil, err
	}

	logger := c.logger.With("sinkID", frame.SinkID())
	msg, err := c.config.serializer.Deserialize(frame.Data())
	if err != nil {
		c.metrics.RecordError(ctx, errorKind(err))
		logger.Warnf("failed to deserialize message: %v", err)
		return nil, err
	}

	received := int64(len(frame.Data()))
	for _, parameter := range declaredStreams(msg) {
		if err := c.checkStreamSize(parameter); err != nil {
			c.metrics.RecordError(ctx, errorKind(err))
			logger.Warnf("refusing stream section: %v", err)
			return nil, err
		}
		c.last = newSection(c, c.last, parameter.Size())
		if err := parameter.AttachStream(c.last); err != nil {
			return nil, err
		}
		received += parameter.Size()
	}

	c.metrics.RecordReceived(ctx, received)
	if logger.Enabled(log.DebugLevel) {
		logger.Debugf("received %s message correlationID=(%s)", msg.Type(), msg.CorrelationID())
	}

	return &Envelope{header: frame.MessageHeader, message: msg}, nil
}

// Close closes the stream when it is an io.Closer and releases the compressor.
// Send and Receive fail with ErrChannelClosed afterwards. Closing twice is a no-op.
//
// Close waits for in-flight Send and Receive calls. When the stream is not an
// io.Closer, a call blocked on the stream blocks Close too.
func (c *Channel) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	chain := errorschain.New(errorschain.ReturnAll())
	if closer, ok := c.raw.(io.Closer); ok {
		chain.AddClosers(closer)
	}

	c.writeMu.Lock()
	c.readMu.Lock()
	defer c.readMu.Unlock()
	defer c.writeMu.Unlock()

	if c.compressed != nil {
		// the stream is closed: flushing the compressor trailer can only fail
		if err := c.compressed.Close(); err != nil && !isStreamGone(err) {
			chain.AddError(err)
		}
	}

	c.logger.Debug("channel closed")
	return chain.Error()
}

// Closed reports whether Close was called
func (c *Channel) Closed() bool {
	return c.closed.Load()
}

// checkStreamSize enforces the configured bound on a stream section
func (c *Channel) checkStreamSize(parameter *message.MethodParameter) error {
	limit := c.config.maxStreamSize
	if limit <= 0 || parameter.Size() <= limit {
		return nil
	}
	return gerrors.NewErrMessageTooLarge(fmt.Sprintf("stream parameter %d", parameter.ID()), int(parameter.Size()), int(limit))
}

// streamParameters returns the stream-backed parameters msg writes after its frame.
// Each of them must hold a stream.
func streamParameters(msg message.Message) ([]*message.MethodParameter, error) {
	parameters := declaredStreams(msg)
	for _, parameter := range parameters {
		if _, ok := parameter.Stream(); !ok {
			return nil, gerrors.NewErrInvalidArgument(
				fmt.Sprintf("stream parameter %d (%s) has no stream attached", parameter.ID(), parameter.ClassName()))
		}
	}
	return parameters, nil
}

// declaredStreams returns the stream-backed parameters of a message in wire order.
func declaredStreams(msg message.Message) []*message.MethodParameter {
	switch x := msg.(type) {
	case *message.RequestMessage:
		return x.StreamParameters()
	case *message.ResponseMessage:
		if value := x.ReturnValue(); value != nil && value.IsStream() {
			return []*message.MethodParameter{value}
		}
	}
	return nil
}

// isStreamGone reports whether err comes from writing to a closed stream
func isStreamGone(err error) bool {
	return errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

// errorKind labels an error for the frame error counter
func errorKind(err error) string {
	switch {
	case gerrors.IsFramingViolation(err):
		return "framing"
	case gerrors.IsSecurityViolation(err):
		return "security"
	case gerrors.IsConnectionClosed(err):
		return "connection"
	case errors.Is(err, gerrors.ErrStreamLengthMismatch):
		return "stream_length"
	case errors.Is(err, gerrors.ErrSerializationFailed), errors.Is(err, gerrors.ErrDeserializationFailed):
		return "serialization"
	case errors.Is(err, gerrors.ErrInvalidArgument), errors.Is(err, gerrors.ErrSinkConfigurationNotRegistered):
		return "argument"
	default:
		return "io"
	}
}
