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
	"bytes"
	"io"
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travisjeffery/go-dynaport"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/types/known/wrapperspb"

	gerrors "github.com/tochemey/remoting/errors"
	"github.com/tochemey/remoting/log"
	"github.com/tochemey/remoting/message"
	"github.com/tochemey/remoting/serialization"
)

type routing struct {
	Queue    string
	Priority int
}

func newChannelPair(t *testing.T, opts ...Option) (*Channel, *Channel) {
	t.Helper()
	left, right := net.Pipe()

	client, err := NewChannel(left, NewConfig(opts...))
	require.NoError(t, err)
	server, err := NewChannel(right, NewConfig(opts...))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
		_ = server.Close()
	})
	return client, server
}

// gatedSerializer blocks Serialize until release is closed
type gatedSerializer struct {
	serialization.Serializer
	entered chan struct{}
	release chan struct{}
}

func (s *gatedSerializer) Serialize(msg message.Message) ([]byte, error) {
	close(s.entered)
	<-s.release
	return s.Serializer.Serialize(msg)
}

func newParameter(t *testing.T, id int, value any) *message.MethodParameter {
	t.Helper()
	parameter, err := message.NewParameter(id, value)
	require.NoError(t, err)
	return parameter
}

func TestChannel(t *testing.T) {
	t.Run("With request and response", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		client, server := newChannelPair(t, WithLogger(log.DiscardLogger), WithMeterProvider(noop.NewMeterProvider()))

		request, err := message.NewRequestMessage("com.example.Calculator", "add",
			[]*message.MethodParameter{newParameter(t, 0, 2), newParameter(t, 1, 3)},
			message.WithContext(map[string]any{"caller": "test"}))
		require.NoError(t, err)

		group := new(errgroup.Group)
		group.Go(func() error {
			envelope, err := server.Receive()
			if err != nil {
				return err
			}

			received := envelope.Message().(*message.RequestMessage)
			params := received.Parameters()
			sum := params[0].Value().(int) + params[1].Value().(int)

			value, err := message.NewParameter(0, sum)
			if err != nil {
				return err
			}
			response, err := received.NewResponse(value)
			if err != nil {
				return err
			}
			return server.Send(envelope.SinkID(), response)
		})

		require.NoError(t, client.Send("calculator", request))

		envelope, err := client.Receive()
		require.NoError(t, err)
		require.NoError(t, group.Wait())

		assert.Equal(t, "calculator", envelope.SinkID())
		assert.Nil(t, envelope.SinkConfiguration())

		response, ok := envelope.Message().(*message.ResponseMessage)
		require.True(t, ok)
		assert.Equal(t, request.CorrelationID(), response.CorrelationID())
		assert.Equal(t, 5, response.ReturnValue().Value())

		require.NoError(t, client.Close())
		require.NoError(t, server.Close())
	})
	t.Run("With stream parameters", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		client, server := newChannelPair(t)

		first := bytes.Repeat([]byte("a"), 70_000)
		second := []byte("second stream")
		request, err := message.NewRequestMessage("com.example.Files", "upload", []*message.MethodParameter{
			newParameter(t, 0, bytes.NewReader(first)),
			newParameter(t, 1, "report.txt"),
			newParameter(t, 2, bytes.NewReader(second)),
		})
		require.NoError(t, err)

		group := new(errgroup.Group)
		group.Go(func() error {
			return client.Send("files", request)
		})

		envelope, err := server.Receive()
		require.NoError(t, err)

		params := envelope.Message().(*message.RequestMessage).Parameters()
		require.Len(t, params, 3)
		assert.Equal(t, "report.txt", params[1].Value())
		assert.EqualValues(t, len(first), params[0].Size())
		assert.EqualValues(t, len(second), params[2].Size())

		// reading the second stream first skips the bytes of the first one
		stream, ok := params[2].Stream()
		require.True(t, ok)
		content, err := io.ReadAll(stream)
		require.NoError(t, err)
		assert.Equal(t, second, content)

		require.NoError(t, group.Wait())

		// the sender cleared its values
		sent := request.Parameters()
		assert.Nil(t, sent[0].Value())
		assert.Equal(t, message.ParameterConsumed, sent[0].State())
		assert.EqualValues(t, len(first), sent[0].Size())
		assert.Equal(t, "report.txt", sent[1].Value())
	})
	t.Run("With unread stream bytes before the next message", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		client, server := newChannelPair(t)

		upload, err := message.NewRequestMessage("c", "upload", []*message.MethodParameter{
			newParameter(t, 0, bytes.NewReader(bytes.Repeat([]byte{0x00}, 4096))),
		})
		require.NoError(t, err)
		ping, err := message.NewRequestMessage("c", "ping", nil, message.WithMessageType(message.DatagramOneway))
		require.NoError(t, err)

		group := new(errgroup.Group)
		group.Go(func() error {
			if err := client.Send("sink", upload); err != nil {
				return err
			}
			return client.Send("sink", ping)
		})

		envelope, err := server.Receive()
		require.NoError(t, err)
		assert.Equal(t, "upload", envelope.Message().(*message.RequestMessage).MethodName())

		envelope, err = server.Receive()
		require.NoError(t, err)
		assert.Equal(t, "ping", envelope.Message().(*message.RequestMessage).MethodName())
		assert.Equal(t, message.DatagramOneway, envelope.Message().Type())

		require.NoError(t, group.Wait())
	})
	t.Run("With a stream response", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		client, server := newChannelPair(t)

		payload := []byte("downloaded content")
		response, err := message.NewResponseMessage("id-1", newParameter(t, 0, bytes.NewReader(payload)))
		require.NoError(t, err)

		group := new(errgroup.Group)
		group.Go(func() error {
			return server.Send("downloads", response)
		})

		envelope, err := client.Receive()
		require.NoError(t, err)

		stream, ok := envelope.Message().(*message.ResponseMessage).ReturnValue().Stream()
		require.True(t, ok)
		content, err := io.ReadAll(stream)
		require.NoError(t, err)
		assert.Equal(t, payload, content)
		require.NoError(t, group.Wait())
	})
	t.Run("With a stream shorter than declared", func(t *testing.T) {
		reader := bytes.NewReader([]byte("0123456789"))
		parameter := newParameter(t, 0, reader)
		// consume part of the stream after its size was taken
		_, err := reader.Read(make([]byte, 4))
		require.NoError(t, err)

		request, err := message.NewRequestMessage("c", "upload", []*message.MethodParameter{parameter})
		require.NoError(t, err)

		sink := new(bytes.Buffer)
		channel, err := NewChannel(sink, nil)
		require.NoError(t, err)

		err = channel.Send("sink", request)
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrStreamLengthMismatch)
	})
	t.Run("With a stream parameter without stream", func(t *testing.T) {
		placeholder, err := message.NewStreamPlaceholder(0, "payload", 3)
		require.NoError(t, err)
		request, err := message.NewRequestMessage("c", "upload", []*message.MethodParameter{placeholder})
		require.NoError(t, err)

		sink := new(bytes.Buffer)
		channel, err := NewChannel(sink, nil)
		require.NoError(t, err)

		err = channel.Send("sink", request)
		assert.ErrorIs(t, err, gerrors.ErrInvalidArgument)
		assert.Zero(t, sink.Len())
	})
	t.Run("With a sink configuration", func(t *testing.T) {
		stream := new(bytes.Buffer)
		channel, err := NewChannel(stream, NewConfig(WithSinkConfiguration(new(routing))))
		require.NoError(t, err)

		ack, err := message.NewAcknowledgeMessage("id-9")
		require.NoError(t, err)

		require.NoError(t, channel.SendWithConfiguration("sink", &routing{Queue: "q1", Priority: 2}, ack))
		require.NoError(t, channel.SendWithConfiguration("sink", wrapperspb.String("fast"), ack))

		envelope, err := channel.Receive()
		require.NoError(t, err)
		assert.Equal(t, &routing{Queue: "q1", Priority: 2}, envelope.SinkConfiguration())
		assert.Equal(t, "id-9", envelope.Message().CorrelationID())
		assert.Equal(t, "remoting.routing", envelope.Header().SinkConfigurationType())

		envelope, err = channel.Receive()
		require.NoError(t, err)
		assert.Equal(t, "fast", envelope.SinkConfiguration().(*wrapperspb.StringValue).GetValue())
	})
	t.Run("With an unregistered sink configuration", func(t *testing.T) {
		stream := new(bytes.Buffer)
		channel, err := NewChannel(stream, nil)
		require.NoError(t, err)

		ack, err := message.NewAcknowledgeMessage("id")
		require.NoError(t, err)

		err = channel.SendWithConfiguration("sink", &routing{}, ack)
		assert.ErrorIs(t, err, gerrors.ErrSinkConfigurationNotRegistered)
		assert.Zero(t, stream.Len())
	})
	t.Run("With a message over the maximum size", func(t *testing.T) {
		stream := new(bytes.Buffer)
		channel, err := NewChannel(stream, NewConfig(WithMaxMessageSize(64)))
		require.NoError(t, err)

		request, err := message.NewRequestMessage("c", "m", []*message.MethodParameter{
			newParameter(t, 0, string(bytes.Repeat([]byte("x"), 128))),
		})
		require.NoError(t, err)

		err = channel.Send("sink", request)
		require.Error(t, err)
		assert.True(t, gerrors.IsSecurityViolation(err))
		assert.Zero(t, stream.Len())
	})
	t.Run("With a peer that hangs up", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		client, server := newChannelPair(t)
		require.NoError(t, client.Close())

		_, err := server.Receive()
		require.Error(t, err)
		assert.True(t, gerrors.IsConnectionClosed(err))
	})
	t.Run("With a closed channel", func(t *testing.T) {
		client, _ := newChannelPair(t)
		require.NoError(t, client.Close())
		require.NoError(t, client.Close())
		assert.True(t, client.Closed())

		ack, err := message.NewAcknowledgeMessage("id")
		require.NoError(t, err)

		assert.ErrorIs(t, client.Send("sink", ack), gerrors.ErrChannelClosed)
		_, err = client.Receive()
		assert.ErrorIs(t, err, gerrors.ErrChannelClosed)
	})
	t.Run("With Close during Send", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		serializer := &gatedSerializer{
			Serializer: serialization.NewCBORSerializer(),
			entered:    make(chan struct{}),
			release:    make(chan struct{}),
		}

		sent := new(bytes.Buffer)
		channel, err := NewChannel(sent, NewConfig(WithCompression(GzipCompression), WithSerializer(serializer)))
		require.NoError(t, err)

		ack, err := message.NewAcknowledgeMessage("id")
		require.NoError(t, err)

		result := make(chan error, 1)
		go func() { result <- channel.Send("sink", ack) }()

		<-serializer.entered
		require.NoError(t, channel.Close())
		closedLen := sent.Len()

		unrelated := new(bytes.Buffer)
		other, err := NewChannel(unrelated, NewConfig(WithCompression(GzipCompression)))
		require.NoError(t, err)

		close(serializer.release)
		assert.ErrorIs(t, <-result, gerrors.ErrChannelClosed)
		assert.Zero(t, unrelated.Len())
		assert.Equal(t, closedLen, sent.Len())
		require.NoError(t, other.Close())
	})
	t.Run("With Close before a stream is read", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		client, server := newChannelPair(t)

		request, err := message.NewRequestMessage("c", "upload", []*message.MethodParameter{
			newParameter(t, 0, bytes.NewReader([]byte("payload"))),
		})
		require.NoError(t, err)

		group := new(errgroup.Group)
		group.Go(func() error { return client.Send("files", request) })

		envelope, err := server.Receive()
		require.NoError(t, err)

		// the stream bytes are still in flight: closing unblocks the sender
		require.NoError(t, server.Close())
		require.Error(t, group.Wait())

		stream, ok := envelope.Message().(*message.RequestMessage).Parameters()[0].Stream()
		require.True(t, ok)
		_, err = stream.Read(make([]byte, 8))
		assert.ErrorIs(t, err, gerrors.ErrChannelClosed)
	})
	t.Run("With a stream over the maximum size", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		client, _ := newChannelPair(t, WithMaxStreamSize(16))

		request, err := message.NewRequestMessage("c", "upload", []*message.MethodParameter{
			newParameter(t, 0, bytes.NewReader(make([]byte, 17))),
		})
		require.NoError(t, err)

		err = client.Send("files", request)
		require.Error(t, err)
		assert.True(t, gerrors.IsSecurityViolation(err))
		assert.Equal(t, message.ParameterStreamBacked, request.Parameters()[0].State())
	})
	t.Run("With a declared stream over the receiver maximum", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		left, right := net.Pipe()
		client, err := NewChannel(left, NewConfig())
		require.NoError(t, err)
		server, err := NewChannel(right, NewConfig(WithMaxStreamSize(16)))
		require.NoError(t, err)

		request, err := message.NewRequestMessage("c", "upload", []*message.MethodParameter{
			newParameter(t, 0, bytes.NewReader(make([]byte, 1024))),
		})
		require.NoError(t, err)

		group := new(errgroup.Group)
		group.Go(func() error { return client.Send("files", request) })

		_, err = server.Receive()
		require.Error(t, err)
		assert.True(t, gerrors.IsSecurityViolation(err))

		require.NoError(t, server.Close())
		require.Error(t, group.Wait())
		require.NoError(t, client.Close())
	})
	t.Run("With nil stream", func(t *testing.T) {
		channel, err := NewChannel(nil, nil)
		assert.Nil(t, channel)
		assert.ErrorIs(t, err, gerrors.ErrInvalidArgument)
	})
	t.Run("With invalid config", func(t *testing.T) {
		_, err := NewChannel(new(bytes.Buffer), NewConfig(WithCompression(Compression(42))))
		assert.ErrorIs(t, err, gerrors.ErrInvalidArgument)
	})
}

func TestChannelCompression(t *testing.T) {
	compressions := []Compression{NoCompression, GzipCompression, ZstdCompression, BrotliCompression}
	for _, compression := range compressions {
		t.Run(compression.String(), func(t *testing.T) {
			client, server := newChannelPair(t, WithCompression(compression))

			payload := bytes.Repeat([]byte("compressible "), 2048)
			group := new(errgroup.Group)
			group.Go(func() error {
				for index := range 3 {
					request, err := message.NewRequestMessage("c", "m"+strconv.Itoa(index), []*message.MethodParameter{
						newParameter(t, 0, index),
						newParameter(t, 1, bytes.NewReader(payload)),
					})
					if err != nil {
						return err
					}
					if err := client.Send("sink", request); err != nil {
						return err
					}
				}
				return nil
			})

			for index := range 3 {
				envelope, err := server.Receive()
				require.NoError(t, err)

				request := envelope.Message().(*message.RequestMessage)
				assert.Equal(t, "m"+strconv.Itoa(index), request.MethodName())
				assert.Equal(t, index, request.Parameters()[0].Value())

				stream, ok := request.Parameters()[1].Stream()
				require.True(t, ok)
				content, err := io.ReadAll(stream)
				require.NoError(t, err)
				assert.Equal(t, payload, content)
			}

			require.NoError(t, group.Wait())
		})
	}
}

func TestChannelOverTCP(t *testing.T) {
	ports := dynaport.Get(1)
	address := net.JoinHostPort("127.0.0.1", strconv.Itoa(ports[0]))

	listener, err := net.Listen("tcp", address)
	require.NoError(t, err)
	defer listener.Close()

	config := NewConfig(WithCompression(ZstdCompression), WithMaxMessageSize(1<<20))

	group := new(errgroup.Group)
	group.Go(func() error {
		conn, err := listener.Accept()
		if err != nil {
			return err
		}

		channel, err := NewChannel(conn, config)
		if err != nil {
			_ = conn.Close()
			return err
		}
		defer channel.Close()

		envelope, err := channel.Receive()
		if err != nil {
			return err
		}

		request := envelope.Message().(*message.RequestMessage)
		ack, err := request.NewAcknowledge()
		if err != nil {
			return err
		}
		return channel.Send(envelope.SinkID(), ack)
	})

	conn, err := net.Dial("tcp", address)
	require.NoError(t, err)

	channel, err := NewChannel(conn, config)
	require.NoError(t, err)

	request, err := message.NewRequestMessage("com.example.Events", "publish",
		[]*message.MethodParameter{newParameter(t, 0, wrapperspb.String("event"))},
		message.WithMessageType(message.Datagram),
		message.WithInvokeMode(message.InvokeAcknowledged))
	require.NoError(t, err)

	require.NoError(t, channel.Send("events", request))

	envelope, err := channel.Receive()
	require.NoError(t, err)
	assert.Equal(t, message.Acknowledge, envelope.Message().Type())
	assert.Equal(t, request.CorrelationID(), envelope.Message().CorrelationID())

	require.NoError(t, group.Wait())
	require.NoError(t, channel.Close())
}
