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
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"

	gerrors "github.com/tochemey/remoting/errors"
	"github.com/tochemey/remoting/internal/bufferpool"
	"github.com/tochemey/remoting/internal/size"
	"github.com/tochemey/remoting/log"
)

const (
	// terminator ends the length prefix of a frame
	terminator byte = 0x00

	// maxPrefixDigits bounds the length prefix when no maximum message size
	// is configured. A longer prefix cannot be parsed into an int64.
	maxPrefixDigits = 19

	// readChunk is the largest body allocated up front. Bigger bodies grow
	// as the bytes arrive so that a lying peer cannot force a huge allocation.
	readChunk = int64(size.MB)
)

// Codec frames a header and its body onto a byte stream:
//
//	<ASCII decimal length of the header bytes> 0x00 <header bytes> <body bytes>
//
// The body length travels in the header only. Both lengths are declared, and
// the codec always reads exactly the declared number of bytes.
//
// A Codec holds no per-stream state and is safe for concurrent use on
// different streams. A single stream must not be read, or written, from two
// goroutines at the same time.
type Codec struct {
	serializer HeaderSerializer
	logger     log.Logger
	pool       *bufferpool.Pool
}

// defaultCodec backs the package-level Read and Write
var defaultCodec = NewCodec()

// NewCodec creates a Codec
func NewCodec(opts ...Option) *Codec {
	codec := &Codec{
		serializer: NewCBORHeaderSerializer(nil),
		logger:     log.DiscardLogger,
		pool:       bufferpool.New(),
	}

	for _, opt := range opts {
		opt.Apply(codec)
	}
	return codec
}

// Write frames body for the given sink with the default Codec.
func Write(writer io.Writer, body []byte, sinkID string, sinkConfig any, maxMessageSize int) error {
	return defaultCodec.Write(writer, body, sinkID, sinkConfig, maxMessageSize)
}

// Read reads one frame with the default Codec.
func Read(reader io.Reader, maxMessageSize int) (*MessageHeaderWithBody, error) {
	return defaultCodec.Read(reader, maxMessageSize)
}

// Write frames body for the given sink onto writer.
//
// A maxMessageSize of zero or less disables both size bounds. Otherwise a body
// or an encoded header bigger than maxMessageSize fails with ErrMessageTooLarge
// and nothing is written.
func (c *Codec) Write(writer io.Writer, body []byte, sinkID string, sinkConfig any, maxMessageSize int) error {
	if writer == nil {
		return gerrors.NewErrInvalidArgument("writer is nil")
	}

	if body == nil {
		return gerrors.NewErrInvalidArgument("body is nil")
	}

	if maxMessageSize > 0 && len(body) > maxMessageSize {
		c.logger.Debugf("refusing to write body of %d bytes to sink=(%s)", len(body), sinkID)
		return gerrors.NewErrMessageTooLarge("body", len(body), maxMessageSize)
	}

	header, err := NewMessageHeader(sinkID, int64(len(body)), sinkConfig)
	if err != nil {
		return err
	}

	headerBytes, err := c.serializer.SerializeHeader(header)
	if err != nil {
		return err
	}

	if maxMessageSize > 0 && len(headerBytes) > maxMessageSize {
		c.logger.Debugf("refusing to write header of %d bytes to sink=(%s)", len(headerBytes), sinkID)
		return gerrors.NewErrMessageTooLarge("header", len(headerBytes), maxMessageSize)
	}

	prefix := strconv.AppendInt(make([]byte, 0, maxPrefixDigits+1), int64(len(headerBytes)), 10)
	prefix = append(prefix, terminator)

	buffers := net.Buffers{prefix, headerBytes}
	if len(body) > 0 {
		buffers = append(buffers, body)
	}

	if _, err := buffers.WriteTo(writer); err != nil {
		return writeError(err)
	}
	return nil
}

// Read reads one frame from reader.
//
// The length prefix is read one byte at a time so that no byte past the frame
// is consumed. A maxMessageSize of zero or less disables the size bounds.
// Errors are ErrFramingViolation for a malformed prefix, ErrMessageTooLarge
// for a bound violation and ErrConnectionClosed when the stream ends before
// the frame is complete.
func (c *Codec) Read(reader io.Reader, maxMessageSize int) (*MessageHeaderWithBody, error) {
	if reader == nil {
		return nil, gerrors.NewErrInvalidArgument("reader is nil")
	}

	headerLength, err := c.readPrefix(reader, maxMessageSize)
	if err != nil {
		return nil, err
	}

	if maxMessageSize > 0 && headerLength > maxMessageSize {
		c.logger.Debugf("declared header length %d exceeds the maximum of %d", headerLength, maxMessageSize)
		return nil, gerrors.NewErrMessageTooLarge("header", headerLength, maxMessageSize)
	}

	header, err := c.readHeader(reader, headerLength)
	if err != nil {
		return nil, err
	}

	if header.length <= 0 {
		return &MessageHeaderWithBody{MessageHeader: header, data: []byte{}}, nil
	}

	if maxMessageSize > 0 && header.length > int64(maxMessageSize) {
		c.logger.Debugf("declared body length %d for sink=(%s) exceeds the maximum of %d", header.length, header.sinkID, maxMessageSize)
		return nil, gerrors.NewErrMessageTooLarge("body", int(header.length), maxMessageSize)
	}

	body, err := readExact(reader, header.length)
	if err != nil {
		return nil, err
	}

	return &MessageHeaderWithBody{MessageHeader: header, data: body}, nil
}

// readPrefix reads the ASCII decimal header length and its terminator.
func (c *Codec) readPrefix(reader io.Reader, maxMessageSize int) (int, error) {
	maxDigits := maxPrefixDigits
	if maxMessageSize > 0 {
		maxDigits = len(strconv.Itoa(maxMessageSize))
	}

	var (
		digits  [maxPrefixDigits + 1]byte
		count   int
		scratch [1]byte
	)

	for {
		if _, err := io.ReadFull(reader, scratch[:]); err != nil {
			if count > 0 {
				err = midFrame(err)
			}
			return 0, readError(err)
		}

		current := scratch[0]
		if current == terminator {
			break
		}

		if current < '0' || current > '9' {
			c.logger.Debugf("non numeric byte 0x%02x in length prefix", current)
			return 0, gerrors.NewErrFramingViolation(fmt.Sprintf("non numeric byte 0x%02x in length prefix", current))
		}

		if count >= maxDigits {
			c.logger.Debugf("length prefix longer than %d digits", maxDigits)
			if maxMessageSize > 0 {
				return 0, gerrors.NewErrMessageTooLarge("length prefix digits", count+1, maxDigits)
			}
			return 0, gerrors.NewErrFramingViolation("length prefix is too long")
		}

		digits[count] = current
		count++
	}

	if count == 0 {
		c.logger.Debug("empty length prefix")
		return 0, gerrors.NewErrFramingViolation("empty length prefix")
	}

	headerLength, err := strconv.Atoi(string(digits[:count]))
	if err != nil {
		return 0, gerrors.NewErrFramingViolation(fmt.Sprintf("invalid length prefix %q", digits[:count]))
	}

	if headerLength == 0 {
		c.logger.Debug("zero length prefix")
		return 0, gerrors.NewErrFramingViolation("header length is zero")
	}

	return headerLength, nil
}

// readHeader reads and decodes a header of the given length.
func (c *Codec) readHeader(reader io.Reader, headerLength int) (*MessageHeader, error) {
	if int64(headerLength) > readChunk {
		bytea, err := readExact(reader, int64(headerLength))
		if err != nil {
			return nil, err
		}
		return c.serializer.DeserializeHeader(bytea)
	}

	buf := c.pool.Get(headerLength)
	defer c.pool.Put(buf)

	if _, err := io.ReadFull(reader, buf); err != nil {
		return nil, readError(midFrame(err))
	}
	return c.serializer.DeserializeHeader(buf)
}

// readExact reads exactly n bytes. Payloads above readChunk are not allocated
// up front: the buffer grows with the bytes actually received.
func readExact(reader io.Reader, n int64) ([]byte, error) {
	if n <= readChunk {
		buf := make([]byte, n)
		if _, err := io.ReadFull(reader, buf); err != nil {
			return nil, readError(midFrame(err))
		}
		return buf, nil
	}

	buf := bytes.NewBuffer(make([]byte, 0, readChunk))
	_, err := io.CopyN(buf, reader, n)
	if err != nil {
		return nil, readError(midFrame(err))
	}
	return buf.Bytes(), nil
}

// midFrame turns an end of stream inside a frame into io.ErrUnexpectedEOF.
func midFrame(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// readError maps a stream read failure to the error kinds of the codec
func readError(err error) error {
	if isClosed(err) {
		return gerrors.NewErrConnectionClosed(err)
	}
	return fmt.Errorf("failed to read frame: %w", err)
}

// writeError maps a stream write failure to the error kinds of the codec
func writeError(err error) error {
	if isClosed(err) {
		return gerrors.NewErrConnectionClosed(err)
	}
	return fmt.Errorf("failed to write frame: %w", err)
}

// isClosed reports whether err means the stream is gone
func isClosed(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, net.ErrClosed)
}
