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

package compression

import (
	"errors"
	"io"

	"go.uber.org/atomic"
)

// Wrapping errors.
var (
	// ErrZstdEncoderInit is returned when the zstd encoder cannot be created from the pool.
	ErrZstdEncoderInit = errors.New("compression: zstd encoder initialization failed")
	// ErrZstdDecoderInit is returned when the zstd decoder cannot be created from the pool.
	ErrZstdDecoderInit = errors.New("compression: zstd decoder initialization failed")
	// ErrZstdInvalidEncoderOpts is returned when the zstd encoder options are invalid.
	ErrZstdInvalidEncoderOpts = errors.New("compression: invalid zstd encoder options")
	// ErrZstdInvalidDecoderOpts is returned when the zstd decoder options are invalid.
	ErrZstdInvalidDecoderOpts = errors.New("compression: invalid zstd decoder options")
	// ErrBrotliWriterInit is returned when the brotli writer cannot be obtained from the pool.
	ErrBrotliWriterInit = errors.New("compression: brotli writer initialization failed")
	// ErrBrotliReaderInit is returned when the brotli reader cannot be obtained from the pool.
	ErrBrotliReaderInit = errors.New("compression: brotli reader initialization failed")
	// ErrGzipInvalidLevel is returned when the gzip level is out of range.
	ErrGzipInvalidLevel = errors.New("compression: invalid gzip level")
	// ErrGzipWriterInit is returned when the gzip writer cannot be obtained from the pool.
	ErrGzipWriterInit = errors.New("compression: gzip writer initialization failed")
	// ErrGzipReaderInit is returned when the gzip reader cannot be obtained from the pool.
	ErrGzipReaderInit = errors.New("compression: gzip reader initialization failed")
)

// StreamWrapper adds a compression layer to a duplex byte stream.
// Implementations must be safe to call from multiple goroutines.
//
// The returned stream compresses writes and decompresses reads. Closing it
// releases the compressor state but leaves the underlying stream open.
type StreamWrapper interface {
	Wrap(stream io.ReadWriter) (io.ReadWriteCloser, error)
}

type flushWriter interface {
	io.Writer
	Flush() error
}

// compressedStream is owned by the caller of Wrap for its whole life.
// After Close the compressor state is back in its pool and every call fails
// with io.ErrClosedPipe.
type compressedStream struct {
	reader io.Reader
	writer flushWriter
	closer func() error
	closed *atomic.Bool
}

var _ io.ReadWriteCloser = (*compressedStream)(nil)

func newCompressedStream(r io.Reader, w flushWriter, closer func() error) *compressedStream {
	return &compressedStream{
		reader: r,
		writer: w,
		closer: closer,
		closed: atomic.NewBool(false),
	}
}

func (c *compressedStream) Read(p []byte) (int, error) {
	if c.closed.Load() {
		return 0, io.ErrClosedPipe
	}
	return c.reader.Read(p)
}

// Write compresses p and flushes so the peer can decode the bytes without
// waiting for more data. Frames are request sized and must not linger in the
// compressor.
func (c *compressedStream) Write(p []byte) (int, error) {
	if c.closed.Load() {
		return 0, io.ErrClosedPipe
	}
	n, err := c.writer.Write(p)
	if err != nil {
		return n, err
	}
	if ferr := c.writer.Flush(); ferr != nil {
		return n, ferr
	}
	return n, nil
}

// Close releases the compressor state. Closing twice is a no-op.
func (c *compressedStream) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.closer()
}
