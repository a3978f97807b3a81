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
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/atomic"
)

// GzipWrapper wraps streams with gzip compression.
// Writer and reader instances are pooled for reuse.
type GzipWrapper struct {
	level      int
	writerPool sync.Pool
	readerPool sync.Pool
}

var _ StreamWrapper = (*GzipWrapper)(nil)

// NewGzipWrapper creates a GzipWrapper with the given options.
// The default compression level is gzip.DefaultCompression.
func NewGzipWrapper(opts ...GzipOption) (*GzipWrapper, error) {
	cfg := gzipConfig{
		level: gzip.DefaultCompression,
	}
	for _, o := range opts {
		o(&cfg)
	}

	w, err := gzip.NewWriterLevel(nil, cfg.level)
	if err != nil {
		return nil, ErrGzipInvalidLevel
	}

	wrapper := &GzipWrapper{level: cfg.level}
	wrapper.writerPool.Put(w)
	wrapper.writerPool.New = func() any {
		gw, err := gzip.NewWriterLevel(nil, wrapper.level)
		if err != nil {
			return nil
		}
		return gw
	}

	wrapper.readerPool.New = func() any {
		return new(gzip.Reader)
	}

	return wrapper, nil
}

// Wrap applies gzip compression to stream.
//
// gzip.Reader.Reset reads the gzip header eagerly. On a fresh stream where
// nothing has been written yet both peers would block, so the reader is
// initialised on the first Read instead.
func (g *GzipWrapper) Wrap(stream io.ReadWriter) (io.ReadWriteCloser, error) {
	gw, ok := g.writerPool.Get().(*gzip.Writer)
	if !ok || gw == nil {
		return nil, ErrGzipWriterInit
	}

	gr, ok := g.readerPool.Get().(*gzip.Reader)
	if !ok || gr == nil {
		g.writerPool.Put(gw)
		return nil, ErrGzipReaderInit
	}

	gw.Reset(stream)
	lazyReader := &gzipLazyReader{raw: stream, gr: gr}

	closer := func() error {
		closeErr := gw.Close()
		gw.Reset(nil)
		g.writerPool.Put(gw)
		if lazyReader.initialised.Load() {
			_ = gr.Close()
		}
		g.readerPool.Put(gr)
		return closeErr
	}

	return newCompressedStream(lazyReader, gw, closer), nil
}

// gzipLazyReader defers gzip.Reader.Reset to the first Read.
type gzipLazyReader struct {
	raw         io.Reader
	gr          *gzip.Reader
	initialised atomic.Bool
	initErr     error
	once        sync.Once
}

var _ io.Reader = (*gzipLazyReader)(nil)

func (r *gzipLazyReader) Read(p []byte) (int, error) {
	r.once.Do(func() {
		r.initErr = r.gr.Reset(r.raw)
		if r.initErr == nil {
			r.initialised.Store(true)
		}
	})
	if r.initErr != nil {
		return 0, r.initErr
	}
	return r.gr.Read(p)
}

type gzipConfig struct {
	level int
}

// GzipOption configures NewGzipWrapper.
type GzipOption func(*gzipConfig)

// WithGzipLevel sets the gzip compression level.
// Valid values range from gzip.BestSpeed (1) to gzip.BestCompression (9),
// or gzip.DefaultCompression (-1).
func WithGzipLevel(level int) GzipOption {
	return func(c *gzipConfig) { c.level = level }
}
