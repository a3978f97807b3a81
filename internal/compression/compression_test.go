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
	"bytes"
	"io"
	"net"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func wrappers(t *testing.T) map[string]StreamWrapper {
	t.Helper()
	zstdWrapper, err := NewZstdWrapper(WithZstdLevel(zstd.SpeedFastest), WithZstdWindow(1<<20), WithZstdDecoderMaxMemory(32<<20))
	require.NoError(t, err)
	gzipWrapper, err := NewGzipWrapper(WithGzipLevel(6))
	require.NoError(t, err)
	return map[string]StreamWrapper{
		"zstd":   zstdWrapper,
		"gzip":   gzipWrapper,
		"brotli": NewBrotliWrapper(WithBrotliLevel(4)),
	}
}

func TestStreamWrappers(t *testing.T) {
	for name, wrapper := range wrappers(t) {
		t.Run(name, func(t *testing.T) {
			left, right := net.Pipe()
			t.Cleanup(func() {
				_ = left.Close()
				_ = right.Close()
			})

			writer, err := wrapper.Wrap(left)
			require.NoError(t, err)
			reader, err := wrapper.Wrap(right)
			require.NoError(t, err)

			payloads := [][]byte{
				[]byte("12\x00header-bytes"),
				bytes.Repeat([]byte("remoting"), 4096),
				{0x00, 0x01, 0x02},
			}

			var group errgroup.Group
			group.Go(func() error {
				for _, payload := range payloads {
					if _, err := writer.Write(payload); err != nil {
						return err
					}
				}
				return nil
			})

			for _, payload := range payloads {
				actual := make([]byte, len(payload))
				_, err := io.ReadFull(reader, actual)
				require.NoError(t, err)
				assert.Equal(t, payload, actual)
			}

			require.NoError(t, group.Wait())
		})
	}
}

func TestNewGzipWrapperInvalidLevel(t *testing.T) {
	wrapper, err := NewGzipWrapper(WithGzipLevel(42))
	require.ErrorIs(t, err, ErrGzipInvalidLevel)
	assert.Nil(t, wrapper)
}

func TestNewZstdWrapperInvalidOptions(t *testing.T) {
	wrapper, err := NewZstdWrapper(WithZstdWindow(3))
	require.ErrorIs(t, err, ErrZstdInvalidEncoderOpts)
	assert.Nil(t, wrapper)
}

func TestStreamWrappersAfterClose(t *testing.T) {
	for name, wrapper := range wrappers(t) {
		t.Run(name, func(t *testing.T) {
			buffer := new(bytes.Buffer)
			stream, err := wrapper.Wrap(struct {
				io.Reader
				io.Writer
			}{bytes.NewReader(nil), buffer})
			require.NoError(t, err)

			require.NoError(t, stream.Close())
			require.NoError(t, stream.Close())
			written := buffer.Len()

			// a stream wrapped after close must not share state with the closed one
			other, err := wrapper.Wrap(struct {
				io.Reader
				io.Writer
			}{bytes.NewReader(nil), new(bytes.Buffer)})
			require.NoError(t, err)
			t.Cleanup(func() { _ = other.Close() })

			n, err := stream.Write([]byte("late frame"))
			require.ErrorIs(t, err, io.ErrClosedPipe)
			assert.Zero(t, n)
			assert.Equal(t, written, buffer.Len())

			_, err = stream.Read(make([]byte, 8))
			require.ErrorIs(t, err, io.ErrClosedPipe)
		})
	}
}
