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
	"fmt"

	"github.com/tochemey/remoting/internal/compression"
)

// Compression is the algorithm a Channel applies to everything it writes
// and expects on everything it reads. Both peers must use the same one.
type Compression int

const (
	// NoCompression sends frames as they are. This is the default.
	NoCompression Compression = iota
	// GzipCompression uses gzip (RFC 1952).
	GzipCompression
	// ZstdCompression uses Zstandard (RFC 8878). It has the best ratio to
	// CPU trade-off of the supported algorithms.
	ZstdCompression
	// BrotliCompression uses Brotli (RFC 7932). It compresses best and slowest.
	BrotliCompression
)

// String returns the name of the algorithm
func (x Compression) String() string {
	switch x {
	case NoCompression:
		return "none"
	case GzipCompression:
		return "gzip"
	case ZstdCompression:
		return "zstd"
	case BrotliCompression:
		return "brotli"
	default:
		return fmt.Sprintf("Compression(%d)", int(x))
	}
}

// valid reports whether the value is a known algorithm
func (x Compression) valid() bool {
	return x >= NoCompression && x <= BrotliCompression
}

// streamWrapper returns the wrapper of the algorithm, or nil for NoCompression.
func (x Compression) streamWrapper() (compression.StreamWrapper, error) {
	switch x {
	case GzipCompression:
		return compression.NewGzipWrapper()
	case ZstdCompression:
		return compression.NewZstdWrapper()
	case BrotliCompression:
		return compression.NewBrotliWrapper(), nil
	case NoCompression:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported compression %s", x)
	}
}
