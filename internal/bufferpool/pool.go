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

package bufferpool

import "sync"

const (
	minBucketShift = 6  // 64 B
	maxBucketShift = 20 // 1 MiB
	numBuckets     = maxBucketShift - minBucketShift + 1
)

// Pool keeps scratch buffers bucketed by power-of-two size.
// Frame headers are small and short-lived: they are read, decoded and
// dropped, so their buffers are recycled instead of being allocated per frame.
// Bodies are handed to the caller and never come from the pool.
type Pool struct {
	pools [numBuckets]sync.Pool
}

// New creates a new Pool instance.
func New() *Pool {
	pool := &Pool{}
	for i := range pool.pools {
		size := 1 << (minBucketShift + i)
		pool.pools[i] = sync.Pool{
			New: func() any {
				buf := make([]byte, size)
				return &buf
			},
		}
	}
	return pool
}

// Get returns a []byte of exactly n bytes from the smallest bucket that fits.
// Sizes above the biggest bucket are allocated directly.
func (x *Pool) Get(n int) []byte {
	idx := bucketIndex(n)
	if idx >= numBuckets {
		return make([]byte, n)
	}
	bp := x.pools[idx].Get().(*[]byte)
	return (*bp)[:n]
}

// Put returns a buffer to its bucket. Buffers whose capacity is not a bucket
// size are dropped.
func (x *Pool) Put(buf []byte) {
	c := cap(buf)
	idx := bucketIndexExact(c)
	if idx < 0 || idx >= numBuckets {
		return
	}
	buf = buf[:c]
	x.pools[idx].Put(&buf)
}

// bucketIndex returns the pool index for a buffer of size n.
func bucketIndex(n int) int {
	if n <= 1<<minBucketShift {
		return 0
	}
	shift := 0
	v := n - 1
	for v > 0 {
		v >>= 1
		shift++
	}
	idx := shift - minBucketShift
	if idx >= numBuckets {
		return numBuckets
	}
	return idx
}

// bucketIndexExact returns the pool index only if c is a bucket boundary. Returns -1 otherwise.
func bucketIndexExact(c int) int {
	if c == 0 || c&(c-1) != 0 {
		return -1
	}
	shift := 0
	v := c
	for v > 1 {
		v >>= 1
		shift++
	}
	idx := shift - minBucketShift
	if idx < 0 || idx >= numBuckets {
		return -1
	}
	return idx
}
