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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	pool := New()

	t.Run("With small buffer", func(t *testing.T) {
		buf := pool.Get(10)
		require.Len(t, buf, 10)
		assert.Equal(t, 64, cap(buf))
		pool.Put(buf)
	})

	t.Run("With exact bucket size", func(t *testing.T) {
		buf := pool.Get(1024)
		require.Len(t, buf, 1024)
		assert.Equal(t, 1024, cap(buf))
		pool.Put(buf)
	})

	t.Run("With size between buckets", func(t *testing.T) {
		buf := pool.Get(1025)
		require.Len(t, buf, 1025)
		assert.Equal(t, 2048, cap(buf))
		pool.Put(buf)
	})

	t.Run("With oversized buffer", func(t *testing.T) {
		n := (1 << maxBucketShift) + 1
		buf := pool.Get(n)
		require.Len(t, buf, n)
		assert.Equal(t, n, cap(buf))
		// dropped silently
		pool.Put(buf)
	})

	t.Run("With foreign buffer", func(t *testing.T) {
		pool.Put(make([]byte, 100))
		pool.Put(nil)
	})
}

func TestBucketIndex(t *testing.T) {
	assert.Equal(t, 0, bucketIndex(0))
	assert.Equal(t, 0, bucketIndex(64))
	assert.Equal(t, 1, bucketIndex(65))
	assert.Equal(t, numBuckets-1, bucketIndex(1<<maxBucketShift))
	assert.Equal(t, numBuckets, bucketIndex((1<<maxBucketShift)+1))

	assert.Equal(t, -1, bucketIndexExact(0))
	assert.Equal(t, -1, bucketIndexExact(100))
	assert.Equal(t, -1, bucketIndexExact(32))
	assert.Equal(t, 0, bucketIndexExact(64))
	assert.Equal(t, numBuckets-1, bucketIndexExact(1<<maxBucketShift))
	assert.Equal(t, -1, bucketIndexExact(1<<(maxBucketShift+1)))
}
