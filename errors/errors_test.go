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

package errors

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringer string

func (s stringer) String() string { return string(s) }

func TestErrors(t *testing.T) {
	t.Run("With invalid argument", func(t *testing.T) {
		err := NewErrInvalidArgument("stream is nil")
		require.EqualError(t, err, "invalid argument: stream is nil")
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
	t.Run("With framing violation", func(t *testing.T) {
		err := NewErrFramingViolation("empty length prefix")
		require.EqualError(t, err, "framing violation: empty length prefix")
		assert.True(t, IsFramingViolation(err))
		assert.False(t, IsSecurityViolation(err))
	})
	t.Run("With message too large", func(t *testing.T) {
		err := NewErrMessageTooLarge("body", 11, 10)
		require.EqualError(t, err, "body size=(11) max=(10) message size exceeds the configured maximum")
		assert.True(t, IsSecurityViolation(err))
	})
	t.Run("With connection closed", func(t *testing.T) {
		err := NewErrConnectionClosed(io.ErrUnexpectedEOF)
		assert.True(t, IsConnectionClosed(err))
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.False(t, IsFramingViolation(err))
	})
	t.Run("With invalid message type", func(t *testing.T) {
		err := NewErrInvalidMessageType(stringer("Response"))
		require.EqualError(t, err, "messageType=(Response) invalid argument: invalid message type")
		assert.ErrorIs(t, err, ErrInvalidMessageType)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
	t.Run("With not a stream parameter", func(t *testing.T) {
		assert.ErrorIs(t, ErrNotStreamParameter, ErrInvalidArgument)
	})
	t.Run("With serialization failures", func(t *testing.T) {
		cause := errors.New("boom")
		err := NewErrSerializationFailed(cause)
		assert.ErrorIs(t, err, ErrSerializationFailed)
		assert.ErrorIs(t, err, cause)

		err = NewErrDeserializationFailed(cause)
		assert.ErrorIs(t, err, ErrDeserializationFailed)
		assert.ErrorIs(t, err, cause)
	})
	t.Run("With unregistered sink configuration", func(t *testing.T) {
		err := NewErrSinkConfigurationNotRegistered("main.config")
		require.EqualError(t, err, "tag=(main.config) sink configuration type is not registered")
		assert.ErrorIs(t, err, ErrSinkConfigurationNotRegistered)
	})
}
