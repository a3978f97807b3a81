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
	"fmt"
)

var (
	// ErrInvalidArgument is returned when an API is called with an argument it cannot accept:
	// a nil stream, a nil body, an empty identifier or a negative declared length.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrFramingViolation is returned when the length prefix of a frame is malformed.
	// The stream is desynchronized after such an error and should be closed.
	ErrFramingViolation = errors.New("framing violation")

	// ErrMessageTooLarge is returned when a header or a body exceeds the configured maximum message size.
	ErrMessageTooLarge = errors.New("message size exceeds the configured maximum")

	// ErrConnectionClosed is returned when the peer closes the stream before a frame is complete.
	ErrConnectionClosed = errors.New("connection closed")

	// ErrInvalidMessageType is returned when a message is constructed with a message type its kind does not accept.
	ErrInvalidMessageType = fmt.Errorf("%w: invalid message type", ErrInvalidArgument)

	// ErrNotStreamParameter is returned when a stream is attached to a parameter whose original value was not a stream.
	ErrNotStreamParameter = fmt.Errorf("%w: stream parameter not allowed; original value was not a stream", ErrInvalidArgument)

	// ErrStreamLengthMismatch is returned when a stream-backed parameter yields fewer bytes than it declared.
	ErrStreamLengthMismatch = errors.New("stream length does not match the declared parameter size")

	// ErrSinkConfigurationNotRegistered is returned when a header carries a sink configuration
	// whose type tag has not been registered.
	ErrSinkConfigurationNotRegistered = errors.New("sink configuration type is not registered")

	// ErrSerializationFailed is returned when an object cannot be encoded.
	ErrSerializationFailed = errors.New("serialization failed")

	// ErrDeserializationFailed is returned when bytes cannot be decoded into an object.
	ErrDeserializationFailed = errors.New("deserialization failed")

	// ErrChannelClosed is returned when a closed channel is used.
	ErrChannelClosed = errors.New("channel is closed")
)

// NewErrInvalidArgument formats an ErrInvalidArgument with the given reason.
func NewErrInvalidArgument(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, reason)
}

// NewErrFramingViolation formats an ErrFramingViolation with the given reason.
func NewErrFramingViolation(reason string) error {
	return fmt.Errorf("%w: %s", ErrFramingViolation, reason)
}

// NewErrMessageTooLarge formats an ErrMessageTooLarge for the given part of the frame.
func NewErrMessageTooLarge(what string, size, maxSize int) error {
	return fmt.Errorf("%s size=(%d) max=(%d) %w", what, size, maxSize, ErrMessageTooLarge)
}

// NewErrConnectionClosed wraps the underlying read error with ErrConnectionClosed.
func NewErrConnectionClosed(err error) error {
	return errors.Join(ErrConnectionClosed, err)
}

// NewErrInvalidMessageType formats an ErrInvalidMessageType naming the offending value.
func NewErrInvalidMessageType(messageType fmt.Stringer) error {
	return fmt.Errorf("messageType=(%s) %w", messageType.String(), ErrInvalidMessageType)
}

// NewErrSinkConfigurationNotRegistered formats an ErrSinkConfigurationNotRegistered with the given tag.
func NewErrSinkConfigurationNotRegistered(tag string) error {
	return fmt.Errorf("tag=(%s) %w", tag, ErrSinkConfigurationNotRegistered)
}

// NewErrSerializationFailed wraps a base error with ErrSerializationFailed.
func NewErrSerializationFailed(err error) error {
	return errors.Join(ErrSerializationFailed, err)
}

// NewErrDeserializationFailed wraps a base error with ErrDeserializationFailed.
func NewErrDeserializationFailed(err error) error {
	return errors.Join(ErrDeserializationFailed, err)
}

// IsFramingViolation reports whether err is a framing violation.
func IsFramingViolation(err error) bool {
	return errors.Is(err, ErrFramingViolation)
}

// IsSecurityViolation reports whether err is a size bound violation.
func IsSecurityViolation(err error) bool {
	return errors.Is(err, ErrMessageTooLarge)
}

// IsConnectionClosed reports whether err signals that the peer hung up.
func IsConnectionClosed(err error) bool {
	return errors.Is(err, ErrConnectionClosed)
}
