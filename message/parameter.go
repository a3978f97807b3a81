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

package message

import (
	"fmt"
	"io"
	"reflect"

	gerrors "github.com/tochemey/remoting/errors"
	"github.com/tochemey/remoting/internal/types"
	"github.com/tochemey/remoting/internal/validation"
)

// ParameterState tracks where the value of a MethodParameter lives.
type ParameterState int

const (
	// ParameterInline holds an ordinary in-memory value.
	ParameterInline ParameterState = iota
	// ParameterStreamBacked holds a live stream of Size bytes.
	ParameterStreamBacked
	// ParameterConsumed holds no value. The bytes were written to, or are
	// still to be read from, the wire.
	ParameterConsumed
)

// String returns the name of the state
func (x ParameterState) String() string {
	switch x {
	case ParameterInline:
		return "Inline"
	case ParameterStreamBacked:
		return "StreamBacked"
	case ParameterConsumed:
		return "Consumed"
	default:
		return "Unknown"
	}
}

// NilClassName is the class name derived for a nil value.
const NilClassName = "nil"

// inlineSize is the size of a parameter that was not built from a stream.
const inlineSize int64 = -1

// MethodParameter is one formal parameter of a remote call.
//
// A value that implements io.ReadSeeker is stream-backed: its Size is the
// number of unread bytes at construction time and its bytes travel on the
// wire right after the frame instead of inside the serialized message.
// Size is never recomputed. Every other value is inline and has a Size of -1.
type MethodParameter struct {
	id        int
	className string
	value     any
	size      int64
	state     ParameterState
}

// NewMethodParameter creates a parameter at position id.
// className identifies the value's type and must not be empty.
func NewMethodParameter(id int, className string, value any) (*MethodParameter, error) {
	if err := validation.New(validation.FailFast()).
		AddValidator(validation.NewEmptyStringValidator("className", className)).
		AddValidator(validation.NewNonNegativeValidator("id", int64(id))).
		Validate(); err != nil {
		return nil, invalidArgument(err)
	}

	if isNilPointer(value) {
		value = nil
	}

	param := &MethodParameter{
		id:        id,
		className: className,
		value:     value,
		size:      inlineSize,
		state:     ParameterInline,
	}

	if stream, ok := value.(io.ReadSeeker); ok && stream != nil {
		size, err := remaining(stream)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot determine stream length: %w", gerrors.ErrInvalidArgument, err)
		}
		param.size = size
		param.state = ParameterStreamBacked
	}

	return param, nil
}

// NewParameter creates a parameter whose class name is derived from the value.
// Protobuf messages are named by their full name, other values by their Go type.
func NewParameter(id int, value any) (*MethodParameter, error) {
	return NewMethodParameter(id, ClassNameOf(value), value)
}

// NewStreamPlaceholder creates a stream-backed parameter without its stream.
// Receivers use it for a parameter whose bytes follow the frame; the stream
// is attached with AttachStream.
func NewStreamPlaceholder(id int, className string, size int64) (*MethodParameter, error) {
	if size < 0 {
		return nil, gerrors.NewErrInvalidArgument(fmt.Sprintf("negative stream size %d", size))
	}

	param, err := NewMethodParameter(id, className, nil)
	if err != nil {
		return nil, err
	}

	param.size = size
	param.state = ParameterConsumed
	return param, nil
}

// ClassNameOf returns the class name NewParameter derives for a value.
func ClassNameOf(value any) string {
	if tag, ok := types.ProtoTag(value); ok {
		return tag
	}
	if name := types.Name(value); name != "" {
		return name
	}
	return NilClassName
}

// ID returns the ordinal position of the parameter
func (x *MethodParameter) ID() int {
	return x.id
}

// ClassName returns the type identity of the parameter
func (x *MethodParameter) ClassName() string {
	return x.className
}

// Value returns the parameter value. It is nil once the value has been cleared.
func (x *MethodParameter) Value() any {
	return x.value
}

// Size returns the declared stream length, or -1 for an inline parameter.
func (x *MethodParameter) Size() int64 {
	return x.size
}

// State returns where the value currently lives
func (x *MethodParameter) State() ParameterState {
	return x.state
}

// IsStream reports whether the parameter was declared stream-backed.
func (x *MethodParameter) IsStream() bool {
	return x.size >= 0
}

// Stream returns the attached stream when the parameter currently holds one.
func (x *MethodParameter) Stream() (io.Reader, bool) {
	if x.state != ParameterStreamBacked {
		return nil, false
	}
	reader, ok := x.value.(io.Reader)
	return reader, ok
}

// ClearValue drops the in-memory value. A sender calls it once the stream
// bytes have been copied to the wire so the payload is not held twice.
func (x *MethodParameter) ClearValue() {
	x.value = nil
	x.state = ParameterConsumed
}

// AttachStream sets the value to a live stream over the declared Size bytes.
// It fails with ErrNotStreamParameter when the parameter was not stream-backed.
func (x *MethodParameter) AttachStream(stream io.Reader) error {
	if !x.IsStream() {
		return gerrors.ErrNotStreamParameter
	}
	if stream == nil {
		return gerrors.NewErrInvalidArgument("stream is nil")
	}
	x.value = stream
	x.state = ParameterStreamBacked
	return nil
}

// Equal reports whether both parameters have the same id, class name, value and size.
func (x *MethodParameter) Equal(other *MethodParameter) bool {
	if x == nil || other == nil {
		return x == other
	}
	return x.id == other.id &&
		x.className == other.className &&
		x.size == other.size &&
		reflect.DeepEqual(x.value, other.value)
}

// String returns a description of the parameter for diagnostics
func (x *MethodParameter) String() string {
	return fmt.Sprintf("MethodParameter(id=%d, className=%s, size=%d, state=%s)", x.id, x.className, x.size, x.state)
}

// remaining returns the number of unread bytes of a stream and restores its position.
func remaining(stream io.Seeker) (int64, error) {
	current, err := stream.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}

	end, err := stream.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}

	if _, err := stream.Seek(current, io.SeekStart); err != nil {
		return 0, err
	}

	if end < current {
		return 0, nil
	}
	return end - current, nil
}

// isNilPointer reports whether value is a typed nil pointer such as (*bytes.Reader)(nil)
func isNilPointer(value any) bool {
	if value == nil {
		return false
	}
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}
