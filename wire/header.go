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
	"fmt"
	"reflect"

	"google.golang.org/protobuf/proto"

	gerrors "github.com/tochemey/remoting/errors"
	"github.com/tochemey/remoting/internal/types"
	"github.com/tochemey/remoting/internal/validation"
)

// MessageHeader is the metadata that precedes every body on the wire.
type MessageHeader struct {
	sinkID     string
	length     int64
	configType string
	config     any
}

// NewMessageHeader creates the header of a body of the given length.
// sinkConfig is optional; when set its type must be known to the
// SinkConfigRegistry of the HeaderSerializer that will encode the header.
//
// The configuration type is the default tag of the value. A type registered
// under an explicit tag is recorded with that tag once encoded; use
// SinkConfigRegistry.NewMessageHeader to get it up front.
func NewMessageHeader(sinkID string, length int64, sinkConfig any) (*MessageHeader, error) {
	if err := validation.New(validation.FailFast()).
		AddValidator(validation.NewEmptyStringValidator("sinkID", sinkID)).
		AddValidator(validation.NewNonNegativeValidator("length", length)).
		Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", gerrors.ErrInvalidArgument, err)
	}

	header := &MessageHeader{
		sinkID: sinkID,
		length: length,
		config: sinkConfig,
	}

	if sinkConfig != nil {
		header.configType = configTypeOf(sinkConfig)
	}
	return header, nil
}

// configTypeOf derives the tag a sink configuration is registered under by default.
func configTypeOf(config any) string {
	if tag, ok := types.ProtoTag(config); ok {
		return tag
	}
	return types.Name(config)
}

// SinkID returns the identifier of the sink the body is addressed to
func (x *MessageHeader) SinkID() string {
	return x.sinkID
}

// Length returns the declared body length
func (x *MessageHeader) Length() int64 {
	return x.length
}

// SinkConfiguration returns the sink configuration, or nil.
// A decoded configuration is a pointer to a fresh value of the registered type.
func (x *MessageHeader) SinkConfiguration() any {
	return x.config
}

// SinkConfigurationType returns the type tag of the sink configuration, or
// an empty string when there is none.
func (x *MessageHeader) SinkConfigurationType() string {
	return x.configType
}

// Equal reports whether both headers carry the same sink, length and configuration.
// Configurations of different types are never equal, whatever their tags.
func (x *MessageHeader) Equal(other *MessageHeader) bool {
	if x == nil || other == nil {
		return x == other
	}

	if x.sinkID != other.sinkID || x.length != other.length {
		return false
	}

	left, lok := x.config.(proto.Message)
	right, rok := other.config.(proto.Message)
	if lok && rok {
		return proto.Equal(left, right)
	}
	return reflect.DeepEqual(x.config, other.config)
}

// String returns a description of the header for diagnostics
func (x *MessageHeader) String() string {
	return fmt.Sprintf("MessageHeader(sinkID=%s, length=%d, configType=%s)", x.sinkID, x.length, x.configType)
}

// MessageHeaderWithBody is a decoded frame: the header and its body bytes.
type MessageHeaderWithBody struct {
	*MessageHeader
	data []byte
}

// Data returns the body. It is never nil and is empty when the header
// declares no body.
func (x *MessageHeaderWithBody) Data() []byte {
	if x.data == nil {
		return []byte{}
	}
	return x.data
}

// Equal reports whether both frames carry equal headers and identical bodies.
func (x *MessageHeaderWithBody) Equal(other *MessageHeaderWithBody) bool {
	if x == nil || other == nil {
		return x == other
	}
	return x.MessageHeader.Equal(other.MessageHeader) && string(x.Data()) == string(other.Data())
}
