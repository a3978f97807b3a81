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
	"reflect"

	"google.golang.org/protobuf/proto"

	gerrors "github.com/tochemey/remoting/errors"
	"github.com/tochemey/remoting/internal/types"
)

// SinkConfigRegistry resolves the concrete type of a sink configuration
// from the tag carried in a header. Types are registered once at startup:
//
//	registry := wire.NewSinkConfigRegistry()
//	registry.Register(new(CompressionSettings), new(RetrySettings))
//
// Protobuf messages do not need to be registered: they are tagged with
// their full name and resolved through the protobuf global registry.
type SinkConfigRegistry struct {
	registry types.Registry
}

// NewSinkConfigRegistry creates an empty SinkConfigRegistry
func NewSinkConfigRegistry() *SinkConfigRegistry {
	return &SinkConfigRegistry{registry: types.NewRegistry()}
}

// Register adds the type of each value. Values are usually pointers to zero values.
func (r *SinkConfigRegistry) Register(values ...any) {
	r.registry.Register(values...)
}

// RegisterAs adds the type of the value under an explicit tag.
// Peers built from different packages use it to agree on a tag.
func (r *SinkConfigRegistry) RegisterAs(tag string, value any) {
	r.registry.RegisterAs(tag, value)
}

// Registered reports whether the value's type can travel in a header.
func (r *SinkConfigRegistry) Registered(value any) bool {
	_, err := r.tagOf(value)
	return err == nil
}

// NewMessageHeader creates a header whose configuration type is the tag the
// registry encodes sinkConfig with. An unregistered configuration fails with
// ErrSinkConfigurationNotRegistered.
func (r *SinkConfigRegistry) NewMessageHeader(sinkID string, length int64, sinkConfig any) (*MessageHeader, error) {
	header, err := NewMessageHeader(sinkID, length, sinkConfig)
	if err != nil {
		return nil, err
	}

	if sinkConfig != nil {
		tag, err := r.tagOf(sinkConfig)
		if err != nil {
			return nil, err
		}
		header.configType = tag
	}
	return header, nil
}

// tagOf returns the tag of a configuration value.
func (r *SinkConfigRegistry) tagOf(value any) (string, error) {
	if tag, ok := types.ProtoTag(value); ok {
		return tag, nil
	}

	if tag, ok := r.registry.TagOf(value); ok {
		return tag, nil
	}
	return "", gerrors.NewErrSinkConfigurationNotRegistered(types.Name(value))
}

// newValue returns a pointer to a fresh value of the type named by tag.
func (r *SinkConfigRegistry) newValue(tag string) (any, error) {
	if types.IsProtoTag(tag) {
		msg, err := types.NewProto(tag)
		if err != nil {
			return nil, gerrors.NewErrSinkConfigurationNotRegistered(tag)
		}
		return msg, nil
	}

	rtype, ok := r.registry.TypeOf(tag)
	if !ok {
		return nil, gerrors.NewErrSinkConfigurationNotRegistered(tag)
	}
	return reflect.New(rtype).Interface(), nil
}

// isProto reports whether a decoded configuration is a protobuf message
func isProto(value any) (proto.Message, bool) {
	msg, ok := value.(proto.Message)
	return msg, ok
}
