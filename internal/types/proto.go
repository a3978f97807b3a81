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

package types

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
)

// ProtoPrefix marks tags that name a protobuf message. Such types are
// resolved through the protobuf global registry rather than a Registry.
const ProtoPrefix = "proto:"

// ProtoTag returns the tag of a protobuf message and true when v is one.
func ProtoTag(v any) (string, bool) {
	msg, ok := v.(proto.Message)
	if !ok || msg == nil {
		return "", false
	}
	name := proto.MessageName(msg)
	if name == "" {
		return "", false
	}
	return ProtoPrefix + string(name), true
}

// IsProtoTag reports whether tag names a protobuf message.
func IsProtoTag(tag string) bool {
	return len(tag) > len(ProtoPrefix) && tag[:len(ProtoPrefix)] == ProtoPrefix
}

// NewProto returns a fresh instance of the protobuf message named by tag.
func NewProto(tag string) (proto.Message, error) {
	name := protoreflect.FullName(tag[len(ProtoPrefix):])
	msgType, err := protoregistry.GlobalTypes.FindMessageByName(name)
	if err != nil {
		return nil, err
	}
	return msgType.New().Interface(), nil
}
