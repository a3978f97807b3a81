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

	"github.com/fxamacker/cbor/v2"
	"google.golang.org/protobuf/proto"

	gerrors "github.com/tochemey/remoting/errors"
)

// HeaderSerializer turns a MessageHeader into bytes and back.
//
// Implementations must be safe for concurrent use. DeserializeHeader must not
// retain the input slice: the codec recycles it once the call returns.
type HeaderSerializer interface {
	// SerializeHeader encodes the header
	SerializeHeader(header *MessageHeader) ([]byte, error)
	// DeserializeHeader decodes bytes produced by SerializeHeader
	DeserializeHeader(data []byte) (*MessageHeader, error)
}

var (
	headerEncOpts = cbor.EncOptions{
		Sort:        cbor.SortNone,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeUnixDynamic,
	}
	headerDecOpts = cbor.DecOptions{
		MaxNestedLevels: 32,
		IndefLength:     cbor.IndefLengthForbidden,
		UTF8:            cbor.UTF8RejectInvalid,
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
	}
)

// headerRecord is the encoded shape of a MessageHeader.
// Integer keys keep the header small.
type headerRecord struct {
	SinkID     string          `cbor:"1,keyasint"`
	Length     int64           `cbor:"2,keyasint"`
	ConfigType string          `cbor:"3,keyasint,omitempty"`
	Config     cbor.RawMessage `cbor:"4,keyasint,omitempty"`
}

// CBORHeaderSerializer encodes headers as a CBOR map.
//
// A sink configuration is recorded with its registry tag. Protobuf
// configurations are carried as their protobuf encoding; any other value is
// carried as CBOR and decoded into a fresh value of the registered type.
type CBORHeaderSerializer struct {
	encMode  cbor.EncMode
	decMode  cbor.DecMode
	registry *SinkConfigRegistry
}

var _ HeaderSerializer = (*CBORHeaderSerializer)(nil)

// NewCBORHeaderSerializer creates a CBORHeaderSerializer resolving sink
// configurations through registry. A nil registry only accepts headers
// without configuration or with protobuf configurations.
func NewCBORHeaderSerializer(registry *SinkConfigRegistry) *CBORHeaderSerializer {
	if registry == nil {
		registry = NewSinkConfigRegistry()
	}
	encMode, _ := headerEncOpts.EncMode()
	decMode, _ := headerDecOpts.DecMode()
	return &CBORHeaderSerializer{
		encMode:  encMode,
		decMode:  decMode,
		registry: registry,
	}
}

// SerializeHeader implements HeaderSerializer
func (s *CBORHeaderSerializer) SerializeHeader(header *MessageHeader) ([]byte, error) {
	if header == nil {
		return nil, gerrors.NewErrInvalidArgument("header is nil")
	}

	record := headerRecord{
		SinkID: header.sinkID,
		Length: header.length,
	}

	if header.config != nil {
		tag, err := s.registry.tagOf(header.config)
		if err != nil {
			return nil, err
		}

		raw, err := s.encodeConfig(header.config)
		if err != nil {
			return nil, gerrors.NewErrSerializationFailed(err)
		}

		record.ConfigType = tag
		record.Config = raw
	}

	bytea, err := s.encMode.Marshal(record)
	if err != nil {
		return nil, gerrors.NewErrSerializationFailed(err)
	}
	return bytea, nil
}

// DeserializeHeader implements HeaderSerializer
func (s *CBORHeaderSerializer) DeserializeHeader(data []byte) (*MessageHeader, error) {
	var record headerRecord
	if err := s.decMode.Unmarshal(data, &record); err != nil {
		return nil, gerrors.NewErrDeserializationFailed(err)
	}

	if record.SinkID == "" {
		return nil, gerrors.NewErrDeserializationFailed(fmt.Errorf("header without sink id"))
	}

	header := &MessageHeader{
		sinkID: record.SinkID,
		length: record.Length,
	}

	if record.ConfigType != "" {
		config, err := s.registry.newValue(record.ConfigType)
		if err != nil {
			return nil, err
		}

		if err := s.decodeConfig(record.Config, config); err != nil {
			return nil, gerrors.NewErrDeserializationFailed(err)
		}

		header.configType = record.ConfigType
		header.config = config
	}

	return header, nil
}

func (s *CBORHeaderSerializer) encodeConfig(config any) (cbor.RawMessage, error) {
	if msg, ok := isProto(config); ok {
		bytea, err := proto.Marshal(msg)
		if err != nil {
			return nil, err
		}
		return s.encMode.Marshal(bytea)
	}
	return s.encMode.Marshal(config)
}

func (s *CBORHeaderSerializer) decodeConfig(raw cbor.RawMessage, config any) error {
	if len(raw) == 0 {
		return nil
	}

	if msg, ok := isProto(config); ok {
		var bytea []byte
		if err := s.decMode.Unmarshal(raw, &bytea); err != nil {
			return err
		}
		return proto.Unmarshal(bytea, msg)
	}
	return s.decMode.Unmarshal(raw, config)
}
