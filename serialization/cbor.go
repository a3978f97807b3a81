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

package serialization

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"google.golang.org/protobuf/proto"

	gerrors "github.com/tochemey/remoting/errors"
	"github.com/tochemey/remoting/internal/types"
	"github.com/tochemey/remoting/message"
)

// kind identifies the concrete message type in a record
type kind uint8

const (
	requestKind kind = iota + 1
	responseKind
	acknowledgeKind
)

var (
	cborEncOpts = cbor.EncOptions{
		Sort:        cbor.SortNone,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeRFC3339Nano,
	}
	cborDecOpts = cbor.DecOptions{
		MaxNestedLevels: 64,
		IndefLength:     cbor.IndefLengthForbidden,
		UTF8:            cbor.UTF8RejectInvalid,
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
	}
)

type messageRecord struct {
	Kind          kind              `cbor:"1,keyasint"`
	CorrelationID string            `cbor:"2,keyasint"`
	Type          int               `cbor:"3,keyasint"`
	Context       map[string]any    `cbor:"4,keyasint,omitempty"`
	Parallel      bool              `cbor:"5,keyasint,omitempty"`
	ContractName  string            `cbor:"6,keyasint,omitempty"`
	MethodName    string            `cbor:"7,keyasint,omitempty"`
	InvokeMode    int               `cbor:"8,keyasint,omitempty"`
	Parameters    []parameterRecord `cbor:"9,keyasint,omitempty"`
	ReturnValue   *parameterRecord  `cbor:"10,keyasint,omitempty"`
	Error         *errorRecord      `cbor:"11,keyasint,omitempty"`
}

type parameterRecord struct {
	ID        int             `cbor:"1,keyasint"`
	ClassName string          `cbor:"2,keyasint"`
	Size      int64           `cbor:"3,keyasint"`
	Value     cbor.RawMessage `cbor:"4,keyasint,omitempty"`
	Pointer   bool            `cbor:"5,keyasint,omitempty"`
}

type errorRecord struct {
	TypeName       string `cbor:"1,keyasint"`
	Message        string `cbor:"2,keyasint"`
	Classification int    `cbor:"3,keyasint"`
}

// CBORSerializer is a Serializer that encodes messages as CBOR records.
//
// Parameter values are encoded as CBOR and restored through the types
// registered with RegisterParameterTypes, keyed by the parameter class name.
// Protobuf values are encoded with protobuf and resolved by their full name.
//
// CBORSerializer is stateless and safe for concurrent use.
type CBORSerializer struct {
	encMode cbor.EncMode
	decMode cbor.DecMode
}

var _ Serializer = (*CBORSerializer)(nil)

// NewCBORSerializer returns a ready-to-use CBORSerializer
func NewCBORSerializer() *CBORSerializer {
	encMode, _ := cborEncOpts.EncMode()
	decMode, _ := cborDecOpts.DecMode()
	return &CBORSerializer{encMode: encMode, decMode: decMode}
}

// Serialize implements Serializer
func (s *CBORSerializer) Serialize(msg message.Message) ([]byte, error) {
	if msg == nil {
		return nil, gerrors.NewErrInvalidArgument("message is nil")
	}

	if rv := reflect.ValueOf(msg); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil, gerrors.NewErrInvalidArgument("message is nil")
	}

	record := messageRecord{
		CorrelationID: msg.CorrelationID(),
		Type:          int(msg.Type()),
		Context:       msg.Context(),
		Parallel:      msg.AllowParallelExecution(),
	}

	switch x := msg.(type) {
	case *message.RequestMessage:
		record.Kind = requestKind
		record.ContractName = x.ContractName()
		record.MethodName = x.MethodName()
		record.InvokeMode = int(x.InvokeMode())
		for _, parameter := range x.Parameters() {
			encoded, err := s.encodeParameter(parameter)
			if err != nil {
				return nil, err
			}
			record.Parameters = append(record.Parameters, encoded)
		}
	case *message.ResponseMessage:
		record.Kind = responseKind
		encoded, err := s.encodeParameter(x.ReturnValue())
		if err != nil {
			return nil, err
		}
		record.ReturnValue = &encoded
		if remoteErr := x.InvocationError(); remoteErr != nil {
			record.Error = &errorRecord{
				TypeName:       remoteErr.TypeName,
				Message:        remoteErr.Message,
				Classification: int(remoteErr.Classification),
			}
		}
	case *message.AcknowledgeMessage:
		record.Kind = acknowledgeKind
	default:
		return nil, gerrors.NewErrSerializationFailed(fmt.Errorf("unsupported message %T", msg))
	}

	bytea, err := s.encMode.Marshal(record)
	if err != nil {
		return nil, gerrors.NewErrSerializationFailed(err)
	}
	return bytea, nil
}

// Deserialize implements Serializer
func (s *CBORSerializer) Deserialize(data []byte) (message.Message, error) {
	var record messageRecord
	if err := s.decMode.Unmarshal(data, &record); err != nil {
		return nil, gerrors.NewErrDeserializationFailed(err)
	}

	opts := []message.Option{
		message.WithMessageType(message.MessageType(record.Type)),
		message.WithContext(record.Context),
		message.WithParallelExecution(record.Parallel),
	}

	var (
		msg message.Message
		err error
	)

	switch record.Kind {
	case requestKind:
		parameters := make([]*message.MethodParameter, 0, len(record.Parameters))
		for _, encoded := range record.Parameters {
			parameter, err := s.decodeParameter(encoded)
			if err != nil {
				return nil, err
			}
			parameters = append(parameters, parameter)
		}

		opts = append(opts,
			message.WithCorrelationID(record.CorrelationID),
			message.WithInvokeMode(message.InvokeMode(record.InvokeMode)))
		msg, err = message.NewRequestMessage(record.ContractName, record.MethodName, parameters, opts...)
	case responseKind:
		if record.ReturnValue == nil {
			return nil, gerrors.NewErrDeserializationFailed(fmt.Errorf("response without return value"))
		}

		returnValue, err := s.decodeParameter(*record.ReturnValue)
		if err != nil {
			return nil, err
		}

		if record.Error != nil {
			opts = append(opts, message.WithInvocationError(&message.RemoteError{
				TypeName:       record.Error.TypeName,
				Message:        record.Error.Message,
				Classification: message.Classification(record.Error.Classification),
			}))
		}
		msg, err = message.NewResponseMessage(record.CorrelationID, returnValue, opts...)
		if err != nil {
			return nil, gerrors.NewErrDeserializationFailed(err)
		}
		return msg, nil
	case acknowledgeKind:
		msg, err = message.NewAcknowledgeMessage(record.CorrelationID, opts...)
	default:
		return nil, gerrors.NewErrDeserializationFailed(fmt.Errorf("unknown message kind %d", record.Kind))
	}

	if err != nil {
		return nil, gerrors.NewErrDeserializationFailed(err)
	}
	return msg, nil
}

func (s *CBORSerializer) encodeParameter(parameter *message.MethodParameter) (parameterRecord, error) {
	record := parameterRecord{
		ID:        parameter.ID(),
		ClassName: parameter.ClassName(),
		Size:      parameter.Size(),
	}

	value := parameter.Value()
	if parameter.IsStream() || value == nil {
		return record, nil
	}

	if msg, ok := value.(proto.Message); ok {
		bytea, err := proto.Marshal(msg)
		if err != nil {
			return record, gerrors.NewErrSerializationFailed(err)
		}
		raw, err := s.encMode.Marshal(bytea)
		if err != nil {
			return record, gerrors.NewErrSerializationFailed(err)
		}
		record.Value = raw
		return record, nil
	}

	raw, err := s.encMode.Marshal(value)
	if err != nil {
		return record, gerrors.NewErrSerializationFailed(fmt.Errorf("parameter %d (%s): %w", parameter.ID(), parameter.ClassName(), err))
	}

	record.Value = raw
	record.Pointer = reflect.TypeOf(value).Kind() == reflect.Ptr
	return record, nil
}

func (s *CBORSerializer) decodeParameter(record parameterRecord) (*message.MethodParameter, error) {
	if record.Size >= 0 {
		parameter, err := message.NewStreamPlaceholder(record.ID, record.ClassName, record.Size)
		if err != nil {
			return nil, gerrors.NewErrDeserializationFailed(err)
		}
		return parameter, nil
	}

	value, err := s.decodeValue(record)
	if err != nil {
		return nil, gerrors.NewErrDeserializationFailed(fmt.Errorf("parameter %d (%s): %w", record.ID, record.ClassName, err))
	}

	parameter, err := message.NewMethodParameter(record.ID, record.ClassName, value)
	if err != nil {
		return nil, gerrors.NewErrDeserializationFailed(err)
	}
	return parameter, nil
}

func (s *CBORSerializer) decodeValue(record parameterRecord) (any, error) {
	if len(record.Value) == 0 {
		return nil, nil
	}

	if types.IsProtoTag(record.ClassName) {
		msg, err := types.NewProto(record.ClassName)
		if err != nil {
			return nil, err
		}

		var bytea []byte
		if err := s.decMode.Unmarshal(record.Value, &bytea); err != nil {
			return nil, err
		}

		if err := proto.Unmarshal(bytea, msg); err != nil {
			return nil, err
		}
		return msg, nil
	}

	if rtype, ok := typesRegistry.TypeOf(record.ClassName); ok {
		ptr := reflect.New(rtype)
		if err := s.decMode.Unmarshal(record.Value, ptr.Interface()); err != nil {
			return nil, err
		}
		if record.Pointer {
			return ptr.Interface(), nil
		}
		return ptr.Elem().Interface(), nil
	}

	var value any
	if err := s.decMode.Unmarshal(record.Value, &value); err != nil {
		return nil, err
	}
	return value, nil
}
