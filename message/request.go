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
	"slices"

	gerrors "github.com/tochemey/remoting/errors"
	"github.com/tochemey/remoting/internal/validation"
)

// RequestMessage asks the callee to invoke MethodName of ContractName.
type RequestMessage struct {
	envelope
	contractName string
	methodName   string
	parameters   []*MethodParameter
	invokeMode   InvokeMode
}

var _ Message = (*RequestMessage)(nil)

// NewRequestMessage creates a request with a fresh correlation id.
//
// The message type defaults to Request; WithMessageType accepts Request,
// Datagram or DatagramOneway and any other value fails with ErrInvalidMessageType.
func NewRequestMessage(contractName, methodName string, parameters []*MethodParameter, opts ...Option) (*RequestMessage, error) {
	cfg := newConfig(opts...)
	cfg.generateID = true

	messageType := Request
	if cfg.messageTypeSet {
		messageType = cfg.messageType
	}

	if !IsRequestType(messageType) {
		return nil, gerrors.NewErrInvalidMessageType(messageType)
	}

	if err := validation.New(validation.FailFast()).
		AddValidator(validation.NewEmptyStringValidator("contractName", contractName)).
		AddValidator(validation.NewEmptyStringValidator("methodName", methodName)).
		Validate(); err != nil {
		return nil, invalidArgument(err)
	}

	for _, parameter := range parameters {
		if parameter == nil {
			return nil, gerrors.NewErrInvalidArgument("method parameter is nil")
		}
	}

	base, err := newEnvelope(cfg, messageType)
	if err != nil {
		return nil, err
	}

	return &RequestMessage{
		envelope:     base,
		contractName: contractName,
		methodName:   methodName,
		parameters:   slices.Clone(parameters),
		invokeMode:   cfg.invokeMode,
	}, nil
}

// ContractName returns the fully-qualified identity of the called interface
func (x *RequestMessage) ContractName() string {
	return x.contractName
}

// MethodName returns the called method
func (x *RequestMessage) MethodName() string {
	return x.methodName
}

// Parameters returns the call parameters in order. It may be empty.
func (x *RequestMessage) Parameters() []*MethodParameter {
	return slices.Clone(x.parameters)
}

// InvokeMode returns how the callee should treat the call
func (x *RequestMessage) InvokeMode() InvokeMode {
	return x.invokeMode
}

// ExpectsResponse reports whether the caller waits for a ResponseMessage.
func (x *RequestMessage) ExpectsResponse() bool {
	return x.messageType == Request && x.invokeMode == InvokeRequestResponse
}

// StreamParameters returns the stream-backed parameters in order.
func (x *RequestMessage) StreamParameters() []*MethodParameter {
	var out []*MethodParameter
	for _, parameter := range x.parameters {
		if parameter.IsStream() {
			out = append(out, parameter)
		}
	}
	return out
}

// NewResponse creates the response paired with this request.
func (x *RequestMessage) NewResponse(returnValue *MethodParameter, opts ...Option) (*ResponseMessage, error) {
	return NewResponseMessage(x.correlationID, returnValue, opts...)
}

// NewAcknowledge creates the acknowledge paired with this request.
func (x *RequestMessage) NewAcknowledge(opts ...Option) (*AcknowledgeMessage, error) {
	return NewAcknowledgeMessage(x.correlationID, opts...)
}
