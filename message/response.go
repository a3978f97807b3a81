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
	gerrors "github.com/tochemey/remoting/errors"
)

// ResponseMessage carries the outcome of a request: a return value and,
// when the invoked method failed, the remote error.
type ResponseMessage struct {
	envelope
	returnValue     *MethodParameter
	invocationError *RemoteError
}

var _ Message = (*ResponseMessage)(nil)

// NewResponseMessage creates a response for the request with the given correlation id.
// returnValue is required; its inner value may be nil.
func NewResponseMessage(correlationID string, returnValue *MethodParameter, opts ...Option) (*ResponseMessage, error) {
	cfg := newConfig(opts...)
	if cfg.messageTypeSet && cfg.messageType != Response {
		return nil, gerrors.NewErrInvalidMessageType(cfg.messageType)
	}

	if returnValue == nil {
		return nil, gerrors.NewErrInvalidArgument("return value is nil")
	}

	cfg.correlationID = correlationID
	base, err := newEnvelope(cfg, Response)
	if err != nil {
		return nil, err
	}

	return &ResponseMessage{
		envelope:        base,
		returnValue:     returnValue,
		invocationError: cfg.invocationError,
	}, nil
}

// ReturnValue returns the return value of the invoked method
func (x *ResponseMessage) ReturnValue() *MethodParameter {
	return x.returnValue
}

// InvocationError returns the failure raised by the invoked method, if any.
func (x *ResponseMessage) InvocationError() *RemoteError {
	return x.invocationError
}

// Failed reports whether the invoked method raised an error
func (x *ResponseMessage) Failed() bool {
	return x.invocationError != nil
}

// Result returns the return value, or the remote error as an error value.
func (x *ResponseMessage) Result() (*MethodParameter, error) {
	if x.invocationError != nil {
		return nil, x.invocationError
	}
	return x.returnValue, nil
}
