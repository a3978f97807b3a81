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
	mapset "github.com/deckarep/golang-set/v2"
)

// MessageType classifies a message envelope.
type MessageType int

const (
	// Request is a call that expects a Response.
	Request MessageType = iota
	// Response carries the outcome of a Request.
	Response
	// Acknowledge confirms that a message was received.
	Acknowledge
	// Datagram is a call that expects at most an Acknowledge.
	Datagram
	// DatagramOneway is a call that expects nothing back.
	DatagramOneway
)

// requestTypes is the closed set of types a RequestMessage accepts.
var requestTypes = mapset.NewThreadUnsafeSet(Request, Datagram, DatagramOneway)

// String returns the name of the message type
func (x MessageType) String() string {
	switch x {
	case Request:
		return "Request"
	case Response:
		return "Response"
	case Acknowledge:
		return "Acknowledge"
	case Datagram:
		return "Datagram"
	case DatagramOneway:
		return "DatagramOneway"
	default:
		return "Unknown"
	}
}

// IsRequestType reports whether a RequestMessage may carry the given type.
func IsRequestType(messageType MessageType) bool {
	return requestTypes.Contains(messageType)
}

// InvokeMode tells the callee how a request should be treated.
type InvokeMode int

const (
	// InvokeRequestResponse executes the call and sends a Response back.
	InvokeRequestResponse InvokeMode = iota
	// InvokeOneWay executes the call and sends nothing back.
	InvokeOneWay
	// InvokeAcknowledged acknowledges receipt before executing the call.
	InvokeAcknowledged
)

// String returns the name of the invoke mode
func (x InvokeMode) String() string {
	switch x {
	case InvokeRequestResponse:
		return "RequestResponse"
	case InvokeOneWay:
		return "OneWay"
	case InvokeAcknowledged:
		return "Acknowledged"
	default:
		return "Unknown"
	}
}
