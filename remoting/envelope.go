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

package remoting

import (
	"github.com/tochemey/remoting/message"
	"github.com/tochemey/remoting/wire"
)

// Envelope is a message received by a Channel together with the header it
// was framed with.
type Envelope struct {
	header  *wire.MessageHeader
	message message.Message
}

// SinkID returns the sink the message is addressed to
func (x *Envelope) SinkID() string {
	return x.header.SinkID()
}

// SinkConfiguration returns the sink configuration sent with the message, or nil.
func (x *Envelope) SinkConfiguration() any {
	return x.header.SinkConfiguration()
}

// Header returns the decoded frame header
func (x *Envelope) Header() *wire.MessageHeader {
	return x.header
}

// Message returns the decoded message.
// Its stream-backed parameters are readable until the next Receive.
func (x *Envelope) Message() message.Message {
	return x.message
}
