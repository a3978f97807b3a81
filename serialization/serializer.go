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
	"github.com/tochemey/remoting/message"
)

// Serializer turns a message into the body of a frame and back.
//
// Deserialize must return a message of the same kind, type and correlation id
// as the one given to Serialize. Stream-backed parameters are not part of the
// body: only their declared size travels, and the decoded parameter is a
// placeholder waiting for its stream (see message.NewStreamPlaceholder).
//
// Implementations must be safe for concurrent use.
type Serializer interface {
	// Serialize encodes the message
	Serialize(msg message.Message) ([]byte, error)
	// Deserialize decodes bytes produced by Serialize
	Deserialize(data []byte) (message.Message, error)
}
