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

// AcknowledgeMessage confirms that the message with the same correlation id was received.
type AcknowledgeMessage struct {
	envelope
}

var _ Message = (*AcknowledgeMessage)(nil)

// NewAcknowledgeMessage creates an acknowledge for the given correlation id
func NewAcknowledgeMessage(correlationID string, opts ...Option) (*AcknowledgeMessage, error) {
	cfg := newConfig(opts...)
	if cfg.messageTypeSet && cfg.messageType != Acknowledge {
		return nil, gerrors.NewErrInvalidMessageType(cfg.messageType)
	}

	cfg.correlationID = correlationID
	base, err := newEnvelope(cfg, Acknowledge)
	if err != nil {
		return nil, err
	}
	return &AcknowledgeMessage{envelope: base}, nil
}
