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
	"maps"

	"github.com/google/uuid"

	"github.com/tochemey/remoting/internal/validation"
)

// Message is the envelope shared by every message kind.
//
// A Message is immutable once constructed. The only mutable part of the
// model is the value of a MethodParameter, see [MethodParameter.ClearValue]
// and [MethodParameter.AttachStream].
type Message interface {
	// CorrelationID pairs a response or an acknowledge with its request.
	CorrelationID() string
	// Type returns the message type
	Type() MessageType
	// Context returns a copy of the values carried end-to-end with the message.
	Context() map[string]any
	// AllowParallelExecution is a hint for the dispatcher. It is carried, never enforced.
	AllowParallelExecution() bool
}

// envelope holds the fields every message kind carries.
type envelope struct {
	correlationID          string
	messageType            MessageType
	context                map[string]any
	allowParallelExecution bool
}

// CorrelationID returns the correlation id
func (x *envelope) CorrelationID() string {
	return x.correlationID
}

// Type returns the message type
func (x *envelope) Type() MessageType {
	return x.messageType
}

// Context returns a copy of the message context. It is never nil.
func (x *envelope) Context() map[string]any {
	if x.context == nil {
		return map[string]any{}
	}
	return maps.Clone(x.context)
}

// AllowParallelExecution returns the parallel execution hint
func (x *envelope) AllowParallelExecution() bool {
	return x.allowParallelExecution
}

func newEnvelope(cfg *config, messageType MessageType) (envelope, error) {
	correlationID := cfg.correlationID
	if correlationID == "" && cfg.generateID {
		correlationID = uuid.NewString()
	}

	if err := validation.New(validation.FailFast()).
		AddValidator(validation.NewEmptyStringValidator("correlationID", correlationID)).
		Validate(); err != nil {
		return envelope{}, invalidArgument(err)
	}

	var context map[string]any
	if len(cfg.context) > 0 {
		context = maps.Clone(cfg.context)
	}

	return envelope{
		correlationID:          correlationID,
		messageType:            messageType,
		context:                context,
		allowParallelExecution: cfg.allowParallelExecution,
	}, nil
}
