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

// config gathers the optional fields of every message kind.
// Options that do not apply to a kind are ignored by its constructor.
type config struct {
	correlationID          string
	generateID             bool
	messageType            MessageType
	messageTypeSet         bool
	invokeMode             InvokeMode
	context                map[string]any
	allowParallelExecution bool
	invocationError        *RemoteError
}

func newConfig(opts ...Option) *config {
	cfg := &config{invokeMode: InvokeRequestResponse}
	for _, opt := range opts {
		opt.Apply(cfg)
	}
	return cfg
}

// Option is the interface that applies a message option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(*config)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*config)

// Apply applies the option
func (f OptionFunc) Apply(c *config) {
	f(c)
}

// WithCorrelationID sets the correlation id of a request instead of generating one.
// Decoders use it to rebuild a message received from the wire.
func WithCorrelationID(correlationID string) Option {
	return OptionFunc(func(c *config) {
		c.correlationID = correlationID
	})
}

// WithMessageType sets the message type of a request.
// Responses and acknowledges only accept their own type.
func WithMessageType(messageType MessageType) Option {
	return OptionFunc(func(c *config) {
		c.messageType = messageType
		c.messageTypeSet = true
	})
}

// WithInvokeMode sets how the callee should treat a request
func WithInvokeMode(mode InvokeMode) Option {
	return OptionFunc(func(c *config) {
		c.invokeMode = mode
	})
}

// WithContext sets the values carried end-to-end with the message.
// The map is copied.
func WithContext(context map[string]any) Option {
	return OptionFunc(func(c *config) {
		c.context = context
	})
}

// WithParallelExecution sets the parallel execution hint
func WithParallelExecution(allow bool) Option {
	return OptionFunc(func(c *config) {
		c.allowParallelExecution = allow
	})
}

// WithInvocationError marks a response as failed by the invoked method.
func WithInvocationError(remoteErr *RemoteError) Option {
	return OptionFunc(func(c *config) {
		c.invocationError = remoteErr
	})
}
