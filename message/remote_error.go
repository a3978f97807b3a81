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
	"errors"
	"fmt"
)

// Classification tells the caller what kind of failure the invoked method raised.
type Classification int

const (
	// ClassificationApplication is a failure raised by the method's own logic.
	ClassificationApplication Classification = iota
	// ClassificationArgument is a failure caused by the call arguments.
	ClassificationArgument
	// ClassificationNotFound means the contract or method does not exist on the callee.
	ClassificationNotFound
	// ClassificationInternal is a failure of the callee's runtime.
	ClassificationInternal
)

// String returns the name of the classification
func (x Classification) String() string {
	switch x {
	case ClassificationApplication:
		return "Application"
	case ClassificationArgument:
		return "Argument"
	case ClassificationNotFound:
		return "NotFound"
	case ClassificationInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// RemoteError describes a failure raised by the invoked method on the remote side.
// It travels inside a ResponseMessage as data; it is not a local codec failure.
type RemoteError struct {
	TypeName       string
	Message        string
	Classification Classification
}

var _ error = (*RemoteError)(nil)

// NewRemoteError captures err for transmission.
func NewRemoteError(err error, classification Classification) *RemoteError {
	if err == nil {
		return nil
	}

	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr
	}

	return &RemoteError{
		TypeName:       fmt.Sprintf("%T", err),
		Message:        err.Error(),
		Classification: classification,
	}
}

// Error implements the standard error interface
func (x *RemoteError) Error() string {
	return fmt.Sprintf("remote %s error (%s): %s", x.Classification, x.TypeName, x.Message)
}
