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

package errorschain

import (
	"io"

	"go.uber.org/multierr"
)

// Chain collects the errors of a sequence of cleanup steps.
// Every step runs; Error reports what went wrong.
type Chain struct {
	returnFirst bool
	errs        []error
}

// ChainOption configures a Chain at creation time.
type ChainOption func(*Chain)

// New creates an empty Chain
func New(opts ...ChainOption) *Chain {
	chain := &Chain{errs: make([]error, 0)}
	for _, opt := range opts {
		opt(chain)
	}
	return chain
}

// AddError appends an error. Nil errors are kept and ignored by Error.
func (c *Chain) AddError(err error) *Chain {
	c.errs = append(c.errs, err)
	return c
}

// AddErrors appends errors in order
func (c *Chain) AddErrors(errs ...error) *Chain {
	c.errs = append(c.errs, errs...)
	return c
}

// AddClosers closes each closer in order and records its error.
// Nil closers are skipped.
func (c *Chain) AddClosers(closers ...io.Closer) *Chain {
	for _, closer := range closers {
		if closer == nil {
			continue
		}
		c.errs = append(c.errs, closer.Close())
	}
	return c
}

// Error returns the first recorded error with ReturnFirst, or all of them
// combined with multierr otherwise.
func (c *Chain) Error() error {
	var err error
	for _, v := range c.errs {
		if v == nil {
			continue
		}
		if c.returnFirst {
			return v
		}
		err = multierr.Append(err, v)
	}
	return err
}

// ReturnFirst makes Error report the first recorded error only.
func ReturnFirst() ChainOption {
	return func(c *Chain) { c.returnFirst = true }
}

// ReturnAll makes Error report every recorded error.
func ReturnAll() ChainOption {
	return func(c *Chain) { c.returnFirst = false }
}
