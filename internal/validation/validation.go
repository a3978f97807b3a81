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

package validation

import (
	"go.uber.org/multierr"
)

// Validator is a single check. It returns nil when the check holds.
type Validator interface {
	Validate() error
}

// Chain runs a list of validators in the order they were added.
//
// In fail-fast mode the first violation is returned unchanged, which keeps
// sentinel matching with errors.Is intact. Otherwise every violation is
// combined with multierr.
type Chain struct {
	failFast   bool
	validators []Validator
}

var _ Validator = (*Chain)(nil)

// ChainOption customizes a Chain
type ChainOption func(*Chain)

// FailFast returns on the first violation
func FailFast() ChainOption {
	return func(c *Chain) { c.failFast = true }
}

// AllErrors reports all violations. This is the default.
func AllErrors() ChainOption {
	return func(c *Chain) { c.failFast = false }
}

// New creates an empty Chain
func New(opts ...ChainOption) *Chain {
	c := new(Chain)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddValidator appends v to the chain
func (c *Chain) AddValidator(v Validator) *Chain {
	c.validators = append(c.validators, v)
	return c
}

// AddAssertion appends a check failing with message when isTrue is false
func (c *Chain) AddAssertion(isTrue bool, message string) *Chain {
	return c.AddValidator(NewBooleanValidator(isTrue, message))
}

// Validate runs every validator of the chain.
// It can be called several times; each run starts from a clean slate.
func (c *Chain) Validate() error {
	var violations []error
	for _, v := range c.validators {
		err := v.Validate()
		switch {
		case err == nil:
			continue
		case c.failFast:
			return err
		default:
			violations = append(violations, err)
		}
	}
	return multierr.Combine(violations...)
}
