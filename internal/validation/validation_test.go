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
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/multierr"
)

type chainSuite struct {
	suite.Suite
}

func TestChain(t *testing.T) {
	suite.Run(t, new(chainSuite))
}

func (s *chainSuite) TestOptions() {
	s.Assert().True(New(FailFast()).failFast)
	s.Assert().False(New(AllErrors()).failFast)
	s.Assert().False(New().failFast)
}

func (s *chainSuite) TestAddValidatorAndAssertion() {
	chain := New()
	s.Require().Empty(chain.validators)

	chain.AddValidator(NewBooleanValidator(true, "")).AddAssertion(true, "")
	s.Assert().Len(chain.validators, 2)
	s.Assert().NoError(chain.Validate())
}

func (s *chainSuite) TestBooleanValidator() {
	s.Assert().NoError(NewBooleanValidator(true, "never").Validate())
	s.Assert().EqualError(NewBooleanValidator(false, "header is too large").Validate(), "header is too large")
}

func (s *chainSuite) TestValidate() {
	s.Run("with FailFast the first violation is returned", func() {
		err := New(FailFast()).
			AddValidator(NewEmptyStringValidator("sinkID", "")).
			AddValidator(NewNonNegativeValidator("length", -3)).
			Validate()
		s.Assert().EqualError(err, "the [sinkID] is required")
	})
	s.Run("with AllErrors every violation is returned", func() {
		chain := New(AllErrors()).
			AddValidator(NewEmptyStringValidator("sinkID", "")).
			AddValidator(NewNonNegativeValidator("length", -3)).
			AddAssertion(false, "invalid compression")
		err := chain.Validate()
		s.Assert().EqualError(err, "the [sinkID] is required; the [length] must not be negative, got -3; invalid compression")
		s.Assert().Len(multierr.Errors(err), 3)
		s.Assert().Equal(err.Error(), chain.Validate().Error())
	})
	s.Run("without violations", func() {
		err := New(AllErrors()).
			AddValidator(NewEmptyStringValidator("sinkID", "sink-1")).
			AddValidator(NewNonNegativeValidator("length", 0)).
			Validate()
		s.Assert().NoError(err)
	})
}
