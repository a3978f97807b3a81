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
	"errors"
	"io"

	gerrors "github.com/tochemey/remoting/errors"
)

// section reads the bytes of one stream-backed parameter from the channel.
//
// Sections of a message follow each other on the wire in parameter order, so
// a section drains the sections before it on its first read. All reads happen
// under the channel reader lock.
type section struct {
	channel   *Channel
	previous  *section
	remaining int64
}

var _ io.Reader = (*section)(nil)

func newSection(channel *Channel, previous *section, size int64) *section {
	return &section{
		channel:   channel,
		previous:  previous,
		remaining: size,
	}
}

// Read implements io.Reader
func (s *section) Read(p []byte) (int, error) {
	s.channel.readMu.Lock()
	defer s.channel.readMu.Unlock()
	return s.read(p)
}

func (s *section) read(p []byte) (int, error) {
	if s.channel.closed.Load() {
		return 0, gerrors.ErrChannelClosed
	}

	if s.previous != nil {
		if err := s.previous.drain(); err != nil {
			return 0, err
		}
		s.previous = nil
	}

	if s.remaining <= 0 {
		return 0, io.EOF
	}

	if len(p) == 0 {
		return 0, nil
	}

	if int64(len(p)) > s.remaining {
		p = p[:s.remaining]
	}

	n, err := s.channel.stream.Read(p)
	s.remaining -= int64(n)

	if err != nil && errors.Is(err, io.EOF) {
		if s.remaining > 0 {
			return n, gerrors.NewErrConnectionClosed(io.ErrUnexpectedEOF)
		}
		err = nil
	}
	return n, err
}

// drain discards the unread bytes of the section and of the sections before it.
func (s *section) drain() error {
	_, err := io.Copy(io.Discard, lockedReader{s})
	return err
}

// lockedReader reads a section when the reader lock is already held
type lockedReader struct {
	section *section
}

func (r lockedReader) Read(p []byte) (int, error) {
	return r.section.read(p)
}
