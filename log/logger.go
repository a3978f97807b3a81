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

package log

import (
	"io"
	golog "log"
)

// Logger is the logging contract of every remoting component.
//
// Channels and codecs never log above Warn on their own: a failed frame is an
// error returned to the caller, and the caller decides how loud it is.
type Logger interface {
	Debug(...any)
	Debugf(string, ...any)
	Info(...any)
	Infof(string, ...any)
	Warn(...any)
	Warnf(string, ...any)
	Error(...any)
	Errorf(string, ...any)
	// Fatal logs then calls os.Exit(1).
	Fatal(...any)
	// Fatalf logs then calls os.Exit(1).
	Fatalf(string, ...any)
	// Panic logs then panics.
	Panic(...any)
	// Panicf logs then panics.
	Panicf(string, ...any)

	// Enabled reports whether entries of the given level are written.
	// Callers use it to skip building expensive messages.
	Enabled(level Level) bool
	// With returns a Logger that adds the key-value pairs to every entry.
	With(keyValues ...any) Logger
	// LogLevel returns the minimum level written
	LogLevel() Level
	// LogOutput returns the writers entries go to
	LogOutput() []io.Writer
	// StdLogger returns a standard library logger writing through this Logger
	StdLogger() *golog.Logger
	// Flush writes buffered entries out
	Flush() error
}
