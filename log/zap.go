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
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// DiscardLogger drops every entry. It is the default of every component.
	DiscardLogger Logger = discardLogger{}

	// DefaultLogger writes Info and above to os.Stderr.
	DefaultLogger = NewZap(InfoLevel, os.Stderr)

	// DebugLogger writes everything to os.Stdout.
	DebugLogger = NewZap(DebugLevel, os.Stdout)
)

const (
	fileBufferSize    = 256 * 1024
	fileFlushInterval = 30 * time.Second
)

// Zap is a Logger backed by go.uber.org/zap writing JSON entries.
//
// Regular files are written through a buffer flushed every 30 seconds and by
// Flush; any other writer, including os.Stdout and os.Stderr, is written
// synchronously. Error and above always bypass the buffer.
type Zap struct {
	logger  *zap.Logger
	sugar   *zap.SugaredLogger
	level   zap.AtomicLevel
	outputs []io.Writer
	files   []*os.File
	buffer  *zapcore.BufferedWriteSyncer
}

var _ Logger = (*Zap)(nil)

// NewZap creates a Zap logger writing entries of level and above to writers.
// An unknown level means DebugLevel.
func NewZap(level Level, writers ...io.Writer) *Zap {
	atomicLevel := zap.NewAtomicLevelAt(toZapLevel(level))
	encoder := zapcore.NewJSONEncoder(encoderConfig())

	var (
		direct []zapcore.WriteSyncer
		files  []*os.File
		cached []zapcore.WriteSyncer
	)

	for _, writer := range writers {
		if file, ok := writer.(*os.File); ok && !isStdStream(file) {
			files = append(files, file)
			cached = append(cached, zapcore.AddSync(file))
			continue
		}
		direct = append(direct, zapcore.AddSync(writer))
	}

	urgent := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return atomicLevel.Enabled(l) && l >= zapcore.ErrorLevel
	})
	routine := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return atomicLevel.Enabled(l) && l < zapcore.ErrorLevel
	})

	var (
		cores  []zapcore.Core
		buffer *zapcore.BufferedWriteSyncer
	)

	all := append(append([]zapcore.WriteSyncer{}, direct...), cached...)
	if len(all) > 0 {
		cores = append(cores, zapcore.NewCore(encoder, zap.CombineWriteSyncers(all...), urgent))
	}

	if len(direct) > 0 {
		cores = append(cores, zapcore.NewCore(encoder, zap.CombineWriteSyncers(direct...), routine))
	}

	if len(cached) > 0 {
		buffer = &zapcore.BufferedWriteSyncer{
			WS:            zap.CombineWriteSyncers(cached...),
			Size:          fileBufferSize,
			FlushInterval: fileFlushInterval,
		}
		cores = append(cores, zapcore.NewCore(encoder, buffer, routine))
	}

	logger := zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel))

	return &Zap{
		logger:  logger,
		sugar:   logger.Sugar(),
		level:   atomicLevel,
		outputs: writers,
		files:   files,
		buffer:  buffer,
	}
}

func (z *Zap) Debug(v ...any)                 { z.sugar.Debug(v...) }
func (z *Zap) Debugf(format string, v ...any) { z.sugar.Debugf(format, v...) }
func (z *Zap) Info(v ...any)                  { z.sugar.Info(v...) }
func (z *Zap) Infof(format string, v ...any)  { z.sugar.Infof(format, v...) }
func (z *Zap) Warn(v ...any)                  { z.sugar.Warn(v...) }
func (z *Zap) Warnf(format string, v ...any)  { z.sugar.Warnf(format, v...) }
func (z *Zap) Error(v ...any)                 { z.sugar.Error(v...) }
func (z *Zap) Errorf(format string, v ...any) { z.sugar.Errorf(format, v...) }
func (z *Zap) Fatal(v ...any)                 { z.sugar.Fatal(v...) }
func (z *Zap) Fatalf(format string, v ...any) { z.sugar.Fatalf(format, v...) }
func (z *Zap) Panic(v ...any)                 { z.sugar.Panic(v...) }
func (z *Zap) Panicf(format string, v ...any) { z.sugar.Panicf(format, v...) }

// Enabled reports whether entries of the given level are written
func (z *Zap) Enabled(level Level) bool {
	return z.level.Enabled(toZapLevel(level))
}

// With returns a child logger carrying the key-value pairs.
// Keys that are not strings are skipped; a trailing value without key is
// logged under "_".
func (z *Zap) With(keyValues ...any) Logger {
	if len(keyValues) == 0 {
		return z
	}

	fields := make([]zap.Field, 0, (len(keyValues)+1)/2)
	for i := 0; i < len(keyValues); i += 2 {
		if i == len(keyValues)-1 {
			fields = append(fields, zap.Any("_", keyValues[i]))
			break
		}
		if key, ok := keyValues[i].(string); ok {
			fields = append(fields, zap.Any(key, keyValues[i+1]))
		}
	}

	if len(fields) == 0 {
		return z
	}

	child := *z
	child.logger = z.logger.With(fields...)
	child.sugar = child.logger.Sugar()
	return &child
}

// LogLevel returns the minimum level written
func (z *Zap) LogLevel() Level {
	return fromZapLevel(z.level.Level())
}

// LogOutput returns the writers given to NewZap
func (z *Zap) LogOutput() []io.Writer {
	return z.outputs
}

// StdLogger returns a standard library logger writing at the logger level
func (z *Zap) StdLogger() *golog.Logger {
	std, err := zap.NewStdLogAt(z.logger, z.level.Level())
	if err != nil {
		return zap.NewStdLog(z.logger)
	}
	return std
}

// Flush writes the buffered file entries and syncs the files.
// Call it on shutdown; the logger keeps working afterwards.
func (z *Zap) Flush() error {
	var err error
	if z.buffer != nil {
		err = multierr.Append(err, z.buffer.Sync())
	}
	for _, file := range z.files {
		err = multierr.Append(err, file.Sync())
	}
	return err
}

func encoderConfig() zapcore.EncoderConfig {
	config := zap.NewProductionEncoderConfig()
	config.TimeKey = "ts"
	config.MessageKey = "msg"
	config.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncodeLevel = zapcore.LowercaseLevelEncoder
	config.EncodeDuration = zapcore.StringDurationEncoder
	config.EncodeCaller = zapcore.ShortCallerEncoder
	return config
}

func isStdStream(file *os.File) bool {
	return file == os.Stdout || file == os.Stderr
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case InfoLevel:
		return zapcore.InfoLevel
	case WarningLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case FatalLevel:
		return zapcore.FatalLevel
	case PanicLevel:
		return zapcore.PanicLevel
	default:
		return zapcore.DebugLevel
	}
}

func fromZapLevel(level zapcore.Level) Level {
	switch level {
	case zapcore.DebugLevel:
		return DebugLevel
	case zapcore.InfoLevel:
		return InfoLevel
	case zapcore.WarnLevel:
		return WarningLevel
	case zapcore.ErrorLevel:
		return ErrorLevel
	case zapcore.PanicLevel:
		return PanicLevel
	case zapcore.FatalLevel:
		return FatalLevel
	default:
		return InvalidLevel
	}
}
