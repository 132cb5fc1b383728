// Package log provides the process-wide structured logger. It wraps zerolog
// and exposes printf-style and key/value helpers for every level.
package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

var (
	log      zerolog.Logger
	logLevel = LogLevelError

	// logTestWriter and logTestWriterName are used by the tests to redirect
	// the output to an arbitrary io.Writer.
	logTestWriter     io.Writer
	logTestWriterName = "log_test_writer"

	// panicOnInvalidChars makes the logger panic when a log line contains the
	// unicode replacement character, which means an invalid UTF-8 sequence was
	// logged (typically raw bytes printed with %s instead of %x).
	panicOnInvalidChars = os.Getenv("LOG_PANIC_ON_INVALIDCHARS") == "true"
)

func init() {
	level := LogLevelError
	if l := os.Getenv("LOG_LEVEL"); l != "" {
		level = l
	}
	Init(level, "stderr", nil)
}

type invalidCharChecker struct{}

func (*invalidCharChecker) Write(p []byte) (int, error) {
	if bytes.Contains(p, []byte(`\ufffd`)) {
		panic(fmt.Sprintf("log line contains invalid chars: %q", p))
	}
	return len(p), nil
}

// errorLevelWriter only forwards warnings and errors to the wrapped writer.
type errorLevelWriter struct {
	io.Writer
}

func (w *errorLevelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < zerolog.WarnLevel {
		return len(p), nil
	}
	return w.Write(p)
}

// Init initializes the logger. Output can be "stdout", "stderr" or a file
// path. If errorOutput is not nil, warnings and errors are also written there.
func Init(level, output string, errorOutput io.Writer) {
	var out io.Writer
	switch output {
	case "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	case logTestWriterName:
		out = logTestWriter
	default:
		f, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			panic(fmt.Sprintf("cannot create log output: %v", err))
		}
		out = f
	}
	outputs := []io.Writer{zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339Nano,
		NoColor:    output != "stdout" && output != "stderr",
	}}
	if errorOutput != nil {
		outputs = append(outputs, &errorLevelWriter{zerolog.ConsoleWriter{
			Out:        errorOutput,
			TimeFormat: time.RFC3339Nano,
			NoColor:    true,
		}})
	}
	if panicOnInvalidChars {
		outputs = append(outputs, &invalidCharChecker{})
	}

	zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
		return fmt.Sprintf("%s/%s:%d", path.Base(path.Dir(file)), path.Base(file), line)
	}
	log = zerolog.New(zerolog.MultiLevelWriter(outputs...)).With().
		Timestamp().CallerWithSkipFrameCount(3).Logger()

	switch strings.ToLower(level) {
	case LogLevelDebug:
		log = log.Level(zerolog.DebugLevel)
	case LogLevelInfo:
		log = log.Level(zerolog.InfoLevel)
	case LogLevelWarn:
		log = log.Level(zerolog.WarnLevel)
	case LogLevelError:
		log = log.Level(zerolog.ErrorLevel)
	default:
		panic(fmt.Sprintf("invalid log level: %q", level))
	}
	logLevel = strings.ToLower(level)
	log.Info().Msgf("logger construction succeeded at level %s with output %s", level, output)
}

// Level returns the current log level.
func Level() string {
	return logLevel
}

func Debug(args ...any) {
	log.Debug().Msg(fmt.Sprint(args...))
}

func Info(args ...any) {
	log.Info().Msg(fmt.Sprint(args...))
}

func Warn(args ...any) {
	log.Warn().Msg(fmt.Sprint(args...))
}

func Error(args ...any) {
	log.Error().Msg(fmt.Sprint(args...))
}

// Fatal logs the message and exits the process with status 1, printing the
// stack trace first.
func Fatal(args ...any) {
	log.Fatal().Msg(fmt.Sprint(args...) + "\n" + string(debug.Stack()))
}

func Debugf(template string, args ...any) {
	log.Debug().Msgf(template, args...)
}

func Infof(template string, args ...any) {
	log.Info().Msgf(template, args...)
}

func Warnf(template string, args ...any) {
	log.Warn().Msgf(template, args...)
}

func Errorf(template string, args ...any) {
	log.Error().Msgf(template, args...)
}

func Fatalf(template string, args ...any) {
	Fatal(fmt.Sprintf(template, args...))
}

// Debugw logs a message with some additional context. The variadic
// key-value pairs are treated as they are in With.
func Debugw(msg string, keyvalues ...any) {
	log.Debug().Fields(keyvalues).Msg(msg)
}

// Infow logs a message with some additional context. The variadic
// key-value pairs are treated as they are in With.
func Infow(msg string, keyvalues ...any) {
	log.Info().Fields(keyvalues).Msg(msg)
}

// Warnw logs a message with some additional context. The variadic
// key-value pairs are treated as they are in With.
func Warnw(msg string, keyvalues ...any) {
	log.Warn().Fields(keyvalues).Msg(msg)
}

// Errorw logs a message with some additional context. The variadic
// key-value pairs are treated as they are in With.
func Errorw(err error, msg string) {
	log.Error().Err(err).Msg(msg)
}
