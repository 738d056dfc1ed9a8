// Package log is the structured logger used across imgview. It keeps a small
// levelled API (Info/Warn/Error/Debug plus printf forms and key=value fields)
// on top of logrus.
package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	serr "imgview/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	isDebug = false
	logger  = NewLogger()
)

// Field is a single key/value pair attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger writes levelled, structured log lines.
type Logger struct {
	base  *logrus.Logger
	entry *logrus.Entry
	file  *os.File
}

type options struct {
	out      io.Writer
	json     bool
	filePath string
}

// Option configures a Logger.
type Option func(*options)

// WithOutput sends log lines to w.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(o *options) {
		o.json = true
	}
}

// WithFile tees log lines to stdout and to the file at path.
func WithFile(path string) Option {
	return func(o *options) {
		o.filePath = path
	}
}

// NewLogger creates a logger. Without options it writes text to stdout.
func NewLogger(opts ...Option) *Logger {
	o := &options{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	base := logrus.New()
	base.SetLevel(logrus.DebugLevel)

	l := &Logger{base: base}

	out := o.out
	if o.filePath != "" {
		f, err := os.OpenFile(o.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: cannot open %s: %v\n", o.filePath, err)
		} else {
			l.file = f
			out = io.MultiWriter(o.out, f)
		}
	}
	base.SetOutput(out)

	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		base.SetFormatter(&textFormatter{})
	}

	l.entry = logrus.NewEntry(base)
	return l
}

// Configure replaces the package-level logger.
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// Default returns the package-level logger.
func Default() *Logger {
	return logger
}

// SetDebug enables or disables debug output for every logger.
func SetDebug(debug bool) {
	isDebug = debug
}

// IsDebug reports whether debug output is enabled.
func IsDebug() bool {
	return isDebug
}

// Close releases the log file opened by WithFile, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// With returns a logger that adds fields to every line.
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{base: l.base, entry: l.entry.WithFields(data), file: l.file}
}

// WithContext attaches ctx to the underlying entry.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	return &Logger{base: l.base, entry: l.entry.WithContext(ctx), file: l.file}
}

// WithError adds the fields describing err.
func (l *Logger) WithError(err error) *Logger {
	return l.With(errorFields(err)...)
}

// Info logs at info level; args, when present, format msg.
func (l *Logger) Info(msg string, args ...interface{}) {
	l.log(logrus.InfoLevel, 2, msg, args)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(logrus.InfoLevel, 2, format, args)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log(logrus.WarnLevel, 2, msg, args)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(logrus.WarnLevel, 2, format, args)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.log(logrus.ErrorLevel, 2, msg, args)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(logrus.ErrorLevel, 2, format, args)
}

// Debug logs only when SetDebug(true) was called.
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.log(logrus.DebugLevel, 2, msg, args)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(logrus.DebugLevel, 2, format, args)
}

func (l *Logger) log(level logrus.Level, skip int, format string, args []interface{}) {
	if level == logrus.DebugLevel && !isDebug {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	entry := l.entry
	if _, file, line, ok := runtime.Caller(skip); ok {
		entry = entry.WithField("caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
	}
	entry.Log(level, msg)
}

func Info(format string, args ...interface{}) {
	logger.log(logrus.InfoLevel, 2, format, args)
}

func Infof(format string, args ...interface{}) {
	logger.log(logrus.InfoLevel, 2, format, args)
}

// Warn logs a warning message with arguments
func Warn(msg string, args ...interface{}) {
	logger.log(logrus.WarnLevel, 2, msg, args)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	logger.log(logrus.WarnLevel, 2, format, args)
}

// Error logs an error message with arguments
func Error(msg string, args ...interface{}) {
	logger.log(logrus.ErrorLevel, 2, msg, args)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	logger.log(logrus.ErrorLevel, 2, format, args)
}

// Debug logs a message with arguments
func Debug(msg string, args ...interface{}) {
	logger.log(logrus.DebugLevel, 2, msg, args)
}

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) {
	logger.log(logrus.DebugLevel, 2, format, args)
}

// LogWithFields returns the package-level logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package-level logger with the fields describing err.
func LogWithError(err error) *Logger {
	return logger.WithError(err)
}

// LogError logs err at error level.
func LogError(err error, msg string) {
	logger.WithError(err).log(logrus.ErrorLevel, 2, msg, nil)
}

func errorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}
	fields := []Field{
		F("error", err.Error()),
		F("error_kind", serr.KindOf(err).String()),
	}

	var configErr *serr.ConfigError
	if serr.As(err, &configErr) {
		fields = append(fields, F("param", configErr.Param()))
	}
	var fileErr *serr.FileError
	if serr.As(err, &fileErr) {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var decodeErr *serr.DecodeError
	if serr.As(err, &decodeErr) {
		fields = append(fields, F("path", decodeErr.Path()))
	}
	return fields
}

// textFormatter renders "[time] LEVEL: message key=value ..." lines.
type textFormatter struct{}

func (f *textFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] %s: %s", e.Time.Format("2006-01-02 15:04:05"), levelName(e.Level), e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelName(level logrus.Level) string {
	if level == logrus.WarnLevel {
		return "WARN"
	}
	return strings.ToUpper(level.String())
}
