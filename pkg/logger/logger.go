package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus with the progress helpers used by the CLI
type Logger struct {
	entry   *logrus.Logger
	verbose bool
	out     io.Writer
	mu      sync.Mutex
}

// NewLogger creates a new logger with specified level and verbose mode
func NewLogger(level string, verbose bool) *Logger {
	return NewLoggerWithOutput(level, verbose, os.Stdout, os.Stderr)
}

// NewLoggerWithOutput creates a logger writing progress lines to out and
// log records to errOut
func NewLoggerWithOutput(level string, verbose bool, out, errOut io.Writer) *Logger {
	l := logrus.New()
	l.SetOutput(errOut)
	l.SetLevel(parseLogLevel(level))
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		FullTimestamp:    true,
		TimestampFormat:  "15:04:05",
		DisableQuote:     true,
		QuoteEmptyFields: false,
	})

	return &Logger{
		entry:   l,
		verbose: verbose,
		out:     out,
	}
}

// Debug logs debug information (only in debug mode)
func (l *Logger) Debug(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

// Info logs informational messages (only in verbose mode)
func (l *Logger) Info(format string, args ...interface{}) {
	if l.verbose {
		l.entry.Infof(format, args...)
	}
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// ProgressAlways prints milestones users should see regardless of verbose mode
func (l *Logger) ProgressAlways(emoji, format string, args ...interface{}) {
	l.print(emoji, format, args...)
}

// Progress prints step-by-step details (only in verbose mode)
func (l *Logger) Progress(emoji, format string, args ...interface{}) {
	if l.verbose {
		l.print(emoji, format, args...)
	}
}

// Verbose reports whether verbose output is enabled
func (l *Logger) Verbose() bool {
	return l.verbose
}

func (l *Logger) print(emoji, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s %s\n", emoji, message)
}

func parseLogLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// DefaultLogger returns a default logger instance
func DefaultLogger() *Logger {
	return NewLogger("info", false)
}

// Discard returns a logger that drops everything, for tests
func Discard() *Logger {
	return NewLoggerWithOutput("error", false, io.Discard, io.Discard)
}
