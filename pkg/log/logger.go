package log

import (
	"io"
	"log"
	"os"
)

// Logger is the logging surface used by the loader and the command line
// tool. The parser packages never log; they return errors.
type Logger interface {
	Infof(format string, args ...interface{})

	Warnf(format string, args ...interface{})

	Errorf(format string, args ...interface{})

	Fatalf(format string, args ...interface{})
}

var DefaultLogger Logger

func init() {
	DefaultLogger = New(os.Stderr)
}

// New returns a Logger writing "[LEVEL] message" lines to w.
func New(w io.Writer) Logger {
	return logWrapper{Logger: log.New(w, "", log.LstdFlags)}
}

type logWrapper struct {
	Logger *log.Logger
}

func (logger logWrapper) Infof(format string, args ...interface{}) {
	logger.Logger.Printf("[INFO] "+format, args...)
}

func (logger logWrapper) Warnf(format string, args ...interface{}) {
	logger.Logger.Printf("[WARN] "+format, args...)
}

func (logger logWrapper) Errorf(format string, args ...interface{}) {
	logger.Logger.Printf("[ERROR] "+format, args...)
}

func (logger logWrapper) Fatalf(format string, args ...interface{}) {
	logger.Logger.Fatalf("[FATAL] "+format, args...)
}

// Quiet drops Info messages and forwards everything else to l.
func Quiet(l Logger) Logger {
	return quietLogger{Logger: l}
}

type quietLogger struct {
	Logger
}

func (quietLogger) Infof(string, ...interface{}) {}

func Infof(format string, args ...interface{}) {
	DefaultLogger.Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	DefaultLogger.Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	DefaultLogger.Errorf(format, args...)
}

func Fatalf(format string, args ...interface{}) {
	DefaultLogger.Fatalf(format, args...)
}
