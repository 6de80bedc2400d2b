// internal/logger/logger.go
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus so the rest of the codebase does not depend on the
// logging library directly.
type Logger struct {
	*logrus.Logger
}

// NewLogger returns a logger writing to stdout with timestamps.
// Log level can be raised via LOG_LEVEL (debug, info, warn, error).
func NewLogger() *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		l.SetLevel(lvl)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}

	return &Logger{Logger: l}
}
