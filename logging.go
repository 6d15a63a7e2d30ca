package redpipe

import (
	"log"

	"github.com/efritz/redpipe/iface"
)

type (
	// Logger is an interface to the logger the client writes to.
	Logger = iface.Logger

	defaultLogger struct{}
	nilLogger     struct{}

	prefixLogger struct {
		prefix string
		logger Logger
	}
)

// NewNilLogger creates a logger that discards every message.
func NewNilLogger() Logger {
	return &nilLogger{}
}

func (l *defaultLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

func (l *nilLogger) Printf(format string, args ...interface{}) {
}

// Prefixes each message, used to tell connections apart in the log.
func newPrefixLogger(logger Logger, prefix string) Logger {
	return &prefixLogger{prefix: prefix, logger: logger}
}

func (l *prefixLogger) Printf(format string, args ...interface{}) {
	l.logger.Printf("[%s] "+format, append([]interface{}{l.prefix}, args...)...)
}
