package framework

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is the minimal logging interface used by tests and by the HTTP runner.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (nullLogger) Printf(string, ...interface{}) {}

// NullLogger returns a Logger that discards everything.
func NullLogger() Logger { return nullLogger{} }

type multiLogger []Logger

func (m multiLogger) Printf(message string, args ...interface{}) {
	for _, l := range m {
		l.Printf(message, args...)
	}
}

// MultiLogger returns a Logger that writes every message to each of the given loggers.
// Nil loggers are ignored.
func MultiLogger(loggers ...Logger) Logger {
	var m multiLogger
	for _, l := range loggers {
		if l != nil {
			m = append(m, l)
		}
	}
	switch len(m) {
	case 0:
		return NullLogger()
	case 1:
		return m[0]
	default:
		return m
	}
}

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger keeps every message in memory so it can be shown after a test finishes.
// It is safe for concurrent use.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	m := CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)}
	l.lock.Lock()
	defer l.lock.Unlock()
	l.output = append(l.output, m)
}

// Output returns a copy of the messages captured so far.
func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	defer l.lock.Unlock()
	return append(CapturedOutput(nil), l.output...)
}

// Dump writes each message on its own line, with a timestamp and the given prefix.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[%s] %s\n", prefix, m.Time.Format(timestampFormat), m.Message)
	}
}
