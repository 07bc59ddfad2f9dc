package log

import (
	"fmt"
	"time"
)

// StdoutLogger is a basic logger which prints all log statements to standard output.
type StdoutLogger struct{}

var _ Logger = (*StdoutLogger)(nil)

// Log prints the given message prefixed with a timestamp and a short level tag.
func (s StdoutLogger) Log(level Level, format string, args ...any) {
	var prefix string

	switch level {
	case LevelTrace:
		prefix = "TRAC"
	case LevelDebug:
		prefix = "DEBU"
	case LevelInfo:
		prefix = "INFO"
	case LevelWarning:
		prefix = "WARN"
	case LevelError:
		prefix = "ERRO"
	case LevelPanic:
		prefix = "PNIC"
	}

	fmt.Println(time.Now().Format(time.RFC3339Nano) + " " + prefix + ": " + fmt.Sprintf(format, args...))
}
