package logging

import (
	"fmt"
	"log/slog"
	"strings"
)

// RestyLogger routes resty's printf-style logs into slog.
type RestyLogger struct {
	Logger *slog.Logger
}

func (l RestyLogger) Errorf(format string, v ...interface{}) {
	l.Logger.Error(message(format, v...), "component", "resty")
}

func (l RestyLogger) Warnf(format string, v ...interface{}) {
	l.Logger.Warn(message(format, v...), "component", "resty")
}

func (l RestyLogger) Debugf(format string, v ...interface{}) {
	l.Logger.Debug(message(format, v...), "component", "resty")
}

func message(format string, v ...interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, v...))
}
