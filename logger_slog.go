package emitter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

type slogLogger struct {
	l *slog.Logger
}

// NewSlogLogger adapts a *slog.Logger. A nil logger uses slog.Default().
func NewSlogLogger(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return slogLogger{l: l}
}

func (s slogLogger) WithField(key string, value any) Logger {
	return slogLogger{l: s.l.With(key, value)}
}

func (s slogLogger) log(level slog.Level, msg string) {
	s.l.Log(context.Background(), level, strings.TrimRight(msg, "\n"))
}

func (s slogLogger) Debug(args ...any) { s.log(slog.LevelDebug, fmt.Sprint(args...)) }

func (s slogLogger) Debugf(format string, args ...any) {
	s.log(slog.LevelDebug, fmt.Sprintf(format, args...))
}

func (s slogLogger) Debugln(args ...any) { s.log(slog.LevelDebug, fmt.Sprintln(args...)) }

func (s slogLogger) Info(args ...any) { s.log(slog.LevelInfo, fmt.Sprint(args...)) }

func (s slogLogger) Infof(format string, args ...any) {
	s.log(slog.LevelInfo, fmt.Sprintf(format, args...))
}

func (s slogLogger) Infoln(args ...any) { s.log(slog.LevelInfo, fmt.Sprintln(args...)) }

func (s slogLogger) Warn(args ...any) { s.log(slog.LevelWarn, fmt.Sprint(args...)) }

func (s slogLogger) Warnf(format string, args ...any) {
	s.log(slog.LevelWarn, fmt.Sprintf(format, args...))
}

func (s slogLogger) Warnln(args ...any) { s.log(slog.LevelWarn, fmt.Sprintln(args...)) }

func (s slogLogger) Error(args ...any) { s.log(slog.LevelError, fmt.Sprint(args...)) }

func (s slogLogger) Errorf(format string, args ...any) {
	s.log(slog.LevelError, fmt.Sprintf(format, args...))
}

func (s slogLogger) Errorln(args ...any) { s.log(slog.LevelError, fmt.Sprintln(args...)) }
