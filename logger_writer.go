package emitter

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"
)

type (
	// writerLogger writes one line per entry, fields sorted by key:
	//
	//	[2006-01-02 15:04:05] LEVEL [k1=v1, k2=v2]: message
	writerLogger struct {
		out    *lockedWriter
		fields map[string]any
		now    func() time.Time
	}

	lockedWriter struct {
		mu sync.Mutex
		w  io.Writer
	}
)

// NewWriterLogger returns a Logger that writes timestamped lines to w.
func NewWriterLogger(w io.Writer) Logger {
	return &writerLogger{
		out:    &lockedWriter{w: w},
		fields: make(map[string]any),
		now:    time.Now,
	}
}

func (l *writerLogger) WithField(key string, value any) Logger {
	fields := make(map[string]any, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value

	return &writerLogger{out: l.out, fields: fields, now: l.now}
}

func (l *writerLogger) formatFields() string {
	if len(l.fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(l.fields))
	for k := range l.fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=%v", k, l.fields[k])
	}

	return " [" + strings.Join(pairs, ", ") + "]"
}

func (l *writerLogger) log(level, msg string) {
	line := fmt.Sprintf("[%s] %s%s: %s\n",
		l.now().Format(time.DateTime), level, l.formatFields(), strings.TrimRight(msg, "\n"))

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	_, _ = io.WriteString(l.out.w, line)
}

func (l *writerLogger) Debug(args ...any) { l.log("DEBUG", fmt.Sprint(args...)) }

func (l *writerLogger) Debugf(format string, args ...any) {
	l.log("DEBUG", fmt.Sprintf(format, args...))
}

func (l *writerLogger) Debugln(args ...any) { l.log("DEBUG", fmt.Sprintln(args...)) }

func (l *writerLogger) Info(args ...any) { l.log("INFO", fmt.Sprint(args...)) }

func (l *writerLogger) Infof(format string, args ...any) {
	l.log("INFO", fmt.Sprintf(format, args...))
}

func (l *writerLogger) Infoln(args ...any) { l.log("INFO", fmt.Sprintln(args...)) }

func (l *writerLogger) Warn(args ...any) { l.log("WARN", fmt.Sprint(args...)) }

func (l *writerLogger) Warnf(format string, args ...any) {
	l.log("WARN", fmt.Sprintf(format, args...))
}

func (l *writerLogger) Warnln(args ...any) { l.log("WARN", fmt.Sprintln(args...)) }

func (l *writerLogger) Error(args ...any) { l.log("ERROR", fmt.Sprint(args...)) }

func (l *writerLogger) Errorf(format string, args ...any) {
	l.log("ERROR", fmt.Sprintf(format, args...))
}

func (l *writerLogger) Errorln(args ...any) { l.log("ERROR", fmt.Sprintln(args...)) }
