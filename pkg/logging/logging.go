package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// LogLevel defines the severity of the log entry.
type LogLevel int

const (
	LevelTrace LogLevel = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// slogLevelTrace sits below slog's own Debug level; slog.Level is just an int,
// so trace occupies the conventional -8 offset used by slog consumers that
// need a level finer than Debug.
const slogLevelTrace slog.Level = slog.LevelDebug - 4
const slogLevelFatal slog.Level = slog.LevelError + 4

// String makes LogLevel satisfy the fmt.Stringer interface.
func (l LogLevel) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// SlogLevel maps a LogLevel onto the underlying slog.Level scale.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelTrace:
		return slogLevelTrace
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelFatal:
		return slogLevelFatal
	default:
		return slog.LevelInfo
	}
}

var (
	mu            sync.Mutex
	defaultLogger *slog.Logger
	fileSink      *os.File
	exitHook      = os.Exit
)

// InitForCLI initializes the process-wide logger writing to output at the
// given minimum level. Safe to call once at process startup.
func InitForCLI(filterLevel LogLevel, output io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	opts := &slog.HandlerOptions{Level: filterLevel.SlogLevel()}
	handler := slog.NewTextHandler(output, opts)
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// InitFileSink additionally mirrors every log line to path, flushing after
// every write. Call after InitForCLI. Returns the file so the caller can
// close it on shutdown; a nil return with a non-nil error means the sink
// could not be opened.
func InitFileSink(path string) (*os.File, error) {
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %q: %w", path, err)
	}
	fileSink = f
	return f, nil
}

func logInternal(level LogLevel, subsystem string, err error, messageFmt string, args ...interface{}) {
	mu.Lock()
	logger := defaultLogger
	sink := fileSink
	mu.Unlock()

	if logger == nil || !logger.Enabled(context.Background(), level.SlogLevel()) {
		if level == LevelFatal {
			exitHook(1)
		}
		return
	}

	msg := messageFmt
	if len(args) > 0 {
		msg = fmt.Sprintf(messageFmt, args...)
	}

	var attrs []slog.Attr
	attrs = append(attrs, slog.String("subsystem", subsystem))
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	logger.LogAttrs(context.Background(), level.SlogLevel(), msg, attrs...)

	if sink != nil {
		line := fmt.Sprintf("%s [%s] %s: %s", time.Now().Format(time.RFC3339), level, subsystem, msg)
		if err != nil {
			line += " error=" + err.Error()
		}
		mu.Lock()
		fmt.Fprintln(sink, line)
		sink.Sync()
		mu.Unlock()
	}

	if level == LevelFatal {
		exitHook(1)
	}
}

// Trace logs a trace-level message, finer-grained than Debug.
func Trace(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelTrace, subsystem, nil, messageFmt, args...)
}

// Debug logs a debug message.
func Debug(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelDebug, subsystem, nil, messageFmt, args...)
}

// Info logs an informational message.
func Info(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelInfo, subsystem, nil, messageFmt, args...)
}

// Warn logs a warning message.
func Warn(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelWarn, subsystem, nil, messageFmt, args...)
}

// Error logs an error message.
func Error(subsystem string, err error, messageFmt string, args ...interface{}) {
	logInternal(LevelError, subsystem, err, messageFmt, args...)
}

// Fatal logs at the highest severity, then terminates the process via the
// configured exit hook (os.Exit by default, overridable in tests).
func Fatal(subsystem string, err error, messageFmt string, args ...interface{}) {
	logInternal(LevelFatal, subsystem, err, messageFmt, args...)
}
