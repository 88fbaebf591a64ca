package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

const (
	appName        = "widget-remote"
	defaultLogFile = appName + ".log"
)

var (
	mu           sync.Mutex
	traceEnabled bool
	base         = zerolog.Nop()
	logPath      string
	logFile      *os.File
	level        = zerolog.WarnLevel
)

// DefaultPath returns the log location used when none is configured:
// $XDG_STATE_HOME/widget-remote/widget-remote.log.
func DefaultPath() string {
	return filepath.Join(xdg.StateHome, appName, defaultLogFile)
}

// Configure opens the log destination. The terminal belongs to the UI, so
// logs only ever go to a file. Empty values fall back to DefaultPath.
// Directories are created automatically when missing.
func Configure(path string) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to open log file: %v\n", err)
		return
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logPath = path
	base = newLogger(f)
}

// SetOutput redirects logging to w. Tests use it to capture entries.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		base = zerolog.Nop()
		return
	}
	base = newLogger(w)
}

// SetVerbosity maps -v counts to levels: 0 warn, 1 info, 2 debug, 3+ trace.
func SetVerbosity(verbosity int) {
	mu.Lock()
	defer mu.Unlock()
	switch {
	case verbosity <= 0:
		level = zerolog.WarnLevel
	case verbosity == 1:
		level = zerolog.InfoLevel
	case verbosity == 2:
		level = zerolog.DebugLevel
	default:
		level = zerolog.TraceLevel
	}
	base = base.Level(level)
}

// Path reports the file currently receiving log output, if any.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Logger returns a logger tagged with the given component.
func Logger(component string) zerolog.Logger {
	mu.Lock()
	l := base
	mu.Unlock()
	return l.With().Str("component", component).Logger()
}

// Error writes err to the shared log.
func Error(err error) {
	if err == nil {
		return
	}
	mu.Lock()
	l := base
	mu.Unlock()
	l.Error().Err(err).Send()
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// Trace appends a structured entry to the shared log when tracing is enabled.
// Trace entries bypass the level filter.
func Trace(event string, payload interface{}) {
	mu.Lock()
	enabled := traceEnabled
	l := base
	mu.Unlock()
	if !enabled {
		return
	}
	entry := l.Log().Str("event", event)
	if payload != nil {
		entry = entry.Interface("payload", payload)
	}
	entry.Send()
}

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
