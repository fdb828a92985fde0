package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

var (
	// Logger is a no-op until Init or SetOutput is called, so library
	// packages can log unconditionally.
	Logger  = zerolog.Nop()
	logFile *os.File
)

// timestampHook adds timestamp at the end of each log event
type timestampHook struct{}

func (h timestampHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	e.Time("ts", time.Now())
}

// Init initializes the logging system with zerolog
func Init() error {
	logDir := filepath.Join(os.Getenv("HOME"), ".local", "state", "webdesk")
	os.MkdirAll(logDir, 0755)

	logPath := filepath.Join(logDir, "webdesk.log")
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	logFile = f

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.MessageFieldName = "msg"

	Logger = zerolog.New(logFile).Hook(timestampHook{})

	return nil
}

// SetOutput redirects logging to w. Used by tests and by `serve --foreground`.
func SetOutput(w io.Writer) {
	zerolog.MessageFieldName = "msg"
	Logger = zerolog.New(w).Hook(timestampHook{})
}

// SetDebug toggles debug level output
func SetDebug(on bool) {
	if on {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Close closes the log file
func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Debug returns a debug level event
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Info returns an info level event
func Info() *zerolog.Event {
	return Logger.Info()
}

// Warn returns a warn level event
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error returns an error level event
func Error() *zerolog.Event {
	return Logger.Error()
}
