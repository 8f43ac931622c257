// Package logging provides component loggers for the playground.
// The terminal belongs to the TUI, so log output goes to a file.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/diogo/playground/internal/config"
)

// EnvLogLevel overrides the configured log level.
const EnvLogLevel = "PLAYGROUND_LOG_LEVEL"

var (
	root      = newRoot()
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
	logFile   *os.File
)

func newRoot() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// NewLogger returns the logger for a component. Entries are cached per
// component and share the root logger's level and output.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if entry, ok := loggers[component]; ok {
		return entry
	}
	entry := root.WithField("component", component)
	loggers[component] = entry
	return entry
}

// ParseLevel resolves the effective level: env var first, then the
// configured value, falling back to info.
func ParseLevel(configured string) logrus.Level {
	levelStr := "info"
	if env := os.Getenv(EnvLogLevel); env != "" {
		levelStr = env
	} else if configured != "" {
		levelStr = configured
	}
	level, err := logrus.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// Setup points the root logger at the file configured in cfg.
// Failing to open the file leaves logging disabled rather than failing the command.
func Setup(cfg config.Config) error {
	root.SetLevel(ParseLevel(cfg.Log.Level))

	path, err := config.GetLogPath(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}

	loggersMu.Lock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	loggersMu.Unlock()

	root.SetOutput(f)
	return nil
}

// SetOutput redirects the root logger, mainly for tests.
func SetOutput(w io.Writer) {
	root.SetOutput(w)
}

// SetLevel changes the root log level.
func SetLevel(level logrus.Level) {
	root.SetLevel(level)
}

// Close releases the log file opened by Setup.
func Close() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	root.SetOutput(io.Discard)
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}
