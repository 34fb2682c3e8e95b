package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a console logger on stderr
func SetupLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// SetupFileLogger configures a logger writing to the given file; TUI
// programs own the terminal, so their logs must go elsewhere.
func SetupFileLogger(path string, debug bool) (*log.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, f, nil
}

// SetLevelFromString applies a textual level to an existing logger
func SetLevelFromString(logger *log.Logger, level string) {
	switch level {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	}
}
