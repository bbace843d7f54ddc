package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/arthur-debert/iconrules/pkg/paths"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger installs the global logger for a CLI run. Lines go to stderr
// and, when the state directory is writable, to the iconrules log file.
func SetupLogger(verbosity int) {
	logFile := getLogFilePath()
	logger, err := newLogger(verbosity, os.Stderr, logFile)
	log.Logger = logger

	// Console only; say so once the logger exists
	if err != nil {
		log.Warn().Err(err).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}

	log.Debug().Int("verbosity", verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

// levelFor maps -v counts to levels: none warns, -v info, -vv debug,
// anything above traces
func levelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// newLogger sets the global level and builds a logger writing to console
// and logFile. An empty logFile disables the file. The returned error only
// reports the file; the logger is always usable.
func newLogger(verbosity int, console io.Writer, logFile string) (zerolog.Logger, error) {
	zerolog.SetGlobalLevel(levelFor(verbosity))

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(console),
	}}

	var err error
	if logFile != "" {
		var file *os.File
		if file, err = setupLogFile(logFile); err == nil {
			writers = append(writers, file)
		}
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	return ctx.Logger(), err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// GetLogger returns a logger tagged with the component name, such as
// "rules.engine" or "inject.pipeline"
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// WithFields adds fields to logger in key order, so lines for the same
// event always read the same way
func WithFields(logger zerolog.Logger, fields map[string]interface{}) zerolog.Logger {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ctx := logger.With()
	for _, k := range keys {
		ctx = ctx.Interface(k, fields[k])
	}
	return ctx.Logger()
}

// getLogFilePath returns the path to the log file in the state directory
func getLogFilePath() string {
	return paths.LogFilePath()
}

// setupLogFile creates the log file and its parent directories
func setupLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// LogDuration logs how long operation took since start
func LogDuration(logger zerolog.Logger, start time.Time, operation string) {
	logger.Debug().
		Str("operation", operation).
		Dur("duration", time.Since(start)).
		Msg("Operation completed")
}

// LogOperationStart logs the start of an operation and returns a function
// that logs its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() { LogDuration(logger, start, operation) }
}
