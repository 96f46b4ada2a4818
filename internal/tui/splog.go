// Package tui provides terminal user interface components and utilities.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelImportant sits between info and warn. Important messages are shown even
// when info output is suppressed with --quiet.
const LevelImportant = slog.Level(2)

// simpleHandler is a custom slog handler that writes messages without timestamps or level prefixes
type simpleHandler struct {
	writer    io.Writer
	debugMode bool
	minLevel  *slog.Level // Pointer so verbosity can be changed after construction
	quiet     *bool       // Pointer to quiet flag so it can be changed dynamically
}

func (h *simpleHandler) Enabled(_ context.Context, level slog.Level) bool {
	// Debug messages only enabled in debug mode
	if level == slog.LevelDebug {
		return h.debugMode
	}
	return level >= *h.minLevel
}

func (h *simpleHandler) Handle(_ context.Context, record slog.Record) error {
	if *h.quiet {
		return nil // Suppress output while a TUI owns the terminal
	}
	_, err := fmt.Fprintln(h.writer, record.Message)
	return err
}

func (h *simpleHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *simpleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// createLumberjackLogger creates a lumberjack logger with configuration from environment variables
func createLumberjackLogger(logFilePath string) *lumberjack.Logger {
	config := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    1,     // 1MB (in megabytes) - default
		MaxBackups: 2,     // Keep 2 old files - default
		MaxAge:     30,    // Keep for 30 days - default
		Compress:   false, // Never compress logs - default
	}

	if maxSizeStr := os.Getenv("SVN_REBASE_LOG_MAX_SIZE"); maxSizeStr != "" {
		if maxSize, err := strconv.Atoi(maxSizeStr); err == nil && maxSize > 0 {
			config.MaxSize = maxSize
		}
	}

	if maxBackupsStr := os.Getenv("SVN_REBASE_LOG_MAX_BACKUPS"); maxBackupsStr != "" {
		if maxBackups, err := strconv.Atoi(maxBackupsStr); err == nil && maxBackups >= 0 {
			config.MaxBackups = maxBackups
		}
	}

	if maxAgeStr := os.Getenv("SVN_REBASE_LOG_MAX_AGE"); maxAgeStr != "" {
		if maxAge, err := strconv.Atoi(maxAgeStr); err == nil && maxAge > 0 {
			config.MaxAge = maxAge
		}
	}

	return config
}

// multiHandler fans out log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}

// Splog provides structured logging and output
type Splog struct {
	logger    *slog.Logger
	writer    io.Writer
	logWriter io.WriteCloser // Lumberjack logger for file logging
	minLevel  slog.Level
	quiet     bool // When true, suppresses all console output (used during TUI mode)
	runID     string
}

// NewSplog creates a new splog instance with console-only logging on stdout.
// Debug messages are enabled when the DEBUG environment variable is set
func NewSplog() *Splog {
	splog, _ := NewSplogWithConfig(os.Stdout, "")
	return splog
}

// NewSplogWithConfig creates a new splog instance writing to w, with optional file logging.
// Every file record carries a run id so interleaved invocations can be told apart.
func NewSplogWithConfig(w io.Writer, logFilePath string) (*Splog, error) {
	debugMode := os.Getenv("DEBUG") != ""
	splog := &Splog{
		writer:   w,
		minLevel: slog.LevelInfo,
		runID:    uuid.NewString(),
	}

	consoleHandler := &simpleHandler{
		writer:    w,
		debugMode: debugMode,
		minLevel:  &splog.minLevel,
		quiet:     &splog.quiet,
	}

	handlers := []slog.Handler{consoleHandler}

	if logFilePath != "" {
		logDir := filepath.Dir(logFilePath)
		if err := os.MkdirAll(logDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		lumberjackLogger := createLumberjackLogger(logFilePath)
		splog.logWriter = lumberjackLogger

		fileHandler := slog.NewTextHandler(lumberjackLogger, &slog.HandlerOptions{
			Level: slog.LevelDebug, // Always log everything to file
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{Key: a.Key, Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000"))}
				}
				if a.Key == slog.LevelKey && a.Value.Any() == LevelImportant {
					return slog.String(slog.LevelKey, "IMPORTANT")
				}
				return a
			},
		})

		handlers = append(handlers, fileHandler.WithAttrs([]slog.Attr{slog.String("run", splog.runID)}))
	}

	splog.logger = slog.New(&multiHandler{handlers: handlers})

	return splog, nil
}

// RunID returns the id attached to this invocation's file log records
func (s *Splog) RunID() string {
	return s.runID
}

// SetQuiet sets the quiet mode for the logger.
// When quiet is true, all console output is suppressed (used during TUI mode).
// File logging is unaffected.
func (s *Splog) SetQuiet(quiet bool) {
	s.quiet = quiet
}

// IsQuiet returns whether the logger is in quiet mode.
func (s *Splog) IsQuiet() bool {
	return s.quiet
}

// SetImportantOnly hides info messages on the console; important messages,
// warnings and errors are still shown.
func (s *Splog) SetImportantOnly(enabled bool) {
	if enabled {
		s.minLevel = LevelImportant
	} else {
		s.minLevel = slog.LevelInfo
	}
}

func (s *Splog) logMessage(level slog.Level, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	s.logger.Log(context.Background(), level, msg)
}

// Info writes an info message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Info(format string, args ...interface{}) {
	s.logMessage(slog.LevelInfo, format, args)
}

// Important writes a message that survives --quiet
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Important(format string, args ...interface{}) {
	s.logMessage(LevelImportant, format, args)
}

// Warn writes a warning message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Warn(format string, args ...interface{}) {
	s.logMessage(slog.LevelWarn, "⚠️  "+format, args)
}

// Error writes an error message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Error(format string, args ...interface{}) {
	s.logMessage(slog.LevelError, format, args)
}

// Debug writes a debug message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Debug(format string, args ...interface{}) {
	s.logMessage(slog.LevelDebug, format, args)
}

// Tip writes a tip message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Tip(format string, args ...interface{}) {
	s.logMessage(slog.LevelInfo, "💡 "+format, args)
}

// Page writes output verbatim, bypassing levels
func (s *Splog) Page(content string) {
	if s.quiet {
		return
	}
	_, _ = fmt.Fprint(s.writer, content)
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.logWriter != nil {
		return s.logWriter.Close()
	}
	return nil
}
