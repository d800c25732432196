package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"volvedash/internal/config"
	"volvedash/pkg/contracts"
)

// Log formats accepted by LoggingConfig.Format
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

var (
	loggerMu     sync.Mutex
	globalLogger *slog.Logger
	// logFile is the file sink opened by InitializeLogger, closed by CloseLogFile
	logFile *os.File
)

// InitializeLogger builds the application logger once and installs it as the
// slog default. Later calls return the first logger and ignore cfg.
func InitializeLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if globalLogger != nil {
		return globalLogger, nil
	}

	out, file, err := logOutput(cfg)
	if err != nil {
		return nil, err
	}

	logger := NewLogger(out, cfg.Format, parseLogLevel(cfg.Level)).With(
		slog.String("service", config.AppName),
		slog.String("version", contracts.Version),
	)

	globalLogger = logger
	logFile = file
	slog.SetDefault(logger)
	return logger, nil
}

// GetLogger returns the application logger, or slog.Default before
// InitializeLogger has run.
func GetLogger() *slog.Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if globalLogger == nil {
		return slog.Default()
	}
	return globalLogger
}

// NewLogger builds a trace-aware logger writing format ("json" or "text")
// to w. Unknown formats fall back to JSON.
func NewLogger(w io.Writer, format string, level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource:   true,
		Level:       level,
		ReplaceAttr: shortSource,
	}

	var handler slog.Handler
	if strings.EqualFold(format, LogFormatText) {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(&traceHandler{Handler: handler})
}

// logOutput resolves the configured sink. The returned file is nil for console output.
func logOutput(cfg config.LoggingConfig) (io.Writer, *os.File, error) {
	switch strings.ToLower(cfg.Output) {
	case "file":
		file, err := openLogFile(cfg.FilePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return file, file, nil
	case "both":
		file, err := openLogFile(cfg.FilePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return io.MultiWriter(os.Stdout, file), file, nil
	default:
		return os.Stdout, nil, nil
	}
}

// shortSource reduces the source attribute to "file.go:line"
func shortSource(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.SourceKey || len(groups) > 0 {
		return a
	}
	src, ok := a.Value.Any().(*slog.Source)
	if !ok || src == nil {
		return a
	}
	return slog.String(slog.SourceKey, filepath.Base(src.File)+":"+strconv.Itoa(src.Line))
}

// traceHandler adds the context trace_id to every record
type traceHandler struct {
	slog.Handler
}

func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if traceID := GetTraceID(ctx); traceID != "" {
		r.AddAttrs(slog.String("trace_id", traceID))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithGroup(name)}
}

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// CloseLogFile closes the log file opened by InitializeLogger, if any.
func CloseLogFile() error {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// ResetLoggerForTesting drops the application logger so tests can
// initialize it again.
func ResetLoggerForTesting() {
	_ = CloseLogFile()

	loggerMu.Lock()
	defer loggerMu.Unlock()
	globalLogger = nil
}

func openLogFile(filePath string) (*os.File, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", filePath, err)
	}
	return file, nil
}
