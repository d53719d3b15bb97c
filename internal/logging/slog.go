package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
)

// SlogManager manages slog-based logging with optional Graylog shipping.
type SlogManager struct {
	logger *slog.Logger

	gelfWriter *gelf.Writer
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup initializes the logging system with console, optional file, and
// optional Graylog output. An empty gelfAddr disables Graylog shipping;
// a failed Graylog dial is non-fatal and logged to the console handler.
func (m *SlogManager) Setup(file io.Writer, level string, gelfAddr string) {
	lvl := parseLevel(level)

	// Common handler options with RFC3339 time formatting
	handlerOpts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}

	// Build list of handlers
	var handlers []slog.Handler

	// Console handler
	handlers = append(handlers, slog.NewTextHandler(os.Stdout, handlerOpts))

	// File handler
	if file != nil {
		handlers = append(handlers, slog.NewTextHandler(file, handlerOpts))
	}

	// Graylog handler
	if gelfAddr != "" {
		w, err := gelf.NewWriter(gelfAddr)
		if err == nil {
			m.gelfWriter = w
			handlers = append(handlers, slog.NewJSONHandler(w, handlerOpts))
		} else {
			slog.New(handlers[0]).Warn("graylog unavailable", "addr", gelfAddr, "error", err)
		}
	}

	m.logger = slog.New(NewMultiHandler(handlers...))
	slog.SetDefault(m.logger)
}

// Logger returns the configured logger, or the process default before Setup.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		return slog.Default()
	}
	return m.logger
}

// Close flushes and closes the Graylog connection if one was opened.
func (m *SlogManager) Close() error {
	if m.gelfWriter != nil {
		return m.gelfWriter.Close()
	}
	return nil
}
