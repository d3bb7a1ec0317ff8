package parser

import (
	"context"
	"log/slog"
)

// Logger is the interface swagrec uses for structured logging.
//
// Attributes are alternating key-value pairs, following log/slog:
//
//	logger.Debug("resolved schema", "name", "Pet", "round", 2)
//
// Use [NewSlogAdapter] to wrap a *slog.Logger:
//
//	logger := parser.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, nil)))
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("api.yaml"),
//	    parser.WithLogger(logger),
//	)
//
// The extractor, MCP server and HTTP API accept the same interface.
type Logger interface {
	// Debug logs at debug level. Use for detailed diagnostic information.
	Debug(msg string, attrs ...any)

	// Info logs at info level. Use for general operational information.
	Info(msg string, attrs ...any)

	// Warn logs at warn level. Use for potentially harmful situations.
	Warn(msg string, attrs ...any)

	// Error logs at error level. Use for error conditions.
	Error(msg string, attrs ...any)

	// With returns a new Logger with the given attributes prepended to every log.
	// This is useful for adding context that applies to multiple log calls.
	With(attrs ...any) Logger
}

// NopLogger is a no-op logger that discards all output.
// It is the default logger used when no logger is configured.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(_ string, _ ...any) {}

// Info implements Logger.
func (NopLogger) Info(_ string, _ ...any) {}

// Warn implements Logger.
func (NopLogger) Warn(_ string, _ ...any) {}

// Error implements Logger.
func (NopLogger) Error(_ string, _ ...any) {}

// With implements Logger.
func (n NopLogger) With(_ ...any) Logger { return n }

// Ensure NopLogger implements Logger at compile time.
var _ Logger = NopLogger{}

// SlogAdapter wraps a *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter from a *slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Debug implements Logger.
func (s *SlogAdapter) Debug(msg string, attrs ...any) {
	s.logger.Debug(msg, attrs...)
}

// Info implements Logger.
func (s *SlogAdapter) Info(msg string, attrs ...any) {
	s.logger.Info(msg, attrs...)
}

// Warn implements Logger.
func (s *SlogAdapter) Warn(msg string, attrs ...any) {
	s.logger.Warn(msg, attrs...)
}

// Error implements Logger.
func (s *SlogAdapter) Error(msg string, attrs ...any) {
	s.logger.Error(msg, attrs...)
}

// With implements Logger.
func (s *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(attrs...)}
}

// Ensure SlogAdapter implements Logger at compile time.
var _ Logger = (*SlogAdapter)(nil)

// ContextLogger wraps a Logger to include context in all operations.
// This is useful for passing request-scoped values through the logging pipeline.
type ContextLogger struct {
	logger Logger
	ctx    context.Context
}

// NewContextLogger creates a new ContextLogger.
func NewContextLogger(logger Logger, ctx context.Context) *ContextLogger {
	return &ContextLogger{logger: logger, ctx: ctx}
}

// Debug implements Logger.
func (c *ContextLogger) Debug(msg string, attrs ...any) {
	c.logger.Debug(msg, attrs...)
}

// Info implements Logger.
func (c *ContextLogger) Info(msg string, attrs ...any) {
	c.logger.Info(msg, attrs...)
}

// Warn implements Logger.
func (c *ContextLogger) Warn(msg string, attrs ...any) {
	c.logger.Warn(msg, attrs...)
}

// Error implements Logger.
func (c *ContextLogger) Error(msg string, attrs ...any) {
	c.logger.Error(msg, attrs...)
}

// With implements Logger.
func (c *ContextLogger) With(attrs ...any) Logger {
	return &ContextLogger{
		logger: c.logger.With(attrs...),
		ctx:    c.ctx,
	}
}

// Context returns the context associated with this logger.
func (c *ContextLogger) Context() context.Context {
	return c.ctx
}

// Ensure ContextLogger implements Logger at compile time.
var _ Logger = (*ContextLogger)(nil)
