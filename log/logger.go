package log

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Configuration constants
const (
	// LogContextKey is used to store/retrieve logger from context
	LogContextKey      = contextKey("logger")
	LogTraceIDKey      = "trace_id"
	LogModuleKey       = "module"
	LogComponentKey    = "component"
	LogTimestampFormat = time.RFC3339Nano
)

type contextKey string

// Logger wraps zerolog.Logger to provide consistent logging patterns
type Logger struct {
	logger     zerolog.Logger
	moduleInfo string
	traceID    string
}

// LogConfig contains configuration for the logger
type LogConfig struct {
	Level            string `json:"level"`
	Format           string `json:"format"` // "console" or "json"
	IncludeTimestamp bool   `json:"includeTimestamp"`
}

// NewDefaultConfig returns a default logging configuration
func NewDefaultConfig() *LogConfig {
	return &LogConfig{
		Level:            "info",
		Format:           "console",
		IncludeTimestamp: true,
	}
}

// Configure configures the global logger based on the provided configuration
func Configure(cfg *LogConfig) error {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %s", cfg.Level)
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = LogTimestampFormat

	var output zerolog.LevelWriter
	if cfg.Format == "console" {
		output = zerolog.MultiLevelWriter(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.TimeFormat = LogTimestampFormat
		}))
	} else {
		output = zerolog.MultiLevelWriter(os.Stdout)
	}

	baseLogger := zerolog.New(output).Level(level)
	if cfg.IncludeTimestamp {
		baseLogger = baseLogger.With().Timestamp().Logger()
	}

	// Set as global logger
	log.Logger = baseLogger
	return nil
}

// New creates a new logger with module information
func New(module string) *Logger {
	return &Logger{
		logger:     log.With().Str(LogModuleKey, module).Logger(),
		moduleInfo: module,
	}
}

// NewWithComponent creates a new logger with module and component information
func NewWithComponent(module, component string) *Logger {
	return &Logger{
		logger: log.With().
			Str(LogModuleKey, module).
			Str(LogComponentKey, component).
			Logger(),
		moduleInfo: fmt.Sprintf("%s.%s", module, component),
	}
}

// NewTraceID generates a new trace ID, suitable for correlating the log entries
// of a single node execution
func NewTraceID() string {
	return uuid.New().String()
}

// WithTraceID creates a new logger with the specified trace ID
func (l *Logger) WithTraceID(traceID string) *Logger {
	return &Logger{
		logger:     l.logger.With().Str(LogTraceIDKey, traceID).Logger(),
		moduleInfo: l.moduleInfo,
		traceID:    traceID,
	}
}

// WithField adds a field to the logger
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{
		logger:     l.logger.With().Interface(key, value).Logger(),
		moduleInfo: l.moduleInfo,
		traceID:    l.traceID,
	}
}

// FromContext retrieves a logger from the context
// If no logger is found, a new default logger is returned
func FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return New("default")
	}
	if logger, ok := ctx.Value(LogContextKey).(*Logger); ok {
		return logger
	}
	return New("default")
}

// WithContext adds the logger to the context
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, LogContextKey, l)
}

// Debug logs a debug message with the given fields
func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	l.emit(l.logger.Debug(), nil, msg, fields)
}

// Info logs an info message with the given fields
func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	l.emit(l.logger.Info(), nil, msg, fields)
}

// Warn logs a warning message with the given fields
func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	l.emit(l.logger.Warn(), nil, msg, fields)
}

// Error logs an error message with the given fields
func (l *Logger) Error(err error, msg string, fields ...map[string]interface{}) {
	l.emit(l.logger.Error(), err, msg, fields)
}

// GetTraceID returns the trace ID associated with this logger
func (l *Logger) GetTraceID() string {
	return l.traceID
}

// GetZerolog returns the underlying zerolog.Logger
func (l *Logger) GetZerolog() zerolog.Logger {
	return l.logger
}

func (l *Logger) emit(event *zerolog.Event, err error, msg string, fields []map[string]interface{}) {
	if err != nil {
		event = event.Err(err)
	}
	if len(fields) > 0 {
		for k, v := range fields[0] {
			event = event.Interface(k, v)
		}
	}
	event.Msg(msg)
}
