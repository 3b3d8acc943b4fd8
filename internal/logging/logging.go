// Package logging builds the zap logger used by the command-line tools and
// adapts it to the uploader.Logger interface.
package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLogLevel overrides the configured log level when set.
const EnvLogLevel = "SPADE_LOG_LEVEL"

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn, error (default info)
	Level string

	// Format is "console" or "json" (default console)
	Format string

	// Output defaults to os.Stderr
	Output io.Writer
}

// New creates a logger from opts. A non-empty SPADE_LOG_LEVEL takes
// precedence over opts.Level.
func New(opts Options) *zap.Logger {
	level := ParseLevel(opts.Level)
	if env := os.Getenv(EnvLogLevel); env != "" {
		level = ParseLevel(env)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}

	var encoder zapcore.Encoder
	if strings.EqualFold(opts.Format, "json") {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), level)
	return zap.New(core)
}

// ParseLevel maps a level name to a zap level. Unknown names yield info.
func ParseLevel(raw string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug", "trace":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Adapter implements uploader.Logger on top of a zap logger.
type Adapter struct {
	sugar *zap.SugaredLogger
}

// NewAdapter wraps l. A nil logger yields a no-op adapter.
func NewAdapter(l *zap.Logger) *Adapter {
	if l == nil {
		l = zap.NewNop()
	}
	return &Adapter{sugar: l.Sugar()}
}

// Debug logs a debug message with key-value pairs.
func (a *Adapter) Debug(msg string, keysAndValues ...interface{}) {
	a.sugar.Debugw(msg, keysAndValues...)
}

// Info logs an info message with key-value pairs.
func (a *Adapter) Info(msg string, keysAndValues ...interface{}) {
	a.sugar.Infow(msg, keysAndValues...)
}

// Error logs an error message with key-value pairs.
func (a *Adapter) Error(msg string, keysAndValues ...interface{}) {
	a.sugar.Errorw(msg, keysAndValues...)
}
