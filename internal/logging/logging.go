// Package logging builds the application's zap loggers.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the minimum severity that is written.
type Level int

const (
	// LevelDebug is for detailed debugging information.
	LevelDebug Level = iota
	// LevelInfo is for general informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// String returns the lower-case level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel parses a level name. Matching is case-insensitive.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// ZapLevel converts l to the zap equivalent.
func (l Level) ZapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Format selects the encoder.
type Format string

// Supported formats.
const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Config configures the logger.
type Config struct {
	// Level is the minimum level to output.
	Level Level
	// Format is console or json. Defaults to console.
	Format Format
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// Name is the root logger name.
	Name string
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Format: FormatConsole,
		Output: os.Stderr,
		Name:   "storefront",
	}
}

// New builds a logger from cfg. The returned AtomicLevel changes the level
// of the logger and every logger derived from it.
func New(cfg Config) (*zap.Logger, zap.AtomicLevel, error) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	level := zap.NewAtomicLevelAt(cfg.Level.ZapLevel())

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch cfg.Format {
	case FormatJSON:
		enc = zapcore.NewJSONEncoder(encCfg)
	case FormatConsole, "":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, level, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(cfg.Output), level)
	logger := zap.New(core, zap.AddCaller())
	if cfg.Name != "" {
		logger = logger.Named(cfg.Name)
	}
	return logger, level, nil
}

// Component returns a child logger for a named component.
func Component(l *zap.Logger, name string) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.Named(name).With(zap.String("component", name))
}

// SetLevel applies a level name to an AtomicLevel.
func SetLevel(al zap.AtomicLevel, name string) error {
	l, err := ParseLevel(name)
	if err != nil {
		return err
	}
	al.SetLevel(l.ZapLevel())
	return nil
}
