// Package logger wraps zap so every component in the engine logs through a
// component-scoped sub-logger instead of a bare global.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level names accepted by Init and COMPLIOR_LOG_LEVEL.
type Level string

const (
	Debug Level = "debug"
	Info  Level = "info"
	Warn  Level = "warn"
	Error Level = "error"
)

// Format is the encoder used for log lines.
type Format string

const (
	JSON    Format = "json"
	Console Format = "console"
)

// Config controls how the root logger is built.
type Config struct {
	Level      Level
	Format     Format
	OutputPath string
	Caller     bool
}

// DefaultConfig matches what `complior serve` and the CLI use unless
// overridden by environment variables.
func DefaultConfig() Config {
	return Config{
		Level:      Info,
		Format:     Console,
		OutputPath: "stdout",
		Caller:     true,
	}
}

// FromEnv builds a Config from COMPLIOR_LOG_LEVEL / COMPLIOR_LOG_FORMAT.
func FromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("COMPLIOR_LOG_LEVEL"); v != "" {
		cfg.Level = Level(strings.ToLower(v))
	}
	if v := os.Getenv("COMPLIOR_LOG_FORMAT"); v != "" {
		cfg.Format = Format(strings.ToLower(v))
	}
	return cfg
}

// New builds a root Interface from the given config. Callers hold onto the
// returned logger and derive component loggers from it with WithComponent.
func New(cfg Config) (Interface, error) {
	var level zapcore.Level
	switch cfg.Level {
	case Debug:
		level = zapcore.DebugLevel
	case Warn:
		level = zapcore.WarnLevel
	case Error:
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var encoder zapcore.Encoder
	if cfg.Format == JSON {
		enc := zap.NewProductionEncoderConfig()
		enc.TimeKey = "timestamp"
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(enc)
	} else {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")
		encoder = zapcore.NewConsoleEncoder(enc)
	}

	var ws zapcore.WriteSyncer
	if cfg.OutputPath == "" || cfg.OutputPath == "stdout" {
		ws = zapcore.AddSync(os.Stdout)
	} else {
		f, err := os.OpenFile(cfg.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
		ws = zapcore.AddSync(f)
	}

	core := zapcore.NewCore(encoder, ws, level)

	var opts []zap.Option
	if cfg.Caller {
		opts = append(opts, zap.AddCaller())
	}
	opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))

	return &ZapLogger{logger: zap.New(core, opts...)}, nil
}

// Noop returns a logger that discards everything, used in tests that don't
// care about log output.
func Noop() Interface {
	return &ZapLogger{logger: zap.NewNop()}
}
