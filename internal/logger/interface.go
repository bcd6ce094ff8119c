package logger

import "go.uber.org/zap"

// Interface decouples callers from the concrete zap logger so tests can
// substitute Noop() and components can derive scoped sub-loggers.
type Interface interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	WithComponent(component string) Interface
	Sync() error
}

// ZapLogger implements Interface over a *zap.Logger.
type ZapLogger struct {
	logger *zap.Logger
}

func (z *ZapLogger) Debug(msg string, fields ...zap.Field) { z.logger.Debug(msg, fields...) }
func (z *ZapLogger) Info(msg string, fields ...zap.Field)  { z.logger.Info(msg, fields...) }
func (z *ZapLogger) Warn(msg string, fields ...zap.Field)  { z.logger.Warn(msg, fields...) }
func (z *ZapLogger) Error(msg string, fields ...zap.Field) { z.logger.Error(msg, fields...) }

func (z *ZapLogger) WithComponent(component string) Interface {
	return &ZapLogger{logger: z.logger.With(zap.String("component", component))}
}

func (z *ZapLogger) Sync() error { return z.logger.Sync() }
