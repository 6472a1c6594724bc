// Package zapadapter provides a logger that writes to a go.uber.org/zap.Logger.
package zapadapter

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jackc/pgreq"
)

type Logger struct {
	logger *zap.Logger
}

func NewLogger(logger *zap.Logger) *Logger {
	return &Logger{logger: logger.WithOptions(zap.AddCallerSkip(1))}
}

func (pl *Logger) Log(ctx context.Context, level pgreq.LogLevel, msg string, data map[string]interface{}) {
	fields := make([]zapcore.Field, len(data))
	i := 0
	for k, v := range data {
		fields[i] = zap.Any(k, v)
		i++
	}

	switch level {
	case pgreq.LogLevelTrace:
		pl.logger.Debug(msg, append(fields, zap.Stringer("PGREQ_LOG_LEVEL", level))...)
	case pgreq.LogLevelDebug:
		pl.logger.Debug(msg, fields...)
	case pgreq.LogLevelInfo:
		pl.logger.Info(msg, fields...)
	case pgreq.LogLevelWarn:
		pl.logger.Warn(msg, fields...)
	case pgreq.LogLevelError:
		pl.logger.Error(msg, fields...)
	default:
		pl.logger.Error(msg, append(fields, zap.Stringer("INVALID_PGREQ_LOG_LEVEL", level))...)
	}
}
