// Package logrusadapter provides a logger that writes to a github.com/sirupsen/logrus.Logger
// log.
package logrusadapter

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/jackc/pgreq"
)

type Logger struct {
	l logrus.FieldLogger
}

func NewLogger(l logrus.FieldLogger) *Logger {
	return &Logger{l: l}
}

func (l *Logger) Log(ctx context.Context, level pgreq.LogLevel, msg string, data map[string]interface{}) {
	var logger logrus.FieldLogger
	if data != nil {
		logger = l.l.WithFields(data)
	} else {
		logger = l.l
	}

	switch level {
	case pgreq.LogLevelTrace:
		logger.WithField("PGREQ_LOG_LEVEL", level).Debug(msg)
	case pgreq.LogLevelDebug:
		logger.Debug(msg)
	case pgreq.LogLevelInfo:
		logger.Info(msg)
	case pgreq.LogLevelWarn:
		logger.Warn(msg)
	case pgreq.LogLevelError:
		logger.Error(msg)
	default:
		logger.WithField("INVALID_PGREQ_LOG_LEVEL", level).Error(msg)
	}
}
