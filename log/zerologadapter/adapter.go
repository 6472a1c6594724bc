// Package zerologadapter provides a logger that writes to a github.com/rs/zerolog.
package zerologadapter

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jackc/pgreq"
)

type Logger struct {
	logger zerolog.Logger
}

// NewLogger accepts a zerolog.Logger as input and returns a new custom pgreq
// logging facade as output.
func NewLogger(logger zerolog.Logger) *Logger {
	return &Logger{
		logger: logger.With().Str("module", "pgreq").Logger(),
	}
}

func (pl *Logger) Log(ctx context.Context, level pgreq.LogLevel, msg string, data map[string]interface{}) {
	var zlevel zerolog.Level
	switch level {
	case pgreq.LogLevelNone:
		zlevel = zerolog.NoLevel
	case pgreq.LogLevelError:
		zlevel = zerolog.ErrorLevel
	case pgreq.LogLevelWarn:
		zlevel = zerolog.WarnLevel
	case pgreq.LogLevelInfo:
		zlevel = zerolog.InfoLevel
	case pgreq.LogLevelDebug:
		zlevel = zerolog.DebugLevel
	default:
		zlevel = zerolog.DebugLevel
	}

	pgreqlog := pl.logger.With().Fields(data).Logger()
	pgreqlog.WithLevel(zlevel).Msg(msg)
}
