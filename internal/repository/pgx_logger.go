package repository

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// maxLoggedSQL caps statement text in logs; listing queries are short, but migrations are not.
const maxLoggedSQL = 2048

// pgxLogger adapts zerolog.Logger to pgx's tracelog interface.
type pgxLogger struct {
	logger zerolog.Logger
}

// newPgxLogger builds a child logger scoped to the pgx component so SQL noise stays filterable.
func newPgxLogger(logger zerolog.Logger) *pgxLogger {
	l := logger.With().Str("component", "pgx").Logger()
	return &pgxLogger{logger: l}
}

// Log implements tracelog.Logger. Statement text and args are only attached at
// trace level; at higher levels they would leak account data into logs.
func (l *pgxLogger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	if level == tracelog.LogLevelNone {
		return
	}

	var event *zerolog.Event
	switch level {
	case tracelog.LogLevelTrace:
		event = l.logger.Trace()
		if s, ok := data["sql"].(string); ok {
			if len(s) > maxLoggedSQL {
				s = s[:maxLoggedSQL] + "..."
			}
			event = event.Str("sql", s)
		}
		if args, ok := data["args"]; ok {
			event = event.Interface("args", args)
		}
	case tracelog.LogLevelDebug:
		event = l.logger.Debug()
	case tracelog.LogLevelInfo:
		event = l.logger.Info()
	case tracelog.LogLevelWarn:
		event = l.logger.Warn()
	case tracelog.LogLevelError:
		event = l.logger.Error()
	default:
		event = l.logger.Info().Str("pgx_log_level", level.String())
	}
	if !event.Enabled() {
		return
	}

	if rid, ok := RequestIDFromContext(ctx); ok {
		event = event.Str("request_id", rid)
	}
	for k, v := range data {
		switch k {
		case "sql", "args":
			continue
		case "time":
			if d, ok := v.(interface{ Seconds() float64 }); ok {
				event = event.Float64("took_ms", d.Seconds()*1000)
				continue
			}
		}
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}
