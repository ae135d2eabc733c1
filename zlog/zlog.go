// Package zlog adapts a zerolog.Logger to the component.Logger interface.
package zlog

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"go.tickamp.dev/component"
)

// Logger implements component.Logger using zerolog.
type Logger struct {
	logger zerolog.Logger
}

var _ component.Logger = (*Logger)(nil)

// New creates a Logger wrapping an existing zerolog.Logger.
func New(logger zerolog.Logger) *Logger {
	return &Logger{logger: logger}
}

// Info logs an info-level message.
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	addFields(l.logger.Info(), keysAndValues).Msg(msg)
}

// Error logs an error-level message.
func (l *Logger) Error(err error, msg string, keysAndValues ...interface{}) {
	addFields(l.logger.Error().Err(err), keysAndValues).Msg(msg)
}

// Zerolog returns the underlying zerolog.Logger.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.logger
}

// addFields adds key-value pairs to a zerolog.Event. A trailing key without
// value is logged under "!BADKEY".
func addFields(event *zerolog.Event, keysAndValues []interface{}) *zerolog.Event {
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 == len(keysAndValues) {
			event = event.Interface("!BADKEY", keysAndValues[i])
			break
		}
		key := fmt.Sprint(keysAndValues[i])
		switch v := keysAndValues[i+1].(type) {
		case string:
			event = event.Str(key, v)
		case int:
			event = event.Int(key, v)
		case int64:
			event = event.Int64(key, v)
		case uint64:
			event = event.Uint64(key, v)
		case float64:
			event = event.Float64(key, v)
		case bool:
			event = event.Bool(key, v)
		case time.Duration:
			event = event.Dur(key, v)
		case error:
			event = event.AnErr(key, v)
		case fmt.Stringer:
			event = event.Stringer(key, v)
		default:
			event = event.Interface(key, v)
		}
	}
	return event
}
