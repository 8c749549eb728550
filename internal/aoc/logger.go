package aoc

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// leveledLogger routes retryablehttp's key/value logging into zerolog.
type leveledLogger struct {
	log zerolog.Logger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.emit(l.log.Error(), msg, keysAndValues)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.emit(l.log.Warn(), msg, keysAndValues)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.emit(l.log.Debug(), msg, keysAndValues)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.emit(l.log.Debug(), msg, keysAndValues)
}

func (l leveledLogger) emit(e *zerolog.Event, msg string, kv []interface{}) {
	if e == nil {
		return
	}
	fields := make([]interface{}, 0, len(kv))
	for i, v := range kv {
		if i%2 == 0 {
			fields = append(fields, v)
			continue
		}
		fields = append(fields, logValue(v))
	}
	e.Fields(fields).Msg(msg)
}

func logValue(v interface{}) interface{} {
	switch x := v.(type) {
	case nil, string, bool, int, int64, float64:
		return x
	case *http.Request:
		return x.Method + " " + x.URL.Redacted()
	case error:
		return x.Error()
	default:
		return fmt.Sprint(x)
	}
}
