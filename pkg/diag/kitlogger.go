package diag

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// KitLogger adapts a go-kit/log.Logger into a Sink, logging each recovered
// condition at warn level with "code" and "detail" keys plus whatever
// caller-supplied fields accompanied it.
type KitLogger struct {
	Logger log.Logger
}

// NewKitLogger wraps logger, defaulting to a no-op logger if nil.
func NewKitLogger(logger log.Logger) KitLogger {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return KitLogger{Logger: logger}
}

func (k KitLogger) Warn(code, detail string, fields map[string]interface{}) {
	keyvals := []interface{}{"code", code, "detail", detail}
	for key, val := range fields {
		keyvals = append(keyvals, key, val)
	}
	level.Warn(k.Logger).Log(keyvals...)
}
