// Package logging provides ready-made SyncLogger backends. The root package
// only defines the logger contract and a noop; this package binds it to
// charmbracelet/log for callers that want structured output without writing
// an adapter.
package logging

import (
	"github.com/charmbracelet/log"

	formsync "github.com/goliatone/go-formsync"
)

// NewCharmLogger adapts logger to formsync.SyncLogger. Failed operations log
// at error level, everything else at debug. A nil logger yields a no-op.
func NewCharmLogger(logger *log.Logger) formsync.SyncLogger {
	if logger == nil {
		return formsync.SyncLoggerFunc(nil)
	}
	return formsync.SyncLoggerFunc(func(event formsync.SyncLogEvent) {
		keyvals := []any{
			"op", event.Op,
			"option", event.OptionID,
			"duration", event.Duration,
		}
		if event.GroupID != "" {
			keyvals = append(keyvals, "group", event.GroupID)
		}
		if event.Kind != 0 {
			keyvals = append(keyvals, "kind", event.Kind.String())
		}
		if event.Err != nil {
			keyvals = append(keyvals, "err", event.Err)
			logger.Error("sync", keyvals...)
			return
		}
		logger.Debug("sync", keyvals...)
	})
}
