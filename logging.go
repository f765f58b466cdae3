package formsync

import "time"

// SyncLogEvent describes one apply, extract, or default lookup for logging.
type SyncLogEvent struct {
	Op       string
	OptionID string
	GroupID  string
	Kind     Kind
	Duration time.Duration
	Err      error
}

// SyncLogger records sync events.
type SyncLogger interface {
	LogSync(SyncLogEvent)
}

// SyncLoggerFunc adapts a function to SyncLogger.
type SyncLoggerFunc func(SyncLogEvent)

// LogSync implements SyncLogger.
func (f SyncLoggerFunc) LogSync(event SyncLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopSyncLogger struct{}

func (noopSyncLogger) LogSync(SyncLogEvent) {}

const (
	opApply   = "apply"
	opExtract = "extract"
	opDefault = "default"
)
