package formsync

// ProgramCache stores compiled default-rule programs keyed by expression
// strings. Expression providers consult it before compiling. Implementations
// shared across sessions must be safe for concurrent use.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}
