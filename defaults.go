package formsync

// DefaultProvider resolves a fallback value for an option or group id when
// the loaded snapshot has no entry for it. Implementations must be
// synchronous and side-effect-free; they are invoked with exactly one id at
// a time, never batched. Returning ok=false means "no default" and leaves the
// widget's markup-declared state untouched.
type DefaultProvider interface {
	DefaultFor(id string) (value any, ok bool)
}

// DefaultProviderFunc adapts a function to DefaultProvider.
type DefaultProviderFunc func(id string) (any, bool)

// DefaultFor implements DefaultProvider.
func (f DefaultProviderFunc) DefaultFor(id string) (any, bool) {
	if f == nil {
		return nil, false
	}
	return f(id)
}

// StaticProvider serves defaults from a fixed values map. Group ids may map
// to nested Values aggregates.
type StaticProvider Values

// DefaultFor implements DefaultProvider.
func (p StaticProvider) DefaultFor(id string) (any, bool) {
	value, ok := p[id]
	return value, ok
}
