package formsync

// SessionOption configures a Session.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	provider    DefaultProvider
	providerSet bool
	scope       WidgetScope
	logger      SyncLogger
}

func applySessionOptions(opts []SessionOption) sessionConfig {
	cfg := sessionConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithDefaultProvider registers the default provider up front. Passing nil
// explicitly disables default lookup, the same as SetDefaultProvider(nil).
func WithDefaultProvider(provider DefaultProvider) SessionOption {
	return func(cfg *sessionConfig) {
		cfg.provider = provider
		cfg.providerSet = true
	}
}

// WithWidgetScope attaches the widget-layer group query used during group
// extraction. Without a scope, group extraction covers only the invoking
// widget.
func WithWidgetScope(scope WidgetScope) SessionOption {
	return func(cfg *sessionConfig) {
		cfg.scope = scope
	}
}

// WithLogger attaches a sync logger to the session.
func WithLogger(logger SyncLogger) SessionOption {
	return func(cfg *sessionConfig) {
		if logger == nil {
			cfg.logger = noopSyncLogger{}
			return
		}
		cfg.logger = logger
	}
}

// Session drives one load/save cycle of store <-> widget synchronization.
// It owns the remembered group aggregates that prevent partial-group data
// loss during extraction. A session is bound to a single control thread;
// apply and extract never run concurrently.
type Session struct {
	cfg        sessionConfig
	remembered map[string]Values
}

// NewSession constructs a session for a fresh load cycle.
func NewSession(opts ...SessionOption) *Session {
	return &Session{
		cfg:        applySessionOptions(opts),
		remembered: map[string]Values{},
	}
}

// Reset clears the remembered group aggregates. Call once at the start of
// each load cycle, before any Apply or Extract.
func (s *Session) Reset() {
	s.remembered = map[string]Values{}
}

// SetDefaultProvider registers provider for fallback lookups. Passing nil
// explicitly disables default lookup; callers then rely on widget
// markup-declared defaults. Must be called before Ready or the first Apply.
func (s *Session) SetDefaultProvider(provider DefaultProvider) {
	s.cfg.provider = provider
	s.cfg.providerSet = true
}

// Ready reports whether the session can serve Apply calls. It fails with
// ErrProviderNotSet when no provider has been registered or disabled.
func (s *Session) Ready() error {
	if !s.cfg.providerSet {
		return ErrProviderNotSet
	}
	return nil
}

// OptionID returns the widget's declared option id.
func (s *Session) OptionID(w Widget) string {
	if w == nil {
		return ""
	}
	return w.OptionID()
}

func (s *Session) logger() SyncLogger {
	if s.cfg.logger != nil {
		return s.cfg.logger
	}
	return noopSyncLogger{}
}

func (s *Session) defaultFor(id string) (any, bool) {
	if s.cfg.provider == nil {
		return nil, false
	}
	return s.cfg.provider.DefaultFor(id)
}

// remember snapshots aggregate under groupID on first touch. Later touches in
// the same cycle keep the earlier snapshot.
func (s *Session) remember(groupID string, aggregate Values) {
	if _, ok := s.remembered[groupID]; ok {
		return
	}
	s.storeAggregate(groupID, aggregate)
}

// storeAggregate writes the aggregate unconditionally. The map is initialized
// lazily so a zero-value Session works without NewSession.
func (s *Session) storeAggregate(groupID string, aggregate Values) {
	if s.remembered == nil {
		s.remembered = map[string]Values{}
	}
	s.remembered[groupID] = aggregate.Clone()
}

func (s *Session) rememberedAggregate(groupID string) (Values, bool) {
	aggregate, ok := s.remembered[groupID]
	return aggregate, ok
}
