package formsync

type jsProviderConfig struct {
	cache    ProgramCache
	registry *FunctionRegistry
	env      map[string]any
	logger   SyncLogger
}

// JSProviderOption configures a JS-backed default provider.
type JSProviderOption func(*jsProviderConfig)

// JSWithProgramCache applies a ProgramCache to the JS provider.
func JSWithProgramCache(cache ProgramCache) JSProviderOption {
	return func(cfg *jsProviderConfig) {
		cfg.cache = cache
	}
}

// JSWithFunctionRegistry applies a FunctionRegistry to the JS provider.
func JSWithFunctionRegistry(registry *FunctionRegistry) JSProviderOption {
	return func(cfg *jsProviderConfig) {
		if registry == nil {
			return
		}
		cfg.registry = registry.Clone()
	}
}

// JSWithEnv adds static bindings visible to every default rule.
func JSWithEnv(env map[string]any) JSProviderOption {
	return func(cfg *jsProviderConfig) {
		cfg.env = env
	}
}

// JSWithLogger attaches a logger surfacing rule evaluation failures.
func JSWithLogger(logger SyncLogger) JSProviderOption {
	return func(cfg *jsProviderConfig) {
		cfg.logger = logger
	}
}

func applyJSProviderOptions(opts []JSProviderOption) jsProviderConfig {
	cfg := jsProviderConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// JSProviderAvailable reports whether the module was built with the js_eval
// tag that enables the goja-backed provider.
func JSProviderAvailable() bool {
	return jsProviderAvailable()
}
