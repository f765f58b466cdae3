package formsync

import (
	"fmt"
	"time"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprProviderOption configures an expr-backed default provider.
type ExprProviderOption func(*exprProvider)

// ExprWithProgramCache wires a ProgramCache into the expr provider.
func ExprWithProgramCache(cache ProgramCache) ExprProviderOption {
	return func(p *exprProvider) {
		p.cache = cache
	}
}

// ExprWithFunctionRegistry wires a FunctionRegistry into the expr provider.
func ExprWithFunctionRegistry(registry *FunctionRegistry) ExprProviderOption {
	return func(p *exprProvider) {
		if registry == nil {
			return
		}
		p.registry = registry.Clone()
	}
}

// ExprWithEnv adds static bindings visible to every default rule.
func ExprWithEnv(env map[string]any) ExprProviderOption {
	return func(p *exprProvider) {
		p.env = env
	}
}

// ExprWithLogger attaches a logger surfacing rule evaluation failures.
func ExprWithLogger(logger SyncLogger) ExprProviderOption {
	return func(p *exprProvider) {
		p.logger = logger
	}
}

// exprProvider resolves defaults by evaluating per-id rules with
// github.com/expr-lang/expr. A rule that fails to compile or evaluate is
// logged and reported as "no default"; the DefaultProvider contract stays
// infallible so apply's silent-skip policy holds.
type exprProvider struct {
	rules    map[string]string
	cache    ProgramCache
	registry *FunctionRegistry
	env      map[string]any
	logger   SyncLogger
}

// NewExprProvider constructs a DefaultProvider over per-id expr rules.
func NewExprProvider(rules map[string]string, opts ...ExprProviderOption) DefaultProvider {
	p := &exprProvider{rules: rules}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// DefaultFor implements DefaultProvider.
func (p *exprProvider) DefaultFor(id string) (any, bool) {
	expression, ok := p.rules[id]
	if !ok {
		return nil, false
	}
	start := time.Now()
	value, err := p.eval(id, expression)
	p.log(SyncLogEvent{
		Op:       opDefault,
		OptionID: id,
		Duration: time.Since(start),
		Err:      wrapProviderError("expr", expression, id, err),
	})
	if err != nil {
		return nil, false
	}
	return value, true
}

func (p *exprProvider) eval(id, expression string) (any, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	env := p.environment(id)
	if p.cache == nil {
		return exprlang.Eval(expression, env)
	}
	program, err := p.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return exprlang.Run(program, env)
}

func (p *exprProvider) loadOrCompile(expression string) (*exprvm.Program, error) {
	if p.cache != nil {
		if cached, ok := p.cache.Get(expression); ok {
			if program, ok := cached.(*exprvm.Program); ok {
				return program, nil
			}
		}
	}
	options := []exprlang.Option{
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	}
	for _, name := range p.registryNames() {
		fn := p.registryFunction(name)
		options = append(options, exprlang.Function(name, fn))
	}
	program, err := exprlang.Compile(expression, options...)
	if err != nil {
		return nil, err
	}
	if p.cache != nil {
		p.cache.Set(expression, program)
	}
	return program, nil
}

func (p *exprProvider) environment(id string) map[string]any {
	env := map[string]any{
		"now": time.Now(),
		"id":  id,
	}
	for key, value := range p.env {
		env[key] = value
	}
	if p.registry != nil {
		env["call"] = func(name string, arguments ...any) (any, error) {
			return p.registry.Call(name, arguments...)
		}
		for _, name := range p.registry.Names() {
			fn := name
			env[fn] = func(arguments ...any) (any, error) {
				return p.registry.Call(fn, arguments...)
			}
		}
	}
	return env
}

func (p *exprProvider) registryNames() []string {
	if p == nil || p.registry == nil {
		return nil
	}
	return p.registry.Names()
}

func (p *exprProvider) registryFunction(name string) func(...any) (any, error) {
	if p == nil || p.registry == nil {
		return nil
	}
	return func(arguments ...any) (any, error) {
		return p.registry.Call(name, arguments...)
	}
}

func (p *exprProvider) log(event SyncLogEvent) {
	if p.logger == nil {
		return
	}
	p.logger.LogSync(event)
}
