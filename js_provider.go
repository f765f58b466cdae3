//go:build js_eval

package formsync

import (
	"fmt"
	"time"

	"github.com/dop251/goja"
)

// jsProvider resolves defaults by evaluating per-id rules with goja. Each
// evaluation runs in a fresh runtime so rules cannot leak state into one
// another.
type jsProvider struct {
	rules    map[string]string
	cache    ProgramCache
	registry *FunctionRegistry
	env      map[string]any
	logger   SyncLogger
}

// NewJSProvider constructs a DefaultProvider over per-id JavaScript rules.
func NewJSProvider(rules map[string]string, opts ...JSProviderOption) DefaultProvider {
	cfg := applyJSProviderOptions(opts)
	return &jsProvider{
		rules:    rules,
		cache:    cfg.cache,
		registry: cfg.registry,
		env:      cfg.env,
		logger:   cfg.logger,
	}
}

// DefaultFor implements DefaultProvider.
func (p *jsProvider) DefaultFor(id string) (any, bool) {
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
		Err:      wrapProviderError("js", expression, id, err),
	})
	if err != nil {
		return nil, false
	}
	return value, true
}

func (p *jsProvider) eval(id, expression string) (any, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	if p.cache == nil {
		return p.run(id, expression, nil)
	}
	program, err := p.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return p.run(id, expression, program)
}

func (p *jsProvider) loadOrCompile(expression string) (*goja.Program, error) {
	if p.cache != nil {
		if cached, ok := p.cache.Get(expression); ok {
			if program, ok := cached.(*goja.Program); ok {
				return program, nil
			}
		}
	}
	program, err := goja.Compile("", p.wrapExpression(expression), false)
	if err != nil {
		return nil, err
	}
	if p.cache != nil {
		p.cache.Set(expression, program)
	}
	return program, nil
}

func (p *jsProvider) run(id, expression string, program *goja.Program) (any, error) {
	vm := goja.New()
	p.injectContext(vm, id)
	if program != nil {
		value, err := vm.RunProgram(program)
		if err != nil {
			return nil, err
		}
		return value.Export(), nil
	}
	value, err := vm.RunString(p.wrapExpression(expression))
	if err != nil {
		return nil, err
	}
	return value.Export(), nil
}

func (p *jsProvider) injectContext(vm *goja.Runtime, id string) {
	vm.Set("now", time.Now())
	vm.Set("id", id)
	for key, value := range p.env {
		vm.Set(key, value)
	}
	if p.registry != nil {
		vm.Set("call", func(name string, arguments ...any) (any, error) {
			return p.registry.Call(name, arguments...)
		})
		for _, name := range p.registry.Names() {
			fn := name
			vm.Set(fn, func(arguments ...any) (any, error) {
				return p.registry.Call(fn, arguments...)
			})
		}
	}
}

func (p *jsProvider) wrapExpression(expression string) string {
	return fmt.Sprintf("(function(){ return (%s); })()", expression)
}

func (p *jsProvider) log(event SyncLogEvent) {
	if p.logger == nil {
		return
	}
	p.logger.LogSync(event)
}

func jsProviderAvailable() bool {
	return true
}
