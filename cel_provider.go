package formsync

import (
	"fmt"
	"time"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// CELProviderOption configures a CEL-backed default provider.
type CELProviderOption func(*celProvider)

// CELWithProgramCache wires a ProgramCache into the CEL provider.
func CELWithProgramCache(cache ProgramCache) CELProviderOption {
	return func(p *celProvider) {
		p.cache = cache
	}
}

// CELWithFunctionRegistry wires a FunctionRegistry into the CEL provider.
func CELWithFunctionRegistry(registry *FunctionRegistry) CELProviderOption {
	return func(p *celProvider) {
		if registry == nil {
			return
		}
		p.registry = registry.Clone()
	}
}

// CELWithEnv adds static bindings visible to every default rule.
func CELWithEnv(env map[string]any) CELProviderOption {
	return func(p *celProvider) {
		p.env = env
	}
}

// CELWithLogger attaches a logger surfacing rule evaluation failures.
func CELWithLogger(logger SyncLogger) CELProviderOption {
	return func(p *celProvider) {
		p.logger = logger
	}
}

type celProgram struct {
	env     *celgo.Env
	program celgo.Program
}

// celProvider resolves defaults by evaluating per-id rules with cel-go. Like
// the expr provider, failures are logged and reported as "no default".
type celProvider struct {
	rules    map[string]string
	cache    ProgramCache
	registry *FunctionRegistry
	env      map[string]any
	logger   SyncLogger
}

// NewCELProvider constructs a DefaultProvider over per-id CEL rules.
func NewCELProvider(rules map[string]string, opts ...CELProviderOption) DefaultProvider {
	p := &celProvider{rules: rules}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// DefaultFor implements DefaultProvider.
func (p *celProvider) DefaultFor(id string) (any, bool) {
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
		Err:      wrapProviderError("cel", expression, id, err),
	})
	if err != nil {
		return nil, false
	}
	return value, true
}

func (p *celProvider) eval(id, expression string) (any, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	program, err := p.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	out, _, err := program.program.Eval(p.activation(id))
	if err != nil {
		return nil, err
	}
	return out.Value(), nil
}

func (p *celProvider) loadOrCompile(expression string) (*celProgram, error) {
	if p.cache != nil {
		if cached, ok := p.cache.Get(expression); ok {
			if program, ok := cached.(*celProgram); ok {
				return program, nil
			}
		}
	}

	env, err := p.buildEnv()
	if err != nil {
		return nil, err
	}
	ast, issues := env.Parse(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	checked, issues := env.Check(ast)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	prg, err := env.Program(checked)
	if err != nil {
		return nil, err
	}

	bundle := &celProgram{
		env:     env,
		program: prg,
	}
	if p.cache != nil {
		p.cache.Set(expression, bundle)
	}
	return bundle, nil
}

// maxCallArgs bounds the declared arities of the call() dispatcher; CEL
// overloads are fixed-arity, so one is registered per argument count.
const maxCallArgs = 4

func (p *celProvider) buildEnv() (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("now", celgo.TimestampType),
		celgo.Variable("id", celgo.StringType),
	}
	if p.registry != nil {
		opts = append(opts, celgo.Function("call", p.callOverloads()...))
	}
	for key := range p.env {
		opts = append(opts, celgo.Variable(key, celgo.DynType))
	}
	return celgo.NewEnv(opts...)
}

func (p *celProvider) callOverloads() []celgo.FunctionOpt {
	signature := []*celgo.Type{celgo.StringType}
	overloads := make([]celgo.FunctionOpt, 0, maxCallArgs+1)
	for i := 0; i <= maxCallArgs; i++ {
		overloads = append(overloads, celgo.Overload(
			fmt.Sprintf("call_dyn_%d", i),
			append([]*celgo.Type(nil), signature...),
			celgo.DynType,
			celgo.FunctionBinding(p.callBinding()),
		))
		signature = append(signature, celgo.DynType)
	}
	return overloads
}

func (p *celProvider) activation(id string) map[string]any {
	activation := map[string]any{
		"now": time.Now(),
		"id":  id,
	}
	for key, value := range p.env {
		activation[key] = value
	}
	if p.registry != nil {
		activation["call"] = func(name string, arguments ...any) (any, error) {
			return p.registry.Call(name, arguments...)
		}
	}
	return activation
}

func (p *celProvider) callBinding() func(...ref.Val) ref.Val {
	return func(values ...ref.Val) ref.Val {
		if p.registry == nil {
			return types.NewErr("formsync: function registry not configured")
		}
		if len(values) == 0 {
			return types.NewErr("formsync: call requires function name")
		}
		name, ok := values[0].Value().(string)
		if !ok {
			return types.NewErr("formsync: call name must be string")
		}
		args := make([]any, 0, len(values)-1)
		for _, val := range values[1:] {
			args = append(args, val.Value())
		}
		result, err := p.registry.Call(name, args...)
		if err != nil {
			return types.WrapErr(err)
		}
		if result == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(result)
	}
}

func (p *celProvider) log(event SyncLogEvent) {
	if p.logger == nil {
		return
	}
	p.logger.LogSync(event)
}
