package formstate

import (
	"fmt"
	"reflect"

	celgo "github.com/google/cel-go/cel"
	functions "github.com/google/cel-go/common/functions"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// CELEvaluatorOption configures the CEL evaluator.
type CELEvaluatorOption func(*celEvaluator)

// CELWithProgramCache wires a ProgramCache into the CEL evaluator.
func CELWithProgramCache(cache ProgramCache) CELEvaluatorOption {
	return func(e *celEvaluator) {
		e.cache = cache
	}
}

// CELWithFunctionRegistry wires a FunctionRegistry into the CEL evaluator.
// Registered functions are reachable through call("name", args...).
func CELWithFunctionRegistry(registry *FunctionRegistry) CELEvaluatorOption {
	return func(e *celEvaluator) {
		if registry == nil {
			return
		}
		e.registry = registry.Clone()
	}
}

var anySliceType = reflect.TypeOf([]any{})

type celEvaluator struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewCELEvaluator constructs an Evaluator backed by cel-go.
func NewCELEvaluator(opts ...CELEvaluatorOption) Evaluator {
	e := &celEvaluator{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *celEvaluator) Evaluate(ctx RuleContext, expression string) (any, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("cel", fmt.Errorf("expression must not be empty"))
	}
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, expression, program)
}

func (e *celEvaluator) Compile(expression string, _ ...CompileOption) (CompiledRule, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("cel", fmt.Errorf("expression must not be empty"))
	}
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return &celCompiledRule{
		evaluator:  e,
		expression: expression,
		program:    program,
	}, nil
}

func (e *celEvaluator) loadOrCompile(expression string) (celgo.Program, error) {
	if e.cache != nil {
		if cached, ok := e.cache.Get("cel:" + expression); ok {
			if program, ok := cached.(celgo.Program); ok {
				return program, nil
			}
		}
	}

	env, err := e.buildEnv()
	if err != nil {
		return nil, wrapEvaluationError("cel", expression, "", err)
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, wrapEvaluationError("cel", expression, "", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, wrapEvaluationError("cel", expression, "", err)
	}
	if e.cache != nil {
		e.cache.Set("cel:"+expression, prg)
	}
	return prg, nil
}

func (e *celEvaluator) buildEnv() (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("form", celgo.StringType),
		celgo.Variable("field", celgo.StringType),
		celgo.Variable("value", celgo.StringType),
		celgo.Variable("fields", celgo.MapType(celgo.StringType, celgo.StringType)),
		celgo.Variable("args", celgo.DynType),
	}
	if e.registry != nil {
		opts = append(opts, celgo.Function("call", celgo.Overload(
			"call_dyn",
			[]*celgo.Type{celgo.StringType, celgo.ListType(celgo.DynType)},
			celgo.DynType,
			celgo.BinaryBinding(e.callBinding()),
		)))
	}
	return celgo.NewEnv(opts...)
}

func (e *celEvaluator) run(ctx RuleContext, expression string, program celgo.Program) (any, error) {
	ctx = ctx.withDefaultMaps()
	out, _, err := program.Eval(map[string]any{
		"form":   ctx.Form,
		"field":  ctx.Field,
		"value":  ctx.Value,
		"fields": ctx.Fields,
		"args":   ctx.Args,
	})
	if err != nil {
		return nil, wrapEvaluationError("cel", expression, ctx.fieldLabel(), err)
	}
	return out.Value(), nil
}

type celCompiledRule struct {
	evaluator  *celEvaluator
	expression string
	program    celgo.Program
}

func (r *celCompiledRule) Evaluate(ctx RuleContext) (any, error) {
	if r.evaluator == nil {
		return nil, wrapEvaluatorError("cel", fmt.Errorf("compiled rule missing evaluator"))
	}
	return r.evaluator.run(ctx, r.expression, r.program)
}

// callBinding backs call(name, [args...]) so custom functions stay reachable
// without declaring one overload per registered name.
func (e *celEvaluator) callBinding() functions.BinaryOp {
	return func(nameVal, argsVal ref.Val) ref.Val {
		name, ok := nameVal.Value().(string)
		if !ok {
			return types.NewErr("formstate: call name must be string")
		}
		native, err := argsVal.ConvertToNative(anySliceType)
		if err != nil {
			return types.NewErr("formstate: call arguments must be a list: %v", err)
		}
		args, _ := native.([]any)
		result, err := e.registry.Call(name, args...)
		if err != nil {
			return types.NewErr("%s", err.Error())
		}
		if result == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(result)
	}
}
