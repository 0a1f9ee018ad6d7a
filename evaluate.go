package formstate

import (
	"fmt"
	"strings"
	"time"
)

// check runs the bound rule for field against value. Fields without a rule
// pass; unresolved rules pass unless the form is strict.
func (f *FormState) check(field, value string) (bool, error) {
	bound, ok := f.rules[field]
	if !ok {
		return true, nil
	}
	if !bound.resolved() {
		if f.cfg.strict {
			return false, schemaError("check", ErrMissingSchema, field)
		}
		return true, nil
	}
	if bound.matcher != nil {
		return bound.matcher.MatchString(value), nil
	}

	ctx := RuleContext{
		Form:   f.name,
		Field:  field,
		Value:  value,
		Fields: f.State(),
	}
	start := time.Now()
	result, err := bound.program.Evaluate(ctx)
	duration := time.Since(start)

	var passed bool
	if err == nil {
		typed, isBool := result.(bool)
		if !isBool {
			err = fmt.Errorf("expected bool result, got %T", result)
		}
		passed = typed
	}
	err = withPhase(wrapEvaluationError(bound.engine, bound.rule.expr, field, err), PhaseEvaluate)
	f.cfg.logger.LogEvent(LogEvent{
		Kind:     "evaluate",
		Form:     f.name,
		Field:    field,
		Engine:   bound.engine,
		Expr:     bound.rule.expr,
		Duration: duration,
		Err:      err,
	})
	if err != nil {
		return false, err
	}
	return passed, nil
}

func (f *FormState) resolveEvaluator() (Evaluator, error) {
	if f.cfg.evaluator != nil {
		return f.cfg.evaluator, nil
	}
	evaluator, err := newEngineEvaluator(f.cfg.engine, f.cfg.programCache, f.cfg.functions)
	if err != nil {
		return nil, err
	}
	f.cfg.evaluator = evaluator
	return evaluator, nil
}

// newEngineEvaluator builds the evaluator for a named engine. An empty name
// selects expr.
func newEngineEvaluator(engine string, cache ProgramCache, registry *FunctionRegistry) (Evaluator, error) {
	var evaluator Evaluator
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", "expr":
		evaluator = NewExprEvaluator(ExprWithProgramCache(cache), ExprWithFunctionRegistry(registry))
	case "cel":
		evaluator = NewCELEvaluator(CELWithProgramCache(cache), CELWithFunctionRegistry(registry))
	case "js", "javascript":
		if !jsEvaluatorAvailable() {
			return nil, fmt.Errorf("%w: js engine requires the js_eval build tag", ErrNoEvaluator)
		}
		evaluator = NewJSEvaluator(JSWithProgramCache(cache), JSWithFunctionRegistry(registry))
	default:
		return nil, fmt.Errorf("%w: unknown engine %q", ErrNoEvaluator, engine)
	}
	if evaluator == nil {
		return nil, ErrNoEvaluator
	}
	return evaluator, nil
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch e.(type) {
	case *exprEvaluator:
		return "expr"
	case *celEvaluator:
		return "cel"
	default:
		if name, ok := e.(interface{ Engine() string }); ok {
			return name.Engine()
		}
		return "custom"
	}
}
