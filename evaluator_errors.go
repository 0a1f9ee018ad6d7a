package formstate

import (
	"errors"
	"fmt"
	"strings"
)

// Evaluation phases recorded on EvaluationError.
const (
	PhaseCompile  = "compile"
	PhaseEvaluate = "evaluate"
)

// EvaluationError reports an expression rule failure with the engine, the
// expression and the field it was bound to.
type EvaluationError struct {
	Engine string
	Phase  string
	Expr   string
	Field  string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("formstate: ")
	b.WriteString(e.Engine)
	if e.Phase != "" {
		b.WriteString(" " + e.Phase)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " field %q", e.Field)
	}
	if e.Expr != "" {
		fmt.Fprintf(&b, " expr %q", e.Expr)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// wrapEvaluatorError prefixes engine-level failures that carry no rule
// metadata. Errors already owned by this package pass through.
func wrapEvaluatorError(engine string, err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) || strings.HasPrefix(err.Error(), "formstate:") {
		return err
	}
	return fmt.Errorf("formstate: %s evaluator: %w", engine, err)
}

// wrapEvaluationError attaches rule metadata. An existing EvaluationError
// only has its blank fields filled.
func wrapEvaluationError(engine, expr, field string, err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		return &EvaluationError{Engine: engine, Expr: expr, Field: field, Err: err}
	}
	fill := func(dst *string, value string) {
		if *dst == "" {
			*dst = value
		}
	}
	fill(&evalErr.Engine, engine)
	fill(&evalErr.Expr, expr)
	fill(&evalErr.Field, field)
	return evalErr
}

func withPhase(err error, phase string) error {
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) && evalErr.Phase == "" {
		evalErr.Phase = phase
	}
	return err
}
