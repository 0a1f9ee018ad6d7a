package formstate

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapEvaluationErrorCreatesMetadata(t *testing.T) {
	base := errors.New("boom")
	err := wrapEvaluationError("expr", "len(value) > 3", "nickname", base)

	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %T", err)
	}
	if evalErr.Engine != "expr" {
		t.Fatalf("expected engine expr, got %q", evalErr.Engine)
	}
	if evalErr.Expr != "len(value) > 3" {
		t.Fatalf("expected expression metadata, got %q", evalErr.Expr)
	}
	if evalErr.Field != "nickname" {
		t.Fatalf("expected field metadata, got %q", evalErr.Field)
	}
	if !errors.Is(evalErr.Err, base) {
		t.Fatalf("wrapped error should unwrap to base error")
	}
}

func TestWrapEvaluationErrorAugmentsExisting(t *testing.T) {
	base := errors.New("compile failure")
	existing := &EvaluationError{
		Engine: "expr",
		Err:    base,
	}

	err := wrapEvaluationError("cel", "rule", "email", existing)
	if !errors.Is(err, base) {
		t.Fatalf("expected base error to unwrap")
	}
	if existing.Engine != "expr" {
		t.Fatalf("existing engine should not be overwritten, got %q", existing.Engine)
	}
	if existing.Expr != "rule" {
		t.Fatalf("expression should be filled, got %q", existing.Expr)
	}
	if existing.Field != "email" {
		t.Fatalf("field should be filled, got %q", existing.Field)
	}
}

func TestWrapEvaluatorErrorKeepsPrefixedErrors(t *testing.T) {
	if wrapEvaluatorError("expr", nil) != nil {
		t.Fatal("nil error should stay nil")
	}
	prefixed := errors.New("formstate: already wrapped")
	if got := wrapEvaluatorError("expr", prefixed); got != prefixed {
		t.Fatalf("expected prefixed error returned unchanged, got %v", got)
	}
	got := wrapEvaluatorError("cel", errors.New("bad"))
	if !strings.HasPrefix(got.Error(), "formstate: cel evaluator:") {
		t.Fatalf("unexpected wrapped message %q", got.Error())
	}
}

func TestEvaluationErrorMessage(t *testing.T) {
	err := &EvaluationError{Engine: "cel", Phase: PhaseEvaluate, Field: "age", Err: errors.New("no such overload")}
	want := `formstate: cel evaluate field "age": no such overload`
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
