package formstate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSchema is returned when a schema references fields the form does not hold.
	ErrInvalidSchema = errors.New("formstate: schema references unknown fields")
	// ErrMissingSchema is returned in strict mode when a field rule cannot be applied.
	ErrMissingSchema = errors.New("formstate: no usable validation rule for field")
	// ErrNoSchema is returned in strict mode when verifying a form without a schema.
	ErrNoSchema = errors.New("formstate: validation schema is not set")
	// ErrNoEvaluator is returned when an expression rule has no engine to run on.
	ErrNoEvaluator = errors.New("formstate: evaluator not configured")
)

// SchemaError reports which fields caused a schema failure.
type SchemaError struct {
	Op     string
	Fields []string
	Err    error
}

func (e *SchemaError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%v (op=%s)", e.Err, e.Op)
	}
	return fmt.Sprintf("%v (op=%s fields=%s)", e.Err, e.Op, strings.Join(e.Fields, ","))
}

func (e *SchemaError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func schemaError(op string, err error, fields ...string) error {
	return &SchemaError{
		Op:     op,
		Fields: append([]string(nil), fields...),
		Err:    err,
	}
}
