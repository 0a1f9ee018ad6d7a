// Package bind decodes form field snapshots into typed structs.
package bind

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Context identifies the form a snapshot came from.
type Context struct {
	Form string
	ID   string
}

// PreHook lets callers rewrite the snapshot before decoding. Returning a nil
// map keeps the current payload.
type PreHook func(Context, map[string]string) (map[string]string, error)

// PostHook lets callers adjust or validate the decoded struct.
type PostHook[T any] func(Context, *T) error

// Option configures a Decoder.
type Option[T any] func(*Decoder[T])

// Decoder converts field snapshots into values of T. Field values are strings,
// so numeric and boolean targets need the ",string" JSON tag option.
type Decoder[T any] struct {
	preHooks     []PreHook
	postHooks    []PostHook[T]
	configureDec []func(*json.Decoder)
}

// WithPreHook runs hook before decoding.
func WithPreHook[T any](hook PreHook) Option[T] {
	return func(d *Decoder[T]) {
		d.preHooks = append(d.preHooks, hook)
	}
}

// WithPostHook runs hook after decoding.
func WithPostHook[T any](hook PostHook[T]) Option[T] {
	return func(d *Decoder[T]) {
		d.postHooks = append(d.postHooks, hook)
	}
}

// WithDisallowUnknownFields rejects fields with no matching struct member.
func WithDisallowUnknownFields[T any]() Option[T] {
	return func(d *Decoder[T]) {
		d.configureDec = append(d.configureDec, func(dec *json.Decoder) {
			dec.DisallowUnknownFields()
		})
	}
}

func NewDecoder[T any](opts ...Option[T]) *Decoder[T] {
	d := &Decoder[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode converts fields into T, applying configured hooks in order.
func (d *Decoder[T]) Decode(ctx Context, fields map[string]string) (T, error) {
	var zero T

	current := make(map[string]string, len(fields))
	for key, value := range fields {
		current[key] = value
	}

	for _, hook := range d.preHooks {
		if hook == nil {
			continue
		}
		next, err := hook(ctx, current)
		if err != nil {
			return zero, fmt.Errorf("bind: pre-hook for form %q failed: %w", ctx.Form, err)
		}
		if next != nil {
			current = next
		}
	}

	buffer, err := json.Marshal(current)
	if err != nil {
		return zero, fmt.Errorf("bind: marshal fields for form %q: %w", ctx.Form, err)
	}
	decoder := json.NewDecoder(bytes.NewReader(buffer))
	for _, configure := range d.configureDec {
		configure(decoder)
	}
	var result T
	if err := decoder.Decode(&result); err != nil {
		return zero, fmt.Errorf("bind: decode form %q: %w", ctx.Form, err)
	}

	for _, hook := range d.postHooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx, &result); err != nil {
			return zero, fmt.Errorf("bind: post-hook for form %q failed: %w", ctx.Form, err)
		}
	}
	return result, nil
}
