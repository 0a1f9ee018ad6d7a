package formstate

import (
	"context"
	"sort"

	"github.com/goliatone/go-formstate/pkg/activity"
	"github.com/google/uuid"
)

// FormState holds one form's field values, validation rules and per-field
// error entries. A FormState is owned by a single caller and is not safe for
// concurrent mutation.
type FormState struct {
	id     string
	name   string
	order  []string
	fields map[string]string
	rules  map[string]boundRule
	errors map[string]FieldError
	valid  bool

	cfg     formConfig
	emitter *activity.Emitter
}

// New creates a form holding fields. Initial field order is alphabetical;
// fields added later through Field are appended in call order.
func New(fields map[string]string, opts ...Option) *FormState {
	cfg := applyOptions(opts)
	f := &FormState{
		id:      uuid.NewString(),
		name:    cfg.name,
		fields:  make(map[string]string, len(fields)),
		rules:   map[string]boundRule{},
		errors:  map[string]FieldError{},
		valid:   true,
		cfg:     cfg,
		emitter: activity.NewEmitter(cfg.activityHooks, cfg.activityConfig),
	}
	f.replaceFields(fields)
	return f
}

func (f *FormState) replaceFields(fields map[string]string) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	f.order = names
	f.fields = make(map[string]string, len(fields))
	for name, value := range fields {
		f.fields[name] = value
	}
	for name := range f.errors {
		if _, ok := f.fields[name]; !ok {
			delete(f.errors, name)
		}
	}
}

// ID returns the per-instance identifier attached to activity events.
func (f *FormState) ID() string {
	return f.id
}

// Name returns the form name, also used as the persistence key.
func (f *FormState) Name() string {
	return f.name
}

// Strict reports whether missing rules and schemas are errors.
func (f *FormState) Strict() bool {
	return f.cfg.strict
}

// SetVerification registers schema. Every schema key must already be a field;
// otherwise ErrInvalidSchema is returned and the form is left untouched. On
// success each schema key gets a fresh, unvalidated error entry.
func (f *FormState) SetVerification(schema Schema) error {
	var unknown []string
	for name := range schema {
		if _, ok := f.fields[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return schemaError("set_verification", ErrInvalidSchema, unknown...)
	}

	bound := make(map[string]boundRule, len(schema))
	for name, rule := range schema {
		b, err := f.bindRule(name, rule)
		if err != nil {
			return err
		}
		bound[name] = b
	}

	for name := range bound {
		f.errors[name] = FieldError{}
	}
	f.rules = bound
	f.emit(activity.BuildSchemaSetEvent(f.eventInput(activity.FormEventInput{
		Fields: sortedKeys(bound),
	})))
	return nil
}

// Field stores value under name and, when a rule exists for name, validates it
// immediately.
func (f *FormState) Field(name, value string) error {
	if f.cfg.sanitizer != nil {
		value = f.cfg.sanitizer.Sanitize(value)
	}
	if _, exists := f.fields[name]; !exists {
		f.order = append(f.order, name)
	}
	f.fields[name] = value

	if _, ruled := f.rules[name]; !ruled {
		f.emit(activity.BuildFieldUpdatedEvent(f.eventInput(activity.FormEventInput{Field: name})))
		return nil
	}
	passed, err := f.check(name, value)
	if err != nil {
		return err
	}
	f.record(name, passed)
	f.emit(activity.BuildFieldUpdatedEvent(f.eventInput(activity.FormEventInput{
		Field: name,
		State: f.errors[name].State.String(),
		Valid: &passed,
	})))
	return nil
}

// FieldEvent applies a FieldChange, the shape input handlers usually carry.
func (f *FormState) FieldEvent(change FieldChange) error {
	return f.Field(change.Name, change.Value)
}

// VerifyFormState validates every ruled field in field order and returns the
// combined result. Without a schema a strict form returns ErrNoSchema; a
// lenient one reports valid.
func (f *FormState) VerifyFormState() (bool, error) {
	if len(f.rules) == 0 {
		if f.cfg.strict {
			return false, schemaError("verify", ErrNoSchema)
		}
		f.valid = true
		return true, nil
	}

	valid := true
	for _, name := range f.order {
		if _, ruled := f.rules[name]; !ruled {
			continue
		}
		passed, err := f.check(name, f.fields[name])
		if err != nil {
			return false, err
		}
		f.record(name, passed)
		valid = valid && passed
	}
	f.valid = valid
	f.emit(activity.BuildFormVerifiedEvent(f.eventInput(activity.FormEventInput{Valid: &valid})))
	return valid, nil
}

func (f *FormState) record(name string, passed bool) {
	entry := f.errors[name]
	entry.HasError = !passed
	entry.State = Invalid
	if passed {
		entry.State = Valid
	}
	f.errors[name] = entry
}

// Valid returns the result of the last VerifyFormState call; true before any.
func (f *FormState) Valid() bool {
	return f.valid
}

// Fields returns a snapshot of field names in order.
func (f *FormState) Fields() []string {
	return append([]string(nil), f.order...)
}

// State returns a copy of the field values.
func (f *FormState) State() map[string]string {
	out := make(map[string]string, len(f.fields))
	for name, value := range f.fields {
		out[name] = value
	}
	return out
}

// Value returns the current value of name.
func (f *FormState) Value(name string) (string, bool) {
	value, ok := f.fields[name]
	return value, ok
}

// Rules returns a copy of the registered schema.
func (f *FormState) Rules() Schema {
	out := make(Schema, len(f.rules))
	for name, bound := range f.rules {
		out[name] = bound.rule
	}
	return out
}

// RulePattern returns the regular expression a field is checked against,
// resolving named rules through the registry. Expression rules report false.
func (f *FormState) RulePattern(name string) (string, bool) {
	bound, ok := f.rules[name]
	if !ok {
		return "", false
	}
	pattern := bound.pattern()
	return pattern, pattern != ""
}

func (f *FormState) eventInput(input activity.FormEventInput) activity.FormEventInput {
	input.FormName = f.name
	input.FormID = f.id
	return input
}

// emit never fails the calling operation; hook errors are logged.
func (f *FormState) emit(event activity.Event) {
	if !f.emitter.Enabled() {
		return
	}
	if err := f.emitter.Emit(context.Background(), event); err != nil {
		f.cfg.logger.LogEvent(LogEvent{
			Kind: "activity",
			Form: f.name,
			Key:  event.Verb,
			Err:  err,
		})
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
