package formstate

import "github.com/goliatone/go-formstate/pkg/activity"

// ErrorMessages is the input to SetErrors: either positional (Messages) or
// keyed (MessageMap).
type ErrorMessages interface {
	applyMessages(f *FormState) []string
}

// Messages assigns messages positionally over ErrorKeys. Missing positions
// clear the message; extra messages are ignored.
type Messages []string

func (m Messages) applyMessages(f *FormState) []string {
	keys := f.ErrorKeys()
	for i, key := range keys {
		entry := f.errors[key]
		entry.Message = ""
		if i < len(m) {
			entry.Message = m[i]
		}
		f.errors[key] = entry
	}
	return keys
}

// MessageMap assigns messages by field name, ignoring names without an error entry.
type MessageMap map[string]string

func (m MessageMap) applyMessages(f *FormState) []string {
	var touched []string
	for _, key := range f.ErrorKeys() {
		message, ok := m[key]
		if !ok {
			continue
		}
		entry := f.errors[key]
		entry.Message = message
		f.errors[key] = entry
		touched = append(touched, key)
	}
	return touched
}

// SetErrors assigns error messages without touching HasError flags.
func (f *FormState) SetErrors(messages ErrorMessages) {
	if messages == nil {
		return
	}
	touched := messages.applyMessages(f)
	f.emit(activity.BuildErrorsSetEvent(f.eventInput(activity.FormEventInput{Fields: touched})))
}

// ErrorKeys returns the fields holding an error entry, in field order.
func (f *FormState) ErrorKeys() []string {
	keys := make([]string, 0, len(f.errors))
	for _, name := range f.order {
		if _, ok := f.errors[name]; ok {
			keys = append(keys, name)
		}
	}
	return keys
}

// Error returns the entry for name; unseen names read as an unvalidated,
// error-free entry.
func (f *FormState) Error(name string) FieldError {
	return f.errors[name]
}

// Errors returns a copy of all error entries.
func (f *FormState) Errors() map[string]FieldError {
	out := make(map[string]FieldError, len(f.errors))
	for name, entry := range f.errors {
		out[name] = entry
	}
	return out
}

// HasErrors reports whether any field currently fails its rule.
func (f *FormState) HasErrors() bool {
	for _, entry := range f.errors {
		if entry.HasError {
			return true
		}
	}
	return false
}
