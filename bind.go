package formstate

import "github.com/goliatone/go-formstate/pkg/bind"

// Bind decodes the form's current fields into T.
func Bind[T any](form *FormState, opts ...bind.Option[T]) (T, error) {
	decoder := bind.NewDecoder(opts...)
	return decoder.Decode(bind.Context{Form: form.Name(), ID: form.ID()}, form.State())
}
