// Package openapi describes forms as OpenAPI 3 schemas.
package openapi

import (
	formstate "github.com/goliatone/go-formstate"
	"github.com/getkin/kin-openapi/openapi3"
)

// RuleExtension is the schema extension carrying a field's rule.
const RuleExtension = "x-formstate-rule"

// Describe returns an object schema with one string property per field.
// Regex and resolved named rules become the property pattern; every rule is
// also recorded under RuleExtension. Ruled fields are listed as required.
func Describe(form *formstate.FormState) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	if form == nil {
		return schema
	}
	schema.Title = form.Name()

	rules := form.Rules()
	for _, name := range form.Fields() {
		property := openapi3.NewStringSchema()
		if rule, ok := rules[name]; ok {
			if pattern, ok := form.RulePattern(name); ok {
				property.Pattern = pattern
			}
			property.Extensions = map[string]any{
				RuleExtension: map[string]any{
					"kind":   rule.Kind().String(),
					"source": rule.Source(),
				},
			}
			schema.Required = append(schema.Required, name)
		}
		if value, ok := form.Value(name); ok && value != "" {
			property.Default = value
		}
		schema.WithProperty(name, property)
	}
	return schema
}

// Components returns the described forms keyed by form name. Later forms
// replace earlier ones with the same name.
func Components(forms ...*formstate.FormState) openapi3.Schemas {
	schemas := make(openapi3.Schemas, len(forms))
	for _, form := range forms {
		if form == nil {
			continue
		}
		schemas[form.Name()] = openapi3.NewSchemaRef("", Describe(form))
	}
	return schemas
}
