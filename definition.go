package formstate

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Definition is the declarative form of a FormState, usually loaded from YAML
// or JSON:
//
//	name: signup
//	engine: cel
//	fields:
//	  email: ""
//	rules:
//	  email: {named: email}
//	  age: {expr: "int(value) >= 18"}
type Definition struct {
	Name   string              `yaml:"name" json:"name"`
	Strict *bool               `yaml:"strict,omitempty" json:"strict,omitempty"`
	Engine string              `yaml:"engine,omitempty" json:"engine,omitempty"`
	Fields map[string]string   `yaml:"fields" json:"fields"`
	Rules  map[string]RuleSpec `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// RuleSpec declares exactly one of Pattern, Named or Expr.
type RuleSpec struct {
	Pattern string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Named   string `yaml:"named,omitempty" json:"named,omitempty"`
	Expr    string `yaml:"expr,omitempty" json:"expr,omitempty"`
}

// LoadDefinition parses a YAML document. JSON input is accepted as well.
func LoadDefinition(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("formstate: load definition: %w", err)
	}
	return def, nil
}

// Schema converts the declared rules into a Schema.
func (d Definition) Schema() (Schema, error) {
	schema := make(Schema, len(d.Rules))
	for _, field := range sortedKeys(d.Rules) {
		rule, err := d.Rules[field].rule()
		if err != nil {
			return nil, fmt.Errorf("formstate: rule %q: %w", field, err)
		}
		schema[field] = rule
	}
	return schema, nil
}

func (s RuleSpec) rule() (SchemaRule, error) {
	set := 0
	for _, v := range []string{s.Pattern, s.Named, s.Expr} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return SchemaRule{}, fmt.Errorf("%w: exactly one of pattern, named or expr is required", ErrInvalidSchema)
	}
	switch {
	case s.Pattern != "":
		return Pattern(s.Pattern)
	case s.Named != "":
		return Named(s.Named), nil
	default:
		return Expr(s.Expr), nil
	}
}

// Build creates the form and registers its rules. Options passed here are
// applied after the ones derived from the definition, so they win.
func (d Definition) Build(opts ...Option) (*FormState, error) {
	derived := []Option{}
	if d.Name != "" {
		derived = append(derived, WithName(d.Name))
	}
	if d.Strict != nil {
		derived = append(derived, WithStrict(*d.Strict))
	}
	if d.Engine != "" {
		derived = append(derived, WithEngine(d.Engine))
	}

	schema, err := d.Schema()
	if err != nil {
		return nil, err
	}
	form := New(d.Fields, append(derived, opts...)...)
	if len(schema) == 0 {
		return form, nil
	}
	if err := form.SetVerification(schema); err != nil {
		return nil, err
	}
	return form, nil
}
