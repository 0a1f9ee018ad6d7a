package formstate

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const signupYAML = `
name: signup
strict: false
fields:
  email: a@b.com
  age: "17"
  nickname: ""
rules:
  email:
    named: email
  age:
    expr: int(value) >= 18
  nickname:
    pattern: ^[a-z]*$
`

func TestLoadDefinitionBuild(t *testing.T) {
	def, err := LoadDefinition([]byte(signupYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	form, err := def.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if form.Name() != "signup" || form.Strict() {
		t.Fatalf("unexpected form config name=%q strict=%v", form.Name(), form.Strict())
	}
	if diff := cmp.Diff([]string{"age", "email", "nickname"}, form.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	valid, err := form.VerifyFormState()
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if valid || !form.Error("age").HasError || form.Error("email").HasError {
		t.Fatalf("expected only age to fail, errors=%v", form.Errors())
	}
}

func TestLoadDefinitionJSON(t *testing.T) {
	def, err := LoadDefinition([]byte(`{"name":"login","engine":"cel","fields":{"user":"neo"},"rules":{"user":{"expr":"size(value) > 2"}}}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	form, err := def.Build(WithName("override"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if form.Name() != "override" {
		t.Fatalf("call options should win, got %q", form.Name())
	}
	if valid, err := form.VerifyFormState(); err != nil || !valid {
		t.Fatalf("expected cel rule to pass, got %v %v", valid, err)
	}
}

func TestDefinitionRuleNeedsExactlyOneKind(t *testing.T) {
	def := Definition{
		Fields: map[string]string{"a": ""},
		Rules:  map[string]RuleSpec{"a": {Named: "email", Expr: "true"}},
	}
	if _, err := def.Build(); !errors.Is(err, ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema, got %v", err)
	}
	def.Rules["a"] = RuleSpec{}
	if _, err := def.Build(); !errors.Is(err, ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema for empty rule, got %v", err)
	}
}

func TestDefinitionRulesMustReferenceFields(t *testing.T) {
	def := Definition{Rules: map[string]RuleSpec{"ghost": {Named: "email"}}}
	if _, err := def.Build(); !errors.Is(err, ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema, got %v", err)
	}
}

func TestLoadDefinitionInvalidYAML(t *testing.T) {
	if _, err := LoadDefinition([]byte("fields: [unclosed")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestMergeDefinitions(t *testing.T) {
	strict := true
	lenient := false
	base := Definition{
		Name:   "signup",
		Strict: &lenient,
		Fields: map[string]string{"email": "", "age": ""},
		Rules:  map[string]RuleSpec{"email": {Named: "email"}},
	}
	tenant := Definition{
		Strict: &strict,
		Engine: "cel",
		Fields: map[string]string{"age": "18", "company": ""},
		Rules:  map[string]RuleSpec{"email": {Pattern: `@corp\.example$`}},
	}

	merged := MergeDefinitions(tenant, base)
	if merged.Name != "signup" || merged.Engine != "cel" || merged.Strict == nil || !*merged.Strict {
		t.Fatalf("unexpected scalars %+v", merged)
	}
	wantFields := map[string]string{"email": "", "age": "18", "company": ""}
	if diff := cmp.Diff(wantFields, merged.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]RuleSpec{"email": {Pattern: `@corp\.example$`}}, merged.Rules); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}

	*merged.Strict = false
	if !*tenant.Strict {
		t.Fatal("merged definition must not alias layer pointers")
	}
	if empty := MergeDefinitions(); empty.Fields != nil || empty.Name != "" {
		t.Fatalf("expected zero definition, got %+v", empty)
	}
}
