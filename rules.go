package formstate

import (
	"fmt"
	"regexp"
)

// RuleKind tags the variant held by a SchemaRule.
type RuleKind int

const (
	// RuleUnset is the zero rule; it never resolves.
	RuleUnset RuleKind = iota
	// RuleRegex holds a Matcher supplied by the caller.
	RuleRegex
	// RuleNamed references a Registry entry.
	RuleNamed
	// RuleExpr holds an expression evaluated by the form's Evaluator.
	RuleExpr
)

func (k RuleKind) String() string {
	switch k {
	case RuleRegex:
		return "regex"
	case RuleNamed:
		return "named"
	case RuleExpr:
		return "expr"
	default:
		return "unset"
	}
}

// SchemaRule is the validation rule attached to one field.
type SchemaRule struct {
	kind    RuleKind
	matcher Matcher
	name    string
	expr    string
}

// Schema maps field names to their rules.
type Schema map[string]SchemaRule

// Regex wraps a caller supplied matcher such as a *regexp.Regexp. A nil
// matcher never resolves, like a Named rule missing from the registry.
func Regex(matcher Matcher) SchemaRule {
	return SchemaRule{kind: RuleRegex, matcher: matcher}
}

// Pattern compiles an ECMAScript pattern into a regex rule.
func Pattern(pattern string) (SchemaRule, error) {
	matcher, err := CompilePattern(pattern)
	if err != nil {
		return SchemaRule{}, err
	}
	return Regex(matcher), nil
}

// MustPattern is like Pattern but panics on invalid patterns.
func MustPattern(pattern string) SchemaRule {
	rule, err := Pattern(pattern)
	if err != nil {
		panic(err)
	}
	return rule
}

// Named references a pattern in the form's registry, e.g. Named("email").
func Named(key string) SchemaRule {
	return SchemaRule{kind: RuleNamed, name: key}
}

// Expr validates with an expression that must evaluate to a bool.
func Expr(expression string) SchemaRule {
	return SchemaRule{kind: RuleExpr, expr: expression}
}

// Kind reports the rule variant.
func (r SchemaRule) Kind() RuleKind {
	return r.kind
}

// Name returns the registry key of a named rule.
func (r SchemaRule) Name() string {
	return r.name
}

// Source returns a printable form of the rule: the pattern for regex rules
// when the matcher exposes one, the key for named rules, the expression for
// expr rules.
func (r SchemaRule) Source() string {
	switch r.kind {
	case RuleRegex:
		return matcherSource(r.matcher)
	case RuleNamed:
		return r.name
	case RuleExpr:
		return r.expr
	default:
		return ""
	}
}

func matcherSource(m Matcher) string {
	if isNilMatcher(m) {
		return ""
	}
	switch typed := m.(type) {
	case *regexp.Regexp:
		return typed.String()
	case fmt.Stringer:
		return typed.String()
	default:
		return ""
	}
}

// boundRule is a SchemaRule resolved against a form's registry and evaluator.
type boundRule struct {
	rule    SchemaRule
	matcher Matcher
	program CompiledRule
	engine  string
}

func (b boundRule) resolved() bool {
	return b.matcher != nil || b.program != nil
}

// pattern resolves named rules through the registry.
func (b boundRule) pattern() string {
	if b.rule.kind == RuleNamed {
		return matcherSource(b.matcher)
	}
	if b.rule.kind == RuleRegex {
		return b.rule.Source()
	}
	return ""
}

func (f *FormState) bindRule(field string, rule SchemaRule) (boundRule, error) {
	bound := boundRule{rule: rule}
	switch rule.kind {
	case RuleRegex:
		if !isNilMatcher(rule.matcher) {
			bound.matcher = rule.matcher
		}
	case RuleNamed:
		if matcher, ok := f.cfg.registry.Lookup(rule.name); ok {
			bound.matcher = matcher
		}
	case RuleExpr:
		evaluator, err := f.resolveEvaluator()
		if err != nil {
			return bound, err
		}
		bound.engine = evaluatorEngineName(evaluator)
		program, err := evaluator.Compile(rule.expr)
		if err != nil {
			return bound, withPhase(wrapEvaluationError(bound.engine, rule.expr, field, err), PhaseCompile)
		}
		bound.program = program
	}
	return bound, nil
}
