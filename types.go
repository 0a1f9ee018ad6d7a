package formstate

import (
	"github.com/goliatone/go-formstate/pkg/activity"
	"github.com/goliatone/go-formstate/pkg/store"
)

// DefaultFormName is used when no name is configured.
const DefaultFormName = "default-form"

// FieldStatus tracks where a field sits in the validation lifecycle.
type FieldStatus int

const (
	// Unvalidated fields have not been checked against a rule yet.
	Unvalidated FieldStatus = iota
	// Valid fields passed their last check.
	Valid
	// Invalid fields failed their last check.
	Invalid
)

func (s FieldStatus) String() string {
	switch s {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "unvalidated"
	}
}

// FieldError is the error entry kept for a single field.
type FieldError struct {
	Message  string      `json:"message"`
	HasError bool        `json:"has_error"`
	State    FieldStatus `json:"state"`
}

// FieldChange is the event form of a single field mutation.
type FieldChange struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RuleContext carries the inputs an expression rule is evaluated against.
type RuleContext struct {
	Form   string
	Field  string
	Value  string
	Fields map[string]string
	Args   map[string]any
}

func (ctx RuleContext) withDefaultMaps() RuleContext {
	if ctx.Fields == nil {
		ctx.Fields = map[string]string{}
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) fieldsBinding() map[string]any {
	out := make(map[string]any, len(ctx.Fields))
	for key, value := range ctx.Fields {
		out[key] = value
	}
	return out
}

func (ctx RuleContext) fieldLabel() string {
	if ctx.Field != "" {
		return ctx.Field
	}
	return "unknown"
}

// Evaluator executes expression rules against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule is a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// Option configures a FormState.
type Option func(*formConfig)

type formConfig struct {
	name           string
	strict         bool
	registry       *Registry
	engine         string
	evaluator      Evaluator
	programCache   ProgramCache
	functions      *FunctionRegistry
	logger         Logger
	store          store.Store
	sanitizer      Sanitizer
	activityHooks  activity.Hooks
	activityConfig activity.Config
	activitySet    bool
}

func applyOptions(opts []Option) formConfig {
	cfg := formConfig{
		name:   DefaultFormName,
		strict: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.registry == nil {
		cfg.registry = defaultRegistry
	}
	if cfg.logger == nil {
		cfg.logger = noopLogger{}
	}
	if !cfg.activitySet {
		cfg.activityConfig.Enabled = len(cfg.activityHooks) > 0
	}
	if cfg.activityConfig.Channel == "" {
		cfg.activityConfig.Channel = "forms"
	}
	return cfg
}
