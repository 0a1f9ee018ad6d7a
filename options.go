package formstate

import (
	"strings"

	"github.com/goliatone/go-formstate/pkg/store"
)

// WithName sets the form name, which doubles as the persistence key.
func WithName(name string) Option {
	return func(cfg *formConfig) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.name = trimmed
		}
	}
}

// WithStrict toggles strict mode. Strict forms (the default) return
// ErrMissingSchema and ErrNoSchema instead of skipping validation.
func WithStrict(strict bool) Option {
	return func(cfg *formConfig) {
		cfg.strict = strict
	}
}

// WithRegistry replaces the default pattern registry used by Named rules.
func WithRegistry(registry *Registry) Option {
	return func(cfg *formConfig) {
		cfg.registry = registry
	}
}

// WithEvaluator configures the engine used by Expr rules.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *formConfig) {
		cfg.evaluator = e
	}
}

// WithEngine selects the built-in engine for Expr rules: "expr" (default),
// "cel" or "js". The program cache and function registry options apply to it.
// WithEvaluator takes precedence.
func WithEngine(engine string) Option {
	return func(cfg *formConfig) {
		cfg.engine = engine
	}
}

// WithFunctionRegistry exposes registry functions to the default evaluator.
// It merges with functions added by earlier options; on a name clash the
// registry entry wins.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *formConfig) {
		if registry == nil {
			return
		}
		if cfg.functions == nil {
			cfg.functions = registry.Clone()
			return
		}
		cfg.functions.merge(registry)
	}
}

// WithCustomFunction registers fn under name for the default evaluator.
func WithCustomFunction(name string, fn Function) Option {
	return func(cfg *formConfig) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		_ = cfg.functions.Register(name, fn)
	}
}

// WithStore injects the key-value store used by PopulateFromStore and
// PersistToStore. Without one both calls are no-ops.
func WithStore(s store.Store) Option {
	return func(cfg *formConfig) {
		cfg.store = s
	}
}

// WithSanitizer cleans every value passed to Field before it is stored.
func WithSanitizer(s Sanitizer) Option {
	return func(cfg *formConfig) {
		cfg.sanitizer = s
	}
}

type jsEvaluatorConfig struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// JSEvaluatorOption configures the JS evaluator.
type JSEvaluatorOption func(*jsEvaluatorConfig)

// JSWithProgramCache applies a ProgramCache to the JS evaluator.
func JSWithProgramCache(cache ProgramCache) JSEvaluatorOption {
	return func(cfg *jsEvaluatorConfig) {
		cfg.cache = cache
	}
}

// JSWithFunctionRegistry applies a FunctionRegistry to the JS evaluator.
func JSWithFunctionRegistry(registry *FunctionRegistry) JSEvaluatorOption {
	return func(cfg *jsEvaluatorConfig) {
		if registry == nil {
			return
		}
		cfg.registry = registry.Clone()
	}
}

func applyJSEvaluatorOptions(opts []JSEvaluatorOption) jsEvaluatorConfig {
	cfg := jsEvaluatorConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
