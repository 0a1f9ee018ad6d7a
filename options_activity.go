package formstate

import "github.com/goliatone/go-formstate/pkg/activity"

// WithActivityHooks attaches activity hooks to the form. Hooks are cloned and
// nil entries dropped. Emission is enabled when at least one hook remains,
// unless WithActivityConfig says otherwise.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := cloneActivityHooks(hooks)
	return func(cfg *formConfig) {
		cfg.activityHooks = normalized
	}
}

// WithActivityConfig sets channel, identity defaults and the enabled flag for
// emitted events.
func WithActivityConfig(config activity.Config) Option {
	return func(cfg *formConfig) {
		cfg.activityConfig = config
		cfg.activitySet = true
	}
}

// ActivityHooks returns a cloned slice of the hooks configured on the form.
func (f *FormState) ActivityHooks() activity.Hooks {
	if f == nil {
		return nil
	}
	return cloneActivityHooks(f.cfg.activityHooks)
}

func cloneActivityHooks(hooks activity.Hooks) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]activity.ActivityHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return activity.Hooks(normalized)
}
