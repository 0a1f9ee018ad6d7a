package activity

import (
	"context"
	"strings"
)

// DefaultChannel is applied to events emitted without a channel.
const DefaultChannel = "forms"

// Config controls emission defaults.
type Config struct {
	Enabled  bool
	Channel  string
	ActorID  string
	UserID   string
	TenantID string
}

// Emitter fans out events to hooks while applying Config defaults.
type Emitter struct {
	hooks Hooks
	cfg   Config
}

// NewEmitter constructs an emitter from hooks and configuration.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	cfg.Channel = strings.TrimSpace(cfg.Channel)
	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	normalized := cloneHooks(hooks)
	cfg.Enabled = cfg.Enabled && len(normalized) > 0
	return &Emitter{
		hooks: normalized,
		cfg:   cfg,
	}
}

// Enabled reports whether emissions should be attempted.
func (e *Emitter) Enabled() bool {
	return e != nil && e.cfg.Enabled && len(e.hooks) > 0
}

// Emit forwards the event to all hooks. Blank channel and identity fields
// are filled from Config.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() {
		return nil
	}
	if strings.TrimSpace(event.Channel) == "" {
		event.Channel = e.cfg.Channel
	}
	if strings.TrimSpace(event.ActorID) == "" {
		event.ActorID = e.cfg.ActorID
	}
	if strings.TrimSpace(event.UserID) == "" {
		event.UserID = e.cfg.UserID
	}
	if strings.TrimSpace(event.TenantID) == "" {
		event.TenantID = e.cfg.TenantID
	}
	return e.hooks.Notify(ctx, event)
}

func cloneHooks(hooks Hooks) Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]ActivityHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return Hooks(normalized)
}
