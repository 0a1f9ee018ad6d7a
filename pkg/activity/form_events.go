package activity

import (
	"strings"
	"time"
)

// ObjectTypeForm is the object type carried by every form event.
const ObjectTypeForm = "form"

// Form lifecycle verbs.
const (
	VerbFieldUpdated = "form.field.updated"
	VerbVerified     = "form.verified"
	VerbSchemaSet    = "form.schema.set"
	VerbErrorsSet    = "form.errors.set"
	VerbPersisted    = "form.persisted"
	VerbRestored     = "form.restored"
)

// FormEventInput describes the fields shared by form lifecycle events.
// Field values are never carried; only names and validation outcomes.
type FormEventInput struct {
	FormName   string
	FormID     string
	Field      string
	Fields     []string
	State      string
	Valid      *bool
	Key        string
	ActorID    string
	UserID     string
	TenantID   string
	Channel    string
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildFieldUpdatedEvent describes a single field mutation.
func BuildFieldUpdatedEvent(input FormEventInput) Event {
	return buildFormEvent(VerbFieldUpdated, input)
}

// BuildFormVerifiedEvent describes a full form verification pass.
func BuildFormVerifiedEvent(input FormEventInput) Event {
	return buildFormEvent(VerbVerified, input)
}

// BuildSchemaSetEvent describes a schema registration.
func BuildSchemaSetEvent(input FormEventInput) Event {
	return buildFormEvent(VerbSchemaSet, input)
}

// BuildErrorsSetEvent describes an error message assignment.
func BuildErrorsSetEvent(input FormEventInput) Event {
	return buildFormEvent(VerbErrorsSet, input)
}

// BuildFormPersistedEvent describes a store write.
func BuildFormPersistedEvent(input FormEventInput) Event {
	return buildFormEvent(VerbPersisted, input)
}

// BuildFormRestoredEvent describes a store read.
func BuildFormRestoredEvent(input FormEventInput) Event {
	return buildFormEvent(VerbRestored, input)
}

func buildFormEvent(verb string, input FormEventInput) Event {
	metadata := cloneMap(input.Metadata)
	set := func(key string, value any) {
		if metadata == nil {
			metadata = map[string]any{}
		}
		metadata[key] = value
	}
	if input.FormID != "" {
		set("form_id", input.FormID)
	}
	if input.Field != "" {
		set("field", input.Field)
	}
	if len(input.Fields) > 0 {
		set("fields", append([]string{}, input.Fields...))
	}
	if input.State != "" {
		set("state", input.State)
	}
	if input.Valid != nil {
		set("valid", *input.Valid)
	}
	if input.Key != "" {
		set("key", input.Key)
	}

	objectID := strings.TrimSpace(input.FormName)
	if objectID == "" {
		objectID = strings.TrimSpace(input.FormID)
	}
	if objectID == "" {
		objectID = ObjectTypeForm
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: ObjectTypeForm,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}
