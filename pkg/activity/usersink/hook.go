// Package usersink forwards form activity to a go-users ActivitySink so form
// lifecycle events land in the same audit trail as user activity.
package usersink

import (
	"context"
	"strings"

	"github.com/goliatone/go-formstate/pkg/activity"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Hook adapts activity events to a go-users ActivitySink.
type Hook struct {
	Sink usertypes.ActivitySink
	// StrictIDs drops events whose actor id is not a UUID instead of
	// logging them against uuid.Nil.
	StrictIDs bool
}

// Notify maps the event into an ActivityRecord and forwards it to the sink.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil {
		return nil
	}

	normalized := activity.NormalizeEvent(event)
	if normalized.Verb == "" || normalized.ObjectType == "" || normalized.ObjectID == "" {
		return nil
	}
	actorID, ok := parseUUID(normalized.ActorID)
	if !ok && h.StrictIDs {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	userID, _ := parseUUID(normalized.UserID)
	tenantID, _ := parseUUID(normalized.TenantID)
	record := usertypes.ActivityRecord{
		ActorID:    actorID,
		UserID:     userID,
		TenantID:   tenantID,
		Verb:       normalized.Verb,
		ObjectType: normalized.ObjectType,
		ObjectID:   normalized.ObjectID,
		Channel:    normalized.Channel,
		Data:       normalized.Metadata,
		OccurredAt: normalized.OccurredAt,
	}
	return h.Sink.Log(ctx, record)
}

func parseUUID(input string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(input))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
