// Package usersink bridges the audit trail into a go-users activity sink so
// hosts already aggregating user activity can receive panel events on the
// same feed.
package usersink

import (
	"context"
	"strings"

	usertypes "github.com/goliatone/go-users/pkg/types"

	"github.com/goliatone/go-panel/internal/audit"
)

const defaultChannel = "panel"

// ActivitySink matches the go-users activity logging contract.
type ActivitySink interface {
	Log(ctx context.Context, record usertypes.ActivityRecord) error
}

// Hook adapts audit events into go-users activity records. It satisfies
// audit.Sink, so it can back the dispatcher directly.
type Hook struct {
	Sink    ActivitySink
	Channel string
}

// Record maps and forwards one audit event. Events without an action are
// skipped silently, mirroring the sink's tolerance for empty verbs.
func (h Hook) Record(ctx context.Context, event audit.Event) error {
	if h.Sink == nil {
		return nil
	}
	verb := strings.TrimSpace(event.Action)
	if verb == "" {
		return nil
	}

	channel := strings.TrimSpace(h.Channel)
	if channel == "" {
		channel = defaultChannel
	}

	data := make(map[string]any, len(event.Metadata))
	for k, v := range event.Metadata {
		data[k] = v
	}

	record := usertypes.ActivityRecord{
		Verb:       verb,
		ActorID:    event.ActorID,
		ObjectType: event.EntityType,
		ObjectID:   event.EntityID,
		Channel:    channel,
		OccurredAt: event.OccurredAt,
		Data:       data,
	}
	return h.Sink.Log(ctx, record)
}
