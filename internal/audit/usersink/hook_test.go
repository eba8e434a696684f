package usersink

import (
	"context"
	"testing"
	"time"

	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"

	"github.com/goliatone/go-panel/internal/audit"
)

type captureSink struct {
	records []usertypes.ActivityRecord
}

func (s *captureSink) Log(_ context.Context, record usertypes.ActivityRecord) error {
	s.records = append(s.records, record)
	return nil
}

func TestHookMapsEventToActivityRecord(t *testing.T) {
	sink := &captureSink{}
	actor := uuid.New()
	occurred := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	hook := Hook{Sink: sink, Channel: "cms"}
	err := hook.Record(context.Background(), audit.Event{
		Action:     "news_published",
		EntityType: "news",
		EntityID:   "abc-123",
		ActorID:    actor,
		OccurredAt: occurred,
		Metadata:   map[string]any{"slug": "harbor-expansion"},
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	if len(sink.records) != 1 {
		t.Fatalf("expected one forwarded record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.Verb != "news_published" {
		t.Fatalf("unexpected verb %q", record.Verb)
	}
	if record.ObjectType != "news" || record.ObjectID != "abc-123" {
		t.Fatalf("unexpected object %q/%q", record.ObjectType, record.ObjectID)
	}
	if record.ActorID != actor {
		t.Fatalf("unexpected actor %s", record.ActorID)
	}
	if record.Channel != "cms" {
		t.Fatalf("unexpected channel %q", record.Channel)
	}
	if !record.OccurredAt.Equal(occurred) {
		t.Fatalf("unexpected occurred_at %v", record.OccurredAt)
	}
	if record.Data["slug"] != "harbor-expansion" {
		t.Fatalf("metadata not forwarded: %v", record.Data)
	}
}

func TestHookDefaultsChannelAndSkipsEmptyVerbs(t *testing.T) {
	sink := &captureSink{}
	hook := Hook{Sink: sink}

	if err := hook.Record(context.Background(), audit.Event{Action: "  "}); err != nil {
		t.Fatalf("empty verb should be skipped silently, got %v", err)
	}
	if len(sink.records) != 0 {
		t.Fatalf("expected no records for empty verb")
	}

	if err := hook.Record(context.Background(), audit.Event{Action: "news_updated"}); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if sink.records[0].Channel != "panel" {
		t.Fatalf("expected default channel, got %q", sink.records[0].Channel)
	}
}

func TestHookNilSinkIsSafe(t *testing.T) {
	var hook Hook
	if err := hook.Record(context.Background(), audit.Event{Action: "news_updated"}); err != nil {
		t.Fatalf("nil sink should be a no-op, got %v", err)
	}
}
