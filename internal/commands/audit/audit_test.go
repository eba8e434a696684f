package auditcmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-panel/internal/audit"
	"github.com/goliatone/go-panel/internal/logging"
)

type stubAuditLog struct {
	events     []audit.Event
	listErr    error
	clearErr   error
	listCalls  int
	clearCalls int
}

func (s *stubAuditLog) List(context.Context) ([]audit.Event, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	copyEvents := make([]audit.Event, len(s.events))
	copy(copyEvents, s.events)
	return copyEvents, nil
}

func (s *stubAuditLog) Clear(context.Context) error {
	s.clearCalls++
	return s.clearErr
}

func TestExportAuditHandlerRespectsLimit(t *testing.T) {
	log := &stubAuditLog{
		events: []audit.Event{
			{EntityType: "news", EntityID: "1", Action: "news_published", OccurredAt: time.Now()},
			{EntityType: "news", EntityID: "2", Action: "news_published", OccurredAt: time.Now()},
			{EntityType: "events", EntityID: "3", Action: "events_unpublished", OccurredAt: time.Now()},
		},
	}
	handler := NewExportAuditHandler(log, logging.NoOp())
	limit := 2

	if err := handler.Execute(context.Background(), ExportAuditCommand{MaxRecords: &limit}); err != nil {
		t.Fatalf("export execute: %v", err)
	}
	if log.listCalls != 1 {
		t.Fatalf("expected list to be called once, got %d", log.listCalls)
	}
}

func TestExportAuditHandlerRejectsNegativeLimit(t *testing.T) {
	handler := NewExportAuditHandler(&stubAuditLog{}, logging.NoOp())
	limit := -1

	if err := handler.Execute(context.Background(), ExportAuditCommand{MaxRecords: &limit}); err == nil {
		t.Fatal("expected validation error for negative max_records")
	}
}

func TestExportAuditHandlerPropagatesError(t *testing.T) {
	log := &stubAuditLog{listErr: errors.New("list failed")}
	handler := NewExportAuditHandler(log, logging.NoOp())

	err := handler.Execute(context.Background(), ExportAuditCommand{})
	if err == nil {
		t.Fatal("expected list error")
	}
	if !errors.Is(err, log.listErr) {
		t.Fatalf("expected list error, got %v", err)
	}
}

func TestCleanupAuditHandlerDryRun(t *testing.T) {
	log := &stubAuditLog{
		events: []audit.Event{{EntityType: "news", EntityID: "1"}},
	}
	handler := NewCleanupAuditHandler(log, logging.NoOp())

	if err := handler.Execute(context.Background(), CleanupAuditCommand{DryRun: true}); err != nil {
		t.Fatalf("cleanup dry run: %v", err)
	}
	if log.clearCalls != 0 {
		t.Fatalf("expected clear not to be called, got %d", log.clearCalls)
	}
}

func TestCleanupAuditHandlerClearsEvents(t *testing.T) {
	log := &stubAuditLog{
		events: []audit.Event{{EntityType: "news", EntityID: "1"}},
	}
	handler := NewCleanupAuditHandler(log, logging.NoOp())

	if err := handler.Execute(context.Background(), CleanupAuditCommand{}); err != nil {
		t.Fatalf("cleanup execute: %v", err)
	}
	if log.clearCalls != 1 {
		t.Fatalf("expected clear to be called once, got %d", log.clearCalls)
	}
}

func TestCleanupAuditHandlerPropagatesClearError(t *testing.T) {
	log := &stubAuditLog{clearErr: errors.New("clear failed")}
	handler := NewCleanupAuditHandler(log, logging.NoOp())

	err := handler.Execute(context.Background(), CleanupAuditCommand{})
	if err == nil {
		t.Fatal("expected clear error")
	}
	if !errors.Is(err, log.clearErr) {
		t.Fatalf("expected clear error, got %v", err)
	}
}

func TestCleanupAuditHandlerCronConfig(t *testing.T) {
	handler := NewCleanupAuditHandler(&stubAuditLog{}, logging.NoOp(),
		CleanupWithCronExpression("@hourly"),
	)

	if got := handler.CronOptions().Expression; got != "@hourly" {
		t.Fatalf("expected cron expression @hourly, got %q", got)
	}
	if err := handler.CronHandler()(); err != nil {
		t.Fatalf("cron handler execute: %v", err)
	}
}
