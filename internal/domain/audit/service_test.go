package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/matiasleandrokruk/peoplebridge/internal/infra/sqlite"
)

// setupTestDB creates an in-memory database with migrations for testing
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.NewDB(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestLog_FillsDefaultsAndRoundTrips(t *testing.T) {
	service := NewAuditService(setupTestDB(t))
	ctx := context.Background()

	event := &AuditEvent{
		Action:       "contact.deleted",
		ResourceName: strPtr("people/c1"),
		Outcome:      OutcomeSuccess,
	}
	if err := service.Log(ctx, event); err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if event.ID == "" {
		t.Fatal("Log() did not assign an ID")
	}
	if event.ActorID != "anonymous" {
		t.Fatalf("ActorID = %q; want anonymous", event.ActorID)
	}

	got, err := service.GetByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Action != "contact.deleted" || got.Outcome != OutcomeSuccess {
		t.Fatalf("got %+v", got)
	}
	if got.ResourceName == nil || *got.ResourceName != "people/c1" {
		t.Fatalf("ResourceName = %v; want people/c1", got.ResourceName)
	}
	if got.ErrorKind != nil {
		t.Fatalf("ErrorKind = %q; want nil", *got.ErrorKind)
	}
	if string(got.Details) != "{}" {
		t.Fatalf("Details = %s; want {}", got.Details)
	}
	if !got.CreatedAt.Equal(event.CreatedAt) {
		t.Fatalf("CreatedAt = %v; want %v", got.CreatedAt, event.CreatedAt)
	}
}

func TestLog_RejectsUnknownOutcome(t *testing.T) {
	service := NewAuditService(setupTestDB(t))

	err := service.Log(context.Background(), &AuditEvent{Action: "contact.deleted", Outcome: "denied"})
	if err == nil {
		t.Fatal("expected CHECK constraint violation")
	}
}

func TestGetByID_NotFound(t *testing.T) {
	service := NewAuditService(setupTestDB(t))

	_, err := service.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrAuditEventNotFound) {
		t.Fatalf("GetByID() error = %v; want ErrAuditEventNotFound", err)
	}
}

func TestListByResource_NewestFirst(t *testing.T) {
	service := NewAuditService(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	for i, action := range []string{"contact.created", "contact.updated", "contact.deleted"} {
		err := service.Log(ctx, &AuditEvent{
			ActorID:      "user-1",
			Action:       action,
			ResourceName: strPtr("people/c1"),
			Outcome:      OutcomeSuccess,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Log(%s) error = %v", action, err)
		}
	}
	if err := service.Log(ctx, &AuditEvent{ActorID: "user-2", Action: "contact.deleted", ResourceName: strPtr("people/c2"), Outcome: OutcomeSuccess}); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	events, err := service.ListByResource(ctx, "people/c1", 0)
	if err != nil {
		t.Fatalf("ListByResource() error = %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("len(events) = %d; want 3", len(events))
	}
	if events[0].Action != "contact.deleted" || events[2].Action != "contact.created" {
		t.Fatalf("order = %s..%s; want newest first", events[0].Action, events[2].Action)
	}

	limited, err := service.ListByResource(ctx, "people/c1", 1)
	if err != nil {
		t.Fatalf("ListByResource(limit=1) error = %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("len(limited) = %d; want 1", len(limited))
	}

	byActor, err := service.ListByActor(ctx, "user-2", 10)
	if err != nil {
		t.Fatalf("ListByActor() error = %v", err)
	}
	if len(byActor) != 1 || *byActor[0].ResourceName != "people/c2" {
		t.Fatalf("ListByActor() = %+v", byActor)
	}
}

func TestListByResource_SubSecondOrder(t *testing.T) {
	service := NewAuditService(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

	offsets := []time.Duration{0, 120 * time.Millisecond, 123 * time.Millisecond, 500 * time.Millisecond}
	for i, off := range offsets {
		err := service.Log(ctx, &AuditEvent{
			ActorID:      "user-1",
			Action:       "contact.updated",
			ResourceName: strPtr("people/c7"),
			Outcome:      OutcomeSuccess,
			CreatedAt:    base.Add(off),
		})
		if err != nil {
			t.Fatalf("Log(%d) error = %v", i, err)
		}
	}

	for name, list := range map[string]func() ([]*AuditEvent, error){
		"resource": func() ([]*AuditEvent, error) { return service.ListByResource(ctx, "people/c7", 10) },
		"actor":    func() ([]*AuditEvent, error) { return service.ListByActor(ctx, "user-1", 10) },
	} {
		events, err := list()
		if err != nil {
			t.Fatalf("%s: list error = %v", name, err)
		}
		if len(events) != len(offsets) {
			t.Fatalf("%s: len(events) = %d; want %d", name, len(events), len(offsets))
		}
		for i := range events {
			want := base.Add(offsets[len(offsets)-1-i])
			if !events[i].CreatedAt.Equal(want) {
				t.Fatalf("%s: events[%d].CreatedAt = %v; want %v", name, i, events[i].CreatedAt, want)
			}
		}
	}
}

func TestLog_PreservesDetails(t *testing.T) {
	service := NewAuditService(setupTestDB(t))
	ctx := context.Background()

	details, _ := json.Marshal(EventDetails{Status: 404, Message: "not found"})
	event := &AuditEvent{Action: "contact.deleted", Outcome: OutcomeError, ErrorKind: strPtr("not_found"), Details: details}
	if err := service.Log(ctx, event); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	got, err := service.GetByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	var decoded EventDetails
	if err := json.Unmarshal(got.Details, &decoded); err != nil {
		t.Fatalf("details not JSON: %v", err)
	}
	if decoded.Status != 404 || *got.ErrorKind != "not_found" {
		t.Fatalf("got details %+v kind %q", decoded, *got.ErrorKind)
	}
}

func strPtr(s string) *string { return &s }
