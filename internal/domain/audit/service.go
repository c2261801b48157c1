package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrAuditEventNotFound = errors.New("audit event not found")

const defaultListLimit = 50

// createdAtLayout is fixed width so created_at text sorts in time order.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// AuditService provides audit logging capabilities
// All operations are append-only; no updates or deletes are supported
//
//nolint:revive // AuditService reads better than audit.Service at call sites
type AuditService struct {
	db *sql.DB
}

// NewAuditService creates a new audit service
func NewAuditService(db *sql.DB) *AuditService {
	return &AuditService{db: db}
}

// Log appends an audit event. Missing ID, actor and timestamp are filled in.
func (s *AuditService) Log(ctx context.Context, event *AuditEvent) error {
	if event.ID == "" {
		event.ID = generateID()
	}
	if event.ActorID == "" {
		event.ActorID = anonymousActor
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	details := normalizeJSON(event.Details, []byte("{}"))

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_event (id, actor_id, action, resource_name, outcome, error_kind, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, event.ID, event.ActorID, event.Action, event.ResourceName, string(event.Outcome),
		event.ErrorKind, string(details), event.CreatedAt.UTC().Format(createdAtLayout))
	if err != nil {
		return fmt.Errorf("audit: insert event: %w", err)
	}
	return nil
}

// GetByID retrieves a single audit event by ID
func (s *AuditService) GetByID(ctx context.Context, id string) (*AuditEvent, error) {
	row := s.db.QueryRowContext(ctx, selectEvent+` WHERE id = ?`, id)
	event, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAuditEventNotFound
	}
	return event, err
}

// ListByResource returns events for one contact, newest first.
func (s *AuditService) ListByResource(ctx context.Context, resourceName string, limit int) ([]*AuditEvent, error) {
	return s.list(ctx, selectEvent+` WHERE resource_name = ? ORDER BY created_at DESC, id DESC LIMIT ?`, resourceName, clampLimit(limit))
}

// ListByActor returns events recorded for one caller, newest first.
func (s *AuditService) ListByActor(ctx context.Context, actorID string, limit int) ([]*AuditEvent, error) {
	return s.list(ctx, selectEvent+` WHERE actor_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`, actorID, clampLimit(limit))
}

const selectEvent = `SELECT id, actor_id, action, resource_name, outcome, error_kind, details, created_at FROM audit_event`

type scanner interface {
	Scan(dest ...any) error
}

func (s *AuditService) list(ctx context.Context, query string, args ...any) ([]*AuditEvent, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("audit: list events: %w", err)
	}
	defer rows.Close()

	var events []*AuditEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func scanEvent(row scanner) (*AuditEvent, error) {
	var (
		event        AuditEvent
		resourceName sql.NullString
		errorKind    sql.NullString
		outcome      string
		details      string
		createdAt    string
	)
	if err := row.Scan(&event.ID, &event.ActorID, &event.Action, &resourceName, &outcome, &errorKind, &details, &createdAt); err != nil {
		return nil, err
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("audit: parse created_at %q: %w", createdAt, err)
	}
	event.CreatedAt = ts
	event.Outcome = Outcome(outcome)
	event.Details = json.RawMessage(details)
	if resourceName.Valid {
		event.ResourceName = &resourceName.String
	}
	if errorKind.Valid {
		event.ErrorKind = &errorKind.String
	}
	return &event, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}

// generateID generates a new UUID for audit events
func generateID() string {
	// UUID v7 sorts by creation time
	return uuid.Must(uuid.NewV7()).String()
}

func normalizeJSON(raw json.RawMessage, fallback []byte) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage(fallback)
	}
	return raw
}
