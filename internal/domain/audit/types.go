package audit

import (
	"encoding/json"
	"time"
)

// Outcome represents the result of an audited action
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeError   Outcome = "error"
)

// anonymousActor is recorded when a mutation carries no authenticated subject.
const anonymousActor = "anonymous"

// AuditEvent represents a single audit log entry
// This is immutable - once created, it should never be modified
type AuditEvent struct {
	ID           string          `json:"id"`
	ActorID      string          `json:"actor_id"`
	Action       string          `json:"action"`
	ResourceName *string         `json:"resource_name,omitempty"`
	Outcome      Outcome         `json:"outcome"`
	ErrorKind    *string         `json:"error_kind,omitempty"`
	Details      json.RawMessage `json:"details,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// EventDetails captures the specifics of a failed call
type EventDetails struct {
	Status  int    `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}
