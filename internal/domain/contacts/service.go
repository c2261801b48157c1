// Package contacts adapts Google People API contact operations to tool calls.
// Every operation makes its remote calls once, with no retry, and returns
// failures as *APIError via NormalizeError.
package contacts

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/peoplebridge/internal/api/ctxkeys"
	"github.com/matiasleandrokruk/peoplebridge/internal/infra/eventbus"
)

// Event topics published after each mutation attempt.
const (
	TopicContactCreated = "contact.created"
	TopicContactUpdated = "contact.updated"
	TopicContactDeleted = "contact.deleted"
)

// MutationEvent is the payload published on the Topic* topics.
// Err is nil on success and an *APIError otherwise.
type MutationEvent struct {
	Action       string
	ResourceName string
	ActorID      string
	Err          error
	At           time.Time
}

// Service exposes contact operations over a PeopleAPI.
// It holds no mutable state; one Service is shared by all callers.
type Service struct {
	api PeopleAPI
	bus eventbus.EventBus
	log zerolog.Logger
}

// NewService returns a Service. bus may be nil when no audit trail is wanted.
func NewService(api PeopleAPI, bus eventbus.EventBus, log zerolog.Logger) *Service {
	return &Service{api: api, bus: bus, log: log}
}

func (s *Service) publish(ctx context.Context, topic, resourceName string, err error) {
	evt := s.log.Info()
	if err != nil {
		evt = s.log.Warn().Str("kind", string(KindOf(err)))
	}
	if reqID := ctxkeys.String(ctx, ctxkeys.RequestID); reqID != "" {
		evt = evt.Str("request_id", reqID)
	}
	evt.Str("action", topic).Str("resource", resourceName).Msg("contact mutation")

	if s.bus == nil {
		return
	}
	s.bus.Publish(topic, MutationEvent{
		Action:       topic,
		ResourceName: resourceName,
		ActorID:      ctxkeys.String(ctx, ctxkeys.Subject),
		Err:          err,
		At:           time.Now().UTC(),
	})
}
