package audit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/peoplebridge/internal/domain/contacts"
	"github.com/matiasleandrokruk/peoplebridge/internal/infra/eventbus"
)

// Topics recorded by the Recorder.
var Topics = []string{
	contacts.TopicContactCreated,
	contacts.TopicContactUpdated,
	contacts.TopicContactDeleted,
}

// Recorder writes every contact mutation published on the bus to the audit log.
type Recorder struct {
	svc *AuditService
	bus eventbus.EventBus
	log zerolog.Logger
}

func NewRecorder(svc *AuditService, bus eventbus.EventBus, log zerolog.Logger) *Recorder {
	return &Recorder{svc: svc, bus: bus, log: log}
}

// Start subscribes to Topics and records events in the background.
// The returned channel is closed once ctx ends or the bus is closed.
func (r *Recorder) Start(ctx context.Context) <-chan struct{} {
	var wg sync.WaitGroup
	for _, topic := range Topics {
		ch := r.bus.Subscribe(topic)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case evt, ok := <-ch:
					if !ok {
						return
					}
					r.record(ctx, evt)
				}
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	return done
}

func (r *Recorder) record(ctx context.Context, evt eventbus.Event) {
	m, ok := evt.Payload.(contacts.MutationEvent)
	if !ok {
		r.log.Warn().Str("topic", evt.Topic).Msgf("unexpected payload %T", evt.Payload)
		return
	}

	event := FromMutation(m)
	if err := r.svc.Log(ctx, event); err != nil {
		r.log.Error().Err(err).Str("action", m.Action).Msg("audit write failed")
	}
}

// FromMutation converts a published mutation into an audit event.
func FromMutation(m contacts.MutationEvent) *AuditEvent {
	event := &AuditEvent{
		ActorID:   m.ActorID,
		Action:    m.Action,
		Outcome:   OutcomeSuccess,
		CreatedAt: m.At,
	}
	if m.ResourceName != "" {
		rn := m.ResourceName
		event.ResourceName = &rn
	}
	if m.Err == nil {
		return event
	}

	event.Outcome = OutcomeError
	details := EventDetails{Message: m.Err.Error()}
	var apiErr *contacts.APIError
	if errors.As(m.Err, &apiErr) {
		kind := string(apiErr.Kind)
		event.ErrorKind = &kind
		details.Status = apiErr.Status
		details.Message = apiErr.Message
	}
	if raw, err := json.Marshal(details); err == nil {
		event.Details = raw
	}
	return event
}
