package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DomainEvent is the envelope fanned out to subscribers. Type reuses the audit action name.
type DomainEvent struct {
	Type       string                 `json:"type"`
	ActorID    uint                   `json:"actor_id"`
	EntityID   uint                   `json:"entity_id"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// EventPublisher fans domain events out to other systems.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
}

// MessagePublisher is the subset of *nats.Conn used for publishing.
type MessagePublisher interface {
	Publish(subject string, data []byte) error
}

type natsEventPublisher struct {
	conn   MessagePublisher
	prefix string
	logger zerolog.Logger
}

// NewNATSEventPublisher publishes events on "<prefix>.<type>". A nil connection yields a
// publisher that drops events.
func NewNATSEventPublisher(conn MessagePublisher, prefix string, logger zerolog.Logger) EventPublisher {
	if conn == nil {
		return NoopEventPublisher{}
	}
	prefix = strings.Trim(strings.TrimSpace(prefix), ".")
	if prefix == "" {
		prefix = "reporting"
	}
	return &natsEventPublisher{
		conn:   conn,
		prefix: prefix,
		logger: logger.With().Str("component", "event_publisher").Logger(),
	}
}

func (p *natsEventPublisher) Publish(ctx context.Context, event DomainEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	subject := p.prefix + "." + event.Type
	if err := p.conn.Publish(subject, payload); err != nil {
		return err
	}
	p.logger.Debug().Str("subject", subject).Uint("entity_id", event.EntityID).Msg("event published")
	return nil
}

// NoopEventPublisher discards events.
type NoopEventPublisher struct{}

// Publish implements EventPublisher.
func (NoopEventPublisher) Publish(context.Context, DomainEvent) error { return nil }

// mutationEffects bundles the side effects every mutating service emits after a commit.
// Failures are logged and never fail the request.
type mutationEffects struct {
	activity ActivityRecorder
	events   EventPublisher
	logger   zerolog.Logger
}

func (m mutationEffects) emit(ctx context.Context, entry ActivityEntry, payload map[string]interface{}) {
	if m.activity != nil {
		if _, err := m.activity.Record(ctx, entry); err != nil {
			m.logger.Warn().Err(err).Str("action", entry.Action).Msg("failed to record activity")
		}
	}
	if m.events != nil {
		event := DomainEvent{Type: entry.Action, ActorID: entry.ActorID, Payload: payload}
		if entry.EntityID != nil {
			event.EntityID = *entry.EntityID
		}
		if err := m.events.Publish(ctx, event); err != nil {
			m.logger.Warn().Err(err).Str("event", entry.Action).Msg("failed to publish event")
		}
	}
}
