package usecase

import (
	"context"
	"time"
)

const (
	EventFixturesGenerated = "fixtures.generated"
	EventResultApplied     = "match.result_applied"
	EventStandingsUpdated  = "standings.updated"
	EventBracketAdvanced   = "bracket.advanced"
	EventScheduleDegraded  = "schedule.degraded"
)

// Event is a tournament state change announced to downstream consumers.
type Event struct {
	Type         string         `json:"type"`
	TournamentID string         `json:"tournament_id"`
	OccurredAt   time.Time      `json:"occurred_at"`
	Payload      map[string]any `json:"payload,omitempty"`
}

// EventPublisher delivers events. Delivery is best effort: callers log
// failures and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

type nopEventPublisher struct{}

func (nopEventPublisher) Publish(context.Context, Event) error {
	return nil
}

func NewNopEventPublisher() EventPublisher {
	return nopEventPublisher{}
}
