package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
)

// Event types emitted by the exam workflow.
const (
	TypeResultSubmitted  = "exam.result.submitted"
	TypeResultOverridden = "exam.result.overridden"
)

// Event is the envelope delivered to downstream consumers such as notification workers.
type Event struct {
	ID            string      `json:"id"`
	Type          string      `json:"type"`
	Source        string      `json:"source"`
	CorrelationID string      `json:"correlation_id,omitempty"`
	OccurredAt    time.Time   `json:"occurred_at"`
	Payload       interface{} `json:"payload"`
}

// ResultPayload describes a result after submission or override.
type ResultPayload struct {
	ResultID  uint    `json:"result_id"`
	ExamID    uint    `json:"exam_id"`
	StudentID uint    `json:"student_id"`
	Score     float64 `json:"score"`
	IsGraded  bool    `json:"is_graded"`
	ActorID   uint    `json:"actor_id,omitempty"`
}

// Publisher fans events out to the configured brokers.
type Publisher interface {
	Publish(ctx context.Context, eventType string, correlationID string, payload interface{}) error
}

type publisher struct {
	redis   *redis.Client
	nats    *nats.Conn
	channel string
	source  string
	now     func() time.Time
}

// NewPublisher builds a publisher. Either broker may be nil; with neither configured Publish is a no-op.
func NewPublisher(redisClient *redis.Client, natsConn *nats.Conn, channel, source string) Publisher {
	return &publisher{
		redis:   redisClient,
		nats:    natsConn,
		channel: channel,
		source:  source,
		now:     time.Now,
	}
}

func (p *publisher) Publish(ctx context.Context, eventType string, correlationID string, payload interface{}) error {
	if p.channel == "" || (p.redis == nil && p.nats == nil) {
		return nil
	}

	event := Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		Source:        p.source,
		CorrelationID: correlationID,
		OccurredAt:    p.now().UTC(),
		Payload:       payload,
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	var errs []error
	if p.redis != nil {
		if err := p.redis.Publish(ctx, p.channel, body).Err(); err != nil {
			errs = append(errs, fmt.Errorf("redis publish: %w", err))
		}
	}

	if p.nats != nil {
		if err := p.nats.Publish(Subject(p.channel, eventType), body); err != nil {
			errs = append(errs, fmt.Errorf("nats publish: %w", err))
		}
	}

	return errors.Join(errs...)
}

// Subject returns the NATS subject an event type is published on.
func Subject(channel, eventType string) string {
	return channel + "." + eventType
}
