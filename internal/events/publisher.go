package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Publisher publishes query analytics events.
type Publisher struct {
	client *Client
	logger *slog.Logger
}

// NewPublisher creates a new analytics event publisher.
func NewPublisher(client *Client, logger *slog.Logger) *Publisher {
	return &Publisher{client: client, logger: logger}
}

// QueryEvent is the standard event envelope published to the bus.
type QueryEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

func (p *Publisher) publish(subject string, eventType string, data any) error {
	event := QueryEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    "edumatch-origin",
		Timestamp: time.Now(),
		Data:      data,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	if err := p.client.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("publishing to %s: %w", subject, err)
	}

	p.logger.Debug("published event", "subject", subject, "type", eventType)
	return nil
}

// ProgramsListed publishes a programs_list query event.
func (p *Publisher) ProgramsListed(filters map[string]any, count int) error {
	return p.publish("edumatch.query.programs.listed", "query.programs.listed", map[string]any{
		"filters": filters,
		"count":   count,
	})
}

// ProgramsRanked publishes a rank_programs query event.
func (p *Publisher) ProgramsRanked(method string, filters map[string]any, count int) error {
	return p.publish("edumatch.query.programs.ranked", "query.programs.ranked", map[string]any{
		"ranking_method": method,
		"filters":        filters,
		"count":          count,
	})
}
