// Package outbox stores domain events next to the data they describe and
// relays them to RabbitMQ on a schedule.
package outbox

import (
	"encoding/json"
	"time"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/utilities"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/utilities/timeutil"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

type OutboxEvent struct {
	ID          int    `gorm:"primaryKey;autoIncrement"`
	EventID     string `gorm:"uniqueIndex;size:36;not null"`
	Aggregate   string `gorm:"size:64;not null"`
	AggregateID string `gorm:"size:64;not null"`
	Action      Action `gorm:"size:16;not null"`
	Payload     string
	Retry       int
	Processed   bool `gorm:"index;not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (OutboxEvent) TableName() string {
	return "outbox_events"
}

// EventMessage is what consumers receive on the exchange.
type EventMessage struct {
	EventID     string           `json:"event_id"`
	Aggregate   string           `json:"aggregate"`
	AggregateID string           `json:"aggregate_id"`
	Action      Action           `json:"action"`
	Payload     json.RawMessage  `json:"payload,omitempty"`
	OccurredAt  timeutil.TimeUTC `json:"occurred_at"`
}

func (em EventMessage) Serialize() ([]byte, error) {
	return utilities.Serialize(em)
}

func (oe OutboxEvent) MapToEventMessage() EventMessage {
	msg := EventMessage{
		EventID:     oe.EventID,
		Aggregate:   oe.Aggregate,
		AggregateID: oe.AggregateID,
		Action:      oe.Action,
		OccurredAt:  timeutil.FromTime(oe.CreatedAt),
	}
	if oe.Payload != "" {
		msg.Payload = json.RawMessage(oe.Payload)
	}
	return msg
}
