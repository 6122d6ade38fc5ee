package outbox

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OutboxRepository interface {
	GetEvent(ctx context.Context, eventID uuid.UUID) (OutboxEvent, error)
	NewEvent(ctx context.Context, aggregate, aggregateID string, action Action, payload any) (uuid.UUID, error)
	GetUnprocessedEvents(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, eventID string) error
	// UpdateRetryValue bumps the retry counter and reports whether the event
	// has now used up maxRetries, in which case it is also marked processed.
	UpdateRetryValue(ctx context.Context, eventID string, maxRetries int) (bool, error)
}

type outboxRepository struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (or *outboxRepository) GetEvent(ctx context.Context, eventID uuid.UUID) (OutboxEvent, error) {
	var event OutboxEvent
	result := or.db.WithContext(ctx).First(&event, "event_id = ?", eventID.String())
	return event, result.Error
}

func (or *outboxRepository) NewEvent(ctx context.Context, aggregate, aggregateID string, action Action, payload any) (uuid.UUID, error) {
	eventID, err := uuid.NewRandom()
	if err != nil {
		return eventID, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, err
	}

	result := or.db.WithContext(ctx).Create(&OutboxEvent{
		EventID:     eventID.String(),
		Aggregate:   aggregate,
		AggregateID: aggregateID,
		Action:      action,
		Payload:     string(body),
	})

	return eventID, result.Error
}

func (or *outboxRepository) GetUnprocessedEvents(ctx context.Context, limit int) ([]OutboxEvent, error) {
	var events []OutboxEvent
	result := or.db.WithContext(ctx).
		Where("processed = ?", false).
		Order("id").
		Limit(limit).
		Find(&events)
	return events, result.Error
}

func (or *outboxRepository) MarkEventAsProcessed(ctx context.Context, eventID string) error {
	return or.db.WithContext(ctx).
		Model(&OutboxEvent{}).
		Where("event_id = ?", eventID).
		Update("processed", true).Error
}

func (or *outboxRepository) UpdateRetryValue(ctx context.Context, eventID string, maxRetries int) (bool, error) {
	db := or.db.WithContext(ctx)

	err := db.Model(&OutboxEvent{}).
		Where("event_id = ?", eventID).
		Update("retry", gorm.Expr("retry + 1")).Error
	if err != nil {
		return false, err
	}

	var event OutboxEvent
	if err := db.First(&event, "event_id = ?", eventID).Error; err != nil {
		return false, err
	}

	if event.Retry < maxRetries {
		return false, nil
	}

	// left in the table for manual inspection
	return true, or.MarkEventAsProcessed(ctx, eventID)
}
