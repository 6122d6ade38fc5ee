package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/config"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/database"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/logger"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/utilities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	messages []EventMessage
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, body utilities.Serializable) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, body.(EventMessage))
	return nil
}

type payload struct {
	Name string `json:"name"`
}

func newRepo(t *testing.T) OutboxRepository {
	return NewRepo(database.OpenTestDB(t, &OutboxEvent{}))
}

func testConfig() config.OutboxConfig {
	return config.OutboxConfigJson{MaxRetries: 2}.ConvertToDomain()
}

func TestNewEventIsStoredUnprocessed(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	eventID, err := repo.NewEvent(ctx, "user", "1", ActionCreated, payload{Name: "Ada"})
	require.NoError(t, err)

	event, err := repo.GetEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, "user", event.Aggregate)
	assert.Equal(t, "1", event.AggregateID)
	assert.Equal(t, ActionCreated, event.Action)
	assert.JSONEq(t, `{"name":"Ada"}`, event.Payload)
	assert.False(t, event.Processed)
	assert.Zero(t, event.Retry)
}

func TestGetUnprocessedEventsHonoursLimit(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		id, err := repo.NewEvent(ctx, "user", "1", ActionUpdated, nil)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	require.NoError(t, repo.MarkEventAsProcessed(ctx, ids[0].String()))

	events, err := repo.GetUnprocessedEvents(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ids[1].String(), events[0].EventID)

	events, err = repo.GetUnprocessedEvents(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestUpdateRetryValueExhausts(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	id, err := repo.NewEvent(ctx, "user", "1", ActionDeleted, nil)
	require.NoError(t, err)

	exhausted, err := repo.UpdateRetryValue(ctx, id.String(), 2)
	require.NoError(t, err)
	assert.False(t, exhausted)

	exhausted, err = repo.UpdateRetryValue(ctx, id.String(), 2)
	require.NoError(t, err)
	assert.True(t, exhausted)

	event, err := repo.GetEvent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, event.Retry)
	assert.True(t, event.Processed)
}

func TestWorkerPublishesAndMarksProcessed(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	publisher := &fakePublisher{}

	id, err := repo.NewEvent(ctx, "user", "42", ActionCreated, payload{Name: "Ada"})
	require.NoError(t, err)

	worker := NewOutboxWorker(repo, publisher, testConfig(), logger.Nop())
	assert.Equal(t, 1, worker.ProcessOutboxEvents(ctx))

	require.Len(t, publisher.messages, 1)
	msg := publisher.messages[0]
	assert.Equal(t, id.String(), msg.EventID)
	assert.Equal(t, "42", msg.AggregateID)
	assert.JSONEq(t, `{"name":"Ada"}`, string(msg.Payload))

	pending, err := repo.GetUnprocessedEvents(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestWorkerRetriesUntilExhausted(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	publisher := &fakePublisher{err: errors.New("broker down")}

	id, err := repo.NewEvent(ctx, "user", "1", ActionUpdated, nil)
	require.NoError(t, err)

	worker := NewOutboxWorker(repo, publisher, testConfig(), logger.Nop())
	assert.Zero(t, worker.ProcessOutboxEvents(ctx))

	pending, err := repo.GetUnprocessedEvents(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	assert.Zero(t, worker.ProcessOutboxEvents(ctx))
	pending, err = repo.GetUnprocessedEvents(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	event, err := repo.GetEvent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, event.Retry)
}

func TestWorkerStartStop(t *testing.T) {
	worker := NewOutboxWorker(newRepo(t), &fakePublisher{}, testConfig(), logger.Nop())

	assert.Equal(t, "OutboxCronWorker", worker.GetServiceName())
	worker.StartService()
	worker.StopService()
}

func TestRecorderStoresEvent(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	NewRecorder(repo, "user", logger.Nop()).Record(ctx, ActionCreated, "7", payload{Name: "Grace"})

	events, err := repo.GetUnprocessedEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "7", events[0].AggregateID)
}

func TestEventMessageSerialization(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	msg := OutboxEvent{EventID: "e", Aggregate: "user", AggregateID: "1", Action: ActionDeleted, CreatedAt: created}.MapToEventMessage()

	body, err := msg.Serialize()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "2024-05-01T12:00:00Z", decoded["occurred_at"])
	assert.Equal(t, "deleted", decoded["action"])
	assert.NotContains(t, decoded, "payload")
}
