package outbox

import (
	"context"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/config"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/logger"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/rabbitmq"

	"github.com/robfig/cron"
)

const outboxWorkerName = "OutboxCronWorker"

type OutboxWorker struct {
	publisher  rabbitmq.IRabbitmqPublisher
	repository OutboxRepository
	config     config.OutboxConfig
	logger     *logger.Logger
	cron       *cron.Cron
}

func NewOutboxWorker(repository OutboxRepository, publisher rabbitmq.IRabbitmqPublisher, cfg config.OutboxConfig, log *logger.Logger) *OutboxWorker {
	return &OutboxWorker{
		publisher:  publisher,
		repository: repository,
		config:     cfg,
		logger:     log,
		cron:       cron.New(),
	}
}

func (ow *OutboxWorker) GetServiceName() string {
	return outboxWorkerName
}

func (ow *OutboxWorker) StartService() {
	err := ow.cron.AddFunc(ow.config.Schedule, func() { ow.ProcessOutboxEvents(context.Background()) })
	if err != nil {
		ow.logger.Errorf(err, "Could not add function to %s", outboxWorkerName)
		return
	}

	ow.cron.Start()
}

func (ow *OutboxWorker) StopService() {
	ow.cron.Stop()
}

// ProcessOutboxEvents publishes one batch of pending events and returns how
// many were delivered.
func (ow *OutboxWorker) ProcessOutboxEvents(ctx context.Context) int {
	events, err := ow.repository.GetUnprocessedEvents(ctx, ow.config.BatchSize)
	if err != nil {
		ow.logger.Error(err, "Could not read events from database")
		return 0
	}

	published := 0
	for _, e := range events {
		if err := ow.publisher.Publish(ctx, e.MapToEventMessage()); err != nil {
			ow.logger.Errorf(err, "Can't publish event %s to queue", e.EventID)
			ow.retry(ctx, e)
			continue
		}

		if err := ow.repository.MarkEventAsProcessed(ctx, e.EventID); err != nil {
			ow.logger.Errorf(err, "Published event %s but could not mark it processed", e.EventID)
			continue
		}
		published++
	}

	if len(events) > 0 {
		ow.logger.Infof("Outbox published %d of %d events", published, len(events))
	}
	return published
}

func (ow *OutboxWorker) retry(ctx context.Context, e OutboxEvent) {
	exhausted, err := ow.repository.UpdateRetryValue(ctx, e.EventID, ow.config.MaxRetries)
	if err != nil {
		ow.logger.Errorf(err, "Could not update retry counter of event %s", e.EventID)
		return
	}
	if exhausted {
		ow.logger.Warnf("Event %s reached %d retries and needs manual inspection", e.EventID, ow.config.MaxRetries)
	}
}
