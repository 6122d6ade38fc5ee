package outbox

import (
	"context"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/logger"
)

// Recorder writes an event for a changed aggregate. Failures are logged and
// swallowed so the request that caused the change still succeeds.
type Recorder struct {
	repository OutboxRepository
	aggregate  string
	logger     *logger.Logger
}

func NewRecorder(repository OutboxRepository, aggregate string, log *logger.Logger) *Recorder {
	return &Recorder{repository: repository, aggregate: aggregate, logger: log}
}

func (r *Recorder) Record(ctx context.Context, action Action, aggregateID string, payload any) {
	eventID, err := r.repository.NewEvent(ctx, r.aggregate, aggregateID, action, payload)
	if err != nil {
		r.logger.Errorf(err, "Could not record %s %s event for %s", r.aggregate, action, aggregateID)
		return
	}
	r.logger.Debugf("Recorded event %s: %s %s %s", eventID, r.aggregate, aggregateID, action)
}
