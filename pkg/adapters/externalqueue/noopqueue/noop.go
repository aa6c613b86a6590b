package noopqueue

import (
	"log/slog"

	"github.com/jademcosta/logroller/pkg/domain"
	"github.com/jademcosta/logroller/pkg/logger"
)

const TYPE string = "noop"

// Queue swallows every notification. The default when no external queue
// is configured.
type Queue struct {
	log *slog.Logger
}

func New(l *slog.Logger) *Queue {
	return &Queue{log: l.With(logger.ExternalQueueTypeKey, TYPE)}
}

func (queue *Queue) Enqueue(_ *domain.MessageContext) error {
	return nil
}

func (queue *Queue) Type() string {
	return TYPE
}

func (queue *Queue) Name() string {
	return TYPE
}
