package worker

import (
	"context"
	"time"

	"github.com/sonuudigital/nimblestore/internal/events"
	"github.com/sonuudigital/nimblestore/internal/logs"
)

type OutboxEventRepository interface {
	GetUnpublishedOutboxEvents(ctx context.Context, limit int32) ([]events.OutboxEvent, error)
	UpdateOutboxEventStatus(ctx context.Context, eventID string) error
}

type Publisher interface {
	Publish(ctx context.Context, eventName string, body []byte) error
}

type OutboxEventMessageRelayer struct {
	logger       logs.Logger
	publisher    Publisher
	repo         OutboxEventRepository
	pollInterval time.Duration
	batchSize    int32
}

func NewOutboxEventMessageRelayer(
	logger logs.Logger,
	publisher Publisher,
	repo OutboxEventRepository,
	pollInterval time.Duration,
	batchSize int32,
) *OutboxEventMessageRelayer {
	return &OutboxEventMessageRelayer{
		logger:       logger,
		publisher:    publisher,
		repo:         repo,
		pollInterval: pollInterval,
		batchSize:    batchSize,
	}
}

// Start polls the outbox until ctx is cancelled.
func (oemr *OutboxEventMessageRelayer) Start(ctx context.Context) {
	oemr.logger.Info("starting outbox event message relayer", "pollInterval", oemr.pollInterval, "batchSize", oemr.batchSize)
	ticker := time.NewTicker(oemr.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := oemr.ProcessEvents(ctx); err != nil {
				oemr.logger.Error("error processing outbox events", "error", err)
			}
		case <-ctx.Done():
			oemr.logger.Info("stopping outbox event message relayer")
			return
		}
	}
}

// ProcessEvents relays one batch and returns how many events were marked published.
// A failed event stays pending and is retried on the next tick.
func (oemr *OutboxEventMessageRelayer) ProcessEvents(ctx context.Context) (int, error) {
	pending, err := oemr.repo.GetUnpublishedOutboxEvents(ctx, oemr.batchSize)
	if err != nil {
		return 0, err
	}

	relayed := 0
	for _, event := range pending {
		if err := oemr.publisher.Publish(ctx, event.EventName, event.Payload); err != nil {
			oemr.logger.Error("failed to publish outbox event", "eventId", event.ID, "eventName", event.EventName, "error", err)
			continue
		}

		if err := oemr.repo.UpdateOutboxEventStatus(ctx, event.ID); err != nil {
			oemr.logger.Error("failed to update outbox event status", "eventId", event.ID, "error", err)
			continue
		}

		relayed++
		oemr.logger.Debug("relayed outbox event", "eventId", event.ID, "eventName", event.EventName)
	}

	return relayed, nil
}
