package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/sonuudigital/nimblestore/internal/events"
	"github.com/sonuudigital/nimblestore/internal/repository"
)

type OutboxEventMessageRelayerRepository struct {
	*repository.Queries
}

func NewOutboxEventMessageRelayerRepository(conn repository.DBTX) *OutboxEventMessageRelayerRepository {
	return &OutboxEventMessageRelayerRepository{
		Queries: repository.New(conn),
	}
}

func (r *OutboxEventMessageRelayerRepository) GetUnpublishedOutboxEvents(ctx context.Context, limit int32) ([]events.OutboxEvent, error) {
	outboxEvents, err := r.Queries.GetUnpublishedOutboxEvents(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := make([]events.OutboxEvent, 0, len(outboxEvents))
	for _, oe := range outboxEvents {
		result = append(result, events.OutboxEvent{
			ID:          uuid.UUID(oe.ID.Bytes).String(),
			AggregateID: oe.AggregateID,
			EventName:   oe.EventName,
			Payload:     oe.Payload,
			Status:      oe.Status,
		})
	}

	return result, nil
}

func (r *OutboxEventMessageRelayerRepository) UpdateOutboxEventStatus(ctx context.Context, eventID string) error {
	var eventUUID pgtype.UUID
	if err := eventUUID.Scan(eventID); err != nil {
		return err
	}
	return r.Queries.UpdateOutboxEventStatus(ctx, eventUUID)
}
