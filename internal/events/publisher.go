package events

import (
	"context"
	"errors"
	"strings"

	"github.com/sonuudigital/nimblestore/internal/rabbitmq"
)

type TopicPublisher interface {
	Publish(ctx context.Context, opts rabbitmq.PublishOptions) error
}

// RoutingPublisher turns an outbox event name of the form "exchange:routingKey"
// into a topic publish.
type RoutingPublisher struct {
	client TopicPublisher
}

func NewRoutingPublisher(client TopicPublisher) *RoutingPublisher {
	return &RoutingPublisher{client: client}
}

func (p *RoutingPublisher) Publish(ctx context.Context, eventName string, body []byte) error {
	exchange, routingKey, ok := strings.Cut(eventName, ":")
	if !ok || exchange == "" || routingKey == "" {
		return errors.New("event name must have the form exchange:routingKey: " + eventName)
	}

	return p.client.Publish(ctx, rabbitmq.PublishOptions{
		Exchange:     exchange,
		ExchangeType: rabbitmq.ExchangeTopic,
		RoutingKey:   routingKey,
		Body:         body,
	})
}
