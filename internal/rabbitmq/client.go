package rabbitmq

import (
	"context"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sonuudigital/nimblestore/internal/logs"
)

type Client struct {
	*connectionManager
	declared map[string]bool
}

func NewClient(logger logs.Logger, url string) (*Client, error) {
	manager, err := newConnectionManager(logger, url)
	if err != nil {
		return nil, err
	}
	return &Client{connectionManager: manager, declared: make(map[string]bool)}, nil
}

func (c *Client) Publish(ctx context.Context, opts PublishOptions) error {
	return c.retryWithReconnect(ctx, "publish", func() error {
		if err := c.ensureExchange(opts.Exchange, opts.ExchangeType); err != nil {
			return err
		}
		return c.publishMessage(ctx, opts)
	})
}

func (c *Client) ensureExchange(name string, exchangeType ExchangeType) error {
	if c.declared[name] && !c.channel.IsClosed() {
		return nil
	}

	err := c.channel.ExchangeDeclare(
		name,
		string(exchangeType),
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		delete(c.declared, name)
		return err
	}

	c.declared[name] = true
	return nil
}

func (c *Client) publishMessage(ctx context.Context, opts PublishOptions) error {
	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         opts.Body,
		Timestamp:    time.Now(),
	}

	return c.channel.PublishWithContext(
		ctx,
		opts.Exchange,
		opts.RoutingKey,
		false,
		false,
		publishing,
	)
}
