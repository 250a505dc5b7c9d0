package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sonuudigital/nimblestore/internal/logs"
)

const (
	maxRetries           = 3
	retryBackoff         = 100 * time.Millisecond
	reconnectMaxAttempts = 10
	reconnectMaxBackoff  = 30 * time.Second
	failedToReconnectMsg = "failed to reconnect: %w"
)

type connectionManager struct {
	mu         sync.RWMutex
	logger     logs.Logger
	url        string
	connection *amqp091.Connection
	channel    *amqp091.Channel
}

func newConnectionManager(logger logs.Logger, url string) (*connectionManager, error) {
	manager := &connectionManager{
		logger: logger,
		url:    url,
	}

	if err := manager.connect(); err != nil {
		return nil, err
	}

	return manager, nil
}

func (cm *connectionManager) connect() error {
	conn, err := amqp091.Dial(cm.url)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	cm.mu.Lock()
	cm.connection = conn
	cm.channel = ch
	cm.mu.Unlock()
	cm.logger.Info("connected to RabbitMQ")
	return nil
}

func (cm *connectionManager) reconnect(ctx context.Context) error {
	backoff := 1 * time.Second

	for attempt := 1; attempt <= reconnectMaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
			cm.logger.Info("attempting to reconnect to RabbitMQ", "attempt", attempt, "backoff", backoff)

			if err := cm.connect(); err != nil {
				cm.logger.Error("failed to reconnect", "error", err, "attempt", attempt)
				backoff = min(backoff*2, reconnectMaxBackoff)
				continue
			}

			cm.logger.Info("successfully reconnected to RabbitMQ")
			return nil
		}
	}

	return fmt.Errorf("max reconnection attempts reached: %d", reconnectMaxAttempts)
}

func (cm *connectionManager) isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if cm.connection == nil || cm.connection.IsClosed() || cm.channel == nil {
		return true
	}

	var amqpErr *amqp091.Error
	if errors.As(err, &amqpErr) {
		return amqpErr.Code == amqp091.ChannelError || amqpErr.Code == amqp091.ConnectionForced
	}

	return errors.Is(err, amqp091.ErrClosed)
}

func (cm *connectionManager) retryWithReconnect(ctx context.Context, opName string, op func() error) error {
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := op()
		if err == nil {
			return nil
		}
		if !cm.isConnectionError(err) || attempt == maxRetries {
			return err
		}

		cm.logger.Warn(opName+": transient error, attempting reconnect", "attempt", attempt, "error", err)
		if err := cm.reconnect(ctx); err != nil {
			return fmt.Errorf(failedToReconnectMsg, err)
		}
		time.Sleep(retryBackoff * time.Duration(attempt))
	}
	return fmt.Errorf("%s failed after %d retries", opName, maxRetries)
}

// Ping reports whether the broker connection is open. It is safe to call
// while the publisher reconnects.
func (cm *connectionManager) Ping() error {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	if cm.connection == nil || cm.connection.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

func (cm *connectionManager) Close() {
	if cm.channel != nil {
		cm.channel.Close()
	}
	if cm.connection != nil {
		cm.connection.Close()
	}
	cm.logger.Info("rabbitmq connection manager closed")
}
