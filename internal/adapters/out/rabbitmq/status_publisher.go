// Package rabbitmq announces order status changes on a fanout exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"fulfillment/internal/adapters/out/eventbus"

	amqp "github.com/rabbitmq/amqp091-go"
)

type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// StatusPublisher owns one AMQP channel. amqp channels are not safe for
// concurrent publishing, so Send is serialized.
type StatusPublisher struct {
	mutex    sync.Mutex
	channel  channel
	exchange string
}

// Dial opens a connection and a channel and declares the exchange.
func Dial(url, exchange string) (*amqp.Connection, *StatusPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}
	publisher, err := NewStatusPublisher(ch, exchange)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, publisher, nil
}

func NewStatusPublisher(ch channel, exchange string) (*StatusPublisher, error) {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return &StatusPublisher{channel: ch, exchange: exchange}, nil
}

// Send implements eventbus.Sink.
func (p *StatusPublisher) Send(ctx context.Context, message eventbus.Message) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()
	err = p.channel.PublishWithContext(ctx, p.exchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    message.OrderID + ":" + message.NewStatus,
		Timestamp:    message.OccurredAt,
		Type:         "order.status_changed",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

func (p *StatusPublisher) Close() error {
	return p.channel.Close()
}
