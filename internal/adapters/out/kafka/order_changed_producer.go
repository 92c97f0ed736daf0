// Package kafka publishes order status changes to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"fulfillment/internal/adapters/out/eventbus"

	"github.com/twmb/franz-go/pkg/kgo"
)

type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// OrderChangedProducer writes one record per status change, keyed by order
// id so changes of one order stay in one partition.
type OrderChangedProducer struct {
	client producer
	topic  string
}

// NewClient connects a kgo client to the given brokers.
func NewClient(brokers []string) (*kgo.Client, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}
	return client, nil
}

func NewOrderChangedProducer(client producer, topic string) *OrderChangedProducer {
	return &OrderChangedProducer{client: client, topic: topic}
}

// Send implements eventbus.Sink.
func (p *OrderChangedProducer) Send(ctx context.Context, message eventbus.Message) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(message.OrderID),
		Value: body,
		Headers: []kgo.RecordHeader{
			{Key: "event", Value: []byte("order.status_changed")},
		},
	}
	if err = p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("failed to produce to %s: %w", p.topic, err)
	}
	return nil
}
