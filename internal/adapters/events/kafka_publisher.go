package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	portsevents "github.com/SscSPs/trade_journal_app/internal/core/ports/events"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes entry lifecycle events to a Kafka topic, keyed by entry id.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

var _ portsevents.EntryEventPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates a publisher writing to topic on the given brokers.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: writer, topic: topic}
}

// PublishEntryEvent writes one event. The entry id is the message key so all
// events of one entry land on the same partition in order.
func (p *KafkaPublisher) PublishEntryEvent(ctx context.Context, event portsevents.EntryEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal entry event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.EntryID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write entry event to kafka topic %s: %w", p.topic, err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
