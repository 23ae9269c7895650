package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// OrderHandler receives every decoded order.created event.
type OrderHandler func(ctx context.Context, ev OrderCreated) error

type Consumer struct {
	reader MessageReader
	handle OrderHandler
	logger *zap.Logger
}

func NewConsumer(topic, groupID string, handle OrderHandler, logger *zap.Logger, brokers ...string) *Consumer {
	if topic == "" {
		topic = DefaultTopic
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MaxBytes: 10e6, // 10MB
	})
	return NewConsumerWithReader(reader, handle, logger)
}

func NewConsumerWithReader(r MessageReader, handle OrderHandler, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{reader: r, handle: handle, logger: logger}
}

// Run reads until ctx is cancelled. Malformed messages and handler failures
// are logged and skipped.
func (c *Consumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.processMessage(ctx)
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

func (c *Consumer) processMessage(ctx context.Context) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return
		}
		c.logger.Warn("error reading message", zap.Error(err))
		return
	}

	ev, err := decodeOrderCreated(m)
	if err != nil {
		c.logger.Warn("skipping message", zap.Int64("offset", m.Offset), zap.Error(err))
		return
	}

	if err := c.handle(ctx, ev); err != nil {
		c.logger.Error("order event handler failed", zap.String("checkout_id", ev.CheckoutID), zap.Error(err))
	}
}

func decodeOrderCreated(m kafka.Message) (OrderCreated, error) {
	for _, h := range m.Headers {
		if h.Key == "event_type" && string(h.Value) != EventTypeOrderCreated {
			return OrderCreated{}, fmt.Errorf("unexpected event type %q", h.Value)
		}
	}

	var ev OrderCreated
	if err := json.Unmarshal(m.Value, &ev); err != nil {
		return OrderCreated{}, fmt.Errorf("error parsing message: %w", err)
	}
	if ev.CheckoutID == "" {
		return OrderCreated{}, errors.New("event without checkout_id")
	}
	return ev, nil
}
