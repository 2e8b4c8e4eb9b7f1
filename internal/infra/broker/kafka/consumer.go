package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/IBM/sarama"
)

type MessageHandler interface {
	Handle(ctx context.Context, msg *sarama.ConsumerMessage) error
}

type Consumer struct {
	group   sarama.ConsumerGroup
	handler MessageHandler
}

func NewConsumer(brokers []string, groupID string, cfg *sarama.Config, handler MessageHandler) (*Consumer, error) {
	if cfg == nil {
		cfg = sarama.NewConfig()
	}
	cfg.Version = sarama.V2_5_0_0
	g, err := sarama.NewConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}
	return &Consumer{group: g, handler: handler}, nil
}

func (c *Consumer) Run(ctx context.Context, topics []string) error {
	for {
		if err := c.group.Consume(ctx, topics, consumerGroupHandler{handler: c.handler}); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (c *Consumer) Close() error {
	return c.group.Close()
}

type consumerGroupHandler struct {
	handler MessageHandler
}

func (h consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h consumerGroupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		if err := h.handler.Handle(sess.Context(), message); err != nil {
			// retry/handling delegated to handler
			continue
		}
		sess.MarkMessage(message, "")
	}
	return nil
}

// FleetEventLogger consumes published fleet events and writes an audit
// line per event. It keeps the event stream observable without a
// downstream subscriber in place.
type FleetEventLogger struct {
	Logger *slog.Logger
}

func (l FleetEventLogger) Handle(_ context.Context, msg *sarama.ConsumerMessage) error {
	var envelope struct {
		ID     string `json:"id"`
		Type   string `json:"type"`
		Source string `json:"source"`
	}
	if err := json.Unmarshal(msg.Value, &envelope); err != nil {
		return err
	}
	if l.Logger != nil {
		l.Logger.Info("fleet event",
			"topic", msg.Topic,
			"type", envelope.Type,
			"id", envelope.ID,
			"key", string(msg.Key),
		)
	}
	return nil
}
