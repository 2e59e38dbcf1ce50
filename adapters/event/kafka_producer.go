package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/career-path/internal/config"
	"github.com/khoahotran/career-path/internal/domain/feedback"
	"github.com/khoahotran/career-path/internal/domain/profile"
	"github.com/khoahotran/career-path/pkg/logger"
)

const (
	TopicProfileEvents  = "profile.events"
	TopicFeedbackEvents = "feedback.events"
)

type KafkaProducerClient struct {
	ProfileEventsWriter  *kafka.Writer
	FeedbackEventsWriter *kafka.Writer
	logger               logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	c := &KafkaProducerClient{logger: log}
	c.ProfileEventsWriter = c.newWriter(brokers, TopicProfileEvents)
	c.FeedbackEventsWriter = c.newWriter(brokers, TopicFeedbackEvents)

	log.Info("Initialize Kafka Producers successfully.", zap.Strings("brokers", brokers))
	return c, nil
}

// newWriter returns an async writer. Delivery failures are only logged.
func (c *KafkaProducerClient) newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				c.logger.Error("Failed to deliver Kafka messages", err, zap.String("topic", topic), zap.Int("count", len(messages)))
			}
		},
	}
}

func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, e profile.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal profile event: %w", err)
	}
	return c.ProfileEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.OwnerID.String()),
		Value: payload,
	})
}

func (c *KafkaProducerClient) PublishFeedbackEvent(ctx context.Context, e feedback.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback event: %w", err)
	}
	return c.FeedbackEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.FeedbackID.String()),
		Value: payload,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		if err := c.ProfileEventsWriter.Close(); err != nil {
			c.logger.Warn("Failed to close profile events writer", zap.Error(err))
		}
	}
	if c.FeedbackEventsWriter != nil {
		if err := c.FeedbackEventsWriter.Close(); err != nil {
			c.logger.Warn("Failed to close feedback events writer", zap.Error(err))
		}
	}
	c.logger.Info("Closed Kafka Producers")
}
