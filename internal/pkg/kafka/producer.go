package kafka

import (
	"Trendcast/internal/api/config"
	"Trendcast/internal/pkg/metrics"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// PredictionEvent 每次预测完成后发布
type PredictionEvent struct {
	RequestID           string    `json:"request_id"`
	Platform            string    `json:"platform"`
	Hashtag             string    `json:"hashtag"`
	ContentType         string    `json:"content_type"`
	Region              string    `json:"region"`
	Followers           int       `json:"followers"`
	MatchedPosts        int       `json:"matched_posts"`
	PredictedEngagement string    `json:"predicted_engagement,omitempty"`
	Success             bool      `json:"success"`
	CreatedAt           time.Time `json:"created_at"`
}

type EventProducer interface {
	PublishPrediction(ctx context.Context, event *PredictionEvent) error
	Close() error
}

type saramaProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewEventProducer 未配置 brokers 时返回只记日志的实现
func NewEventProducer(cfg config.KafkaConfig) (EventProducer, error) {
	if len(cfg.Brokers) == 0 || cfg.PredictionTopic == "" {
		log.Info("Kafka brokers not configured, prediction events disabled")
		return NopProducer{}, nil
	}
	producer, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return &saramaProducer{producer: producer, topic: cfg.PredictionTopic}, nil
}

func (p *saramaProducer) PublishPrediction(ctx context.Context, event *PredictionEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.RequestID),
		Value: sarama.ByteEncoder(value),
	})
	metrics.RecordEventPublished(p.topic, err)
	if err != nil {
		return fmt.Errorf("failed to publish prediction event: %w", err)
	}
	log.DebugContext(ctx, "prediction event published", "topic", p.topic, "partition", partition, "offset", offset)
	return nil
}

func (p *saramaProducer) Close() error {
	return p.producer.Close()
}

type NopProducer struct{}

func (NopProducer) PublishPrediction(context.Context, *PredictionEvent) error {
	return nil
}

func (NopProducer) Close() error {
	return nil
}
