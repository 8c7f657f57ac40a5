package kafka

import (
	"Trendcast/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	datasetConsumer sarama.ConsumerGroup
	datasetHandler  sarama.ConsumerGroupHandler
	datasetTopic    string
}

// NewConsumerManager 未配置 brokers 或 topic 时返回 nil
func NewConsumerManager(cfg *config.Config, reloader Reloader) (*ConsumerManager, error) {
	sub := cfg.Kafka.DatasetConsumer
	if len(cfg.Kafka.Brokers) == 0 || sub.Topic == "" {
		return nil, nil
	}

	datasetConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, sub.GroupID, newSaramaConfig(cfg.Kafka))
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		datasetConsumer: datasetConsumer,
		datasetHandler:  NewDatasetHandler(reloader),
		datasetTopic:    sub.Topic,
	}, nil
}

// Start 阻塞直到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context) error {
	go func() {
		log.Info("Dataset consumer started", "topic", m.datasetTopic)
		for {
			if err := m.datasetConsumer.Consume(ctx, []string{m.datasetTopic}, m.datasetHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.datasetConsumer.Close(); err != nil {
		log.Error("Failed to close dataset consumer", "err", err)
	}
	return nil
}
