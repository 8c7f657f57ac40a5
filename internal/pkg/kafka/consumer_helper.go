package kafka

import (
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
)

const (
	batchSize    = 32
	batchTimeout = 1 * time.Second

	maxRetryInterval = 5 * time.Second
)

// BatchFunc 一次处理一整批消息
type BatchFunc func(ctx context.Context, msgs []*sarama.ConsumerMessage) error

// pullMessageBatch 按数量或超时攒批，每批调用一次 logic
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic BatchFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				if len(batch) > 0 {
					processBatch(session, batch, logic)
				}
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch 失败时指数退避重试，成功后标记并提交最后一条的 offset
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic BatchFunc) {
	ctx := session.Context()
	retryInterval := 100 * time.Millisecond
	for {
		err := logic(ctx, messages)
		if err == nil {
			break
		}
		log.ErrorContext(ctx, "process message batch error", "count", len(messages), "err", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(retryInterval):
		}
		retryInterval = min(retryInterval*2, maxRetryInterval)
	}

	session.MarkMessage(messages[len(messages)-1], "")
	session.Commit()
}
