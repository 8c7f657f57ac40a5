package kafka

import (
	"Trendcast/internal/model"
	"Trendcast/internal/pkg/logger"
	"context"
	"errors"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// Reloader 重新加载数据集
type Reloader interface {
	Reload(ctx context.Context) (int, error)
}

// DatasetHandler 消费 trend_posts 表的 Canal 变更，一批消息只触发一次重载
type DatasetHandler struct {
	reloader Reloader
	table    string
}

func NewDatasetHandler(reloader Reloader) *DatasetHandler {
	return &DatasetHandler{
		reloader: reloader,
		table:    model.Post{}.TableName(),
	}
}

func (h *DatasetHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("dataset consumer setup")
	return nil
}

func (h *DatasetHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("dataset consumer cleanup")
	return nil
}

func (h *DatasetHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	return pullMessageBatch(session, claim, h.handleBatch)
}

func (h *DatasetHandler) handleBatch(ctx context.Context, msgs []*sarama.ConsumerMessage) error {
	if !h.relevant(msgs) {
		return nil
	}
	ctx = context.WithValue(ctx, logger.TraceIDKey, "kafka-dataset-"+uuid.NewString())
	n, err := h.reloader.Reload(ctx)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "dataset reloaded from change stream", "messages", len(msgs), "posts", n)
	return nil
}

// relevant 批内是否存在本表的数据变更（DDL 也算）
func (h *DatasetHandler) relevant(msgs []*sarama.ConsumerMessage) bool {
	for _, msg := range msgs {
		canalMsg, err := ToCanalMessage(msg, h.table)
		if err != nil {
			if !errors.Is(err, errTableMismatch) {
				log.Warn("skip malformed canal message", "offset", msg.Offset, "err", err)
			}
			continue
		}
		if canalMsg.IsDDL || len(canalMsg.Data) > 0 {
			return true
		}
	}
	return false
}
