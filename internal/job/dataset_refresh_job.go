package job

import (
	"Trendcast/internal/pkg/logger"
	"Trendcast/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const refreshTimeout = 5 * time.Minute

// DatasetRefreshJob 定时重新加载数据集，失败时保留旧快照
type DatasetRefreshJob struct {
	datasetSvc service.DatasetService
}

func NewDatasetRefreshJob(datasetSvc service.DatasetService) *DatasetRefreshJob {
	return &DatasetRefreshJob{datasetSvc: datasetSvc}
}

func (s *DatasetRefreshJob) Run() {
	traceID := "job-dataset-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	n, err := s.datasetSvc.Reload(ctx)
	if err != nil {
		log.ErrorContext(ctx, "dataset refresh failed, keeping previous snapshot", "err", err)
		return
	}
	log.InfoContext(ctx, "dataset refresh finished", "posts", n)
}
