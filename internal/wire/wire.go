package wire

import (
	"Trendcast/internal/api"
	"Trendcast/internal/api/config"
	"Trendcast/internal/api/handler"
	"Trendcast/internal/job"
	"Trendcast/internal/pkg/cron"
	"Trendcast/internal/pkg/dataset"
	"Trendcast/internal/pkg/kafka"
	"Trendcast/internal/pkg/minio"
	"Trendcast/internal/repository"
	"Trendcast/internal/service"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DatasetSvc   service.DatasetService
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager
	Producer     kafka.EventProducer
}

// BuildApplication db 仅在 dataset.source 为 mysql 时需要
func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	loader, err := NewDatasetLoader(cfg.Dataset, db)
	if err != nil {
		return nil, err
	}

	producer, err := kafka.NewEventProducer(cfg.Kafka)
	if err != nil {
		return nil, err
	}

	postStore := repository.NewPostStore()

	datasetService := service.NewDatasetService(loader, postStore, time.Duration(cfg.Dataset.OverviewTTL)*time.Second)
	predictService := service.NewPredictService(postStore, producer)

	handlers := &api.HandlersGroup{
		PredictHandler: handler.NewPredictHandler(predictService),
		DatasetHandler: handler.NewDatasetHandler(datasetService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(cfg.Dataset.RefreshCron, job.NewDatasetRefreshJob(datasetService))

	kafkaMgr, err := kafka.NewConsumerManager(cfg, datasetService)
	if err != nil {
		_ = producer.Close()
		return nil, err
	}

	return &ApplicationContainer{
		Router:       router,
		DatasetSvc:   datasetService,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
		Producer:     producer,
	}, nil
}

// NewDatasetLoader 按 dataset.source 选择数据来源
func NewDatasetLoader(cfg config.DatasetConfig, db *gorm.DB) (dataset.Loader, error) {
	switch cfg.Source {
	case "", "file":
		return dataset.NewCSVLoader(dataset.NewFileSource(cfg.Path)), nil
	case "minio":
		if minio.Client == nil {
			return nil, fmt.Errorf("dataset.source is minio but minio is not configured")
		}
		return dataset.NewCSVLoader(dataset.NewMinIOSource(minio.Client, minio.Bucket, cfg.Object)), nil
	case "http":
		if cfg.URL == "" {
			return nil, fmt.Errorf("dataset.url is required for http source")
		}
		client := resty.New().
			SetTimeout(time.Duration(cfg.HTTPTimeout) * time.Second).
			SetRetryCount(2)
		return dataset.NewCSVLoader(dataset.NewHTTPSource(client, cfg.URL)), nil
	case "mysql":
		if db == nil {
			return nil, fmt.Errorf("dataset.source is mysql but database is not configured")
		}
		return dataset.NewDBLoader(repository.NewTrendPostRepository(db)), nil
	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Source)
	}
}
