package minio

import (
	"Trendcast/internal/api/config"
	"context"
	"fmt"
	log "log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	// Client 全局 MinIO 客户端实例，未配置时为 nil
	Client *minio.Client
	// Bucket 数据集所在的存储桶
	Bucket string
)

// Init 初始化 MinIO 客户端，未配置 endpoint 时跳过
func Init(cfg config.MinIOConfig) error {
	if cfg.Endpoint == "" {
		log.Info("MinIO endpoint not configured, skipping")
		return nil
	}

	client, err := NewClient(cfg)
	if err != nil {
		return err
	}

	exists, err := client.BucketExists(context.Background(), cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if !exists {
		return fmt.Errorf("minio bucket %q does not exist", cfg.Bucket)
	}

	Client = client
	Bucket = cfg.Bucket
	return nil
}

func NewClient(cfg config.MinIOConfig) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}
	return client, nil
}

// EnsureBucket 存储桶不存在时创建，导入数据集时使用
func EnsureBucket(ctx context.Context, client *minio.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	log.Info("MinIO bucket created", "bucket", bucket)
	return nil
}
