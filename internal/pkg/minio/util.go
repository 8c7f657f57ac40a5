package minio

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

const csvContentType = "text/csv"

// UploadDataset 上传 CSV 数据集，size 未知时传 -1
func UploadDataset(ctx context.Context, client *minio.Client, bucket, objectName string, reader io.Reader, size int64) (string, error) {
	if client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	uploadInfo, err := client.PutObject(ctx, bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: csvContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload dataset: %w", err)
	}

	return uploadInfo.Key, nil
}
