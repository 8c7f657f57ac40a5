package dataset

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/minio/minio-go/v7"
)

// Source 提供一份 CSV 数据流
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	Name() string
}

// FileSource 本地文件
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	return f, nil
}

func (s *FileSource) Name() string {
	return "file:" + s.Path
}

// MinIOSource MinIO 对象
type MinIOSource struct {
	client *minio.Client
	bucket string
	object string
}

func NewMinIOSource(client *minio.Client, bucket, object string) *MinIOSource {
	return &MinIOSource{client: client, bucket: bucket, object: object}
}

func (s *MinIOSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if s.client == nil {
		return nil, fmt.Errorf("minio client is not initialized")
	}
	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset object: %w", err)
	}
	// GetObject 是惰性的，Stat 才会真正请求
	if _, err = obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, fmt.Errorf("failed to stat dataset object: %w", err)
	}
	return obj, nil
}

func (s *MinIOSource) Name() string {
	return "minio:" + s.bucket + "/" + s.object
}

// HTTPSource 远程 URL
type HTTPSource struct {
	client *resty.Client
	url    string
}

func NewHTTPSource(client *resty.Client, url string) *HTTPSource {
	return &HTTPSource{client: client, url: url}
}

func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeader("Accept", "text/csv").
		Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to download dataset: %w", err)
	}
	if resp.IsError() {
		_ = resp.RawBody().Close()
		return nil, fmt.Errorf("failed to download dataset: unexpected status %d", resp.StatusCode())
	}
	return resp.RawBody(), nil
}

func (s *HTTPSource) Name() string {
	return "http:" + s.url
}
