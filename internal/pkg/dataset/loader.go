package dataset

import (
	"Trendcast/internal/model"
	"context"
	"fmt"
	log "log/slog"
	"time"
)

// Loader 加载完整的历史数据集
type Loader interface {
	Load(ctx context.Context) ([]model.Post, error)
	Name() string
}

// CSVLoader 从 Source 读取 CSV
type CSVLoader struct {
	source Source
}

func NewCSVLoader(source Source) *CSVLoader {
	return &CSVLoader{source: source}
}

func (l *CSVLoader) Load(ctx context.Context) ([]model.Post, error) {
	start := time.Now()
	rc, err := l.source.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rc.Close()
	}()

	posts, err := Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset from %s: %w", l.source.Name(), err)
	}
	log.InfoContext(ctx, "dataset loaded", "source", l.source.Name(), "posts", len(posts), "cost", time.Since(start).String())
	return posts, nil
}

func (l *CSVLoader) Name() string {
	return l.source.Name()
}

// PostReader 数据库中的帖子表
type PostReader interface {
	ListAll(ctx context.Context) ([]model.Post, error)
}

// DBLoader 从数据库读取，记录同样经过规范化
type DBLoader struct {
	reader PostReader
}

func NewDBLoader(reader PostReader) *DBLoader {
	return &DBLoader{reader: reader}
}

func (l *DBLoader) Load(ctx context.Context) ([]model.Post, error) {
	start := time.Now()
	posts, err := l.reader.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset from database: %w", err)
	}
	for i := range posts {
		posts[i] = Normalize(posts[i], i)
	}
	log.InfoContext(ctx, "dataset loaded", "source", l.Name(), "posts", len(posts), "cost", time.Since(start).String())
	return posts, nil
}

func (l *DBLoader) Name() string {
	return "mysql:trend_posts"
}
