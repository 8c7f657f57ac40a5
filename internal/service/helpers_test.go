package service

import (
	"Trendcast/internal/model"
	"Trendcast/internal/pkg/kafka"
	"Trendcast/internal/repository"
	"context"
	"fmt"
	"sync"
	"time"
)

type stubLoader struct {
	posts []model.Post
	err   error
	calls int
}

func (l *stubLoader) Load(context.Context) ([]model.Post, error) {
	l.calls++
	return l.posts, l.err
}

func (l *stubLoader) Name() string {
	return "stub"
}

// blockingLoader 在 release 关闭前阻塞，用于构造并发重载
type blockingLoader struct {
	posts       []model.Post
	started     chan struct{}
	release     chan struct{}
	hadDeadline bool
}

func (l *blockingLoader) Load(ctx context.Context) ([]model.Post, error) {
	_, l.hadDeadline = ctx.Deadline()
	close(l.started)
	<-l.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.posts, nil
}

func (l *blockingLoader) Name() string {
	return "blocking"
}

// swappedStore 模拟两次读取之间发生了替换：Current 仍是旧快照，其余读取已看到新版本
type swappedStore struct {
	repository.PostStore
	newer *repository.PostSnapshot
}

func (s *swappedStore) Snapshot() []model.Post {
	return s.newer.Posts
}

func (s *swappedStore) Version() uint64 {
	return s.newer.Version
}

func (s *swappedStore) LoadedAt() time.Time {
	return s.newer.LoadedAt
}

type recordingProducer struct {
	mu     sync.Mutex
	events []*kafka.PredictionEvent
	err    error
}

func (p *recordingProducer) PublishPrediction(_ context.Context, event *kafka.PredictionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingProducer) Close() error {
	return nil
}

func post(id int, date, platform, hashtag, contentType, region string, views int, level model.EngagementLevel) model.Post {
	return model.Post{
		PostID:          fmt.Sprintf("P%d", id),
		PostDate:        date,
		Platform:        platform,
		Hashtag:         hashtag,
		ContentType:     contentType,
		Region:          region,
		Views:           views,
		Likes:           views / 10,
		Shares:          views / 100,
		Comments:        views / 200,
		EngagementLevel: level,
	}
}

func danceDataset(n int) []model.Post {
	posts := make([]model.Post, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, post(i+1, "2024-01-01", "TikTok", "#Dance", "Video", "USA", 1_000_000, model.EngagementHigh))
	}
	return posts
}

func loadedStore(posts []model.Post) repository.PostStore {
	store := repository.NewPostStore()
	store.Replace(posts)
	return store
}
