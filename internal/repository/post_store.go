package repository

import (
	"Trendcast/internal/model"
	"sync/atomic"
	"time"
)

// PostSnapshot 一次发布的数据集，发布后只读
type PostSnapshot struct {
	Posts    []model.Post
	LoadedAt time.Time
	// Version 每次 Replace 自增，用作缓存键的一部分
	Version uint64
}

// PostStore 内存中的历史数据集。快照一经发布不再修改，刷新时整体替换
type PostStore interface {
	// Current 一次原子读取，帖子与版本号保证属于同一快照
	Current() *PostSnapshot
	// Snapshot 当前快照的帖子，调用方只读
	Snapshot() []model.Post
	// Replace 发布新快照并返回它
	Replace(posts []model.Post) *PostSnapshot
	Len() int
	LoadedAt() time.Time
	Version() uint64
	Loaded() bool
}

type postStoreImpl struct {
	current atomic.Pointer[PostSnapshot]
}

func NewPostStore() PostStore {
	s := &postStoreImpl{}
	s.current.Store(&PostSnapshot{})
	return s
}

func (s *postStoreImpl) Current() *PostSnapshot {
	return s.current.Load()
}

func (s *postStoreImpl) Snapshot() []model.Post {
	return s.current.Load().Posts
}

func (s *postStoreImpl) Replace(posts []model.Post) *PostSnapshot {
	frozen := make([]model.Post, len(posts))
	copy(frozen, posts)
	for {
		old := s.current.Load()
		next := &PostSnapshot{Posts: frozen, LoadedAt: time.Now(), Version: old.Version + 1}
		if s.current.CompareAndSwap(old, next) {
			return next
		}
	}
}

func (s *postStoreImpl) Len() int {
	return len(s.current.Load().Posts)
}

func (s *postStoreImpl) LoadedAt() time.Time {
	return s.current.Load().LoadedAt
}

func (s *postStoreImpl) Version() uint64 {
	return s.current.Load().Version
}

func (s *postStoreImpl) Loaded() bool {
	return s.current.Load().Version > 0
}
