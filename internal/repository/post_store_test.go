package repository

import (
	"Trendcast/internal/model"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostStore_ReplaceSwapsSnapshot(t *testing.T) {
	store := NewPostStore()
	assert.False(t, store.Loaded())
	assert.Zero(t, store.Len())
	assert.Empty(t, store.Snapshot())

	first := []model.Post{{PostID: "1", Platform: "TikTok"}}
	store.Replace(first)
	old := store.Snapshot()

	assert.True(t, store.Loaded())
	assert.Equal(t, uint64(1), store.Version())
	assert.Equal(t, 1, store.Len())
	assert.False(t, store.LoadedAt().IsZero())

	store.Replace([]model.Post{{PostID: "2"}, {PostID: "3"}})

	assert.Equal(t, uint64(2), store.Version())
	assert.Equal(t, 2, store.Len())
	// 旧快照不受影响
	assert.Equal(t, "1", old[0].PostID)
}

func TestPostStore_ReplaceCopiesInput(t *testing.T) {
	store := NewPostStore()
	posts := []model.Post{{PostID: "1"}}

	store.Replace(posts)
	posts[0].PostID = "changed"

	assert.Equal(t, "1", store.Snapshot()[0].PostID)
}

func TestPostStore_ConcurrentReplace(t *testing.T) {
	store := NewPostStore()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Replace(make([]model.Post, i))
		}()
		go func() {
			defer wg.Done()
			_ = store.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(50), store.Version())
}

func TestPostStore_CurrentPairsPostsWithVersion(t *testing.T) {
	store := NewPostStore()
	published := store.Replace([]model.Post{{PostID: "1"}})
	assert.Same(t, published, store.Current())

	held := store.Current()
	store.Replace([]model.Post{{PostID: "2"}, {PostID: "3"}})
	assert.Equal(t, uint64(1), held.Version)
	assert.Len(t, held.Posts, 1)
	assert.Equal(t, uint64(2), store.Current().Version)

	// 单个写者，第 v 版恰好有 v 条帖子
	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				cur := store.Current()
				if len(cur.Posts) != int(cur.Version) {
					t.Errorf("version %d carries %d posts", cur.Version, len(cur.Posts))
					return
				}
			}
		}
	}()
	for v := 3; v <= 200; v++ {
		store.Replace(make([]model.Post, v))
	}
	close(done)
	wg.Wait()
}
