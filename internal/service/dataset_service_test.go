package service

import (
	"Trendcast/internal/api/dto"
	"Trendcast/internal/model"
	"Trendcast/internal/repository"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() []model.Post {
	return []model.Post{
		post(1, "2024-01-03", "TikTok", "#Dance", "Video", "USA", 1000, model.EngagementHigh),
		post(2, "2024-01-01", "TikTok", "#Dance", "Video", "UK", 2000, model.EngagementMedium),
		post(3, "2024-01-02", "YouTube", "#Tech", "Shorts", "USA", 3000, model.EngagementLow),
		post(4, "2024-01-01", "Instagram", "#Food", "Reel", "India", 4000, model.EngagementHigh),
		post(5, "", "TikTok", "#Tech", "Live Stream", "USA", 5000, model.EngagementHigh),
	}
}

func newDatasetService(posts []model.Post) (DatasetService, *stubLoader) {
	loader := &stubLoader{posts: posts}
	return NewDatasetService(loader, repository.NewPostStore(), time.Minute), loader
}

func TestReload_ReplacesSnapshot(t *testing.T) {
	store := repository.NewPostStore()
	loader := &stubLoader{posts: sampleDataset()}
	svc := NewDatasetService(loader, store, 0)

	n, err := svc.Reload(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 5, store.Len())
	assert.Equal(t, uint64(1), store.Version())
}

func TestReload_FailureKeepsPreviousSnapshot(t *testing.T) {
	store := repository.NewPostStore()
	loader := &stubLoader{posts: sampleDataset()}
	svc := NewDatasetService(loader, store, 0)
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)

	loader.err = errors.New("disk gone")
	_, err = svc.Reload(context.Background())
	assert.Error(t, err)

	loader.err = nil
	loader.posts = nil
	_, err = svc.Reload(context.Background())
	assert.ErrorIs(t, err, ErrDatasetEmpty)

	assert.Equal(t, 5, store.Len())
	assert.Equal(t, uint64(1), store.Version())
}

func TestReload_CallerCancelDoesNotAbortSharedLoad(t *testing.T) {
	store := repository.NewPostStore()
	loader := &blockingLoader{
		posts:   sampleDataset(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := NewDatasetService(loader, store, 0)

	ctx, cancel := context.WithCancel(context.Background())
	type result struct {
		n   int
		err error
	}
	first := make(chan result, 1)
	go func() {
		n, err := svc.Reload(ctx)
		first <- result{n, err}
	}()

	<-loader.started
	cancel()
	close(loader.release)

	got := <-first
	require.NoError(t, got.err)
	assert.Equal(t, 5, got.n)
	assert.True(t, loader.hadDeadline)
	assert.Equal(t, 5, store.Len())
}

func TestOverview_UsesSingleSnapshotRead(t *testing.T) {
	store := repository.NewPostStore()
	store.Replace(sampleDataset())
	swapped := &swappedStore{
		PostStore: store,
		newer:     &repository.PostSnapshot{Posts: sampleDataset()[:2], LoadedAt: time.Now(), Version: 2},
	}
	svc := NewDatasetService(&stubLoader{}, swapped, 0)

	out, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), out.Version)
	assert.Equal(t, 5, out.TotalPosts)

	opts, err := svc.Options(context.Background())
	require.NoError(t, err)
	assert.Contains(t, opts.Platforms, "Instagram")
}

func TestOverview_NotLoaded(t *testing.T) {
	svc, _ := newDatasetService(nil)

	_, err := svc.Overview(context.Background())

	assert.ErrorIs(t, err, ErrDatasetNotLoaded)
}

func TestOverview_Aggregates(t *testing.T) {
	svc, _ := newDatasetService(sampleDataset())
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)

	out, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, out.TotalPosts)
	assert.Equal(t, int64(15000), out.TotalViews)
	assert.Equal(t, int64(1500), out.TotalLikes)
	assert.Equal(t, int64(150), out.TotalShares)
	assert.Equal(t, int64(75), out.TotalComments)
	// (1500+150+75)/15000
	assert.Equal(t, 11.5, out.AvgEngagementRate)
	assert.Equal(t, 3, out.PlatformCount)
	assert.Equal(t, 3, out.HashtagCount)
	assert.Equal(t, 3, out.RegionCount)
	assert.Equal(t, uint64(1), out.Version)

	require.Len(t, out.Platforms, 3)
	assert.Equal(t, "TikTok", out.Platforms[0].Platform)
	assert.Equal(t, 3, out.Platforms[0].Posts)
	assert.Equal(t, 2667, out.Platforms[0].AvgViews)

	assert.Equal(t, []*dto.CountItem{
		{Name: "High", Count: 3},
		{Name: "Medium", Count: 1},
		{Name: "Low", Count: 1},
	}, out.EngagementLevels)

	require.Len(t, out.TopHashtags, 3)
	assert.Equal(t, "#Dance", out.TopHashtags[0].Name)
	assert.Equal(t, "#Tech", out.TopHashtags[1].Name)
	assert.Equal(t, "#Food", out.TopHashtags[2].Name)
}

func TestOptions_AnyFirstThenFirstSeen(t *testing.T) {
	svc, _ := newDatasetService(sampleDataset())
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)

	out, err := svc.Options(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Any", "TikTok", "YouTube", "Instagram"}, out.Platforms)
	assert.Equal(t, []string{"Any", "#Dance", "#Tech", "#Food"}, out.Hashtags)
	assert.Equal(t, []string{"Any", "Video", "Shorts", "Reel", "Live Stream"}, out.ContentTypes)
	assert.Equal(t, []string{"Any", "USA", "UK", "India"}, out.Regions)
}

func TestListPosts_FiltersAndPages(t *testing.T) {
	svc, _ := newDatasetService(sampleDataset())
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)

	out, err := svc.ListPosts(context.Background(), &dto.PostListQuery{Platform: "TikTok", EngagementLevel: "high"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 10, out.PageSize)
	require.Len(t, out.List, 2)
	assert.Equal(t, "P1", out.List[0].PostID)
	assert.Equal(t, "P5", out.List[1].PostID)

	out, err = svc.ListPosts(context.Background(), &dto.PostListQuery{Platform: "all", Region: "Any", Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, out.Total)
	require.Len(t, out.List, 2)
	assert.Equal(t, "P3", out.List[0].PostID)

	out, err = svc.ListPosts(context.Background(), &dto.PostListQuery{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, out.List)
}

func TestTimeline_SortedAndLimited(t *testing.T) {
	svc, _ := newDatasetService(sampleDataset())
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)

	points, err := svc.Timeline(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, "2024-01-01", points[0].Date)
	assert.Equal(t, 2, points[0].Posts)
	assert.Equal(t, int64(6000), points[0].Views)
	assert.Equal(t, "2024-01-03", points[2].Date)

	points, err = svc.Timeline(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2024-01-02", points[0].Date)
}

func TestDateBefore(t *testing.T) {
	assert.True(t, dateBefore("2024-01-02", "2024-01-10"))
	assert.True(t, dateBefore("01/05/2023", "2024-01-01"))
	assert.True(t, dateBefore("2024-01-01", "someday"))
	assert.False(t, dateBefore("someday", "2024-01-01"))
}
