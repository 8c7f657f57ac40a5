package service

import (
	"Trendcast/internal/api/dto"
	"Trendcast/internal/model"
	"Trendcast/internal/pkg/consts"
	"Trendcast/internal/pkg/dataset"
	"Trendcast/internal/pkg/metrics"
	"Trendcast/internal/pkg/redis"
	"Trendcast/internal/pkg/util"
	"Trendcast/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const topHashtagLimit = 5

// reloadTimeout 合并后的加载不随任何一个调用方取消
const reloadTimeout = 5 * time.Minute

var dateLayouts = []string{"2006-01-02", "2006/01/02", "01/02/2006", "2006-01-02 15:04:05", time.RFC3339}

type DatasetService interface {
	// Reload 重新加载数据集并替换快照，并发调用合并为一次加载
	Reload(ctx context.Context) (int, error)
	Overview(ctx context.Context) (*dto.DatasetOverviewDTO, error)
	Options(ctx context.Context) (*dto.FormOptionsDTO, error)
	ListPosts(ctx context.Context, query *dto.PostListQuery) (*dto.PostListDTO, error)
	Timeline(ctx context.Context, limit int) ([]*dto.TimelinePointDTO, error)
}

type datasetServiceImpl struct {
	loader   dataset.Loader
	store    repository.PostStore
	cacheTTL time.Duration
	group    singleflight.Group
}

func NewDatasetService(loader dataset.Loader, store repository.PostStore, cacheTTL time.Duration) DatasetService {
	return &datasetServiceImpl{
		loader:   loader,
		store:    store,
		cacheTTL: cacheTTL,
	}
}

func (s *datasetServiceImpl) Reload(ctx context.Context) (int, error) {
	v, err, shared := s.group.Do("reload", func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), reloadTimeout)
		defer cancel()

		start := time.Now()
		posts, err := s.loader.Load(ctx)
		if err != nil {
			metrics.RecordDatasetReload(s.loader.Name(), 0, start, err)
			return 0, fmt.Errorf("load dataset from %s: %w", s.loader.Name(), err)
		}
		if len(posts) == 0 {
			metrics.RecordDatasetReload(s.loader.Name(), 0, start, ErrDatasetEmpty)
			return 0, fmt.Errorf("load dataset from %s: %w", s.loader.Name(), ErrDatasetEmpty)
		}

		next := s.store.Replace(posts)
		s.evictCache(ctx, next.Version-1)
		metrics.RecordDatasetReload(s.loader.Name(), len(posts), next.LoadedAt, nil)
		log.InfoContext(ctx, "Dataset reloaded",
			"source", s.loader.Name(),
			"posts", len(posts),
			"version", next.Version,
			"latency", time.Since(start),
		)
		return len(posts), nil
	})
	if err != nil {
		return 0, err
	}
	if shared {
		log.DebugContext(ctx, "Dataset reload shared with an in-flight call")
	}
	return v.(int), nil
}

// evictCache 删除上一版本快照的缓存
func (s *datasetServiceImpl) evictCache(ctx context.Context, version uint64) {
	if !redis.Enabled() || version == 0 {
		return
	}
	suffix := strconv.FormatUint(version, 10)
	if err := redis.DeleteKey(ctx, consts.DatasetOverviewKey+suffix, consts.DatasetOptionsKey+suffix); err != nil {
		log.WarnContext(ctx, "evict dataset cache failed", "version", version, "err", err)
	}
}

func (s *datasetServiceImpl) snapshot() (*repository.PostSnapshot, error) {
	snap := s.store.Current()
	if snap.Version == 0 {
		return nil, ErrDatasetNotLoaded
	}
	if len(snap.Posts) == 0 {
		return nil, ErrDatasetEmpty
	}
	return snap, nil
}

func (s *datasetServiceImpl) Overview(ctx context.Context) (*dto.DatasetOverviewDTO, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	key := consts.DatasetOverviewKey + strconv.FormatUint(snap.Version, 10)

	return cached(ctx, key, s.cacheTTL, func() (*dto.DatasetOverviewDTO, error) {
		return buildOverview(ctx, snap.Posts, snap.Version, snap.LoadedAt)
	})
}

// buildOverview 三组统计互不依赖，并行计算
func buildOverview(ctx context.Context, posts []model.Post, version uint64, loadedAt time.Time) (*dto.DatasetOverviewDTO, error) {
	out := &dto.DatasetOverviewDTO{
		TotalPosts: len(posts),
		Version:    version,
		LoadedAt:   loadedAt.Format(time.RFC3339),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for i := range posts {
			out.TotalViews += int64(posts[i].Views)
			out.TotalLikes += int64(posts[i].Likes)
			out.TotalShares += int64(posts[i].Shares)
			out.TotalComments += int64(posts[i].Comments)
		}
		out.AvgEngagementRate = engagementRate(out.TotalLikes+out.TotalShares+out.TotalComments, out.TotalViews)
		return gCtx.Err()
	})
	g.Go(func() error {
		out.Platforms = platformStats(posts)
		out.PlatformCount = len(out.Platforms)
		out.EngagementLevels = engagementLevelCounts(posts)
		return gCtx.Err()
	})
	g.Go(func() error {
		hashtags := countBy(posts, func(p *model.Post) string { return p.Hashtag })
		out.HashtagCount = len(hashtags)
		out.RegionCount = len(countBy(posts, func(p *model.Post) string { return p.Region }))
		sort.SliceStable(hashtags, func(i, j int) bool { return hashtags[i].Count > hashtags[j].Count })
		out.TopHashtags = hashtags[:min(topHashtagLimit, len(hashtags))]
		return gCtx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func platformStats(posts []model.Post) []*dto.PlatformStatDTO {
	var stats []*dto.PlatformStatDTO
	index := make(map[string]*dto.PlatformStatDTO)
	for i := range posts {
		p := &posts[i]
		st, ok := index[p.Platform]
		if !ok {
			st = &dto.PlatformStatDTO{Platform: p.Platform}
			index[p.Platform] = st
			stats = append(stats, st)
		}
		st.Posts++
		st.TotalViews += int64(p.Views)
		st.TotalLikes += int64(p.Likes)
		st.TotalShares += int64(p.Shares)
		st.TotalComments += int64(p.Comments)
	}
	for _, st := range stats {
		st.AvgViews = int(math.Round(float64(st.TotalViews) / float64(st.Posts)))
		st.EngagementRate = engagementRate(st.TotalLikes+st.TotalShares+st.TotalComments, st.TotalViews)
	}
	return stats
}

func engagementLevelCounts(posts []model.Post) []*dto.CountItem {
	counts := map[model.EngagementLevel]int{}
	for i := range posts {
		counts[posts[i].EngagementLevel]++
	}
	return []*dto.CountItem{
		{Name: string(model.EngagementHigh), Count: counts[model.EngagementHigh]},
		{Name: string(model.EngagementMedium), Count: counts[model.EngagementMedium]},
		{Name: string(model.EngagementLow), Count: counts[model.EngagementLow]},
	}
}

// countBy 按首次出现顺序计数
func countBy(posts []model.Post, key func(p *model.Post) string) []*dto.CountItem {
	var items []*dto.CountItem
	index := make(map[string]*dto.CountItem)
	for i := range posts {
		k := key(&posts[i])
		item, ok := index[k]
		if !ok {
			item = &dto.CountItem{Name: k}
			index[k] = item
			items = append(items, item)
		}
		item.Count++
	}
	return items
}

// engagementRate 互动数占浏览量的百分比，两位小数
func engagementRate(interactions, views int64) float64 {
	if views == 0 {
		return 0
	}
	return math.Round(float64(interactions)/float64(views)*100*100) / 100
}

func (s *datasetServiceImpl) Options(ctx context.Context) (*dto.FormOptionsDTO, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	posts := snap.Posts
	key := consts.DatasetOptionsKey + strconv.FormatUint(snap.Version, 10)

	return cached(ctx, key, s.cacheTTL, func() (*dto.FormOptionsDTO, error) {
		return &dto.FormOptionsDTO{
			Platforms:    distinct(posts, func(p *model.Post) string { return p.Platform }),
			Hashtags:     distinct(posts, func(p *model.Post) string { return p.Hashtag }),
			ContentTypes: distinct(posts, func(p *model.Post) string { return p.ContentType }),
			Regions:      distinct(posts, func(p *model.Post) string { return p.Region }),
		}, nil
	})
}

// distinct 以 Any 开头，其余按首次出现顺序，忽略空值
func distinct(posts []model.Post, key func(p *model.Post) string) []string {
	out := []string{consts.FilterAny}
	seen := make(map[string]struct{})
	for i := range posts {
		v := key(&posts[i])
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func (s *datasetServiceImpl) ListPosts(ctx context.Context, query *dto.PostListQuery) (*dto.PostListDTO, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	posts := snap.Posts

	page := max(query.Page, 1)
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = consts.DefaultPageSize
	}
	pageSize = min(pageSize, consts.MaxPageSize)

	var filtered []*model.Post
	for i := range posts {
		if matchesFilter(&posts[i], query) {
			filtered = append(filtered, &posts[i])
		}
	}

	start, end := util.Paginate(len(filtered), page, pageSize)
	list := make([]*dto.TopPostDTO, 0, end-start)
	if err := copier.Copy(&list, filtered[start:end]); err != nil {
		log.ErrorContext(ctx, "copy post list failed", "err", err)
		return nil, UnExpectedError
	}

	return &dto.PostListDTO{
		Total:    len(filtered),
		Page:     page,
		PageSize: pageSize,
		List:     list,
	}, nil
}

func matchesFilter(p *model.Post, q *dto.PostListQuery) bool {
	return filterValue(q.Platform, p.Platform) &&
		filterValue(q.Hashtag, p.Hashtag) &&
		filterValue(q.ContentType, p.ContentType) &&
		filterValue(q.Region, p.Region) &&
		(noFilter(q.EngagementLevel) || strings.EqualFold(q.EngagementLevel, string(p.EngagementLevel)))
}

func filterValue(want, got string) bool {
	return noFilter(want) || want == got
}

func noFilter(v string) bool {
	return v == "" || v == consts.FilterAll || v == consts.FilterAny
}

func (s *datasetServiceImpl) Timeline(ctx context.Context, limit int) ([]*dto.TimelinePointDTO, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	posts := snap.Posts
	if limit <= 0 {
		limit = consts.TimelineDays
	}

	var points []*dto.TimelinePointDTO
	index := make(map[string]*dto.TimelinePointDTO)
	for i := range posts {
		p := &posts[i]
		if p.PostDate == "" {
			continue
		}
		pt, ok := index[p.PostDate]
		if !ok {
			pt = &dto.TimelinePointDTO{Date: p.PostDate}
			index[p.PostDate] = pt
			points = append(points, pt)
		}
		pt.Posts++
		pt.Views += int64(p.Views)
		pt.Likes += int64(p.Likes)
		pt.Shares += int64(p.Shares)
		pt.Comments += int64(p.Comments)
	}

	sort.SliceStable(points, func(i, j int) bool { return dateBefore(points[i].Date, points[j].Date) })
	if len(points) > limit {
		points = points[len(points)-limit:]
	}
	log.DebugContext(ctx, "Timeline built", "dates", len(points))
	return points, nil
}

// dateBefore 可解析的日期按时间比较，排在无法解析的日期之前
func dateBefore(a, b string) bool {
	ta, okA := parseDate(a)
	tb, okB := parseDate(b)
	switch {
	case okA && okB:
		return ta.Before(tb)
	case okA != okB:
		return okA
	default:
		return a < b
	}
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// cached 未启用 Redis 时直接计算；缓存读写失败只记日志
func cached[T any](ctx context.Context, key string, ttl time.Duration, build func() (T, error)) (T, error) {
	if !redis.Enabled() || ttl <= 0 {
		return build()
	}

	if raw, err := redis.GetValue(ctx, key); err != nil {
		log.WarnContext(ctx, "read dataset cache failed", "key", key, "err", err)
	} else if raw != "" {
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			metrics.RecordOverviewCache(true)
			return v, nil
		}
	}
	metrics.RecordOverviewCache(false)

	v, err := build()
	if err != nil {
		return v, err
	}
	if data, err := json.Marshal(v); err == nil {
		if err := redis.SetWithExpiration(ctx, key, string(data), ttl); err != nil {
			log.WarnContext(ctx, "write dataset cache failed", "key", key, "err", err)
		}
	}
	return v, nil
}
