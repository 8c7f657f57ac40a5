package estimator

import (
	"Trendcast/internal/model"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
)

const (
	topPostLimit    = 5
	topPostVariance = 0.05
)

// NoMatchError 匹配级联三个阶段都没有找到帖子
type NoMatchError struct {
	Query UserQuery
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no historical data found for platform=%s hashtag=%s content_type=%s region=%s, try adjusting your filters",
		e.Query.Platform, e.Query.Hashtag, e.Query.ContentType, e.Query.Region)
}

// Predict 以 seed 创建唯一的随机源，依次执行匹配、抽样、指标合成、互动分类、推荐与账号模拟。
// posts 只读；同一 posts 与 seed 得到完全相同的结果
func Predict(q UserQuery, posts []model.Post, seed int64) (*Prediction, error) {
	matched := Match(q, posts)
	if len(matched.Posts) == 0 {
		return nil, &NoMatchError{Query: q}
	}

	rng := NewRand(seed)
	sample := Sample(matched.Posts, rng)
	syn := Synthesize(sample, q.Followers, rng)
	cls := Classify(sample, syn.FollowerRatio, rng)
	top := rankTopPosts(sample, rng)

	pred := &Prediction{
		Query:                 q,
		Seed:                  seed,
		MatchStage:            matched.Stage,
		MatchedPostCount:      len(matched.Posts),
		SampleSize:            len(sample),
		FollowerRatio:         round2(syn.FollowerRatio),
		FollowerImpact:        Impact(syn.FollowerRatio),
		Baseline:              syn.Baseline,
		Bands:                 syn.Bands,
		PredictedEngagement:   cls.Label,
		EngagementCounts:      cls.Counts,
		EngagementProbability: cls.Probabilities,
		EngagementRate:        syn.EngagementRate,
		TopPosts:              top,
		Recommendations:       Recommend(q, q.Followers, sample, cls.Label),
	}

	if q.ProfileLink != "" {
		profile, err := Simulate(q.ProfileLink, q.Platform, posts, q.Followers, rng)
		switch {
		case errors.Is(err, ErrNoPlatformData):
			pred.Profile = UnavailableProfile(err)
		case err != nil:
			return nil, err
		default:
			pred.Profile = profile
		}
	}

	return pred, nil
}

// rankTopPosts 按 (views+likes+shares) 加 ±5% 扰动排序取前 5，每条帖子只抽一次扰动
func rankTopPosts(sample []*model.Post, rng *rand.Rand) []model.Post {
	type scored struct {
		post  *model.Post
		score float64
	}
	ranked := make([]scored, 0, len(sample))
	for _, p := range sample {
		ranked = append(ranked, scored{
			post:  p,
			score: float64(p.Views+p.Likes+p.Shares) * jitter(rng, topPostVariance),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	out := make([]model.Post, 0, topPostLimit)
	for _, r := range ranked[:min(topPostLimit, len(ranked))] {
		out = append(out, *r.post)
	}
	return out
}
