package estimator

import (
	"Trendcast/internal/model"
	"math/rand/v2"
)

const (
	// 约 33% 的粉丝能看到一条帖子
	viewsPerFollower = 3.0

	MinFollowerRatio = 0.3
	MaxFollowerRatio = 3.0

	bandLowFactor  = 0.6
	bandHighFactor = 1.8

	viewsVariance          = 0.15
	likesVariance          = 0.12
	sharesVariance         = 0.18
	commentsVariance       = 0.14
	engagementRateVariance = 0.1
)

// Synthesize 由样本均值按粉丝比例缩放并叠加各指标独立的随机扰动，生成 min/avg/max 区间
func Synthesize(sample []*model.Post, followers int, rng *rand.Rand) Synthesis {
	base := MeanMetrics(sample)
	baselineFollowers := float64(base.Views) / viewsPerFollower
	followerRatio := FollowerRatio(followers, baselineFollowers)

	adjViews := roundInt(float64(base.Views) * followerRatio * jitter(rng, viewsVariance))
	adjLikes := roundInt(float64(base.Likes) * followerRatio * jitter(rng, likesVariance))
	adjShares := roundInt(float64(base.Shares) * followerRatio * jitter(rng, sharesVariance))
	adjComments := roundInt(float64(base.Comments) * followerRatio * jitter(rng, commentsVariance))

	var engagementRate float64
	if adjViews > 0 {
		interactions := float64(adjLikes + adjShares + adjComments)
		engagementRate = round2(interactions / float64(adjViews) * 100 * jitter(rng, engagementRateVariance))
	}

	return Synthesis{
		Baseline:          base,
		BaselineFollowers: baselineFollowers,
		FollowerRatio:     followerRatio,
		Bands: MetricBands{
			Views:    newBand(adjViews),
			Likes:    newBand(adjLikes),
			Shares:   newBand(adjShares),
			Comments: newBand(adjComments),
		},
		EngagementRate: engagementRate,
	}
}

// MeanMetrics 样本各指标的算术均值，空样本返回零值
func MeanMetrics(sample []*model.Post) Baseline {
	if len(sample) == 0 {
		return Baseline{}
	}
	var views, likes, shares, comments int
	for _, p := range sample {
		views += p.Views
		likes += p.Likes
		shares += p.Shares
		comments += p.Comments
	}
	n := float64(len(sample))
	return Baseline{
		Views:    roundInt(float64(views) / n),
		Likes:    roundInt(float64(likes) / n),
		Shares:   roundInt(float64(shares) / n),
		Comments: roundInt(float64(comments) / n),
	}
}

// FollowerRatio 用户粉丝数与样本隐含受众规模之比，限制在 [0.3, 3.0]。
// 隐含受众为 0 时，有粉丝取上限，否则取下限
func FollowerRatio(followers int, baselineFollowers float64) float64 {
	if baselineFollowers <= 0 {
		if followers > 0 {
			return MaxFollowerRatio
		}
		return MinFollowerRatio
	}
	return clamp(float64(followers)/baselineFollowers, MinFollowerRatio, MaxFollowerRatio)
}

// Impact 粉丝比例 > 1.2 为正向，< 0.8 为负向
func Impact(followerRatio float64) FollowerImpact {
	switch {
	case followerRatio > 1.2:
		return ImpactPositive
	case followerRatio < 0.8:
		return ImpactNegative
	default:
		return ImpactNeutral
	}
}

func newBand(adjusted int) MetricBand {
	return MetricBand{
		Min: roundInt(float64(adjusted) * bandLowFactor),
		Avg: adjusted,
		Max: roundInt(float64(adjusted) * bandHighFactor),
	}
}
