package estimator

import (
	"Trendcast/internal/model"
	"math"
	"math/rand/v2"
)

const (
	highBoost         = 5.0
	highNoiseWidth    = 8.0
	mediumNoiseWidth  = 6.0
	probabilityTenths = 1000
)

// Classify 统计样本互动等级分布，得出预测标签与归一化概率
func Classify(sample []*model.Post, followerRatio float64, rng *rand.Rand) Classification {
	counts := CountEngagement(sample)

	var baseHigh, baseMedium float64
	if n := float64(len(sample)); n > 0 {
		baseHigh = float64(counts.High) / n * 100
		baseMedium = float64(counts.Medium) / n * 100
	}

	high := clamp(baseHigh+highAdjustment(followerRatio)+(rng.Float64()-0.5)*highNoiseWidth, 0, 100)
	medium := math.Max(0, baseMedium+(rng.Float64()-0.5)*mediumNoiseWidth)
	low := math.Max(0, 100-high-medium)

	return Classification{
		Label:         pickLabel(counts, followerRatio),
		Counts:        counts,
		Probabilities: normalize(high, medium, low),
	}
}

// CountEngagement 按互动等级计数
func CountEngagement(posts []*model.Post) EngagementCounts {
	var c EngagementCounts
	for _, p := range posts {
		switch p.EngagementLevel {
		case model.EngagementHigh:
			c.High++
		case model.EngagementMedium:
			c.Medium++
		case model.EngagementLow:
			c.Low++
		}
	}
	return c
}

func highAdjustment(followerRatio float64) float64 {
	switch {
	case followerRatio > 1.2:
		return highBoost
	case followerRatio < 0.8:
		return -highBoost
	default:
		return 0
	}
}

// pickLabel 标签规则独立于概率：粉丝多偏向 High，粉丝少偏向 Low，否则看严格多数
func pickLabel(c EngagementCounts, followerRatio float64) model.EngagementLevel {
	switch {
	case followerRatio > 1.5:
		if c.High >= c.Medium {
			return model.EngagementHigh
		}
		return model.EngagementMedium
	case followerRatio < 0.7:
		if c.Low > c.Medium {
			return model.EngagementLow
		}
		return model.EngagementMedium
	case c.High > c.Medium && c.High > c.Low:
		return model.EngagementHigh
	case c.Low > c.Medium && c.Low > c.High:
		return model.EngagementLow
	default:
		return model.EngagementMedium
	}
}

// normalize 按比例归一化到 100，以 0.1 为单位做最大余数分配，保证三者之和恰为 100.0
func normalize(high, medium, low float64) Probabilities {
	total := high + medium + low
	if total <= 0 {
		return Probabilities{Medium: 100}
	}

	raw := [3]float64{
		high / total * probabilityTenths,
		medium / total * probabilityTenths,
		low / total * probabilityTenths,
	}
	var tenths [3]int
	assigned := 0
	for i, v := range raw {
		tenths[i] = int(math.Floor(v))
		assigned += tenths[i]
	}
	for rest := probabilityTenths - assigned; rest > 0; rest-- {
		best := 0
		for i := 1; i < len(raw); i++ {
			if raw[i]-float64(tenths[i]) > raw[best]-float64(tenths[best]) {
				best = i
			}
		}
		tenths[best]++
	}

	return Probabilities{
		High:   float64(tenths[0]) / 10,
		Medium: float64(tenths[1]) / 10,
		Low:    float64(tenths[2]) / 10,
	}
}
