package estimator

import (
	"Trendcast/internal/model"
	"math/rand/v2"
)

const (
	minSampleSize = 50

	// 抽样比例 7/10，整数运算避免 0.7*n 的浮点误差
	sampleNum   = 7
	sampleDenom = 10
)

// SampleSize 取匹配集的 70%，但不少于 50，也不超过匹配集大小
func SampleSize(total int) int {
	return min(total, max(minSampleSize, total*sampleNum/sampleDenom))
}

// Sample 洗牌后取前 SampleSize 个，不修改入参
func Sample(matched []*model.Post, rng *rand.Rand) []*model.Post {
	shuffled := make([]*model.Post, len(matched))
	copy(shuffled, matched)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:SampleSize(len(shuffled))]
}
