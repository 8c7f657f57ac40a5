package estimator

import (
	"math"
	"math/rand/v2"
)

// NewRand 按请求种子创建独立随机源，同一种子得到相同序列
func NewRand(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// jitter 返回 1 + U(-variance, variance)
func jitter(rng *rand.Rand, variance float64) float64 {
	return 1 + (rng.Float64()-0.5)*variance*2
}

// between 返回 [lo, hi) 内的均匀随机数
func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

// ratio 计算 a/b，b 为 0 时返回 0
func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
