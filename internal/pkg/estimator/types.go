package estimator

import "Trendcast/internal/model"

// Any 类别字段的通配值
const Any = "Any"

// UserQuery 用户计划发布的帖子属性
type UserQuery struct {
	Platform    string `json:"platform"`
	Hashtag     string `json:"hashtag"`
	ContentType string `json:"content_type"`
	Region      string `json:"region"`
	Followers   int    `json:"followers"`
	ProfileLink string `json:"profile_link,omitempty"`
}

// MatchStage 匹配级联最终停留的阶段
type MatchStage string

const (
	StageExact    MatchStage = "exact"
	StagePartial  MatchStage = "partial"
	StagePlatform MatchStage = "platform"
)

// MatchResult 匹配结果，Posts 指向只读快照中的记录
type MatchResult struct {
	Stage MatchStage
	Posts []*model.Post
}

// FollowerImpact 粉丝规模对预测的影响方向
type FollowerImpact string

const (
	ImpactPositive FollowerImpact = "positive"
	ImpactNeutral  FollowerImpact = "neutral"
	ImpactNegative FollowerImpact = "negative"
)

// MetricBand 单项指标的区间
type MetricBand struct {
	Min int `json:"min"`
	Avg int `json:"avg"`
	Max int `json:"max"`
}

type MetricBands struct {
	Views    MetricBand `json:"views"`
	Likes    MetricBand `json:"likes"`
	Shares   MetricBand `json:"shares"`
	Comments MetricBand `json:"comments"`
}

// Baseline 样本各项指标均值（四舍五入）
type Baseline struct {
	Views    int `json:"views"`
	Likes    int `json:"likes"`
	Shares   int `json:"shares"`
	Comments int `json:"comments"`
}

// Synthesis 指标合成结果
type Synthesis struct {
	Baseline          Baseline
	BaselineFollowers float64
	FollowerRatio     float64
	Bands             MetricBands
	EngagementRate    float64
}

type EngagementCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Probabilities 三档互动概率（百分比，一位小数，合计 100）
type Probabilities struct {
	High   float64 `json:"high"`
	Medium float64 `json:"medium"`
	Low    float64 `json:"low"`
}

// Classification 互动等级分类结果。Label 与 Probabilities 由不同规则得出，不保证一致
type Classification struct {
	Label         model.EngagementLevel
	Counts        EngagementCounts
	Probabilities Probabilities
}

// RecommendationGroup 一组建议
type RecommendationGroup struct {
	Category string   `json:"category"`
	Icon     string   `json:"icon"`
	Tips     []string `json:"tips"`
}

// Prediction 一次预测的完整输出
type Prediction struct {
	Query                 UserQuery
	Seed                  int64
	MatchStage            MatchStage
	MatchedPostCount      int
	SampleSize            int
	FollowerRatio         float64
	FollowerImpact        FollowerImpact
	Baseline              Baseline
	Bands                 MetricBands
	PredictedEngagement   model.EngagementLevel
	EngagementCounts      EngagementCounts
	EngagementProbability Probabilities
	EngagementRate        float64
	TopPosts              []model.Post
	Recommendations       []RecommendationGroup
	Profile               *ProfileAnalysis
}
