package dto

import "Trendcast/internal/pkg/estimator"

// PredictRequest 预测请求。类别字段为空时按 Any 处理，followers 接受数字或字符串
type PredictRequest struct {
	Platform    string `json:"platform" validate:"max=64"`
	Hashtag     string `json:"hashtag" validate:"max=128"`
	ContentType string `json:"content_type" validate:"max=64"`
	Region      string `json:"region" validate:"max=64"`
	Followers   any    `json:"followers"`
	ProfileLink string `json:"profile_link" validate:"omitempty,max=512"`
	Seed        *int64 `json:"seed"`
}

// TopPostDTO 样本中表现最好的帖子
type TopPostDTO struct {
	PostID          string `json:"post_id"`
	PostDate        string `json:"post_date"`
	Platform        string `json:"platform"`
	Hashtag         string `json:"hashtag"`
	ContentType     string `json:"content_type"`
	Region          string `json:"region"`
	Views           int    `json:"views"`
	Likes           int    `json:"likes"`
	Shares          int    `json:"shares"`
	Comments        int    `json:"comments"`
	EngagementLevel string `json:"engagement_level"`
}

// PredictionDTO 预测结果。Success 为 false 时只有 Message、Query 与请求标识
type PredictionDTO struct {
	Success               bool                            `json:"success"`
	Message               string                          `json:"message,omitempty"`
	Query                 estimator.UserQuery             `json:"query"`
	RequestID             string                          `json:"request_id"`
	Seed                  int64                           `json:"seed"`
	MatchedPostCount      int                             `json:"matched_post_count"`
	SampleSize            int                             `json:"sample_size"`
	MatchStage            string                          `json:"match_stage,omitempty"`
	FollowerRatio         float64                         `json:"follower_ratio,omitempty"`
	FollowerImpact        string                          `json:"follower_impact,omitempty"`
	Baseline              *estimator.Baseline             `json:"baseline,omitempty"`
	Predictions           *estimator.MetricBands          `json:"predictions,omitempty"`
	PredictedEngagement   string                          `json:"predicted_engagement,omitempty"`
	EngagementCounts      *estimator.EngagementCounts     `json:"engagement_counts,omitempty"`
	EngagementProbability *estimator.Probabilities        `json:"engagement_probability,omitempty"`
	EngagementRate        float64                         `json:"engagement_rate,omitempty"`
	TopPosts              []*TopPostDTO                   `json:"top_posts,omitempty"`
	Recommendations       []estimator.RecommendationGroup `json:"recommendations,omitempty"`
	ProfileAnalysis       *estimator.ProfileAnalysis      `json:"profile_analysis,omitempty"`
}
