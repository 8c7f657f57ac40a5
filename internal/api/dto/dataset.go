package dto

// CountItem 名称与数量
type CountItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PlatformStatDTO 单个平台的汇总
type PlatformStatDTO struct {
	Platform       string  `json:"platform"`
	Posts          int     `json:"posts"`
	TotalViews     int64   `json:"total_views"`
	TotalLikes     int64   `json:"total_likes"`
	TotalShares    int64   `json:"total_shares"`
	TotalComments  int64   `json:"total_comments"`
	AvgViews       int     `json:"avg_views"`
	EngagementRate float64 `json:"engagement_rate"`
}

// DatasetOverviewDTO 数据集概览
type DatasetOverviewDTO struct {
	TotalPosts        int                `json:"total_posts"`
	TotalViews        int64              `json:"total_views"`
	TotalLikes        int64              `json:"total_likes"`
	TotalShares       int64              `json:"total_shares"`
	TotalComments     int64              `json:"total_comments"`
	AvgEngagementRate float64            `json:"avg_engagement_rate"`
	PlatformCount     int                `json:"platform_count"`
	HashtagCount      int                `json:"hashtag_count"`
	RegionCount       int                `json:"region_count"`
	Platforms         []*PlatformStatDTO `json:"platforms"`
	EngagementLevels  []*CountItem       `json:"engagement_levels"`
	TopHashtags       []*CountItem       `json:"top_hashtags"`
	Version           uint64             `json:"version"`
	LoadedAt          string             `json:"loaded_at"`
}

// FormOptionsDTO 预测表单下拉选项，第一项为 Any
type FormOptionsDTO struct {
	Platforms    []string `json:"platforms"`
	Hashtags     []string `json:"hashtags"`
	ContentTypes []string `json:"content_types"`
	Regions      []string `json:"regions"`
}

// PostListQuery 帖子列表筛选，空值、all、Any 均表示不过滤
type PostListQuery struct {
	Platform        string `form:"platform" validate:"max=64"`
	Hashtag         string `form:"hashtag" validate:"max=128"`
	ContentType     string `form:"content_type" validate:"max=64"`
	Region          string `form:"region" validate:"max=64"`
	EngagementLevel string `form:"engagement_level" validate:"omitempty,oneof=High Medium Low high medium low all Any"`
	Page            int    `form:"page" validate:"omitempty,min=1"`
	PageSize        int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// PostListDTO 分页结果
type PostListDTO struct {
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	List     []*TopPostDTO `json:"list"`
}

// TimelinePointDTO 按发帖日期聚合
type TimelinePointDTO struct {
	Date     string `json:"date"`
	Posts    int    `json:"posts"`
	Views    int64  `json:"views"`
	Likes    int64  `json:"likes"`
	Shares   int64  `json:"shares"`
	Comments int64  `json:"comments"`
}
