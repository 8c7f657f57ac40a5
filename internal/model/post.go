package model

// EngagementLevel 历史帖子的互动等级
type EngagementLevel string

const (
	EngagementHigh   EngagementLevel = "High"
	EngagementMedium EngagementLevel = "Medium"
	EngagementLow    EngagementLevel = "Low"
)

// Post 历史帖子记录，加载后只读
type Post struct {
	ID              uint64          `gorm:"primaryKey" json:"-"`
	PostID          string          `gorm:"type:varchar(64);not null;uniqueIndex:uk_post_id;column:post_id" json:"post_id"`
	PostDate        string          `gorm:"type:varchar(32);column:post_date" json:"post_date"`
	Platform        string          `gorm:"type:varchar(64);not null;index:idx_platform;column:platform" json:"platform"`
	Hashtag         string          `gorm:"type:varchar(128);column:hashtag" json:"hashtag"`
	ContentType     string          `gorm:"type:varchar(64);column:content_type" json:"content_type"`
	Region          string          `gorm:"type:varchar(64);column:region" json:"region"`
	Views           int             `gorm:"not null;default:0;column:views" json:"views"`
	Likes           int             `gorm:"not null;default:0;column:likes" json:"likes"`
	Shares          int             `gorm:"not null;default:0;column:shares" json:"shares"`
	Comments        int             `gorm:"not null;default:0;column:comments" json:"comments"`
	EngagementLevel EngagementLevel `gorm:"type:varchar(16);not null;default:'Medium';column:engagement_level" json:"engagement_level"`
}

func (Post) TableName() string {
	return "trend_posts"
}
