package dataset

import (
	"Trendcast/internal/model"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrMissingHeader = errors.New("dataset has no header row")

const (
	defaultPlatform    = "Unknown"
	defaultRegion      = "Unknown"
	defaultContentType = "Post"
)

// 每个字段可接受的列名，按优先级排列
var (
	postIDColumns      = []string{"Post_ID", "post_id"}
	postDateColumns    = []string{"Post_Date", "post_date", "date"}
	platformColumns    = []string{"Platform", "platform"}
	hashtagColumns     = []string{"Hashtag", "hashtag", "tag"}
	contentTypeColumns = []string{"Content_Type", "content_type", "type"}
	regionColumns      = []string{"Region", "region", "location"}
	viewsColumns       = []string{"Views", "views"}
	likesColumns       = []string{"Likes", "likes"}
	sharesColumns      = []string{"Shares", "shares"}
	commentsColumns    = []string{"Comments", "comments"}
	engagementColumns  = []string{"Engagement_Level", "engagement_level", "engagement"}
)

// Row 一行原始数据，列名到单元格
type Row map[string]string

// first 按顺序取第一个非空的列值
func (r Row) first(columns []string) string {
	for _, c := range columns {
		if v := strings.TrimSpace(r[c]); v != "" {
			return v
		}
	}
	return ""
}

// Parse 读取带表头的 CSV，空行跳过，每行规范化为 Post
func Parse(r io.Reader) ([]model.Post, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	posts := make([]model.Post, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, fmt.Errorf("failed to read line %d: %w", pe.StartLine, err)
			}
			return nil, fmt.Errorf("failed to read line after %d posts: %w", len(posts), err)
		}
		if blank(record) {
			continue
		}

		row := make(Row, len(columns))
		for i, c := range columns {
			if i < len(record) {
				row[c] = record[i]
			}
		}
		posts = append(posts, NormalizeRow(row, len(posts)))
	}
	return posts, nil
}

// NormalizeRow 按列别名映射字段并补齐默认值，index 从 0 开始
func NormalizeRow(row Row, index int) model.Post {
	return Normalize(model.Post{
		PostID:          row.first(postIDColumns),
		PostDate:        row.first(postDateColumns),
		Platform:        row.first(platformColumns),
		Hashtag:         row.first(hashtagColumns),
		ContentType:     row.first(contentTypeColumns),
		Region:          row.first(regionColumns),
		Views:           LeadingInt(row.first(viewsColumns)),
		Likes:           LeadingInt(row.first(likesColumns)),
		Shares:          LeadingInt(row.first(sharesColumns)),
		Comments:        LeadingInt(row.first(commentsColumns)),
		EngagementLevel: model.EngagementLevel(row.first(engagementColumns)),
	}, index)
}

// Normalize 补齐缺省字段，数据库来源的记录也走这里
func Normalize(p model.Post, index int) model.Post {
	p.PostID = strings.TrimSpace(p.PostID)
	if p.PostID == "" {
		p.PostID = strconv.Itoa(index + 1)
	}
	p.Platform = orDefault(p.Platform, defaultPlatform)
	p.Region = orDefault(p.Region, defaultRegion)
	p.ContentType = orDefault(p.ContentType, defaultContentType)
	p.Hashtag = strings.TrimSpace(p.Hashtag)
	p.PostDate = strings.TrimSpace(p.PostDate)
	p.Views = max(0, p.Views)
	p.Likes = max(0, p.Likes)
	p.Shares = max(0, p.Shares)
	p.Comments = max(0, p.Comments)
	p.EngagementLevel = ParseEngagementLevel(string(p.EngagementLevel))
	return p
}

// ParseEngagementLevel 大小写不敏感，无法识别时为 Medium
func ParseEngagementLevel(s string) model.EngagementLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return model.EngagementHigh
	case "low":
		return model.EngagementLow
	default:
		return model.EngagementMedium
	}
}

// LeadingInt 解析开头的整数部分，"1200.7" 得 1200，"12k" 得 12，无数字或负数得 0
func LeadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return max(0, n)
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
