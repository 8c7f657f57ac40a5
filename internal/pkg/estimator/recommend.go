package estimator

import (
	"Trendcast/internal/model"
	"fmt"
	"sort"
	"strings"
)

const trendingContentWindow = 10

var (
	followerGrowthTips = RecommendationGroup{
		Category: "Follower Growth",
		Icon:     "👥",
		Tips: []string{
			"Post consistently (3-5 times per week) to build momentum",
			"Use trending hashtags relevant to your niche",
			"Engage with your audience by responding to comments within 1 hour",
			"Collaborate with creators in your niche (cross-promotion)",
			"Create shareable content that provides value or entertainment",
		},
	}
	scaleAudienceTips = RecommendationGroup{
		Category: "Scale Your Audience",
		Icon:     "📈",
		Tips: []string{
			"Analyze your top-performing posts and replicate their style",
			"Create a content series to keep audience coming back",
			"Post during peak hours (check platform analytics)",
			"Use platform-specific features (Reels, Shorts, Stories)",
			"Build an email list or Discord community for loyal fans",
		},
	}
	monetizeTips = RecommendationGroup{
		Category: "Maintain & Monetize",
		Icon:     "💎",
		Tips: []string{
			"Focus on engagement rate over follower count",
			"Diversify content types to reach different audience segments",
			"Consider brand partnerships and sponsorships",
			"Create exclusive content for super fans",
			"Experiment with live streams and interactive content",
		},
	}
	contentQualityTips = RecommendationGroup{
		Category: "Content Quality",
		Icon:     "✨",
		Tips: []string{
			"Invest in good lighting and audio quality",
			"Edit tightly - cut out dead air and unnecessary parts",
			"Add subtitles/captions for accessibility",
			"Create value: educate, entertain, or inspire",
			"Be authentic - show your personality",
		},
	}
	boostEngagementTips = RecommendationGroup{
		Category: "Boost Engagement",
		Icon:     "🔥",
		Tips: []string{
			"Add clear calls-to-action (like, comment, share)",
			"Ask questions to encourage comments",
			"Reply to every comment in the first hour",
			"Create content that sparks conversations",
			"Use storytelling to create emotional connections",
		},
	}
)

var platformTips = map[string]RecommendationGroup{
	"TikTok": {
		Category: "TikTok Strategy",
		Icon:     "🎵",
		Tips: []string{
			"Hook viewers in the first 3 seconds",
			"Use trending sounds and audio",
			"Post when your audience is most active (check analytics)",
			"Create duets and stitch popular videos",
			"Add captions for accessibility and engagement",
		},
	},
	"Instagram": {
		Category: "Instagram Strategy",
		Icon:     "📸",
		Tips: []string{
			"Post Reels for maximum reach (prioritized by algorithm)",
			"Use 20-30 relevant hashtags per post",
			"Post Stories daily to stay top-of-mind",
			"Create carousel posts for higher engagement",
			"Use Instagram Shopping if applicable",
		},
	},
	"YouTube": {
		Category: "YouTube Strategy",
		Icon:     "🎬",
		Tips: []string{
			"Create eye-catching thumbnails with clear text",
			"Optimize titles with keywords (but keep them natural)",
			"Post YouTube Shorts to boost channel discovery",
			"Add timestamps and chapters to longer videos",
			"Create playlists to increase watch time",
		},
	},
	"Twitter": {
		Category: "Twitter Strategy",
		Icon:     "🐦",
		Tips: []string{
			"Tweet 3-5 times daily for consistency",
			"Use threads for storytelling and in-depth content",
			"Reply to larger accounts to increase visibility",
			"Share opinions and hot takes (respectfully)",
			"Use polls and questions to boost engagement",
		},
	},
}

// Recommend 规则表生成成长建议，顺序固定：粉丝档位、平台、内容质量、互动提升（仅 Low）、当前趋势
func Recommend(q UserQuery, followers int, sample []*model.Post, label model.EngagementLevel) []RecommendationGroup {
	groups := make([]RecommendationGroup, 0, 5)

	switch {
	case followers < 10000:
		groups = append(groups, cloneGroup(followerGrowthTips))
	case followers < 50000:
		groups = append(groups, cloneGroup(scaleAudienceTips))
	default:
		groups = append(groups, cloneGroup(monetizeTips))
	}

	if tips, ok := platformTips[q.Platform]; ok && !IsWildcard(q.Platform) {
		groups = append(groups, cloneGroup(tips))
	}

	groups = append(groups, cloneGroup(contentQualityTips))

	if label == model.EngagementLow {
		groups = append(groups, cloneGroup(boostEngagementTips))
	}

	return append(groups, trendingNow(q, sample, label))
}

func trendingNow(q UserQuery, sample []*model.Post, label model.EngagementLevel) RecommendationGroup {
	topHashtag := "N/A"
	if tags := hashtagsByTotalViews(sample); len(tags) > 0 {
		topHashtag = tags[0]
	}

	return RecommendationGroup{
		Category: "Trending Now",
		Icon:     "🔥",
		Tips: []string{
			fmt.Sprintf("Top performing hashtag: %s", topHashtag),
			fmt.Sprintf("%s content is performing %s in %s", q.ContentType, strings.ToLower(string(label)), q.Region),
			fmt.Sprintf("Best content types: %s", strings.Join(leadingContentTypes(sample, trendingContentWindow), ", ")),
			"Consider posting during peak engagement times",
			"Analyze competitor content for inspiration",
		},
	}
}

// hashtagsByTotalViews 按总浏览量降序排列话题，同值保留首次出现顺序
func hashtagsByTotalViews(sample []*model.Post) []string {
	aggs := aggregateBy(sample, func(p *model.Post) string { return p.Hashtag })
	sort.SliceStable(aggs, func(i, j int) bool { return aggs[i].totalViews > aggs[j].totalViews })
	out := make([]string, 0, len(aggs))
	for _, a := range aggs {
		out = append(out, a.key)
	}
	return out
}

// leadingContentTypes 前 n 条样本中出现过的内容类型，去重并保序
func leadingContentTypes(sample []*model.Post, n int) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range sample[:min(n, len(sample))] {
		if _, ok := seen[p.ContentType]; ok {
			continue
		}
		seen[p.ContentType] = struct{}{}
		out = append(out, p.ContentType)
	}
	return out
}

func cloneGroup(g RecommendationGroup) RecommendationGroup {
	g.Tips = append([]string(nil), g.Tips...)
	return g
}
