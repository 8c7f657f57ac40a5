package estimator

import "Trendcast/internal/model"

const (
	exactStageMin   = 10
	partialStageMin = 5
	partialFieldMin = 2
)

// IsWildcard 判断类别字段是否为通配
func IsWildcard(v string) bool {
	return v == Any
}

// Match 三段式逐级放宽的相似帖子筛选：精确 -> 至少两项命中 -> 仅平台。
// 结果可能为空，由调用方决定如何处理
func Match(q UserQuery, posts []model.Post) MatchResult {
	exact := filterPosts(posts, func(p *model.Post) bool {
		matched, concrete := fieldMatches(q, p)
		return matched == concrete
	})
	if len(exact) >= exactStageMin {
		return MatchResult{Stage: StageExact, Posts: exact}
	}

	partial := filterPosts(posts, func(p *model.Post) bool {
		matched, _ := fieldMatches(q, p)
		return matched >= partialFieldMin
	})
	if len(partial) >= partialStageMin {
		return MatchResult{Stage: StagePartial, Posts: partial}
	}

	return MatchResult{Stage: StagePlatform, Posts: FilterByPlatform(posts, q.Platform)}
}

// FilterByPlatform 按平台过滤，通配时返回全部
func FilterByPlatform(posts []model.Post, platform string) []*model.Post {
	return filterPosts(posts, func(p *model.Post) bool {
		return IsWildcard(platform) || p.Platform == platform
	})
}

// fieldMatches 返回命中的具体字段数与查询中的具体字段数，通配字段不计入
func fieldMatches(q UserQuery, p *model.Post) (matched, concrete int) {
	pairs := [4][2]string{
		{q.Platform, p.Platform},
		{q.Hashtag, p.Hashtag},
		{q.ContentType, p.ContentType},
		{q.Region, p.Region},
	}
	for _, pair := range pairs {
		if IsWildcard(pair[0]) {
			continue
		}
		concrete++
		if pair[0] == pair[1] {
			matched++
		}
	}
	return matched, concrete
}

func filterPosts(posts []model.Post, keep func(p *model.Post) bool) []*model.Post {
	out := make([]*model.Post, 0)
	for i := range posts {
		if keep(&posts[i]) {
			out = append(out, &posts[i])
		}
	}
	return out
}
