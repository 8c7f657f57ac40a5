package estimator

import (
	"Trendcast/internal/model"
	"fmt"
)

func newPost(platform, hashtag, contentType, region string, views int, level model.EngagementLevel) model.Post {
	return model.Post{
		Platform:        platform,
		Hashtag:         hashtag,
		ContentType:     contentType,
		Region:          region,
		Views:           views,
		Likes:           views / 10,
		Shares:          views / 50,
		Comments:        views / 100,
		EngagementLevel: level,
	}
}

func repeatPost(n int, p model.Post) []model.Post {
	out := make([]model.Post, 0, n)
	for i := range n {
		cp := p
		cp.PostID = fmt.Sprintf("P%d", i+1)
		out = append(out, cp)
	}
	return out
}

func pointers(posts []model.Post) []*model.Post {
	out := make([]*model.Post, 0, len(posts))
	for i := range posts {
		out = append(out, &posts[i])
	}
	return out
}

func query(platform, hashtag, contentType, region string, followers int) UserQuery {
	return UserQuery{
		Platform:    platform,
		Hashtag:     hashtag,
		ContentType: contentType,
		Region:      region,
		Followers:   followers,
	}
}

// mixedDataset 三个平台，多种话题与内容类型
func mixedDataset() []model.Post {
	platforms := []string{"TikTok", "Instagram", "YouTube"}
	hashtags := []string{"#Dance", "#Tech", "#Food", "#Travel"}
	types := []string{"Video", "Reel", "Shorts"}
	regions := []string{"USA", "UK", "India"}
	levels := []model.EngagementLevel{model.EngagementHigh, model.EngagementMedium, model.EngagementLow}

	posts := make([]model.Post, 0, 180)
	for i := range 180 {
		p := newPost(
			platforms[i%len(platforms)],
			hashtags[i%len(hashtags)],
			types[i%len(types)],
			regions[(i/3)%len(regions)],
			1000+i*137,
			levels[(i/7)%len(levels)],
		)
		p.PostID = fmt.Sprintf("P%d", i+1)
		posts = append(posts, p)
	}
	return posts
}
