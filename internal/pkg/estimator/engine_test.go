package estimator

import (
	"Trendcast/internal/model"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredict_HighReachDanceScenario(t *testing.T) {
	posts := repeatPost(60, newPost("TikTok", "#Dance", "Video", "USA", 1_000_000, model.EngagementHigh))
	q := query("TikTok", "#Dance", Any, Any, 1_000_000)

	pred, err := Predict(q, posts, 12345)
	require.NoError(t, err)

	assert.Equal(t, StageExact, pred.MatchStage)
	assert.Equal(t, 60, pred.MatchedPostCount)
	assert.Equal(t, 50, pred.SampleSize)
	assert.Equal(t, MaxFollowerRatio, pred.FollowerRatio)
	assert.Equal(t, ImpactPositive, pred.FollowerImpact)
	assert.Equal(t, model.EngagementHigh, pred.PredictedEngagement)
	assert.Equal(t, EngagementCounts{High: 50}, pred.EngagementCounts)
	assert.Len(t, pred.TopPosts, 5)
	assert.Nil(t, pred.Profile)
	assert.Equal(t, "Maintain & Monetize", pred.Recommendations[0].Category)
}

func TestPredict_NoMatch(t *testing.T) {
	q := query("X", "#Dance", Any, Any, 1000)

	pred, err := Predict(q, mixedDataset(), 1)

	assert.Nil(t, pred)
	var noMatch *NoMatchError
	require.True(t, errors.As(err, &noMatch))
	assert.Equal(t, q, noMatch.Query)
	assert.Contains(t, err.Error(), "platform=X")
}

func TestPredict_SameSeedSameResult(t *testing.T) {
	posts := mixedDataset()
	q := query("Instagram", "#Tech", "Reel", "UK", 30000)
	q.ProfileLink = "https://instagram.com/techie"

	first, err := Predict(q, posts, 777)
	require.NoError(t, err)
	second, err := Predict(q, posts, 777)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPredict_DoesNotMutatePosts(t *testing.T) {
	posts := mixedDataset()
	before := append([]model.Post(nil), posts...)

	_, err := Predict(query("TikTok", Any, Any, Any, 5000), posts, 3)
	require.NoError(t, err)

	assert.Equal(t, before, posts)
}

func TestPredict_ProfileAnalysis(t *testing.T) {
	q := query("YouTube", "#Food", Any, Any, 8000)
	q.ProfileLink = "https://youtube.com/@chef/"

	pred, err := Predict(q, mixedDataset(), 10)
	require.NoError(t, err)

	require.NotNil(t, pred.Profile)
	assert.True(t, pred.Profile.HasAnalysis)
	assert.Equal(t, "chef", pred.Profile.Username)
	assert.Equal(t, 8000, pred.Profile.UserStats.Followers)
}

func TestPredict_ProfileDegradesWithoutPlatformData(t *testing.T) {
	posts := repeatPost(8, newPost("TikTok", "#Dance", "Video", "USA", 1000, model.EngagementMedium))
	q := query("Snapchat", "#Dance", "Video", Any, 1000)
	q.ProfileLink = "https://snapchat.com/add/dancer"

	pred, err := Predict(q, posts, 4)
	require.NoError(t, err)

	assert.Equal(t, StagePartial, pred.MatchStage)
	require.NotNil(t, pred.Profile)
	assert.False(t, pred.Profile.HasAnalysis)
	assert.Equal(t, ErrNoPlatformData.Error(), pred.Profile.Message)
}

func TestRankTopPosts(t *testing.T) {
	var posts []model.Post
	for i := range 20 {
		posts = append(posts, model.Post{PostID: string(rune('a' + i)), Views: (i + 1) * 1000})
	}

	top := rankTopPosts(pointers(posts), NewRand(1))

	require.Len(t, top, 5)
	// ±5% 扰动最多让第 6 名挤进前 5，第 7 名不可能
	for _, p := range top {
		assert.GreaterOrEqual(t, p.Views, 15000)
	}
	assert.Len(t, rankTopPosts(pointers(posts[:3]), NewRand(1)), 3)
}
