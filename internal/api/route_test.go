package api

import (
	"Trendcast/internal/api/handler"
	"Trendcast/internal/model"
	"Trendcast/internal/repository"
	"Trendcast/internal/service"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceLoader []model.Post

func (l sliceLoader) Load(context.Context) ([]model.Post, error) {
	return l, nil
}

func (l sliceLoader) Name() string {
	return "slice"
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func testPosts() []model.Post {
	posts := make([]model.Post, 0, 60)
	for i := 0; i < 60; i++ {
		posts = append(posts, model.Post{
			PostID:          fmt.Sprintf("P%d", i+1),
			PostDate:        fmt.Sprintf("2024-01-%02d", i%28+1),
			Platform:        "TikTok",
			Hashtag:         "#Dance",
			ContentType:     "Video",
			Region:          "USA",
			Views:           1_000_000,
			Likes:           100_000,
			Shares:          10_000,
			Comments:        5_000,
			EngagementLevel: model.EngagementHigh,
		})
	}
	return posts
}

func newTestRouter(t *testing.T, loaded bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := repository.NewPostStore()
	datasetSvc := service.NewDatasetService(sliceLoader(testPosts()), store, 0)
	if loaded {
		_, err := datasetSvc.Reload(context.Background())
		require.NoError(t, err)
	}
	return SetupRouter(&HandlersGroup{
		PredictHandler: handler.NewPredictHandler(service.NewPredictService(store, nil)),
		DatasetHandler: handler.NewDatasetHandler(datasetSvc),
	})
}

func do(t *testing.T, r http.Handler, method, path, body string) envelope {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestPing(t *testing.T) {
	env := do(t, newTestRouter(t, false), http.MethodGet, "/api/ping", "")
	assert.Equal(t, 200, env.Code)
	assert.Equal(t, "pong", env.Message)
}

func TestPredictEndpoint(t *testing.T) {
	r := newTestRouter(t, true)

	env := do(t, r, http.MethodPost, "/api/predict",
		`{"platform":"TikTok","hashtag":"#Dance","content_type":"Video","region":"USA","followers":"1000000","seed":1}`)

	require.Equal(t, 200, env.Code)
	var data struct {
		Success             bool    `json:"success"`
		MatchStage          string  `json:"match_stage"`
		FollowerRatio       float64 `json:"follower_ratio"`
		PredictedEngagement string  `json:"predicted_engagement"`
		Query               struct {
			Followers int `json:"followers"`
		} `json:"query"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.Success)
	assert.Equal(t, "exact", data.MatchStage)
	assert.Equal(t, 3.0, data.FollowerRatio)
	assert.Equal(t, "High", data.PredictedEngagement)
	assert.Equal(t, 1_000_000, data.Query.Followers)
}

func TestPredictEndpoint_NoMatch(t *testing.T) {
	r := newTestRouter(t, true)

	env := do(t, r, http.MethodPost, "/api/predict", `{"platform":"Snapchat","followers":"abc"}`)

	require.Equal(t, 200, env.Code)
	var data struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Query   struct {
			Platform  string `json:"platform"`
			Followers int    `json:"followers"`
		} `json:"query"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.False(t, data.Success)
	assert.Contains(t, data.Message, "Snapchat")
	assert.Equal(t, 1000, data.Query.Followers)
}

func TestPredictEndpoint_BadJSON(t *testing.T) {
	env := do(t, newTestRouter(t, true), http.MethodPost, "/api/predict", `{"platform":`)
	assert.Equal(t, 400, env.Code)
}

func TestPredictEndpoint_ValidationFails(t *testing.T) {
	long := strings.Repeat("x", 100)
	env := do(t, newTestRouter(t, true), http.MethodPost, "/api/predict", `{"platform":"`+long+`"}`)
	assert.Equal(t, 400, env.Code)
	assert.Contains(t, env.Message, "Platform")
}

func TestPredictEndpoint_NotLoaded(t *testing.T) {
	env := do(t, newTestRouter(t, false), http.MethodPost, "/api/predict", `{"platform":"TikTok"}`)
	assert.Equal(t, 500, env.Code)
}

func TestDatasetEndpoints(t *testing.T) {
	r := newTestRouter(t, true)

	env := do(t, r, http.MethodGet, "/api/dataset/overview", "")
	require.Equal(t, 200, env.Code)
	var overview struct {
		TotalPosts int `json:"total_posts"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &overview))
	assert.Equal(t, 60, overview.TotalPosts)

	env = do(t, r, http.MethodGet, "/api/dataset/options", "")
	require.Equal(t, 200, env.Code)
	var options struct {
		Platforms []string `json:"platforms"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &options))
	assert.Equal(t, []string{"Any", "TikTok"}, options.Platforms)

	env = do(t, r, http.MethodGet, "/api/dataset/posts?platform=TikTok&page=2&page_size=25", "")
	require.Equal(t, 200, env.Code)
	var list struct {
		Total int               `json:"total"`
		List  []json.RawMessage `json:"list"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 60, list.Total)
	assert.Len(t, list.List, 25)

	env = do(t, r, http.MethodGet, "/api/dataset/timeline?limit=7", "")
	require.Equal(t, 200, env.Code)
	var points []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &points))
	assert.Len(t, points, 7)

	env = do(t, r, http.MethodGet, "/api/dataset/timeline?limit=abc", "")
	assert.Equal(t, 400, env.Code)

	env = do(t, r, http.MethodGet, "/api/dataset/posts?page_size=1000", "")
	assert.Equal(t, 400, env.Code)
}

func TestDatasetReloadEndpoint(t *testing.T) {
	r := newTestRouter(t, false)

	env := do(t, r, http.MethodGet, "/api/dataset/overview", "")
	assert.Equal(t, 500, env.Code)

	env = do(t, r, http.MethodPost, "/api/dataset/reload", "")
	require.Equal(t, 200, env.Code)
	assert.JSONEq(t, `{"posts":60}`, string(env.Data))

	env = do(t, r, http.MethodGet, "/api/dataset/overview", "")
	assert.Equal(t, 200, env.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t, true)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "trendcast_dataset_posts")
}
