package wire

import (
	"Trendcast/internal/api/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatasetLoader(t *testing.T) {
	loader, err := NewDatasetLoader(config.DatasetConfig{Source: "file", Path: "posts.csv"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "file:posts.csv", loader.Name())

	loader, err = NewDatasetLoader(config.DatasetConfig{Source: "http", URL: "http://example.com/posts.csv", HTTPTimeout: 5}, nil)
	require.NoError(t, err)
	assert.Equal(t, "http:http://example.com/posts.csv", loader.Name())

	_, err = NewDatasetLoader(config.DatasetConfig{Source: "http"}, nil)
	assert.Error(t, err)

	_, err = NewDatasetLoader(config.DatasetConfig{Source: "mysql"}, nil)
	assert.Error(t, err)

	_, err = NewDatasetLoader(config.DatasetConfig{Source: "minio"}, nil)
	assert.Error(t, err)

	_, err = NewDatasetLoader(config.DatasetConfig{Source: "ftp"}, nil)
	assert.Error(t, err)
}

func TestBuildApplication(t *testing.T) {
	app, err := BuildApplication(nil, &config.Config{
		Dataset: config.DatasetConfig{Source: "file", Path: "posts.csv", RefreshCron: "@every 1m"},
	})
	require.NoError(t, err)

	assert.NotNil(t, app.Router)
	assert.NotNil(t, app.DatasetSvc)
	assert.Nil(t, app.KafkaManager)
	assert.NoError(t, app.CronMgr.RegisterJobs())
	assert.Equal(t, 1, app.CronMgr.Entries())
}
