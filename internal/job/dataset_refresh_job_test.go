package job

import (
	"Trendcast/internal/api/dto"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeDatasetService struct {
	reloads int
	err     error
}

func (f *fakeDatasetService) Reload(context.Context) (int, error) {
	f.reloads++
	return 3, f.err
}

func (f *fakeDatasetService) Overview(context.Context) (*dto.DatasetOverviewDTO, error) {
	return nil, nil
}

func (f *fakeDatasetService) Options(context.Context) (*dto.FormOptionsDTO, error) {
	return nil, nil
}

func (f *fakeDatasetService) ListPosts(context.Context, *dto.PostListQuery) (*dto.PostListDTO, error) {
	return nil, nil
}

func (f *fakeDatasetService) Timeline(context.Context, int) ([]*dto.TimelinePointDTO, error) {
	return nil, nil
}

func TestDatasetRefreshJob_Run(t *testing.T) {
	svc := &fakeDatasetService{}
	NewDatasetRefreshJob(svc).Run()
	assert.Equal(t, 1, svc.reloads)
}

func TestDatasetRefreshJob_FailureDoesNotPanic(t *testing.T) {
	svc := &fakeDatasetService{err: errors.New("source unavailable")}
	assert.NotPanics(t, NewDatasetRefreshJob(svc).Run)
	assert.Equal(t, 1, svc.reloads)
}
