package repository

import (
	"Trendcast/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const trendPostBatchSize = 1000

type TrendPostRepo interface {
	// ListAll 按主键顺序读出整张表
	ListAll(ctx context.Context) ([]model.Post, error)
	// SaveBatch 按 post_id 覆盖写入
	SaveBatch(ctx context.Context, posts []model.Post) error
	Count(ctx context.Context) (int64, error)
}

type trendPostRepoImpl struct {
	db *gorm.DB
}

func NewTrendPostRepository(db *gorm.DB) TrendPostRepo {
	return &trendPostRepoImpl{db: db}
}

func (r *trendPostRepoImpl) ListAll(ctx context.Context) ([]model.Post, error) {
	posts := make([]model.Post, 0)
	batch := make([]model.Post, 0, trendPostBatchSize)
	result := r.db.WithContext(ctx).
		FindInBatches(&batch, trendPostBatchSize, func(tx *gorm.DB, _ int) error {
			posts = append(posts, batch...)
			return nil
		})
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

func (r *trendPostRepoImpl) SaveBatch(ctx context.Context, posts []model.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "post_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"post_date",
			"platform",
			"hashtag",
			"content_type",
			"region",
			"views",
			"likes",
			"shares",
			"comments",
			"engagement_level",
		}),
	}).CreateInBatches(posts, trendPostBatchSize).Error
}

func (r *trendPostRepoImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Count(&n).Error
	return n, err
}
