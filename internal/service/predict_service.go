package service

import (
	"Trendcast/internal/api/dto"
	"Trendcast/internal/pkg/consts"
	"Trendcast/internal/pkg/estimator"
	"Trendcast/internal/pkg/kafka"
	"Trendcast/internal/pkg/metrics"
	"Trendcast/internal/pkg/util"
	"Trendcast/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type PredictService interface {
	Predict(ctx context.Context, req *dto.PredictRequest) (*dto.PredictionDTO, error)
}

type predictServiceImpl struct {
	store    repository.PostStore
	producer kafka.EventProducer
	now      func() time.Time
}

func NewPredictService(store repository.PostStore, producer kafka.EventProducer) PredictService {
	if producer == nil {
		producer = kafka.NopProducer{}
	}
	return &predictServiceImpl{
		store:    store,
		producer: producer,
		now:      time.Now,
	}
}

// Predict 没有匹配的历史数据时不返回错误，而是 Success=false 的结果
func (s *predictServiceImpl) Predict(ctx context.Context, req *dto.PredictRequest) (*dto.PredictionDTO, error) {
	if !s.store.Loaded() {
		return nil, ErrDatasetNotLoaded
	}

	query := toUserQuery(req)
	seed := s.now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	requestID := uuid.NewString()

	start := time.Now()
	pred, err := estimator.Predict(query, s.store.Snapshot(), seed)

	var noMatch *estimator.NoMatchError
	switch {
	case errors.As(err, &noMatch):
		metrics.RecordPrediction(query.Platform, "none", false, time.Since(start))
		log.InfoContext(ctx, "No historical data matched", "request_id", requestID, "query", query)
		out := &dto.PredictionDTO{
			Success:   false,
			Message:   noMatch.Error(),
			Query:     query,
			RequestID: requestID,
			Seed:      seed,
		}
		s.publish(ctx, out)
		return out, nil
	case err != nil:
		log.ErrorContext(ctx, "Prediction failed", "request_id", requestID, "err", err)
		return nil, UnExpectedError
	}

	metrics.RecordPrediction(query.Platform, string(pred.MatchStage), true, time.Since(start))
	metrics.RecordPredictedEngagement(string(pred.PredictedEngagement))

	out, err := toPredictionDTO(pred, requestID)
	if err != nil {
		log.ErrorContext(ctx, "copy prediction failed", "request_id", requestID, "err", err)
		return nil, UnExpectedError
	}

	log.InfoContext(ctx, "Prediction completed",
		"request_id", requestID,
		"stage", pred.MatchStage,
		"matched", pred.MatchedPostCount,
		"sample", pred.SampleSize,
		"engagement", pred.PredictedEngagement,
	)
	s.publish(ctx, out)
	return out, nil
}

// publish 事件发布失败不影响预测结果
func (s *predictServiceImpl) publish(ctx context.Context, out *dto.PredictionDTO) {
	event := &kafka.PredictionEvent{
		RequestID:           out.RequestID,
		Platform:            out.Query.Platform,
		Hashtag:             out.Query.Hashtag,
		ContentType:         out.Query.ContentType,
		Region:              out.Query.Region,
		Followers:           out.Query.Followers,
		MatchedPosts:        out.MatchedPostCount,
		PredictedEngagement: out.PredictedEngagement,
		Success:             out.Success,
		CreatedAt:           s.now(),
	}
	if err := s.producer.PublishPrediction(ctx, event); err != nil {
		log.WarnContext(ctx, "publish prediction event failed", "request_id", out.RequestID, "err", err)
	}
}

func toUserQuery(req *dto.PredictRequest) estimator.UserQuery {
	return estimator.UserQuery{
		Platform:    categoryOrAny(req.Platform),
		Hashtag:     categoryOrAny(req.Hashtag),
		ContentType: categoryOrAny(req.ContentType),
		Region:      categoryOrAny(req.Region),
		Followers:   util.ParseFollowers(req.Followers, consts.DefaultFollowers),
		ProfileLink: strings.TrimSpace(req.ProfileLink),
	}
}

func categoryOrAny(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || v == consts.FilterAll {
		return estimator.Any
	}
	return v
}

func toPredictionDTO(pred *estimator.Prediction, requestID string) (*dto.PredictionDTO, error) {
	out := &dto.PredictionDTO{
		Success:               true,
		Query:                 pred.Query,
		RequestID:             requestID,
		Seed:                  pred.Seed,
		MatchedPostCount:      pred.MatchedPostCount,
		SampleSize:            pred.SampleSize,
		MatchStage:            string(pred.MatchStage),
		FollowerRatio:         pred.FollowerRatio,
		FollowerImpact:        string(pred.FollowerImpact),
		Baseline:              &pred.Baseline,
		Predictions:           &pred.Bands,
		PredictedEngagement:   string(pred.PredictedEngagement),
		EngagementCounts:      &pred.EngagementCounts,
		EngagementProbability: &pred.EngagementProbability,
		EngagementRate:        pred.EngagementRate,
		Recommendations:       pred.Recommendations,
		ProfileAnalysis:       pred.Profile,
	}
	if err := copier.Copy(&out.TopPosts, &pred.TopPosts); err != nil {
		return nil, err
	}
	return out, nil
}
