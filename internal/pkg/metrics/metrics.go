package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PredictionsTotal 预测次数，按平台、匹配阶段和结果
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendcast_predictions_total",
			Help: "Total number of predictions",
		},
		[]string{"platform", "stage", "outcome"},
	)

	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trendcast_prediction_duration_seconds",
			Help:    "Duration of a prediction in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"stage"},
	)

	PredictedEngagementTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendcast_predicted_engagement_total",
			Help: "Predicted engagement labels",
		},
		[]string{"level"},
	)

	DatasetPosts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "trendcast_dataset_posts",
			Help: "Number of posts in the current dataset snapshot",
		},
	)

	DatasetReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendcast_dataset_reloads_total",
			Help: "Dataset reload attempts",
		},
		[]string{"source", "outcome"},
	)

	DatasetLoadedTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "trendcast_dataset_loaded_timestamp_seconds",
			Help: "Unix time the current dataset snapshot was loaded",
		},
	)

	OverviewCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendcast_overview_cache_total",
			Help: "Dataset overview cache lookups",
		},
		[]string{"result"},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendcast_events_published_total",
			Help: "Events published to Kafka",
		},
		[]string{"topic", "outcome"},
	)
)

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordPrediction 记录一次预测
func RecordPrediction(platform, stage string, matched bool, d time.Duration) {
	result := "matched"
	if !matched {
		result = "no_match"
	}
	PredictionsTotal.WithLabelValues(platform, stage, result).Inc()
	PredictionDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func RecordPredictedEngagement(level string) {
	PredictedEngagementTotal.WithLabelValues(level).Inc()
}

// RecordDatasetReload 记录一次数据集加载，成功时同步快照大小
func RecordDatasetReload(source string, posts int, loadedAt time.Time, err error) {
	DatasetReloadsTotal.WithLabelValues(source, outcome(err)).Inc()
	if err != nil {
		return
	}
	DatasetPosts.Set(float64(posts))
	DatasetLoadedTimestamp.Set(float64(loadedAt.Unix()))
}

func RecordOverviewCache(hit bool) {
	if hit {
		OverviewCacheTotal.WithLabelValues("hit").Inc()
		return
	}
	OverviewCacheTotal.WithLabelValues("miss").Inc()
}

func RecordEventPublished(topic string, err error) {
	EventsPublishedTotal.WithLabelValues(topic, outcome(err)).Inc()
}
