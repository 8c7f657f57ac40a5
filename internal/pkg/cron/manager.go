package cron

import (
	"Trendcast/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine            *cron.Cron
	refreshSpec       string
	datasetRefreshJob *job.DatasetRefreshJob
}

// NewCronManager refreshSpec 为六段式（带秒）表达式或 @every 之类的描述符
func NewCronManager(refreshSpec string, datasetRefreshJob *job.DatasetRefreshJob) *Manager {
	return &Manager{
		engine:            cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		refreshSpec:       refreshSpec,
		datasetRefreshJob: datasetRefreshJob,
	}
}

// RegisterJobs 注册定时任务，未配置表达式的任务不注册
func (s *Manager) RegisterJobs() error {
	if s.refreshSpec == "" {
		log.Info("dataset.refresh_cron not configured, scheduled refresh disabled")
		return nil
	}
	if _, err := s.engine.AddJob(s.refreshSpec, s.datasetRefreshJob); err != nil {
		return err
	}
	return nil
}

// Entries 已注册的任务数
func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

// Stop 等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
