package cron

import log "log/slog"

// InitCron 注册并启动定时任务，没有任务时引擎照常启动以便统一 Stop
func InitCron(mgr *Manager) error {
	log.Info("Cron Jobs starting...")
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	mgr.Start()
	log.Info("Cron Jobs registered", "entries", mgr.Entries())
	return nil
}
