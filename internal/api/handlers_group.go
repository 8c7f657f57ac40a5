package api

import "Trendcast/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	PredictHandler *handler.PredictHandler
	DatasetHandler *handler.DatasetHandler
}
