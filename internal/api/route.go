package api

import (
	"Trendcast/internal/api/middleware"
	"Trendcast/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		apiGroup.POST("/predict", group.PredictHandler.Predict)

		datasetGroup := apiGroup.Group("/dataset")
		{
			datasetGroup.GET("/overview", group.DatasetHandler.Overview)
			datasetGroup.GET("/options", group.DatasetHandler.Options)
			datasetGroup.GET("/posts", group.DatasetHandler.ListPosts)
			datasetGroup.GET("/timeline", group.DatasetHandler.Timeline)
			datasetGroup.POST("/reload", group.DatasetHandler.Reload)
		}
	}

	return r
}
