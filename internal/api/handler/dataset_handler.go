package handler

import (
	"Trendcast/internal/api/dto"
	"Trendcast/internal/pkg/consts"
	"Trendcast/internal/pkg/response"
	"Trendcast/internal/pkg/util"
	"Trendcast/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type DatasetHandler struct {
	datasetSvc service.DatasetService
}

func NewDatasetHandler(datasetSvc service.DatasetService) *DatasetHandler {
	return &DatasetHandler{datasetSvc: datasetSvc}
}

func (h *DatasetHandler) Overview(c *gin.Context) {
	overview, err := h.datasetSvc.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, overview)
}

// Options 预测表单的下拉选项
func (h *DatasetHandler) Options(c *gin.Context) {
	options, err := h.datasetSvc.Options(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, options)
}

func (h *DatasetHandler) ListPosts(c *gin.Context) {
	var query dto.PostListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&query); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := h.datasetSvc.ListPosts(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (h *DatasetHandler) Timeline(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(consts.TimelineDays)))
	if err != nil || limit < 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	points, err := h.datasetSvc.Timeline(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, points)
}

// Reload 手动触发数据集重新加载
func (h *DatasetHandler) Reload(c *gin.Context) {
	n, err := h.datasetSvc.Reload(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]int{"posts": n})
}
