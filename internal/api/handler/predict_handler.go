package handler

import (
	"Trendcast/internal/api/dto"
	"Trendcast/internal/pkg/response"
	"Trendcast/internal/pkg/util"
	"Trendcast/internal/service"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type PredictHandler struct {
	predictSvc service.PredictService
}

func NewPredictHandler(predictSvc service.PredictService) *PredictHandler {
	return &PredictHandler{predictSvc: predictSvc}
}

// Predict 预测帖子表现，无匹配数据时 data.success 为 false
func (h *PredictHandler) Predict(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.PredictRequest
	if len(body) > 0 {
		if err = json.Unmarshal(body, &req); err != nil {
			response.Error(c, fmt.Errorf("%w: %v", service.ErrParamInvalid, err))
			return
		}
	}
	if err = util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	prediction, err := h.predictSvc.Predict(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, prediction)
}
