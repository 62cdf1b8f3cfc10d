package controller

import (
	"learning_coach_backend/internal/service"
	"learning_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type InsightsController struct {
	InsightsService *service.InsightsService
}

func NewInsightsController(insightsService *service.InsightsService) *InsightsController {
	return &InsightsController{InsightsService: insightsService}
}

// GetInsights godoc
// @Summary 跨平台学习洞察
// @Description 汇总已连接平台的活动快照，产出摘要、建议与综合学习分
// @Tags 洞察
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.LearningInsights} "成功"
// @Router /api/insights [get]
func (c *InsightsController) GetInsights(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	insights, err := c.InsightsService.GetLearningInsights(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, insights)
}
