package controller

import (
	"learning_coach_backend/internal/service"
	"learning_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// GetDashboard godoc
// @Summary 首页概览
// @Description 近期成绩、测验与计划总量、连续学习天数和平台连接状态
// @Tags 首页
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Dashboard} "成功"
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	dashboard, err := c.DashboardService.GetDashboard(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}
