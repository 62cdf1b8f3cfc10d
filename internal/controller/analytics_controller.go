package controller

import (
	"learning_coach_backend/internal/service"
	"learning_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// GetSummary godoc
// @Summary 学习概览
// @Description 测验总数、平均分、最佳与最差主题、连续学习天数
// @Tags 分析
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.AnalyticsSummary} "成功"
// @Router /api/analytics/summary [get]
func (c *AnalyticsController) GetSummary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	summary, err := c.AnalyticsService.GetSummary(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// GetTopics godoc
// @Summary 主题表现
// @Description 按主题聚合的成绩指标，并标出薄弱主题及补习资源
// @Tags 分析
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.TopicReport} "成功"
// @Router /api/analytics/topics [get]
func (c *AnalyticsController) GetTopics(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	report, err := c.AnalyticsService.GetTopicReport(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// GetActivity godoc
// @Summary 学习行为分析
// @Description 每日活跃度、最佳学习日、成绩趋势与难度分布
// @Tags 分析
// @Produce  json
// @Security ApiKeyAuth
// @Param   days query int false "活跃度统计天数，默认 14"
// @Success 200 {object} util.Response{data=model.ActivityOverview} "成功"
// @Router /api/analytics/activity [get]
func (c *AnalyticsController) GetActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	days := int(util.MustParseUint(ctx.DefaultQuery("days", "14")))

	overview, err := c.AnalyticsService.GetActivityOverview(claims.UserID, days)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// GetRecommendations godoc
// @Summary 学习建议
// @Description 基于成绩概览的规则化学习建议
// @Tags 分析
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Recommendation} "成功"
// @Router /api/analytics/recommendations [get]
func (c *AnalyticsController) GetRecommendations(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	recommendations, err := c.AnalyticsService.GetRecommendations(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, recommendations)
}
