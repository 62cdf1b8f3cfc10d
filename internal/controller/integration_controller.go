package controller

import (
	"learning_coach_backend/internal/model"
	"learning_coach_backend/internal/service"
	"learning_coach_backend/internal/util"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
)

type IntegrationController struct {
	IntegrationService *service.IntegrationService
}

func NewIntegrationController(integrationService *service.IntegrationService) *IntegrationController {
	return &IntegrationController{IntegrationService: integrationService}
}

// swagger:model ConnectRequest
type ConnectRequest struct {
	// GitHub 个人访问令牌
	Token string `json:"token"`
	// Udemy API 凭据
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	// Google OAuth2 令牌
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	Expiry       time.Time `json:"expiry"`
}

// Connect godoc
// @Summary 连接外部平台
// @Description 校验凭据并绑定 github / google_calendar / udemy 账号
// @Tags 平台集成
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   platform path string true "平台标识"
// @Param   body body ConnectRequest true "平台凭据"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "平台未知或缺少凭据"
// @Failure 401 {object} util.Response "凭据无效"
// @Failure 502 {object} util.Response "上游平台不可用"
// @Router /api/integrations/{platform}/connect [post]
func (c *IntegrationController) Connect(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	platform := ctx.Param("platform")
	if !model.KnownPlatform(platform) {
		util.BadRequest(ctx, util.ErrPlatformUnknown.Error())
		return
	}

	var req ConnectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var err error
	switch model.Platform(platform) {
	case model.PlatformGitHub:
		if req.Token == "" {
			util.BadRequest(ctx, "token is required")
			return
		}
		var user *service.GitHubUser
		user, err = c.IntegrationService.ConnectGitHub(claims.UserID, req.Token)
		if err == nil {
			util.Success(ctx, gin.H{"connected": true, "username": user.Login})
			return
		}

	case model.PlatformUdemy:
		if req.ClientID == "" || req.ClientSecret == "" {
			util.BadRequest(ctx, "client_id and client_secret are required")
			return
		}
		err = c.IntegrationService.ConnectUdemy(claims.UserID, req.ClientID, req.ClientSecret)

	case model.PlatformGoogleCalendar:
		if req.AccessToken == "" {
			util.BadRequest(ctx, "access_token is required")
			return
		}
		err = c.IntegrationService.ConnectCalendar(ctx.Request.Context(), claims.UserID, model.CalendarCredentials{
			AccessToken:  req.AccessToken,
			RefreshToken: req.RefreshToken,
			TokenType:    req.TokenType,
			Expiry:       req.Expiry,
		})
	}

	if err != nil {
		c.upstreamError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"connected": true})
}

// Disconnect godoc
// @Summary 断开平台连接
// @Description 删除绑定关系与已同步的活动快照
// @Tags 平台集成
// @Produce  json
// @Security ApiKeyAuth
// @Param   platform path string true "平台标识"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "平台未知"
// @Router /api/integrations/{platform} [delete]
func (c *IntegrationController) Disconnect(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	platform := ctx.Param("platform")
	if !model.KnownPlatform(platform) {
		util.BadRequest(ctx, util.ErrPlatformUnknown.Error())
		return
	}

	if err := c.IntegrationService.Disconnect(ctx.Request.Context(), claims.UserID, model.Platform(platform)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"disconnected": true})
}

// Sync godoc
// @Summary 同步单个平台
// @Description 拉取平台活动数据并整体覆盖快照，15 分钟内命中缓存
// @Tags 平台集成
// @Produce  json
// @Security ApiKeyAuth
// @Param   platform path string true "平台标识"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "平台未知或未连接"
// @Failure 502 {object} util.Response "上游平台不可用"
// @Router /api/integrations/{platform}/sync [post]
func (c *IntegrationController) Sync(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	platform := ctx.Param("platform")
	if !model.KnownPlatform(platform) {
		util.BadRequest(ctx, util.ErrPlatformUnknown.Error())
		return
	}

	snapshot, err := c.IntegrationService.SyncPlatform(ctx.Request.Context(), claims.UserID, model.Platform(platform))
	if err != nil {
		c.upstreamError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"platform": platform, "activity": snapshot})
}

// SyncAll godoc
// @Summary 同步所有已连接平台
// @Description 并发同步全部已认证平台，单个失败不影响其它平台
// @Tags 平台集成
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.SyncResult} "成功"
// @Router /api/integrations/sync [post]
func (c *IntegrationController) SyncAll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	results := c.IntegrationService.SyncAll(ctx.Request.Context(), claims.UserID)
	util.Success(ctx, results)
}

// Status godoc
// @Summary 平台连接状态
// @Tags 平台集成
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.ConnectionStatus} "成功"
// @Router /api/integrations/status [get]
func (c *IntegrationController) Status(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	statuses, err := c.IntegrationService.Status(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, statuses)
}

// GitHubActivity godoc
// @Summary GitHub 活动快照
// @Description 最近一次同步的 GitHub 活动数据
// @Tags 平台集成
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "未连接或未同步"
// @Router /api/integrations/github/activity [get]
func (c *IntegrationController) GitHubActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	activity, lastSync, err := c.IntegrationService.GetActivity(claims.UserID, model.PlatformGitHub)
	if err != nil {
		c.upstreamError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"activity": activity, "last_sync": lastSync})
}

// LearningPaths godoc
// @Summary 基于 GitHub 的进阶方向
// @Description 依据常用语言推荐学习方向
// @Tags 平台集成
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]string} "成功"
// @Failure 400 {object} util.Response "未连接或未同步"
// @Router /api/integrations/github/learning-paths [get]
func (c *IntegrationController) LearningPaths(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	paths, err := c.IntegrationService.GetLearningPathSuggestions(claims.UserID)
	if err != nil {
		c.upstreamError(ctx, err)
		return
	}
	util.Success(ctx, paths)
}

// UdemyAnalytics godoc
// @Summary Udemy 学习分析
// @Description 最近一次同步的 Udemy 课程进度分析
// @Tags 平台集成
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "未连接或未同步"
// @Router /api/integrations/udemy/analytics [get]
func (c *IntegrationController) UdemyAnalytics(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	activity, lastSync, err := c.IntegrationService.GetActivity(claims.UserID, model.PlatformUdemy)
	if err != nil {
		c.upstreamError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"analytics": activity, "last_sync": lastSync})
}

// CalendarEvents godoc
// @Summary 未来一周的日程
// @Tags 平台集成
// @Produce  json
// @Security ApiKeyAuth
// @Param   days query int false "查询天数，默认 7"
// @Success 200 {object} util.Response{data=[]model.CalendarEvent} "成功"
// @Failure 400 {object} util.Response "未连接"
// @Failure 502 {object} util.Response "上游平台不可用"
// @Router /api/integrations/calendar/events [get]
func (c *IntegrationController) CalendarEvents(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	days := int(util.MustParseUint(ctx.DefaultQuery("days", "7")))

	events, err := c.IntegrationService.UpcomingEvents(ctx.Request.Context(), claims.UserID, days)
	if err != nil {
		c.upstreamError(ctx, err)
		return
	}
	util.Success(ctx, events)
}

// swagger:model CreateEventRequest
type CreateEventRequest struct {
	Topic         string `json:"topic" binding:"required"`
	StartTime     string `json:"start_time" binding:"required"`
	DurationHours int    `json:"duration_hours" binding:"omitempty,min=1,max=12"`
	Description   string `json:"description"`
}

// CreateCalendarEvent godoc
// @Summary 创建学习日程
// @Description 在用户主日历创建学习安排，附带邮件与弹窗提醒
// @Tags 平台集成
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateEventRequest true "日程参数"
// @Success 201 {object} util.Response{data=model.CalendarEvent} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误或未连接"
// @Failure 502 {object} util.Response "上游平台不可用"
// @Router /api/integrations/calendar/events [post]
func (c *IntegrationController) CreateCalendarEvent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		util.BadRequest(ctx, "start_time must be RFC3339")
		return
	}

	title := "Study Session: " + req.Topic
	description := req.Description
	if description == "" {
		description = "Scheduled study session for " + req.Topic
	}

	event, err := c.IntegrationService.CreateStudyEvent(ctx.Request.Context(), claims.UserID, title, description, start, req.DurationHours)
	if err != nil {
		c.upstreamError(ctx, err)
		return
	}
	util.Created(ctx, event)
}

// upstreamError 把平台侧错误映射为对应的 HTTP 状态码
func (c *IntegrationController) upstreamError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrNotConnected):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Error(ctx, 401, err.Error())
	case errors.Is(err, util.ErrUpstreamFailure):
		util.Error(ctx, 502, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
