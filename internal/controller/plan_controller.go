package controller

import (
	"fmt"
	"learning_coach_backend/internal/service"
	"learning_coach_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type PlanController struct {
	PlanService *service.PlanService
}

func NewPlanController(planService *service.PlanService) *PlanController {
	return &PlanController{PlanService: planService}
}

// swagger:model GeneratePlanRequest
type GeneratePlanRequest struct {
	Goal         string `json:"goal" binding:"required"`
	Level        string `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	HoursPerWeek int    `json:"hours_per_week" binding:"omitempty,min=1,max=80"`
	Weeks        int    `json:"weeks" binding:"omitempty,min=1,max=52"`
	Extra        string `json:"extra"`
}

// Generate godoc
// @Summary 生成学习计划
// @Description 根据学习目标调用 AI 生成个性化学习计划并保存
// @Tags 学习计划
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body GeneratePlanRequest true "计划生成参数"
// @Success 201 {object} util.Response{data=model.StudyPlan} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 502 {object} util.Response "生成服务不可用"
// @Router /api/plans/generate [post]
func (c *PlanController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req GeneratePlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if req.Level == "" {
		req.Level = "beginner"
	}
	if req.HoursPerWeek == 0 {
		req.HoursPerWeek = 5
	}
	if req.Weeks == 0 {
		req.Weeks = 4
	}
	timeCommitment := fmt.Sprintf("%d hours/week for %d weeks", req.HoursPerWeek, req.Weeks)

	plan, err := c.PlanService.GeneratePlan(ctx.Request.Context(), claims.UserID, req.Goal, req.Level, timeCommitment, req.Extra)
	if err != nil {
		if errors.Is(err, util.ErrGenerationFailed) {
			util.Error(ctx, 502, "学习计划生成失败，请稍后重试")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, plan)
}

// List godoc
// @Summary 学习计划列表
// @Description 当前用户的全部学习计划，按创建时间倒序
// @Tags 学习计划
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.StudyPlan} "成功"
// @Router /api/plans [get]
func (c *PlanController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	plans, err := c.PlanService.ListPlans(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, plans)
}

// Get godoc
// @Summary 学习计划详情
// @Tags 学习计划
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "计划ID"
// @Success 200 {object} util.Response{data=model.StudyPlan} "成功"
// @Failure 404 {object} util.Response "计划不存在"
// @Router /api/plans/{id} [get]
func (c *PlanController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	plan, err := c.PlanService.GetPlan(claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrPlanNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, plan)
}

// swagger:model UpdateProgressRequest
type UpdateProgressRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// UpdateProgress godoc
// @Summary 更新计划完成状态
// @Tags 学习计划
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "计划ID"
// @Param   body body UpdateProgressRequest true "完成标记"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "计划不存在"
// @Router /api/plans/{id}/progress [put]
func (c *PlanController) UpdateProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.PlanService.SetCompleted(claims.UserID, ctx.Param("id"), *req.Completed); err != nil {
		if errors.Is(err, util.ErrPlanNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Delete godoc
// @Summary 删除学习计划
// @Tags 学习计划
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "计划ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "计划不存在"
// @Router /api/plans/{id} [delete]
func (c *PlanController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.PlanService.DeletePlan(claims.UserID, ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrPlanNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Statistics godoc
// @Summary 学习计划统计
// @Description 模块数、主题数、预计阅读时长与资源链接数
// @Tags 学习计划
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "计划ID"
// @Success 200 {object} util.Response{data=model.PlanStatistics} "成功"
// @Failure 404 {object} util.Response "计划不存在"
// @Router /api/plans/{id}/statistics [get]
func (c *PlanController) Statistics(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	stats, err := c.PlanService.GetStatistics(claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrPlanNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, stats)
}
