package controller

import (
	"learning_coach_backend/internal/service"
	"learning_coach_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	AIService *service.AIService
}

func NewAIController(aiService *service.AIService) *AIController {
	return &AIController{AIService: aiService}
}

// swagger:model SummarizeRequest
type SummarizeRequest struct {
	Text string `json:"text" binding:"required"`
}

// Summarize godoc
// @Summary 文本摘要
// @Description 把长文压缩为 300 词以内的摘要
// @Tags AI
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SummarizeRequest true "原始文本"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 502 {object} util.Response "生成服务不可用"
// @Router /api/ai/summarize [post]
func (c *AIController) Summarize(ctx *gin.Context) {
	var req SummarizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	summary, err := c.AIService.SummarizeText(ctx.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, util.ErrGenerationFailed) {
			util.Error(ctx, 502, "摘要生成失败，请稍后重试")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"summary": summary})
}
