package controller

import (
	"learning_coach_backend/internal/model"
	"learning_coach_backend/internal/service"
	"learning_coach_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// swagger:model GenerateQuizRequest
type GenerateQuizRequest struct {
	Topic      string `json:"topic" binding:"required"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Count      int    `json:"count" binding:"omitempty,min=3,max=10"`
}

// QuestionView 下发给客户端的题目视图，不包含正确答案
type QuestionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// Generate godoc
// @Summary 生成测验
// @Description 调用 AI 生成测验并缓存等待提交，返回的题目不含答案
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body GenerateQuizRequest true "测验生成参数"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 502 {object} util.Response "生成服务不可用"
// @Router /api/quizzes/generate [post]
func (c *QuizController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req GenerateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}

	quiz, err := c.QuizService.GenerateQuiz(ctx.Request.Context(), claims.UserID, req.Topic, req.Difficulty, req.Count)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrGenerationFailed), errors.Is(err, util.ErrMalformedGeneration):
			util.Error(ctx, 502, "测验生成失败，请稍后重试")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	questions := make([]QuestionView, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, QuestionView{Question: q.Question, Options: q.Options})
	}

	util.Created(ctx, gin.H{
		"quiz_id":    quiz.ID,
		"topic":      quiz.Topic,
		"difficulty": quiz.Difficulty,
		"questions":  questions,
	})
}

// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	QuizID  string `json:"quiz_id" binding:"required"`
	Answers []int  `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary 提交测验答案
// @Description 判分并保存成绩，已提交或过期的测验返回 404
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SubmitQuizRequest true "答案列表"
// @Success 200 {object} util.Response{data=model.GradedQuiz} "成功"
// @Failure 400 {object} util.Response "答案数量不匹配"
// @Failure 404 {object} util.Response "测验不存在或已过期"
// @Router /api/quizzes/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	graded, err := c.QuizService.SubmitQuiz(ctx.Request.Context(), claims.UserID, req.QuizID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAnswerMismatch):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, graded)
}

// History godoc
// @Summary 测验历史
// @Description 最近的测验成绩，新的在前
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "返回条数，默认 50"
// @Success 200 {object} util.Response{data=[]model.QuizScore} "成功"
// @Router /api/quizzes/history [get]
func (c *QuizController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	limit := int(util.MustParseUint(ctx.DefaultQuery("limit", "50")))

	scores, err := c.QuizService.GetHistory(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if scores == nil {
		scores = []model.QuizScore{}
	}
	util.Success(ctx, scores)
}
