package controller

import (
	"learning_coach_backend/internal/service"
	"learning_coach_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// GetLearningReport godoc
// @Summary 下载学习报告
// @Description 生成 PDF 格式的学习进度报告，没有测验记录时返回 400
// @Tags 报告
// @Produce  application/pdf
// @Security ApiKeyAuth
// @Success 200 {file} binary "PDF 报告"
// @Failure 400 {object} util.Response "没有可用数据"
// @Router /api/reports/learning [get]
func (c *ReportController) GetLearningReport(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	pdfBytes, filename, err := c.ReportService.GenerateLearningReport(ctx.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrNoQuizData) {
			util.BadRequest(ctx, "No data available for PDF generation")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(200, "application/pdf", pdfBytes)
}
