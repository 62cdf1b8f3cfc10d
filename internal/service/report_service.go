package service

import (
	"bytes"
	"context"
	"fmt"
	"learning_coach_backend/internal/model"
	"learning_coach_backend/internal/repository"
	"learning_coach_backend/internal/util"
	"learning_coach_backend/pkg/logger"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
)

// 报告最多列出的学习计划数
const reportMaxPlans = 3

// 主题名在表格里的显示长度上限
const reportTopicMaxRunes = 25

// BuildLearningReport 把测验历史与学习计划组装成结构化报告文档。
// 没有任何测验记录时拒绝生成，即使存在学习计划
func BuildLearningReport(user *model.User, summary model.AnalyticsSummary, records []model.QuizScore, plans []model.StudyPlan, generatedAt time.Time) (*model.LearningReport, error) {
	if len(records) == 0 {
		return nil, util.ErrNoQuizData
	}

	report := &model.LearningReport{
		Header: model.ReportHeader{
			Title:        "Learning Progress Report",
			UserName:     user.Name,
			UserEmail:    user.Email,
			GeneratedAt:  generatedAt,
			TotalQuizzes: summary.TotalQuizzes,
			AverageScore: summary.AverageScore,
		},
	}

	// 1. 概览表
	var passed int
	for _, r := range records {
		if r.Percentage >= util.PassThreshold {
			passed++
		}
	}
	passRate := float64(passed) / float64(len(records)) * 100

	report.Summary = []model.ReportSummaryRow{
		{Label: "Total Quizzes Taken", Value: fmt.Sprintf("%d", summary.TotalQuizzes)},
		{Label: "Average Performance", Value: fmt.Sprintf("%.1f%%", summary.AverageScore)},
		{Label: "Pass Rate", Value: fmt.Sprintf("%.1f%%", passRate)},
		{Label: "Unique Topics Studied", Value: fmt.Sprintf("%d", len(summary.TopicsStudied))},
		{Label: "Best Topic", Value: summary.BestTopic},
		{Label: "Areas for Improvement", Value: summary.WorstTopic},
	}

	// 2. 主题明细表，行序保持主题首次出现的顺序
	perf, order := TopicPerformance(records)
	report.Topics = make([]model.ReportTopicRow, 0, len(order))
	for _, topic := range order {
		stats := perf[topic]
		report.Topics = append(report.Topics, model.ReportTopicRow{
			Topic:    ellipsize(topic, reportTopicMaxRunes),
			Average:  stats.Average,
			Attempts: stats.Count,
			Best:     stats.Best,
			Worst:    stats.Worst,
		})
	}

	// 3. 最多列 3 份学习计划
	report.Plans = make([]model.ReportPlanEntry, 0, reportMaxPlans)
	for i, plan := range plans {
		if i >= reportMaxPlans {
			break
		}
		report.Plans = append(report.Plans, model.ReportPlanEntry{
			Goal:      plan.Goal,
			CreatedAt: plan.CreatedAt,
		})
	}

	// 4. 学习建议，规律学习达到 10 次时追加鼓励
	report.Recommendations = BuildRecommendations(summary)
	if summary.TotalQuizzes >= 10 {
		report.Recommendations = append(report.Recommendations, model.Recommendation{
			Type:        "consistency",
			Title:       "Great consistency!",
			Description: "Keep up the regular practice.",
			Action:      "Maintain your current study rhythm",
		})
	}

	report.Footer = []string{"Generated by AI Learning Coach"}
	return report, nil
}

// RenderPDF 把报告文档渲染为 PDF 字节流，版式按节顺序排布
func RenderPDF(report *model.LearningReport) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// 头部
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, report.Header.Title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s  <%s>", report.Header.UserName, report.Header.UserEmail), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Generated on "+report.Header.GeneratedAt.Format(util.TimeFormat), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// 概览表
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, row := range report.Summary {
		pdf.CellFormat(70, 7, row.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, row.Value, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// 主题明细表
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, "Topic Performance", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 7, "Topic", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Average", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Attempts", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Best", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Worst", "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, row := range report.Topics {
		pdf.CellFormat(60, 7, row.Topic, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.1f%%", row.Average), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", row.Attempts), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.1f%%", row.Best), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.1f%%", row.Worst), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// 学习计划
	if len(report.Plans) > 0 {
		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, 8, "Study Plans", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, plan := range report.Plans {
			pdf.CellFormat(0, 6, fmt.Sprintf("- %s (created %s)", plan.Goal, plan.CreatedAt.Format(util.DateFormat)), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	// 学习建议
	if len(report.Recommendations) > 0 {
		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, 8, "Recommendations", "", 1, "L", false, 0, "")
		for _, rec := range report.Recommendations {
			pdf.SetFont("Arial", "B", 10)
			pdf.CellFormat(0, 6, rec.Title, "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 5, rec.Description+" "+rec.Action, "", "L", false)
			pdf.Ln(1)
		}
	}

	// 页脚
	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 9)
	for _, line := range report.Footer {
		pdf.CellFormat(0, 5, line, "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ellipsize 超过 n 个字符的文本截断并加省略号
func ellipsize(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

type ReportService struct {
	UserRepo      *repository.UserRepository
	QuizScoreRepo *repository.QuizScoreRepository
	PlanRepo      *repository.StudyPlanRepository
	Storage       *StorageService
}

func NewReportService(
	userRepo *repository.UserRepository,
	quizScoreRepo *repository.QuizScoreRepository,
	planRepo *repository.StudyPlanRepository,
	storage *StorageService,
) *ReportService {
	return &ReportService{
		UserRepo:      userRepo,
		QuizScoreRepo: quizScoreRepo,
		PlanRepo:      planRepo,
		Storage:       storage,
	}
}

// GenerateLearningReport 组装并渲染学习报告，返回 PDF 字节流与下载文件名。
// 渲染成功后异步归档到存储后端，归档失败不影响下载
func (s *ReportService) GenerateLearningReport(ctx context.Context, userID uint) ([]byte, string, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, "", err
	}

	records, err := s.QuizScoreRepo.ListByUser(userID)
	if err != nil {
		return nil, "", err
	}

	plans, err := s.PlanRepo.ListRecent(userID, reportMaxPlans)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	report, err := BuildLearningReport(user, Summarize(records, now), records, plans, now)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err := RenderPDF(report)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("learning_report_%s.pdf", now.Format("20060102_150405"))
	archivePath := fmt.Sprintf("reports/%d/%s", userID, filename)
	if _, err := s.Storage.Upload(ctx, archivePath, bytes.NewReader(pdfBytes), int64(len(pdfBytes)), "application/pdf"); err != nil {
		logger.Log.Warn("报告归档失败", zap.Uint("user_id", userID), zap.Error(err))
	}

	return pdfBytes, filename, nil
}
