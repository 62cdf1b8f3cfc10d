package service

import (
	"bytes"
	"errors"
	"learning_coach_backend/internal/model"
	"learning_coach_backend/internal/util"
	"strings"
	"testing"
	"time"
)

var reportUser = &model.User{Name: "Alice", Email: "alice@example.com"}

func TestBuildLearningReportNoQuizData(t *testing.T) {
	// 只有学习计划没有成绩，同样拒绝生成
	plans := []model.StudyPlan{{Goal: "Learn Go"}}

	_, err := BuildLearningReport(reportUser, model.AnalyticsSummary{}, nil, plans, testToday)
	if !errors.Is(err, util.ErrNoQuizData) {
		t.Fatalf("err = %v, want ErrNoQuizData", err)
	}
}

func TestBuildLearningReport(t *testing.T) {
	records := []model.QuizScore{
		score("Python", 70, 2),
		score("Python", 50, 1),
		score("SQL", 90, 0),
		score("SQL", 30, 0),
	}
	summary := Summarize(records, testToday)
	plans := []model.StudyPlan{
		{Goal: "Plan A"}, {Goal: "Plan B"}, {Goal: "Plan C"}, {Goal: "Plan D"},
	}

	report, err := BuildLearningReport(reportUser, summary, records, plans, testToday)
	if err != nil {
		t.Fatalf("BuildLearningReport: %v", err)
	}

	if report.Header.UserName != "Alice" || report.Header.TotalQuizzes != 4 {
		t.Errorf("header = %+v", report.Header)
	}

	// 及格线 60：70 和 90 通过，通过率 50%
	var passRate string
	for _, row := range report.Summary {
		if row.Label == "Pass Rate" {
			passRate = row.Value
		}
	}
	if passRate != "50.0%" {
		t.Errorf("pass rate = %q, want 50.0%%", passRate)
	}

	// 主题行保持首次出现顺序
	if len(report.Topics) != 2 || report.Topics[0].Topic != "Python" || report.Topics[1].Topic != "SQL" {
		t.Errorf("topics = %+v", report.Topics)
	}

	// 最多列 3 份计划
	if len(report.Plans) != 3 || report.Plans[2].Goal != "Plan C" {
		t.Errorf("plans = %+v", report.Plans)
	}

	if len(report.Footer) == 0 || report.Footer[0] != "Generated by AI Learning Coach" {
		t.Errorf("footer = %v", report.Footer)
	}
}

func TestBuildLearningReportConsistencyRecommendation(t *testing.T) {
	var records []model.QuizScore
	for i := 0; i < 10; i++ {
		records = append(records, score("Go", 70, i))
	}
	summary := Summarize(records, testToday)

	report, err := BuildLearningReport(reportUser, summary, records, nil, testToday)
	if err != nil {
		t.Fatalf("BuildLearningReport: %v", err)
	}

	found := false
	for _, rec := range report.Recommendations {
		if rec.Type == "consistency" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected consistency recommendation at 10 quizzes, got %+v", report.Recommendations)
	}
}

func TestBuildLearningReportTruncatesLongTopics(t *testing.T) {
	long := strings.Repeat("x", 40)
	records := []model.QuizScore{score(long, 80, 0)}
	summary := Summarize(records, testToday)

	report, err := BuildLearningReport(reportUser, summary, records, nil, testToday)
	if err != nil {
		t.Fatalf("BuildLearningReport: %v", err)
	}

	got := report.Topics[0].Topic
	if got != strings.Repeat("x", 25)+"..." {
		t.Errorf("topic = %q, want 25 chars plus ellipsis", got)
	}
}

func TestEllipsize(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-ten.", 12, "exactly-ten."},
		{"abcdefghij", 5, "abcde..."},
		{"数据库原理与实践", 4, "数据库原..."},
	}
	for _, tt := range tests {
		if got := ellipsize(tt.in, tt.n); got != tt.want {
			t.Errorf("ellipsize(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestRenderPDF(t *testing.T) {
	records := []model.QuizScore{score("Go", 85, 0)}
	summary := Summarize(records, testToday)

	report, err := BuildLearningReport(reportUser, summary, records, []model.StudyPlan{{Goal: "Learn Go", UUIDBase: model.UUIDBase{CreatedAt: time.Now()}}}, testToday)
	if err != nil {
		t.Fatalf("BuildLearningReport: %v", err)
	}

	pdfBytes, err := RenderPDF(report)
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if len(pdfBytes) == 0 {
		t.Fatal("empty PDF output")
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF: %q", pdfBytes[:8])
	}
}
