package service

import (
	"learning_coach_backend/internal/model"
	"math"
	"reflect"
	"testing"
	"time"
)

var testToday = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func score(topic string, percentage float64, daysAgo int) model.QuizScore {
	return model.QuizScore{
		Topic:       topic,
		Percentage:  percentage,
		CompletedAt: testToday.AddDate(0, 0, -daysAgo),
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, testToday)

	if summary.TotalQuizzes != 0 || summary.AverageScore != 0 || summary.CurrentStreakDays != 0 {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
	if summary.BestTopic != "" || summary.WorstTopic != "" {
		t.Fatalf("expected empty topics, got best=%q worst=%q", summary.BestTopic, summary.WorstTopic)
	}
	if summary.TopicsStudied == nil || len(summary.TopicsStudied) != 0 {
		t.Fatalf("TopicsStudied must be an empty slice, got %#v", summary.TopicsStudied)
	}
}

func TestSummarize(t *testing.T) {
	records := []model.QuizScore{
		score("Python", 80, 0),
		score("Python", 90, 0),
		score("SQL", 40, 1),
		score("SQL", 60, 2),
	}

	summary := Summarize(records, testToday)

	if summary.TotalQuizzes != 4 {
		t.Errorf("TotalQuizzes = %d, want 4", summary.TotalQuizzes)
	}
	if !almostEqual(summary.AverageScore, 67.5) {
		t.Errorf("AverageScore = %v, want 67.5", summary.AverageScore)
	}
	if !reflect.DeepEqual(summary.TopicsStudied, []string{"Python", "SQL"}) {
		t.Errorf("TopicsStudied = %v", summary.TopicsStudied)
	}
	if summary.BestTopic != "Python" {
		t.Errorf("BestTopic = %q, want Python", summary.BestTopic)
	}
	if summary.WorstTopic != "SQL" {
		t.Errorf("WorstTopic = %q, want SQL", summary.WorstTopic)
	}
	if summary.CurrentStreakDays != 3 {
		t.Errorf("CurrentStreakDays = %d, want 3", summary.CurrentStreakDays)
	}
}

func TestSummarizeTieKeepsFirstSeenTopic(t *testing.T) {
	records := []model.QuizScore{
		score("Go", 70, 0),
		score("Rust", 70, 0),
	}

	summary := Summarize(records, testToday)

	if summary.BestTopic != "Go" {
		t.Errorf("BestTopic = %q, want first-seen Go", summary.BestTopic)
	}
	if summary.WorstTopic != "Go" {
		t.Errorf("WorstTopic = %q, want first-seen Go", summary.WorstTopic)
	}
}

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name    string
		daysAgo []int
		want    int
	}{
		{"three consecutive days from today", []int{0, 1, 2}, 3},
		{"gap breaks the chain", []int{0, 2}, 1},
		{"chain may start yesterday", []int{1, 2}, 2},
		{"stale history counts zero", []int{3, 4, 5}, 0},
		{"no records", nil, 0},
		{"duplicate days count once", []int{0, 0, 1, 1}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []model.QuizScore
			for _, d := range tt.daysAgo {
				records = append(records, score("Go", 80, d))
			}
			if got := ComputeStreak(records, testToday); got != tt.want {
				t.Errorf("ComputeStreak = %d, want %d", got, tt.want)
			}
			// 纯函数，重复计算结果一致
			if got := ComputeStreak(records, testToday); got != tt.want {
				t.Errorf("second ComputeStreak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTopicPerformance(t *testing.T) {
	records := []model.QuizScore{
		score("Python", 80, 0),
		score("SQL", 40, 1),
		score("Python", 60, 2),
	}

	perf, order := TopicPerformance(records)

	if !reflect.DeepEqual(order, []string{"Python", "SQL"}) {
		t.Fatalf("order = %v", order)
	}

	py := perf["Python"]
	if py.Count != 2 || !almostEqual(py.Average, 70) || !almostEqual(py.Best, 80) || !almostEqual(py.Worst, 60) {
		t.Errorf("Python stats = %+v", py)
	}
	sql := perf["SQL"]
	if sql.Count != 1 || !almostEqual(sql.Average, 40) {
		t.Errorf("SQL stats = %+v", sql)
	}
}

func TestBuildRecommendations(t *testing.T) {
	tests := []struct {
		name      string
		summary   model.AnalyticsSummary
		wantTypes []string
	}{
		{
			"low average suggests fundamentals",
			model.AnalyticsSummary{AverageScore: 45, WorstTopic: "SQL"},
			[]string{"improvement", "focus_area"},
		},
		{
			"high average suggests advancement",
			model.AnalyticsSummary{AverageScore: 85, WorstTopic: "SQL"},
			[]string{"advancement", "focus_area"},
		},
		{
			"middle average only targets weak topic",
			model.AnalyticsSummary{AverageScore: 70, WorstTopic: "SQL"},
			[]string{"focus_area"},
		},
		{
			"empty summary yields nothing",
			model.AnalyticsSummary{AverageScore: 70},
			[]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := BuildRecommendations(tt.summary)
			types := make([]string, 0, len(recs))
			for _, r := range recs {
				types = append(types, r.Type)
			}
			if !reflect.DeepEqual(types, tt.wantTypes) {
				t.Errorf("types = %v, want %v", types, tt.wantTypes)
			}
		})
	}
}

func TestDailyActivityZeroFills(t *testing.T) {
	records := []model.QuizScore{
		score("Go", 80, 0),
		score("Go", 70, 0),
		score("Go", 60, 2),
	}

	activity := DailyActivity(records, testToday, 3)

	if len(activity) != 3 {
		t.Fatalf("len = %d, want 3", len(activity))
	}
	wantCounts := []int{1, 0, 2}
	for i, day := range activity {
		if day.Count != wantCounts[i] {
			t.Errorf("day %s count = %d, want %d", day.Date, day.Count, wantCounts[i])
		}
	}
	if activity[2].Date != testToday.Format("2006-01-02") {
		t.Errorf("last entry = %s, want today", activity[2].Date)
	}
}

func TestBestStudyDay(t *testing.T) {
	if got := BestStudyDay(nil); got != "" {
		t.Errorf("BestStudyDay(nil) = %q, want empty", got)
	}

	// 2026-03-10 是周二；周一两条均分 80，周二一条 90
	records := []model.QuizScore{
		score("Go", 90, 0),
		score("Go", 80, 1),
		score("Go", 80, 8),
	}
	if got := BestStudyDay(records); got != "Tuesday" {
		t.Errorf("BestStudyDay = %q, want Tuesday", got)
	}

	// 次数多但均分低的星期不该赢
	records = []model.QuizScore{
		score("Go", 50, 1),
		score("Go", 50, 8),
		score("Go", 90, 0),
	}
	if got := BestStudyDay(records); got != "Tuesday" {
		t.Errorf("BestStudyDay = %q, want Tuesday (highest average)", got)
	}
}

func TestImprovementTrend(t *testing.T) {
	tests := []struct {
		name      string
		scores    []float64
		wantTrend string
	}{
		{"single record is stable", []float64{50}, "stable"},
		{"rising scores improve", []float64{40, 45, 50, 80, 85, 90}, "improving"},
		{"falling scores decline", []float64{90, 85, 80, 50, 45, 40}, "declining"},
		{"flat scores stay stable", []float64{70, 70, 70, 70}, "stable"},
		{"plus five exactly stays stable", []float64{70, 70, 70, 70, 70, 75, 75, 75, 75, 75}, "stable"},
		{"minus five exactly stays stable", []float64{75, 75, 75, 75, 75, 70, 70, 70, 70, 70}, "stable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]model.QuizScore, len(tt.scores))
			for i, s := range tt.scores {
				records[i] = score("Go", s, len(tt.scores)-i)
			}
			trend, _ := ImprovementTrend(records)
			if trend != tt.wantTrend {
				t.Errorf("trend = %q, want %q", trend, tt.wantTrend)
			}
		})
	}
}

func TestDifficultyDistribution(t *testing.T) {
	records := []model.QuizScore{
		score("Go", 30, 0),
		score("Go", 55, 0),
		score("Go", 75, 0),
		score("Go", 95, 0),
		score("Go", 80, 0),
	}

	buckets := DifficultyDistribution(records)

	wantCounts := []int{1, 1, 1, 2}
	for i, b := range buckets {
		if b.Count != wantCounts[i] {
			t.Errorf("%s count = %d, want %d", b.Label, b.Count, wantCounts[i])
		}
	}
}

func TestDaysSinceLastQuiz(t *testing.T) {
	if got := DaysSinceLastQuiz(nil, testToday); got != -1 {
		t.Errorf("no records: got %d, want -1", got)
	}

	records := []model.QuizScore{score("Go", 80, 4), score("Go", 80, 2)}
	if got := DaysSinceLastQuiz(records, testToday); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}
