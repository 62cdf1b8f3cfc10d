package model

import (
	"time"
)

// ReportHeader 报告头部：用户身份与核心指标
type ReportHeader struct {
	Title        string    `json:"title"`
	UserName     string    `json:"user_name"`
	UserEmail    string    `json:"user_email"`
	GeneratedAt  time.Time `json:"generated_at"`
	TotalQuizzes int       `json:"total_quizzes"`
	AverageScore float64   `json:"average_score"`
}

// ReportSummaryRow 概览表中的一行（标签 + 已格式化的值）
type ReportSummaryRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ReportTopicRow 主题明细表中的一行
type ReportTopicRow struct {
	Topic    string  `json:"topic"`
	Average  float64 `json:"average"`
	Attempts int     `json:"attempts"`
	Best     float64 `json:"best"`
	Worst    float64 `json:"worst"`
}

// ReportPlanEntry 报告中列出的学习计划条目
type ReportPlanEntry struct {
	Goal      string    `json:"goal"`
	CreatedAt time.Time `json:"created_at"`
}

// LearningReport 结构化报告文档，渲染器按节顺序排版
type LearningReport struct {
	Header          ReportHeader       `json:"header"`
	Summary         []ReportSummaryRow `json:"summary"`
	Topics          []ReportTopicRow   `json:"topics"`
	Plans           []ReportPlanEntry  `json:"plans"`
	Recommendations []Recommendation   `json:"recommendations"`
	Footer          []string           `json:"footer"`
}
