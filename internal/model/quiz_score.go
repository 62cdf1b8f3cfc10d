package model

import (
	"time"
)

// QuizScore 记录用户一次测验的成绩，创建后不可变更
// swagger:model QuizScore
type QuizScore struct {
	BaseModel
	UserID         uint      `gorm:"index:idx_user_completed;not null" json:"user_id"`
	Topic          string    `gorm:"size:100;not null" json:"topic"`
	Score          int       `gorm:"not null" json:"score"`
	TotalQuestions int       `gorm:"not null" json:"total_questions"`
	Percentage     float64   `gorm:"not null" json:"percentage"`
	CompletedAt    time.Time `gorm:"index:idx_user_completed;not null" json:"completed_at"`
}

func (QuizScore) TableName() string {
	return "quiz_scores"
}

// QuizQuestion 生成服务返回的单道选择题，CorrectAnswer 为选项下标
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// GeneratedQuiz 等待提交的测验，短期缓存于 Redis
type GeneratedQuiz struct {
	ID         string         `json:"id"`
	UserID     uint           `json:"user_id"`
	Topic      string         `json:"topic"`
	Difficulty string         `json:"difficulty"`
	Questions  []QuizQuestion `json:"questions"`
	CreatedAt  time.Time      `json:"created_at"`
}

// QuestionResult 单题判分结果，答案同时给出下标和原文
type QuestionResult struct {
	Question      string `json:"question"`
	Selected      int    `json:"selected"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Correct       bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

// GradedQuiz 整卷判分结果
type GradedQuiz struct {
	Topic      string           `json:"topic"`
	Score      int              `json:"score"`
	Total      int              `json:"total"`
	Percentage float64          `json:"percentage"`
	Feedback   string           `json:"feedback"`
	Results    []QuestionResult `json:"results"`
}
