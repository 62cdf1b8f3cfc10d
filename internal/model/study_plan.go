package model

import (
	"gorm.io/datatypes"
)

// 计划内容的两种形态：结构化 JSON 计划，或模型降级后的纯文本
const (
	PlanContentStructured = "structured"
	PlanContentFreeText   = "free_text"
)

// PlanModule 学习计划中的一个学习单元
type PlanModule struct {
	Title    string   `json:"title"`
	Duration string   `json:"duration"`
	Topics   []string `json:"topics"`
	Goal     string   `json:"goal"`
}

// PlanResource 计划推荐的学习资料
type PlanResource struct {
	Title string `json:"title"`
	Type  string `json:"type"`
	URL   string `json:"url"`
}

// PlanContent 学习计划内容的带标签变体。Type 决定哪些字段有效：
// structured 使用除 Text 外的全部字段，free_text 只使用 Text。
type PlanContent struct {
	Type       string         `json:"type"`
	Overview   string         `json:"overview,omitempty"`
	Duration   string         `json:"duration,omitempty"`
	Difficulty string         `json:"difficulty,omitempty"`
	Modules    []PlanModule   `json:"modules"`
	Milestones []string       `json:"milestones"`
	Resources  []PlanResource `json:"resources"`
	Tips       []string       `json:"tips"`
	Text       string         `json:"text,omitempty"`
}

// FreeTextPlan 构造降级形态，保持列表为空切片而不是 nil
func FreeTextPlan(text string) PlanContent {
	return PlanContent{
		Type:       PlanContentFreeText,
		Modules:    []PlanModule{},
		Milestones: []string{},
		Resources:  []PlanResource{},
		Tips:       []string{},
		Text:       text,
	}
}

// StudyPlan 用户的学习计划，内容生成后只读，进度标记除外
// swagger:model StudyPlan
type StudyPlan struct {
	UUIDBase
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	Goal      string         `gorm:"size:255;not null" json:"goal"`
	Content   datatypes.JSON `gorm:"type:json" json:"content"`
	Completed bool           `gorm:"default:false" json:"completed"`
}

func (StudyPlan) TableName() string {
	return "study_plans"
}

// PlanStatistics 计划的派生统计信息
type PlanStatistics struct {
	ModuleCount         int `json:"module_count"`
	TopicCount          int `json:"topic_count"`
	EstimatedReadingMin int `json:"estimated_reading_min"`
	ResourceCount       int `json:"resource_count"`
	LinkCount           int `json:"link_count"`
}
