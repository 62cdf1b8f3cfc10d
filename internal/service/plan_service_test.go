package service

import (
	"learning_coach_backend/internal/model"
	"strings"
	"testing"
)

func TestComputePlanStatistics(t *testing.T) {
	content := model.PlanContent{
		Type:     model.PlanContentStructured,
		Overview: "Plan overview here.",
		Modules: []model.PlanModule{
			{Title: "Week 1", Topics: []string{"basics", "syntax"}, Goal: "get started"},
			{Title: "Week 2", Topics: []string{"testing"}, Goal: "write tests"},
		},
		Milestones: []string{"finish basics"},
		Resources: []model.PlanResource{
			{Title: "Tutorial", URL: "https://example.com"},
			{Title: "Notes"},
		},
		Tips: []string{"practice daily"},
	}

	stats := ComputePlanStatistics(content)

	if stats.ModuleCount != 2 || stats.TopicCount != 3 {
		t.Errorf("modules/topics = %d/%d", stats.ModuleCount, stats.TopicCount)
	}
	if stats.ResourceCount != 2 || stats.LinkCount != 1 {
		t.Errorf("resources/links = %d/%d", stats.ResourceCount, stats.LinkCount)
	}
	// 字数很少也至少按 1 分钟算
	if stats.EstimatedReadingMin != 1 {
		t.Errorf("EstimatedReadingMin = %d, want 1", stats.EstimatedReadingMin)
	}
}

func TestComputePlanStatisticsReadingTime(t *testing.T) {
	// 500 词的纯文本计划约 2 分钟
	content := model.FreeTextPlan(strings.Repeat("word ", 500))

	stats := ComputePlanStatistics(content)

	if stats.EstimatedReadingMin != 2 {
		t.Errorf("EstimatedReadingMin = %d, want 2", stats.EstimatedReadingMin)
	}
	if stats.ModuleCount != 0 || stats.TopicCount != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestComputePlanStatisticsEmpty(t *testing.T) {
	stats := ComputePlanStatistics(model.PlanContent{})

	if stats.ModuleCount != 0 || stats.ResourceCount != 0 || stats.LinkCount != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.EstimatedReadingMin != 1 {
		t.Errorf("EstimatedReadingMin = %d, want minimum 1", stats.EstimatedReadingMin)
	}
}
