package service

import (
	"context"
	"encoding/json"
	"errors"
	"learning_coach_backend/internal/model"
	"learning_coach_backend/internal/repository"
	"learning_coach_backend/internal/util"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PlanService struct {
	PlanRepo *repository.StudyPlanRepository
	AI       *AIService
}

func NewPlanService(planRepo *repository.StudyPlanRepository, ai *AIService) *PlanService {
	return &PlanService{PlanRepo: planRepo, AI: ai}
}

// GeneratePlan 生成学习计划并落库，内容以 JSON 形式整体存储
func (s *PlanService) GeneratePlan(ctx context.Context, userID uint, goal, level, timeCommitment, extra string) (*model.StudyPlan, error) {
	content, err := s.AI.GenerateStudyPlan(ctx, goal, level, timeCommitment, extra)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}

	plan := &model.StudyPlan{
		UserID:  userID,
		Goal:    goal,
		Content: datatypes.JSON(raw),
	}
	if err := s.PlanRepo.Create(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) ListPlans(userID uint) ([]model.StudyPlan, error) {
	return s.PlanRepo.ListByUser(userID)
}

func (s *PlanService) GetPlan(userID uint, id string) (*model.StudyPlan, error) {
	plan, err := s.PlanRepo.FindByID(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) SetCompleted(userID uint, id string, completed bool) error {
	if _, err := s.GetPlan(userID, id); err != nil {
		return err
	}
	return s.PlanRepo.UpdateCompleted(id, userID, completed)
}

func (s *PlanService) DeletePlan(userID uint, id string) error {
	if _, err := s.GetPlan(userID, id); err != nil {
		return err
	}
	return s.PlanRepo.Delete(id, userID)
}

// GetStatistics 计划内容的派生统计
func (s *PlanService) GetStatistics(userID uint, id string) (*model.PlanStatistics, error) {
	plan, err := s.GetPlan(userID, id)
	if err != nil {
		return nil, err
	}

	var content model.PlanContent
	if err := json.Unmarshal(plan.Content, &content); err != nil {
		return nil, err
	}

	stats := ComputePlanStatistics(content)
	return &stats, nil
}

// ComputePlanStatistics 统计计划的模块、主题、资源数量并估算阅读时长
func ComputePlanStatistics(content model.PlanContent) model.PlanStatistics {
	stats := model.PlanStatistics{
		ModuleCount:   len(content.Modules),
		ResourceCount: len(content.Resources),
	}

	words := wordCount(content.Overview) + wordCount(content.Text)
	for _, m := range content.Modules {
		stats.TopicCount += len(m.Topics)
		words += wordCount(m.Title) + wordCount(m.Goal)
		for _, t := range m.Topics {
			words += wordCount(t)
		}
	}
	for _, milestone := range content.Milestones {
		words += wordCount(milestone)
	}
	for _, tip := range content.Tips {
		words += wordCount(tip)
	}
	for _, r := range content.Resources {
		words += wordCount(r.Title)
		if r.URL != "" {
			stats.LinkCount++
		}
	}

	// 按每分钟 200 词估算，至少 1 分钟
	stats.EstimatedReadingMin = words / 200
	if stats.EstimatedReadingMin < 1 {
		stats.EstimatedReadingMin = 1
	}
	return stats
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
