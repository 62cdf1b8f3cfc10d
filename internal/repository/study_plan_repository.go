package repository

import (
	"learning_coach_backend/internal/model"

	"gorm.io/gorm"
)

type StudyPlanRepository struct {
	DB *gorm.DB
}

func NewStudyPlanRepository(db *gorm.DB) *StudyPlanRepository {
	return &StudyPlanRepository{DB: db}
}

func (r *StudyPlanRepository) Create(plan *model.StudyPlan) error {
	return r.DB.Create(plan).Error
}

// FindByID 按主键查询，并校验归属用户
func (r *StudyPlanRepository) FindByID(id string, userID uint) (*model.StudyPlan, error) {
	var plan model.StudyPlan
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListByUser 按创建时间降序返回用户的学习计划
func (r *StudyPlanRepository) ListByUser(userID uint) ([]model.StudyPlan, error) {
	var plans []model.StudyPlan
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&plans).Error
	return plans, err
}

// ListRecent 最近 limit 份计划，报告只取前 3 份
func (r *StudyPlanRepository) ListRecent(userID uint, limit int) ([]model.StudyPlan, error) {
	var plans []model.StudyPlan
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&plans).Error
	return plans, err
}

func (r *StudyPlanRepository) UpdateCompleted(id string, userID uint, completed bool) error {
	return r.DB.Model(&model.StudyPlan{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("completed", completed).
		Error
}

func (r *StudyPlanRepository) Delete(id string, userID uint) error {
	return r.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&model.StudyPlan{}).Error
}

func (r *StudyPlanRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.StudyPlan{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
