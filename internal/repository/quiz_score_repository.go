package repository

import (
	"learning_coach_backend/internal/model"

	"gorm.io/gorm"
)

type QuizScoreRepository struct {
	DB *gorm.DB
}

// NewQuizScoreRepository 创建测验成绩仓库实例
func NewQuizScoreRepository(db *gorm.DB) *QuizScoreRepository {
	return &QuizScoreRepository{DB: db}
}

// Create 写入一条成绩，成绩记录创建后不再修改
func (r *QuizScoreRepository) Create(score *model.QuizScore) error {
	return r.DB.Create(score).Error
}

// ListByUser 按完成时间升序返回用户的全部成绩
func (r *QuizScoreRepository) ListByUser(userID uint) ([]model.QuizScore, error) {
	var scores []model.QuizScore
	err := r.DB.Where("user_id = ?", userID).Order("completed_at ASC").Find(&scores).Error
	return scores, err
}

// ListRecent 按完成时间降序返回最近 limit 条成绩
func (r *QuizScoreRepository) ListRecent(userID uint, limit int) ([]model.QuizScore, error) {
	var scores []model.QuizScore
	err := r.DB.Where("user_id = ?", userID).Order("completed_at DESC").Limit(limit).Find(&scores).Error
	return scores, err
}

// CountByUser 用户完成的测验总数
func (r *QuizScoreRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizScore{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
