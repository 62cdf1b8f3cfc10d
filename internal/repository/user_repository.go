package repository

import (
	"learning_coach_backend/internal/model"
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	// 确保创建时间被设置
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	// 使用事务来处理插入操作
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			// 如果因为id字段错误失败，回退为手动取号
			if strings.Contains(err.Error(), "Field 'id' doesn't have a default value") {
				var maxID uint
				tx.Model(&model.User{}).Select("MAX(id)").Scan(&maxID)

				user.ID = maxID + 1
				return tx.Create(user).Error
			}
			return err
		}
		return nil
	})
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastActive(userID uint, at time.Time) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_active_at", at).
		Error
}

func (r *UserRepository) UpdatePassword(userID uint, hashed string) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("password", hashed).
		Error
}
