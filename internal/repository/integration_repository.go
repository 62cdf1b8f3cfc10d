package repository

import (
	"learning_coach_backend/internal/model"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type IntegrationRepository struct {
	DB *gorm.DB
}

func NewIntegrationRepository(db *gorm.DB) *IntegrationRepository {
	return &IntegrationRepository{DB: db}
}

// Save 创建或整体覆盖某平台的绑定（每用户每平台至多一行）
func (r *IntegrationRepository) Save(account *model.IntegrationAccount) error {
	existing, err := r.FindByUserAndPlatform(account.UserID, account.Platform)
	if err == nil && existing != nil {
		account.ID = existing.ID
		account.CreatedAt = existing.CreatedAt
		return r.DB.Save(account).Error
	}
	return r.DB.Create(account).Error
}

func (r *IntegrationRepository) FindByUserAndPlatform(userID uint, platform model.Platform) (*model.IntegrationAccount, error) {
	var account model.IntegrationAccount
	err := r.DB.Where("user_id = ? AND platform = ?", userID, platform).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *IntegrationRepository) ListByUser(userID uint) ([]model.IntegrationAccount, error) {
	var accounts []model.IntegrationAccount
	err := r.DB.Where("user_id = ?", userID).Find(&accounts).Error
	return accounts, err
}

// UpdateSnapshot 同步完成后整体覆盖活动快照并打同步时间戳
func (r *IntegrationRepository) UpdateSnapshot(userID uint, platform model.Platform, data datatypes.JSON, syncedAt time.Time) error {
	return r.DB.Model(&model.IntegrationAccount{}).
		Where("user_id = ? AND platform = ?", userID, platform).
		Updates(map[string]interface{}{
			"activity_data": data,
			"last_sync":     syncedAt,
		}).Error
}

// Delete 断开平台连接，整行删除
func (r *IntegrationRepository) Delete(userID uint, platform model.Platform) error {
	return r.DB.Where("user_id = ? AND platform = ?", userID, platform).
		Unscoped().
		Delete(&model.IntegrationAccount{}).Error
}
