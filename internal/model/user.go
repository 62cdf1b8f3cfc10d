package model

import (
	"time"
)

// swagger:model User
type User struct {
	BaseModel
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;unique;not null" json:"email"`
	Password     string    `gorm:"size:100;not null" json:"-"`
	LastLogin    time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"last_login"`
	LastActiveAt time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"last_active_at"`
}

func (User) TableName() string {
	return "users"
}
