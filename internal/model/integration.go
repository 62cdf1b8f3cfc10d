package model

import (
	"time"

	"gorm.io/datatypes"
)

type Platform string

const (
	PlatformGitHub         Platform = "github"
	PlatformGoogleCalendar Platform = "google_calendar"
	PlatformUdemy          Platform = "udemy"
)

// KnownPlatform 校验路径参数里的平台标识
func KnownPlatform(p string) bool {
	switch Platform(p) {
	case PlatformGitHub, PlatformGoogleCalendar, PlatformUdemy:
		return true
	}
	return false
}

// IntegrationAccount 保存用户与外部平台的绑定关系。
// ActivityData 在每次同步时整体覆盖，断开连接时整行删除。
// swagger:model IntegrationAccount
type IntegrationAccount struct {
	UUIDBase
	UserID        uint           `gorm:"uniqueIndex:idx_user_platform;not null" json:"user_id"`
	Platform      Platform       `gorm:"uniqueIndex:idx_user_platform;size:32;not null" json:"platform"`
	Authenticated bool           `gorm:"default:false" json:"authenticated"`
	Credentials   datatypes.JSON `gorm:"type:json" json:"-"`
	LastSync      *time.Time     `json:"last_sync"`
	ActivityData  datatypes.JSON `gorm:"type:json" json:"activity_data"`
}

func (IntegrationAccount) TableName() string {
	return "integration_accounts"
}

// GitHubCredentials / UdemyCredentials / CalendarCredentials
// 以不透明 JSON 形式存入 Credentials 字段
type GitHubCredentials struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

type UdemyCredentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// CalendarCredentials 为 OAuth2 令牌 JSON（access/refresh token）
type CalendarCredentials struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	Expiry       time.Time `json:"expiry"`
}

// ConnectionStatus 面向客户端的单个平台连接状态
type ConnectionStatus struct {
	Platform      Platform   `json:"platform"`
	Connected     bool       `json:"connected"`
	Authenticated bool       `json:"authenticated"`
	LastSync      *time.Time `json:"last_sync"`
}
