package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"learning_coach_backend/internal/model"
	"learning_coach_backend/internal/repository"
	"learning_coach_backend/internal/util"
	"learning_coach_backend/pkg/logger"
	"sort"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 活动快照的缓存时长，窗口内重复同步不再请求上游
const activityCacheTTL = 15 * time.Minute

type IntegrationService struct {
	IntegrationRepo *repository.IntegrationRepository
	GitHub          *GitHubService
	Udemy           *UdemyService
	Calendar        *CalendarService
	Redis           *redis.Client
}

func NewIntegrationService(
	integrationRepo *repository.IntegrationRepository,
	github *GitHubService,
	udemy *UdemyService,
	calendar *CalendarService,
	rdb *redis.Client,
) *IntegrationService {
	return &IntegrationService{
		IntegrationRepo: integrationRepo,
		GitHub:          github,
		Udemy:           udemy,
		Calendar:        calendar,
		Redis:           rdb,
	}
}

// SyncResult 单个平台的同步结果
type SyncResult struct {
	Platform model.Platform  `json:"platform"`
	Success  bool            `json:"success"`
	Error    string          `json:"error,omitempty"`
	Activity json.RawMessage `json:"activity,omitempty"`
	SyncedAt time.Time       `json:"synced_at"`
}

// ConnectGitHub 校验个人令牌并绑定账号，用户名取自接口返回
func (s *IntegrationService) ConnectGitHub(userID uint, token string) (*GitHubUser, error) {
	user, err := s.GitHub.Authenticate(token)
	if err != nil {
		return nil, err
	}

	creds, err := json.Marshal(model.GitHubCredentials{Username: user.Login, Token: token})
	if err != nil {
		return nil, err
	}

	account := &model.IntegrationAccount{
		UserID:        userID,
		Platform:      model.PlatformGitHub,
		Authenticated: true,
		Credentials:   datatypes.JSON(creds),
	}
	if err := s.IntegrationRepo.Save(account); err != nil {
		return nil, err
	}
	return user, nil
}

// ConnectUdemy 用 API 凭据换取令牌验证后绑定账号
func (s *IntegrationService) ConnectUdemy(userID uint, clientID, clientSecret string) error {
	udemyCreds := model.UdemyCredentials{ClientID: clientID, ClientSecret: clientSecret}
	if err := s.Udemy.Authenticate(udemyCreds); err != nil {
		return err
	}

	creds, err := json.Marshal(udemyCreds)
	if err != nil {
		return err
	}

	account := &model.IntegrationAccount{
		UserID:        userID,
		Platform:      model.PlatformUdemy,
		Authenticated: true,
		Credentials:   datatypes.JSON(creds),
	}
	return s.IntegrationRepo.Save(account)
}

// ConnectCalendar 校验 OAuth 令牌仍可访问日历后绑定账号
func (s *IntegrationService) ConnectCalendar(ctx context.Context, userID uint, calendarCreds model.CalendarCredentials) error {
	if err := s.Calendar.Authenticate(ctx, calendarCreds); err != nil {
		return err
	}

	creds, err := json.Marshal(calendarCreds)
	if err != nil {
		return err
	}

	account := &model.IntegrationAccount{
		UserID:        userID,
		Platform:      model.PlatformGoogleCalendar,
		Authenticated: true,
		Credentials:   datatypes.JSON(creds),
	}
	return s.IntegrationRepo.Save(account)
}

// Disconnect 解除绑定并清掉缓存的活动快照
func (s *IntegrationService) Disconnect(ctx context.Context, userID uint, platform model.Platform) error {
	if err := s.IntegrationRepo.Delete(userID, platform); err != nil {
		return err
	}
	if s.Redis != nil {
		s.Redis.Del(ctx, activityCacheKey(userID, platform))
	}
	return nil
}

// Status 三个平台的连接状态，未绑定的平台也出现在结果里
func (s *IntegrationService) Status(userID uint) ([]model.ConnectionStatus, error) {
	accounts, err := s.IntegrationRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	byPlatform := make(map[model.Platform]model.IntegrationAccount, len(accounts))
	for _, a := range accounts {
		byPlatform[a.Platform] = a
	}

	platforms := []model.Platform{model.PlatformGitHub, model.PlatformGoogleCalendar, model.PlatformUdemy}
	statuses := make([]model.ConnectionStatus, 0, len(platforms))
	for _, p := range platforms {
		status := model.ConnectionStatus{Platform: p}
		if a, ok := byPlatform[p]; ok {
			status.Connected = true
			status.Authenticated = a.Authenticated
			status.LastSync = a.LastSync
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// SyncPlatform 拉取单个平台的活动快照并落库，缓存未过期时直接返回缓存
func (s *IntegrationService) SyncPlatform(ctx context.Context, userID uint, platform model.Platform) (json.RawMessage, error) {
	account, err := s.IntegrationRepo.FindByUserAndPlatform(userID, platform)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotConnected
	}
	if err != nil {
		return nil, err
	}
	if !account.Authenticated {
		return nil, util.ErrNotConnected
	}

	// 1. 缓存命中直接返回
	cacheKey := activityCacheKey(userID, platform)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Bytes(); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	// 2. 按平台拉取活动快照
	snapshot, err := s.fetchActivity(ctx, account)
	if err != nil {
		return nil, err
	}

	// 3. 落库并写缓存
	now := time.Now()
	if err := s.IntegrationRepo.UpdateSnapshot(userID, platform, datatypes.JSON(snapshot), now); err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := s.Redis.Set(ctx, cacheKey, []byte(snapshot), activityCacheTTL).Err(); err != nil {
			logger.Log.Warn("写入活动缓存失败", zap.String("platform", string(platform)), zap.Error(err))
		}
	}

	return snapshot, nil
}

// SyncAll 并发同步所有已连接平台，单个平台失败不影响其它平台
func (s *IntegrationService) SyncAll(ctx context.Context, userID uint) []SyncResult {
	accounts, err := s.IntegrationRepo.ListByUser(userID)
	if err != nil {
		logger.Log.Error("读取平台绑定失败", zap.Uint("user_id", userID), zap.Error(err))
		return []SyncResult{}
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make([]SyncResult, 0, len(accounts))
	)

	for _, account := range accounts {
		if !account.Authenticated {
			continue
		}

		wg.Add(1)
		go func(platform model.Platform) {
			defer wg.Done()

			result := SyncResult{Platform: platform, SyncedAt: time.Now()}
			if snapshot, err := s.SyncPlatform(ctx, userID, platform); err != nil {
				result.Error = err.Error()
				logger.Log.Warn("平台同步失败",
					zap.String("platform", string(platform)),
					zap.Uint("user_id", userID),
					zap.Error(err))
			} else {
				result.Success = true
				result.Activity = snapshot
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}(account.Platform)
	}

	wg.Wait()
	sort.Slice(results, func(i, j int) bool { return results[i].Platform < results[j].Platform })
	return results
}

// GetActivity 读取已存储的活动快照，没同步过按未连接处理
func (s *IntegrationService) GetActivity(userID uint, platform model.Platform) (json.RawMessage, *time.Time, error) {
	account, err := s.IntegrationRepo.FindByUserAndPlatform(userID, platform)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, util.ErrNotConnected
	}
	if err != nil {
		return nil, nil, err
	}
	if !account.Authenticated || len(account.ActivityData) == 0 {
		return nil, nil, util.ErrNotConnected
	}
	return json.RawMessage(account.ActivityData), account.LastSync, nil
}

// GetLearningPathSuggestions 基于 GitHub 快照里的语言给出进阶方向
func (s *IntegrationService) GetLearningPathSuggestions(userID uint) ([]string, error) {
	raw, _, err := s.GetActivity(userID, model.PlatformGitHub)
	if err != nil {
		return nil, err
	}

	var activity model.GitHubActivity
	if err := json.Unmarshal(raw, &activity); err != nil {
		return nil, err
	}

	languages := make([]string, 0, len(activity.LanguagesUsed))
	for lang := range activity.LanguagesUsed {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return SuggestLearningPaths(languages), nil
}

// CreateStudyEvent 在用户主日历创建学习日程
func (s *IntegrationService) CreateStudyEvent(ctx context.Context, userID uint, title, description string, start time.Time, durationHours int) (*model.CalendarEvent, error) {
	creds, err := s.calendarCredentials(userID)
	if err != nil {
		return nil, err
	}
	return s.Calendar.CreateStudyEvent(ctx, *creds, title, description, start, durationHours)
}

// UpcomingEvents 用户主日历未来 days 天的日程
func (s *IntegrationService) UpcomingEvents(ctx context.Context, userID uint, days int) ([]model.CalendarEvent, error) {
	creds, err := s.calendarCredentials(userID)
	if err != nil {
		return nil, err
	}
	return s.Calendar.UpcomingEvents(ctx, *creds, days)
}

func (s *IntegrationService) calendarCredentials(userID uint) (*model.CalendarCredentials, error) {
	account, err := s.IntegrationRepo.FindByUserAndPlatform(userID, model.PlatformGoogleCalendar)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotConnected
	}
	if err != nil {
		return nil, err
	}
	if !account.Authenticated {
		return nil, util.ErrNotConnected
	}

	var creds model.CalendarCredentials
	if err := json.Unmarshal(account.Credentials, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func (s *IntegrationService) fetchActivity(ctx context.Context, account *model.IntegrationAccount) ([]byte, error) {
	switch account.Platform {
	case model.PlatformGitHub:
		var creds model.GitHubCredentials
		if err := json.Unmarshal(account.Credentials, &creds); err != nil {
			return nil, err
		}
		activity, err := s.GitHub.FetchActivity(creds)
		if err != nil {
			return nil, err
		}
		return json.Marshal(activity)

	case model.PlatformUdemy:
		var creds model.UdemyCredentials
		if err := json.Unmarshal(account.Credentials, &creds); err != nil {
			return nil, err
		}
		activity, err := s.Udemy.FetchActivity(creds)
		if err != nil {
			return nil, err
		}
		return json.Marshal(activity)

	case model.PlatformGoogleCalendar:
		var creds model.CalendarCredentials
		if err := json.Unmarshal(account.Credentials, &creds); err != nil {
			return nil, err
		}
		activity, err := s.Calendar.FetchActivity(ctx, creds)
		if err != nil {
			return nil, err
		}
		return json.Marshal(activity)
	}

	return nil, util.ErrPlatformUnknown
}

func activityCacheKey(userID uint, platform model.Platform) string {
	return fmt.Sprintf("integration:activity:%d:%s", userID, platform)
}
