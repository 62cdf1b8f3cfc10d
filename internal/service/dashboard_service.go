package service

import (
	"learning_coach_backend/internal/model"
	"learning_coach_backend/internal/repository"
	"time"
)

// 首页展示的最近成绩条数
const dashboardRecentScores = 5

type DashboardService struct {
	QuizScoreRepo   *repository.QuizScoreRepository
	PlanRepo        *repository.StudyPlanRepository
	IntegrationRepo *repository.IntegrationRepository
}

func NewDashboardService(
	quizScoreRepo *repository.QuizScoreRepository,
	planRepo *repository.StudyPlanRepository,
	integrationRepo *repository.IntegrationRepository,
) *DashboardService {
	return &DashboardService{
		QuizScoreRepo:   quizScoreRepo,
		PlanRepo:        planRepo,
		IntegrationRepo: integrationRepo,
	}
}

// Dashboard 首页概览：近期成绩、总量统计与平台连接状态
type Dashboard struct {
	RecentScores      []model.QuizScore       `json:"recent_scores"`
	TotalQuizzes      int64                   `json:"total_quizzes"`
	PlanCount         int64                   `json:"plan_count"`
	AverageScore      float64                 `json:"average_score"`
	CurrentStreakDays int                     `json:"current_streak_days"`
	Connections       map[model.Platform]bool `json:"connections"`
}

func (s *DashboardService) GetDashboard(userID uint) (*Dashboard, error) {
	records, err := s.QuizScoreRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.QuizScoreRepo.ListRecent(userID, dashboardRecentScores)
	if err != nil {
		return nil, err
	}

	planCount, err := s.PlanRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.IntegrationRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	connections := map[model.Platform]bool{
		model.PlatformGitHub:         false,
		model.PlatformGoogleCalendar: false,
		model.PlatformUdemy:          false,
	}
	for _, a := range accounts {
		connections[a.Platform] = a.Authenticated
	}

	summary := Summarize(records, time.Now())

	return &Dashboard{
		RecentScores:      recent,
		TotalQuizzes:      int64(summary.TotalQuizzes),
		PlanCount:         planCount,
		AverageScore:      summary.AverageScore,
		CurrentStreakDays: summary.CurrentStreakDays,
		Connections:       connections,
	}, nil
}
