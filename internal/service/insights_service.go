package service

import (
	"encoding/json"
	"errors"
	"learning_coach_backend/internal/model"
	"learning_coach_backend/internal/repository"
	"math"
	"sort"

	"gorm.io/gorm"
)

// GitHubInsightSummary 从活动快照提炼洞察所需的 GitHub 摘要
func GitHubInsightSummary(activity *model.GitHubActivity) *model.GitHubSummary {
	languages := make([]string, 0, len(activity.LanguagesUsed))
	for lang := range activity.LanguagesUsed {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	return &model.GitHubSummary{
		TotalCommits: activity.TotalCommits,
		ActiveRepos:  len(activity.ActiveRepos),
		Languages:    languages,
	}
}

// UdemyInsightSummary 从活动快照提炼洞察所需的 Udemy 摘要
func UdemyInsightSummary(activity *model.UdemyActivity) *model.UdemySummary {
	categories := make([]string, 0, len(activity.Categories))
	for c := range activity.Categories {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	return &model.UdemySummary{
		CoursesCount:   activity.TotalCourses,
		CompletionRate: activity.CompletionRate,
		Categories:     categories,
		LearningHours:  activity.CompletedLearningHours,
	}
}

// CrossPlatformRecommendations 跨平台建议。双平台规则优先，
// 只有单平台时建议补全另一平台
func CrossPlatformRecommendations(github *model.GitHubSummary, udemy *model.UdemySummary) []model.InsightRecommendation {
	recommendations := []model.InsightRecommendation{}

	switch {
	case github != nil && udemy != nil:
		if hasString(github.Languages, "Python") && !hasString(udemy.Categories, "Data Science") {
			recommendations = append(recommendations, model.InsightRecommendation{
				Type:   "course_suggestion",
				Title:  "Complete a Data Science course",
				Reason: "You are active in Python - perfect for Data Science!",
			})
		}
		if github.TotalCommits > 50 && !hasString(udemy.Categories, "DevOps") {
			recommendations = append(recommendations, model.InsightRecommendation{
				Type:   "skill_development",
				Title:  "Learn DevOps and CI/CD",
				Reason: "Your high coding activity suggests you'd benefit from DevOps skills",
			})
		}
	case udemy != nil:
		recommendations = append(recommendations, model.InsightRecommendation{
			Type:   "platform_integration",
			Title:  "Connect your GitHub account",
			Reason: "Track your coding progress alongside your courses",
		})
	case github != nil:
		recommendations = append(recommendations, model.InsightRecommendation{
			Type:   "learning_enhancement",
			Title:  "Add structured learning with online courses",
			Reason: "Complement your coding with formal education",
		})
	}

	return recommendations
}

// OverallScore 按加法模型计算综合学习分：提交量最多 30 分，
// 每种语言 5 分，完课率折半最多 50 分，每个课程类别 3 分，
// 四舍五入后截断到 100。缺失的平台贡献 0 分
func OverallScore(github *model.GitHubSummary, udemy *model.UdemySummary) int {
	var score float64

	if github != nil {
		commitScore := float64(github.TotalCommits) / 10
		if commitScore > 30 {
			commitScore = 30
		}
		score += commitScore + 5*float64(len(github.Languages))
	}

	if udemy != nil {
		score += udemy.CompletionRate/2 + 3*float64(len(udemy.Categories))
	}

	result := int(math.Round(score))
	if result > 100 {
		result = 100
	}
	return result
}

func hasString(list []string, target string) bool {
	for _, v := range list {
		if v == target {
			return true
		}
	}
	return false
}

type InsightsService struct {
	IntegrationRepo *repository.IntegrationRepository
}

func NewInsightsService(integrationRepo *repository.IntegrationRepository) *InsightsService {
	return &InsightsService{IntegrationRepo: integrationRepo}
}

// GetLearningInsights 汇总已连接平台的活动快照，产出跨平台洞察。
// 未连接或快照缺失的平台按不存在处理，不报错
func (s *InsightsService) GetLearningInsights(userID uint) (*model.LearningInsights, error) {
	// 1. 读取 GitHub 快照
	var github *model.GitHubSummary
	if snapshot, err := s.loadSnapshot(userID, model.PlatformGitHub); err != nil {
		return nil, err
	} else if snapshot != nil {
		var activity model.GitHubActivity
		if json.Unmarshal(snapshot, &activity) == nil {
			github = GitHubInsightSummary(&activity)
		}
	}

	// 2. 读取 Udemy 快照，没有任何课程的快照视同未连接
	var udemy *model.UdemySummary
	if snapshot, err := s.loadSnapshot(userID, model.PlatformUdemy); err != nil {
		return nil, err
	} else if snapshot != nil {
		var activity model.UdemyActivity
		if json.Unmarshal(snapshot, &activity) == nil && activity.TotalCourses > 0 {
			udemy = UdemyInsightSummary(&activity)
		}
	}

	// 3. 生成建议与综合评分
	return &model.LearningInsights{
		GitHub:          github,
		Udemy:           udemy,
		Recommendations: CrossPlatformRecommendations(github, udemy),
		OverallScore:    OverallScore(github, udemy),
	}, nil
}

// loadSnapshot 取某平台已认证绑定的活动快照，未连接返回 nil
func (s *InsightsService) loadSnapshot(userID uint, platform model.Platform) ([]byte, error) {
	account, err := s.IntegrationRepo.FindByUserAndPlatform(userID, platform)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !account.Authenticated || len(account.ActivityData) == 0 {
		return nil, nil
	}
	return account.ActivityData, nil
}
