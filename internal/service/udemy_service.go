package service

import (
	"encoding/json"
	"fmt"
	"learning_coach_backend/internal/config"
	"learning_coach_backend/internal/model"
	"learning_coach_backend/internal/util"
	"math"
	"net/http"
	"net/url"
	"time"
)

// 最近访问在 7 天内的课程计入近期活跃
const udemyRecentWindowDays = 7

type UdemyService struct {
	baseURL string
	client  *http.Client
}

func NewUdemyService(cfg config.IntegrationsConfig) *UdemyService {
	return &UdemyService{
		baseURL: cfg.UdemyAPIBase,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Authenticate 以 client_credentials 方式换取访问令牌，验证凭据有效性
func (s *UdemyService) Authenticate(creds model.UdemyCredentials) error {
	_, err := s.token(creds)
	return err
}

// FetchActivity 拉取订阅课程并聚合为学习分析快照
func (s *UdemyService) FetchActivity(creds model.UdemyCredentials) (*model.UdemyActivity, error) {
	// 1. 换取访问令牌
	token, err := s.token(creds)
	if err != nil {
		return nil, err
	}

	// 2. 拉取订阅课程
	raw, err := s.listCourses(token)
	if err != nil {
		return nil, err
	}

	// 3. 聚合
	return AggregateUdemyCourses(raw, time.Now()), nil
}

func (s *UdemyService) token(creds model.UdemyCredentials) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", creds.ClientID)
	form.Set("client_secret", creds.ClientSecret)

	resp, err := s.client.PostForm(s.baseURL+"/oauth2/token/", form)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return "", util.ErrInvalidCredentials
	case http.StatusForbidden:
		return "", fmt.Errorf("%w: udemy access forbidden, check API permissions", util.ErrUpstreamFailure)
	default:
		return "", fmt.Errorf("%w: udemy token status %d", util.ErrUpstreamFailure, resp.StatusCode)
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrUpstreamFailure, err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: no access token received", util.ErrUpstreamFailure)
	}
	return token.AccessToken, nil
}

func (s *UdemyService) listCourses(token string) ([]model.UdemyRawCourse, error) {
	req, err := http.NewRequest("GET", s.baseURL+"/users/me/subscribed-courses/", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: udemy courses status %d", util.ErrUpstreamFailure, resp.StatusCode)
	}

	var payload struct {
		Results []model.UdemyRawCourse `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUpstreamFailure, err)
	}
	return payload.Results, nil
}

// ProcessUdemyCourse 把原始课程条目换算成进度视图
func ProcessUdemyCourse(raw model.UdemyRawCourse) model.UdemyCourse {
	course := model.UdemyCourse{
		Title:                raw.Title,
		Category:             raw.PrimaryCategory.Title,
		TotalDurationMinutes: raw.ContentLengthVideo / 60,
		ProgressMinutes:      raw.CompletionTime / 60,
		Rating:               raw.AvgRating,
		LastAccessed:         raw.LastAccessedTime,
	}
	if course.Category == "" {
		course.Category = "General"
	}
	if raw.NumLectures > 0 {
		course.Progress = round1(float64(raw.NumCompletedLectures) / float64(raw.NumLectures) * 100)
	}

	switch {
	case course.Progress >= 90:
		course.Status = "Completed"
	case course.Progress >= 50:
		course.Status = "In Progress"
	case course.Progress >= 10:
		course.Status = "Started"
	default:
		course.Status = "Enrolled"
	}
	return course
}

// AggregateUdemyCourses 汇总课程进度为活动快照，空课程列表产出全零快照
func AggregateUdemyCourses(raw []model.UdemyRawCourse, now time.Time) *model.UdemyActivity {
	activity := &model.UdemyActivity{
		Categories:       make(map[string]model.CategoryStats),
		NeedingAttention: []string{},
		HighPerforming:   []string{},
		Courses:          make([]model.UdemyCourse, 0, len(raw)),
		SyncedAt:         now,
	}
	if len(raw) == 0 {
		return activity
	}

	var totalProgress, totalRating float64
	var enrolledMinutes, completedMinutes int
	categoryProgress := make(map[string]float64)

	for _, rc := range raw {
		course := ProcessUdemyCourse(rc)
		activity.Courses = append(activity.Courses, course)

		// 完成 / 进行中 / 未开始的分界是 90 和 10
		switch {
		case course.Progress >= 90:
			activity.CompletedCourses++
		case course.Progress >= 10:
			activity.InProgressCourses++
		default:
			activity.NotStartedCourses++
		}

		totalProgress += course.Progress
		totalRating += course.Rating
		enrolledMinutes += course.TotalDurationMinutes
		completedMinutes += course.ProgressMinutes

		stats := activity.Categories[course.Category]
		stats.Count++
		activity.Categories[course.Category] = stats
		categoryProgress[course.Category] += course.Progress

		if course.Progress < 30 {
			activity.NeedingAttention = append(activity.NeedingAttention, course.Title)
		}
		if course.Progress > 70 {
			activity.HighPerforming = append(activity.HighPerforming, course.Title)
		}
		if days, ok := daysSinceAccess(course.LastAccessed, now); ok && days <= udemyRecentWindowDays {
			activity.RecentActivityCourses++
		}
	}

	total := float64(len(raw))
	activity.TotalCourses = len(raw)
	activity.CompletionRate = round1(float64(activity.CompletedCourses) / total * 100)
	activity.AverageProgress = round1(totalProgress / total)
	activity.AverageRating = round1(totalRating / total)
	activity.TotalLearningHours = round1(float64(enrolledMinutes) / 60)
	activity.CompletedLearningHours = round1(float64(completedMinutes) / 60)

	for cat, stats := range activity.Categories {
		stats.AvgProgress = categoryProgress[cat] / float64(stats.Count)
		activity.Categories[cat] = stats
	}

	return activity
}

// daysSinceAccess 解析最近访问时间，兼容纯日期与带时间两种格式
func daysSinceAccess(lastAccessed string, now time.Time) (int, bool) {
	if lastAccessed == "" {
		return 0, false
	}

	t, err := time.Parse(time.RFC3339, lastAccessed)
	if err != nil {
		t, err = time.Parse(util.DateFormat, lastAccessed)
		if err != nil {
			return 0, false
		}
	}
	return int(now.Sub(t).Hours() / 24), true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
