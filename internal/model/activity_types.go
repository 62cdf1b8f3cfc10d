package model

import (
	"time"
)

// GitHubRepo 上游仓库列表接口的原始条目（只保留用到的字段）
type GitHubRepo struct {
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     string    `json:"description"`
	Language        string    `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	UpdatedAt       time.Time `json:"updated_at"`
	Fork            bool      `json:"fork"`
}

// GitHubCommit 上游提交列表接口的原始条目
type GitHubCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// GitHubEvent 上游事件流接口的原始条目，用于贡献统计
type GitHubEvent struct {
	Type string `json:"type"`
}

// CommitInfo 聚合后保留的最近提交摘要
type CommitInfo struct {
	Repo    string    `json:"repo"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
	SHA     string    `json:"sha"`
}

// GitHubActivity GitHub 活动快照，作为 ActivityData 整体存储
type GitHubActivity struct {
	TotalCommits      int            `json:"total_commits"`
	TotalRepositories int            `json:"total_repositories"`
	LanguagesUsed     map[string]int `json:"languages_used"`
	RecentCommits     []CommitInfo   `json:"recent_commits"`
	ActiveRepos       []string       `json:"active_repos"`
	ContributionStats map[string]int `json:"contribution_stats"`
	SyncedAt          time.Time      `json:"synced_at"`
}

// UdemyRawCourse 上游订阅课程接口的原始条目
type UdemyRawCourse struct {
	ID                   int     `json:"id"`
	Title                string  `json:"title"`
	NumLectures          int     `json:"num_lectures"`
	NumCompletedLectures int     `json:"num_completed_lectures"`
	ContentLengthVideo   int     `json:"content_length_video"` // 秒
	CompletionTime       int     `json:"completion_time"`      // 秒
	AvgRating            float64 `json:"avg_rating"`
	LastAccessedTime     string  `json:"last_accessed_time"`
	PrimaryCategory      struct {
		Title string `json:"title"`
	} `json:"primary_category"`
}

// UdemyCourse 处理后的课程条目
type UdemyCourse struct {
	Title                string  `json:"title"`
	Category             string  `json:"category"`
	Progress             float64 `json:"progress_percentage"`
	Status               string  `json:"status"`
	TotalDurationMinutes int     `json:"total_duration_minutes"`
	ProgressMinutes      int     `json:"progress_minutes"`
	Rating               float64 `json:"rating"`
	LastAccessed         string  `json:"last_accessed"`
}

// CategoryStats 某一课程类别的聚合
type CategoryStats struct {
	Count       int     `json:"count"`
	AvgProgress float64 `json:"avg_progress"`
}

// UdemyActivity Udemy 活动快照，作为 ActivityData 整体存储
type UdemyActivity struct {
	TotalCourses           int                      `json:"total_courses"`
	CompletedCourses       int                      `json:"completed_courses"`
	InProgressCourses      int                      `json:"in_progress_courses"`
	NotStartedCourses      int                      `json:"not_started_courses"`
	CompletionRate         float64                  `json:"completion_rate"`
	AverageProgress        float64                  `json:"average_progress"`
	AverageRating          float64                  `json:"average_rating"`
	TotalLearningHours     float64                  `json:"total_learning_hours"`
	CompletedLearningHours float64                  `json:"completed_learning_hours"`
	Categories             map[string]CategoryStats `json:"categories"`
	RecentActivityCourses  int                      `json:"recent_activity_courses"`
	NeedingAttention       []string                 `json:"courses_needing_attention"`
	HighPerforming         []string                 `json:"high_performing_courses"`
	Courses                []UdemyCourse            `json:"courses"`
	SyncedAt               time.Time                `json:"synced_at"`
}

// CalendarEvent 日历事件的精简视图
type CalendarEvent struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	Location  string `json:"location"`
	Attendees int    `json:"attendees"`
	HTMLLink  string `json:"html_link"`
}

// CalendarActivity 日历快照：未来 7 天的学习安排
type CalendarActivity struct {
	UpcomingEvents []CalendarEvent `json:"upcoming_events"`
	SyncedAt       time.Time       `json:"synced_at"`
}
