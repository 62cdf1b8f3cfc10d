package model

// GitHubSummary 洞察里呈现的 GitHub 侧摘要
type GitHubSummary struct {
	TotalCommits int      `json:"total_commits"`
	ActiveRepos  int      `json:"active_repos"`
	Languages    []string `json:"languages"`
}

// UdemySummary 洞察里呈现的 Udemy 侧摘要
type UdemySummary struct {
	CoursesCount   int      `json:"courses_count"`
	CompletionRate float64  `json:"completion_rate"`
	Categories     []string `json:"categories"`
	LearningHours  float64  `json:"learning_hours"`
}

// InsightRecommendation 跨平台建议
type InsightRecommendation struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// LearningInsights 跨平台学习洞察：摘要、建议与综合评分
type LearningInsights struct {
	GitHub          *GitHubSummary          `json:"github_summary,omitempty"`
	Udemy           *UdemySummary           `json:"udemy_summary,omitempty"`
	Recommendations []InsightRecommendation `json:"recommendations"`
	OverallScore    int                     `json:"overall_learning_score"`
}
