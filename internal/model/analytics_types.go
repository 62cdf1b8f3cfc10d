package model

// AnalyticsSummary 测验历史的总体概览，按需计算，不落库
type AnalyticsSummary struct {
	TotalQuizzes      int      `json:"total_quizzes"`
	AverageScore      float64  `json:"average_score"`
	TopicsStudied     []string `json:"topics_studied"`
	BestTopic         string   `json:"best_topic"`
	WorstTopic        string   `json:"worst_topic"`
	CurrentStreakDays int      `json:"current_streak_days"`
}

// TopicStats 单一主题的聚合指标
type TopicStats struct {
	Average float64 `json:"average"`
	Best    float64 `json:"best"`
	Worst   float64 `json:"worst"`
	Count   int     `json:"count"`
}

// Recommendation 基于规则的学习建议
type Recommendation struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

// TopicResource 薄弱主题的补习资源链接
type TopicResource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// DayActivity 某一天完成的测验数
type DayActivity struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DifficultyBucket 按成绩区间归类的难度分布
type DifficultyBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ActivityOverview 学习行为分析
type ActivityOverview struct {
	DailyActivity     []DayActivity      `json:"daily_activity"`
	BestStudyDay      string             `json:"best_study_day"`
	Trend             string             `json:"trend"` // improving, declining, stable
	TrendDelta        float64            `json:"trend_delta"`
	Difficulty        []DifficultyBucket `json:"difficulty_distribution"`
	DaysSinceLastQuiz int                `json:"days_since_last_quiz"`
}

// TopicReport 主题表现接口的响应体
type TopicReport struct {
	Performance map[string]TopicStats      `json:"performance"`
	TopicOrder  []string                   `json:"topic_order"`
	WeakTopics  []string                   `json:"weak_topics"`
	Resources   map[string][]TopicResource `json:"resources"`
}
