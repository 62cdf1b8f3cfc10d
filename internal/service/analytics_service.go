package service

import (
	"learning_coach_backend/internal/model"
	"learning_coach_backend/internal/repository"
	"learning_coach_backend/internal/util"
	"sort"
	"strings"
	"time"
)

// 连续天数只统计最近的 30 条记录
const streakWindow = 30

// Summarize 将测验历史聚合为总体概览，空历史返回零值而不是错误
func Summarize(records []model.QuizScore, today time.Time) model.AnalyticsSummary {
	summary := model.AnalyticsSummary{TopicsStudied: []string{}}
	if len(records) == 0 {
		return summary
	}

	// 1. 总数与平均分
	var total float64
	for _, r := range records {
		total += r.Percentage
	}
	summary.TotalQuizzes = len(records)
	summary.AverageScore = total / float64(len(records))

	// 2. 按主题聚合，选出最佳与最差主题（平分时保留先出现的主题）
	perf, order := TopicPerformance(records)
	summary.TopicsStudied = order
	best, worst := order[0], order[0]
	for _, topic := range order[1:] {
		if perf[topic].Average > perf[best].Average {
			best = topic
		}
		if perf[topic].Average < perf[worst].Average {
			worst = topic
		}
	}
	summary.BestTopic = best
	summary.WorstTopic = worst

	// 3. 连续学习天数
	summary.CurrentStreakDays = ComputeStreak(records, today)
	return summary
}

// ComputeStreak 计算连续学习天数。链条从今天或昨天开始，
// 之后必须逐日相连，遇到断档立即停止
func ComputeStreak(records []model.QuizScore, today time.Time) int {
	if len(records) == 0 {
		return 0
	}

	// 1. 取最近的记录
	recent := make([]model.QuizScore, len(records))
	copy(recent, records)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CompletedAt.After(recent[j].CompletedAt)
	})
	if len(recent) > streakWindow {
		recent = recent[:streakWindow]
	}

	// 2. 完成日期去重，保持从新到旧
	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, r := range recent {
		d := dateOf(r.CompletedAt)
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}

	// 3. 链条起点必须是今天或昨天
	cur := dateOf(today)
	if !dates[0].Equal(cur) && !dates[0].Equal(cur.AddDate(0, 0, -1)) {
		return 0
	}

	// 4. 逐日回溯数链条
	streak := 1
	expect := dates[0].AddDate(0, 0, -1)
	for _, d := range dates[1:] {
		if !d.Equal(expect) {
			break
		}
		streak++
		expect = expect.AddDate(0, 0, -1)
	}
	return streak
}

// dateOf 丢弃时分秒，取记录所在时区的日历日
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// TopicPerformance 按主题分组聚合，返回各主题指标与主题的首次出现顺序
func TopicPerformance(records []model.QuizScore) (map[string]model.TopicStats, []string) {
	grouped := make(map[string][]float64)
	order := []string{}
	for _, r := range records {
		if _, ok := grouped[r.Topic]; !ok {
			order = append(order, r.Topic)
		}
		grouped[r.Topic] = append(grouped[r.Topic], r.Percentage)
	}

	perf := make(map[string]model.TopicStats, len(order))
	for _, topic := range order {
		scores := grouped[topic]
		stats := model.TopicStats{Best: scores[0], Worst: scores[0], Count: len(scores)}
		var sum float64
		for _, s := range scores {
			sum += s
			if s > stats.Best {
				stats.Best = s
			}
			if s < stats.Worst {
				stats.Worst = s
			}
		}
		stats.Average = sum / float64(len(scores))
		perf[topic] = stats
	}
	return perf, order
}

// BuildRecommendations 基于概览生成规则化学习建议
func BuildRecommendations(summary model.AnalyticsSummary) []model.Recommendation {
	recommendations := make([]model.Recommendation, 0, 2)

	// 平均分驱动的建议
	if summary.AverageScore < 60 {
		recommendations = append(recommendations, model.Recommendation{
			Type:        "improvement",
			Title:       "Focus on Fundamentals",
			Description: "Your average score suggests reviewing basic concepts before advancing.",
			Action:      "Review study materials and retake quizzes",
		})
	} else if summary.AverageScore >= 80 {
		recommendations = append(recommendations, model.Recommendation{
			Type:        "advancement",
			Title:       "Ready for Advanced Topics",
			Description: "Excellent performance! Consider exploring more challenging subjects.",
			Action:      "Create study plans for advanced topics",
		})
	}

	// 最弱主题驱动的建议
	if summary.WorstTopic != "" {
		recommendations = append(recommendations, model.Recommendation{
			Type:        "focus_area",
			Title:       "Improve " + summary.WorstTopic,
			Description: summary.WorstTopic + " appears to be your weakest area.",
			Action:      "Take more quizzes on " + summary.WorstTopic + " and review related materials",
		})
	}

	return recommendations
}

// TopicResources 为薄弱主题拼接补习资源链接
func TopicResources(topic string) []model.TopicResource {
	q := strings.ReplaceAll(topic, " ", "+")
	return []model.TopicResource{
		{Title: "YouTube tutorials", URL: "https://www.youtube.com/results?search_query=" + q + "+tutorial"},
		{Title: "Comprehensive guide", URL: "https://www.google.com/search?q=" + q + "+comprehensive+guide"},
		{Title: "Practice exercises", URL: "https://www.google.com/search?q=" + q + "+practice+exercises"},
	}
}

// DailyActivity 最近 days 天每天完成的测验数，没有记录的天补 0
func DailyActivity(records []model.QuizScore, today time.Time, days int) []model.DayActivity {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.CompletedAt.Format(util.DateFormat)]++
	}

	result := make([]model.DayActivity, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i).Format(util.DateFormat)
		result = append(result, model.DayActivity{Date: d, Count: counts[d]})
	}
	return result
}

// BestStudyDay 平均得分率最高的星期几，无记录返回空串
func BestStudyDay(records []model.QuizScore) string {
	if len(records) == 0 {
		return ""
	}

	sums := make(map[time.Weekday]float64)
	counts := make(map[time.Weekday]int)
	for _, r := range records {
		d := r.CompletedAt.Weekday()
		sums[d] += r.Percentage
		counts[d]++
	}

	best := records[0].CompletedAt.Weekday()
	bestAvg := sums[best] / float64(counts[best])
	for d := time.Sunday; d <= time.Saturday; d++ {
		if counts[d] == 0 {
			continue
		}
		avg := sums[d] / float64(counts[d])
		if avg > bestAvg {
			best, bestAvg = d, avg
		}
	}
	return best.String()
}

// ImprovementTrend 对比最早与最近各 5 次的平均分，返回趋势标签与差值
func ImprovementTrend(records []model.QuizScore) (string, float64) {
	if len(records) < 2 {
		return "stable", 0
	}

	n := 5
	if len(records) < n {
		n = len(records)
	}

	var first, last float64
	for i := 0; i < n; i++ {
		first += records[i].Percentage
		last += records[len(records)-n+i].Percentage
	}
	delta := (last - first) / float64(n)

	switch {
	case delta > 5:
		return "improving", delta
	case delta < -5:
		return "declining", delta
	default:
		return "stable", delta
	}
}

// DifficultyDistribution 按得分区间归类测验难度
func DifficultyDistribution(records []model.QuizScore) []model.DifficultyBucket {
	buckets := []model.DifficultyBucket{
		{Label: "Very Hard"},
		{Label: "Hard"},
		{Label: "Medium"},
		{Label: "Easy"},
	}
	for _, r := range records {
		switch {
		case r.Percentage < 40:
			buckets[0].Count++
		case r.Percentage < 60:
			buckets[1].Count++
		case r.Percentage < 80:
			buckets[2].Count++
		default:
			buckets[3].Count++
		}
	}
	return buckets
}

// DaysSinceLastQuiz 距离最近一次测验的整天数，无记录返回 -1
func DaysSinceLastQuiz(records []model.QuizScore, today time.Time) int {
	if len(records) == 0 {
		return -1
	}

	last := records[0].CompletedAt
	for _, r := range records[1:] {
		if r.CompletedAt.After(last) {
			last = r.CompletedAt
		}
	}

	days := int(dateOf(today).Sub(dateOf(last)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

type AnalyticsService struct {
	QuizScoreRepo *repository.QuizScoreRepository
}

func NewAnalyticsService(quizScoreRepo *repository.QuizScoreRepository) *AnalyticsService {
	return &AnalyticsService{QuizScoreRepo: quizScoreRepo}
}

func (s *AnalyticsService) GetSummary(userID uint) (*model.AnalyticsSummary, error) {
	records, err := s.QuizScoreRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	summary := Summarize(records, time.Now())
	return &summary, nil
}

func (s *AnalyticsService) GetTopicReport(userID uint) (*model.TopicReport, error) {
	records, err := s.QuizScoreRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	perf, order := TopicPerformance(records)

	// 平均分低于阈值的主题视为薄弱，附上补习资源
	weak := []string{}
	resources := make(map[string][]model.TopicResource)
	for _, topic := range order {
		if perf[topic].Average < util.WeakTopicThreshold {
			weak = append(weak, topic)
			resources[topic] = TopicResources(topic)
		}
	}

	return &model.TopicReport{
		Performance: perf,
		TopicOrder:  order,
		WeakTopics:  weak,
		Resources:   resources,
	}, nil
}

func (s *AnalyticsService) GetRecommendations(userID uint) ([]model.Recommendation, error) {
	records, err := s.QuizScoreRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	return BuildRecommendations(Summarize(records, time.Now())), nil
}

// GetActivityOverview 学习行为分析：活跃度、趋势与难度分布
func (s *AnalyticsService) GetActivityOverview(userID uint, days int) (*model.ActivityOverview, error) {
	records, err := s.QuizScoreRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 14
	}

	now := time.Now()
	trend, delta := ImprovementTrend(records)

	return &model.ActivityOverview{
		DailyActivity:     DailyActivity(records, now, days),
		BestStudyDay:      BestStudyDay(records),
		Trend:             trend,
		TrendDelta:        delta,
		Difficulty:        DifficultyDistribution(records),
		DaysSinceLastQuiz: DaysSinceLastQuiz(records, now),
	}, nil
}
