package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// 测验相关阈值（百分比）
const (
	PassThreshold      = 60.0
	WeakTopicThreshold = 70.0
)

// 成绩反馈档位
const (
	FeedbackExcellent = "Excellent!"
	FeedbackGood      = "Good job!"
	FeedbackStudyMore = "Keep studying!"
)

// ScoreLabel 把百分比映射为展示用的评价
func ScoreLabel(percentage float64) string {
	switch {
	case percentage >= 80:
		return "Excellent"
	case percentage >= 60:
		return "Good"
	case percentage >= 40:
		return "Needs work"
	default:
		return "Keep practicing"
	}
}
