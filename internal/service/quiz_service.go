package service

import (
	"context"
	"encoding/json"
	"learning_coach_backend/internal/model"
	"learning_coach_backend/internal/repository"
	"learning_coach_backend/internal/util"
	"time"

	"github.com/go-redis/redis/v8"
)

// 生成后的测验等待提交的时限
const pendingQuizTTL = 2 * time.Hour

type QuizService struct {
	QuizScoreRepo *repository.QuizScoreRepository
	AI            *AIService
	Redis         *redis.Client
}

func NewQuizService(quizScoreRepo *repository.QuizScoreRepository, ai *AIService, rdb *redis.Client) *QuizService {
	return &QuizService{
		QuizScoreRepo: quizScoreRepo,
		AI:            ai,
		Redis:         rdb,
	}
}

// GenerateQuiz 生成一份测验并短期缓存，等待用户提交答案
func (s *QuizService) GenerateQuiz(ctx context.Context, userID uint, topic, difficulty string, numQuestions int) (*model.GeneratedQuiz, error) {
	// 题目数量限制在 3 到 10，默认 5
	if numQuestions <= 0 {
		numQuestions = 5
	}
	if numQuestions < 3 {
		numQuestions = 3
	}
	if numQuestions > 10 {
		numQuestions = 10
	}

	questions, err := s.AI.GenerateQuiz(ctx, topic, difficulty, numQuestions)
	if err != nil {
		return nil, err
	}

	quiz := &model.GeneratedQuiz{
		ID:         model.GenerateUUID(),
		UserID:     userID,
		Topic:      topic,
		Difficulty: difficulty,
		Questions:  questions,
		CreatedAt:  time.Now(),
	}

	raw, err := json.Marshal(quiz)
	if err != nil {
		return nil, err
	}
	if err := s.Redis.Set(ctx, pendingQuizKey(quiz.ID), raw, pendingQuizTTL).Err(); err != nil {
		return nil, err
	}

	return quiz, nil
}

// SubmitQuiz 判分并持久化成绩，提交后缓存的测验即失效
func (s *QuizService) SubmitQuiz(ctx context.Context, userID uint, quizID string, answers []int) (*model.GradedQuiz, error) {
	// 1. 取出待提交的测验
	raw, err := s.Redis.Get(ctx, pendingQuizKey(quizID)).Bytes()
	if err != nil {
		return nil, util.ErrQuizNotFound
	}

	var quiz model.GeneratedQuiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return nil, util.ErrQuizNotFound
	}
	if quiz.UserID != userID {
		return nil, util.ErrQuizNotFound
	}
	if len(answers) != len(quiz.Questions) {
		return nil, util.ErrAnswerMismatch
	}

	// 2. 判分
	graded := GradeQuiz(quiz.Topic, quiz.Questions, answers)

	// 3. 成绩落库
	score := &model.QuizScore{
		UserID:         userID,
		Topic:          quiz.Topic,
		Score:          graded.Score,
		TotalQuestions: graded.Total,
		Percentage:     graded.Percentage,
		CompletedAt:    time.Now(),
	}
	if err := s.QuizScoreRepo.Create(score); err != nil {
		return nil, err
	}

	// 4. 提交过的测验不允许重复提交
	s.Redis.Del(ctx, pendingQuizKey(quizID))

	return graded, nil
}

// GetHistory 最近的测验成绩，新的在前
func (s *QuizService) GetHistory(userID uint, limit int) ([]model.QuizScore, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.QuizScoreRepo.ListRecent(userID, limit)
}

// GradeQuiz 对照正确答案逐题判分。越界的选项按答错处理
func GradeQuiz(topic string, questions []model.QuizQuestion, answers []int) *model.GradedQuiz {
	graded := &model.GradedQuiz{
		Topic:   topic,
		Total:   len(questions),
		Results: make([]model.QuestionResult, 0, len(questions)),
	}

	for i, q := range questions {
		selected := answers[i]
		result := model.QuestionResult{
			Question:      q.Question,
			Selected:      selected,
			CorrectAnswer: q.Options[q.CorrectAnswer],
			Explanation:   q.Explanation,
		}
		if result.Explanation == "" {
			result.Explanation = "No explanation provided"
		}

		if selected >= 0 && selected < len(q.Options) {
			result.UserAnswer = q.Options[selected]
			result.Correct = selected == q.CorrectAnswer
		}
		if result.Correct {
			graded.Score++
		}

		graded.Results = append(graded.Results, result)
	}

	if graded.Total > 0 {
		graded.Percentage = float64(graded.Score) / float64(graded.Total) * 100
	}

	switch {
	case graded.Percentage >= 80:
		graded.Feedback = util.FeedbackExcellent
	case graded.Percentage >= 60:
		graded.Feedback = util.FeedbackGood
	default:
		graded.Feedback = util.FeedbackStudyMore
	}

	return graded
}

func pendingQuizKey(quizID string) string {
	return "quiz:pending:" + quizID
}
