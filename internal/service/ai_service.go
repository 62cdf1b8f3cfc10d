package service

import (
	"context"
	"encoding/json"
	"fmt"
	"learning_coach_backend/internal/config"
	"learning_coach_backend/internal/model"
	"learning_coach_backend/internal/util"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// AIService 封装 OpenAI 兼容接口，负责计划、测验与摘要生成
type AIService struct {
	api   *openai.Client
	model string
}

func NewAIService(cfg config.AIConfig) *AIService {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &AIService{
		api:   openai.NewClientWithConfig(clientConfig),
		model: cfg.Model,
	}
}

// GenerateStudyPlan 生成个性化学习计划。模型输出不是合法 JSON 时
// 整体降级为纯文本计划，而不是报错
func (s *AIService) GenerateStudyPlan(ctx context.Context, goal, level, timeCommitment, extra string) (model.PlanContent, error) {
	content, err := s.complete(ctx, buildPlanPrompt(goal, level, timeCommitment, extra), 4000)
	if err != nil {
		return model.PlanContent{}, fmt.Errorf("%w: %v", util.ErrGenerationFailed, err)
	}
	return ParsePlanContent(content, goal, level, timeCommitment), nil
}

// GenerateQuiz 生成客观题测验，输出必须是合法 JSON，否则报错
func (s *AIService) GenerateQuiz(ctx context.Context, topic, difficulty string, numQuestions int) ([]model.QuizQuestion, error) {
	content, err := s.complete(ctx, buildQuizPrompt(topic, difficulty, numQuestions), 2000)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrGenerationFailed, err)
	}
	return ParseQuizQuestions(content)
}

// SummarizeText 把长文压缩为 300 词以内的摘要
func (s *AIService) SummarizeText(ctx context.Context, text string) (string, error) {
	prompt := "Provide a summary of the following content in 300 words:\n\n" + text
	summary, err := s.complete(ctx, prompt, 1000)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrGenerationFailed, err)
	}
	return strings.TrimSpace(summary), nil
}

func (s *AIService) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := s.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// ParsePlanContent 解析模型输出。合法 JSON 走结构化计划，
// 否则降级为纯文本计划，两种形态都附上通用补习资源
func ParsePlanContent(content, goal, level, timeCommitment string) model.PlanContent {
	var plan model.PlanContent
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &plan); err != nil {
		plan = model.FreeTextPlan(content)
		plan.Duration = timeCommitment
		plan.Difficulty = level
		plan.Resources = planResources(goal)
		return plan
	}

	plan.Type = model.PlanContentStructured
	plan.Text = ""
	if plan.Duration == "" {
		plan.Duration = timeCommitment
	}
	if plan.Difficulty == "" {
		plan.Difficulty = level
	}
	if plan.Modules == nil {
		plan.Modules = []model.PlanModule{}
	}
	if plan.Milestones == nil {
		plan.Milestones = []string{}
	}
	if plan.Tips == nil {
		plan.Tips = []string{}
	}
	plan.Resources = append(plan.Resources, planResources(goal)...)
	return plan
}

// ParseQuizQuestions 解析并校验题目数组，任何不合法都返回 ErrMalformedGeneration
func ParseQuizQuestions(content string) ([]model.QuizQuestion, error) {
	cleaned := stripCodeFence(content)

	var questions []model.QuizQuestion
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		// 兼容包了一层 {"questions": [...]} 的输出
		var wrapper struct {
			Questions []model.QuizQuestion `json:"questions"`
		}
		if err := json.Unmarshal([]byte(cleaned), &wrapper); err != nil {
			return nil, util.ErrMalformedGeneration
		}
		questions = wrapper.Questions
	}

	if len(questions) == 0 {
		return nil, util.ErrMalformedGeneration
	}
	for _, q := range questions {
		if q.Question == "" || len(q.Options) < 2 {
			return nil, util.ErrMalformedGeneration
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return nil, util.ErrMalformedGeneration
		}
	}
	return questions, nil
}

func buildPlanPrompt(goal, level, timeCommitment, extra string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert curriculum designer and learning coach. ")
	sb.WriteString("Create a personalized study plan for the following student.\n\n")
	sb.WriteString("GOAL: " + goal + "\n")
	sb.WriteString("CURRENT LEVEL: " + level + "\n")
	sb.WriteString("TIME COMMITMENT: " + timeCommitment + "\n")
	if extra != "" {
		sb.WriteString("ADDITIONAL CONTEXT: " + extra + "\n")
	}
	sb.WriteString("\nBreak the plan into week-by-week modules with 3-5 concrete topics each ")
	sb.WriteString("and a practical exercise per module.\n")
	sb.WriteString("\nRespond ONLY with a JSON object with these fields:\n")
	sb.WriteString(`{"overview": "<2-3 sentence summary>", "duration": "<total duration>", ` +
		`"difficulty": "<difficulty>", "modules": [{"title": "<module title>", "duration": "<e.g. 1 week>", ` +
		`"topics": ["<topic>"], "goal": "<module goal>"}], "milestones": ["<milestone>"], ` +
		`"resources": [{"type": "video|article|practice", "title": "<title>", "url": "<url>"}], ` +
		`"tips": ["<study tip>"]}`)
	sb.WriteString("\n")
	return sb.String()
}

func buildQuizPrompt(topic, difficulty string, numQuestions int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Create a %s quiz about %s with %d questions.\n\n", difficulty, topic, numQuestions))
	sb.WriteString("Respond ONLY with a JSON array. Each element must have these fields:\n")
	sb.WriteString(`{"question": "<question text>", "options": ["<option 1>", "<option 2>", "<option 3>", "<option 4>"], ` +
		`"correct_answer": <zero-based index of the correct option>, "explanation": "<why the answer is correct>"}`)
	sb.WriteString("\n")
	return sb.String()
}

// planResources 计划统一附带的补习资源
func planResources(subject string) []model.PlanResource {
	q := strings.ReplaceAll(subject, " ", "+")
	return []model.PlanResource{
		{Type: "video", Title: "YouTube Tutorials for " + subject, URL: "https://www.youtube.com/results?search_query=" + q + "+tutorial"},
		{Type: "article", Title: "Comprehensive Guides for " + subject, URL: "https://www.google.com/search?q=" + q + "+comprehensive+guide"},
		{Type: "practice", Title: "Practice Exercises for " + subject, URL: "https://www.google.com/search?q=" + q + "+practice+exercises"},
	}
}

// stripCodeFence 去掉模型偶尔包裹的 Markdown 代码块
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}
	return trimmed
}
