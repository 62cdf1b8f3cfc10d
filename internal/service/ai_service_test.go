package service

import (
	"errors"
	"learning_coach_backend/internal/model"
	"learning_coach_backend/internal/util"
	"testing"
)

func TestParsePlanContentStructured(t *testing.T) {
	content := `{"overview": "A plan.", "modules": [{"title": "Week 1", "topics": ["basics"]}], "milestones": ["finish week 1"]}`

	plan := ParsePlanContent(content, "Learn Go", "beginner", "5 hours/week for 4 weeks")

	if plan.Type != model.PlanContentStructured {
		t.Fatalf("type = %q, want structured", plan.Type)
	}
	if plan.Overview != "A plan." || len(plan.Modules) != 1 {
		t.Errorf("plan = %+v", plan)
	}
	// 模型没给的字段用请求参数补齐
	if plan.Duration != "5 hours/week for 4 weeks" || plan.Difficulty != "beginner" {
		t.Errorf("duration = %q, difficulty = %q", plan.Duration, plan.Difficulty)
	}
	// 通用补习资源始终附加
	if len(plan.Resources) != 3 {
		t.Errorf("resources = %+v", plan.Resources)
	}
	if plan.Tips == nil {
		t.Error("Tips must not be nil")
	}
}

func TestParsePlanContentFreeTextFallback(t *testing.T) {
	content := "Week 1: learn the basics.\nWeek 2: build a project."

	plan := ParsePlanContent(content, "Learn Go", "beginner", "5 hours/week for 4 weeks")

	if plan.Type != model.PlanContentFreeText {
		t.Fatalf("type = %q, want free_text", plan.Type)
	}
	if plan.Text != content {
		t.Errorf("text = %q", plan.Text)
	}
	if plan.Duration != "5 hours/week for 4 weeks" || plan.Difficulty != "beginner" {
		t.Errorf("duration = %q, difficulty = %q", plan.Duration, plan.Difficulty)
	}
	// 降级形态的列表是空切片，序列化为 [] 而不是 null
	if plan.Modules == nil || plan.Milestones == nil || plan.Tips == nil {
		t.Errorf("lists must be empty, not nil: %+v", plan)
	}
	if len(plan.Resources) != 3 {
		t.Errorf("resources = %+v", plan.Resources)
	}
}

func TestParsePlanContentStripsCodeFence(t *testing.T) {
	content := "```json\n{\"overview\": \"Fenced.\", \"modules\": []}\n```"

	plan := ParsePlanContent(content, "Learn Go", "beginner", "4 weeks")

	if plan.Type != model.PlanContentStructured || plan.Overview != "Fenced." {
		t.Errorf("plan = %+v", plan)
	}
}

func TestParseQuizQuestions(t *testing.T) {
	valid := `[{"question": "Q", "options": ["a", "b", "c"], "correct_answer": 1, "explanation": "e"}]`

	questions, err := ParseQuizQuestions(valid)
	if err != nil {
		t.Fatalf("ParseQuizQuestions: %v", err)
	}
	if len(questions) != 1 || questions[0].CorrectAnswer != 1 {
		t.Errorf("questions = %+v", questions)
	}
}

func TestParseQuizQuestionsWrapperObject(t *testing.T) {
	wrapped := `{"questions": [{"question": "Q", "options": ["a", "b"], "correct_answer": 0}]}`

	questions, err := ParseQuizQuestions(wrapped)
	if err != nil {
		t.Fatalf("ParseQuizQuestions: %v", err)
	}
	if len(questions) != 1 {
		t.Errorf("questions = %+v", questions)
	}
}

func TestParseQuizQuestionsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "here are your questions!"},
		{"empty array", "[]"},
		{"missing question text", `[{"question": "", "options": ["a", "b"], "correct_answer": 0}]`},
		{"too few options", `[{"question": "Q", "options": ["a"], "correct_answer": 0}]`},
		{"answer index out of range", `[{"question": "Q", "options": ["a", "b"], "correct_answer": 2}]`},
		{"negative answer index", `[{"question": "Q", "options": ["a", "b"], "correct_answer": -1}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseQuizQuestions(tt.content); !errors.Is(err, util.ErrMalformedGeneration) {
				t.Errorf("err = %v, want ErrMalformedGeneration", err)
			}
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n[1, 2]\n```", "[1, 2]"},
	}
	for _, tt := range tests {
		if got := stripCodeFence(tt.in); got != tt.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
