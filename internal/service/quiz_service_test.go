package service

import (
	"learning_coach_backend/internal/model"
	"learning_coach_backend/internal/util"
	"testing"
)

func sampleQuestions() []model.QuizQuestion {
	return []model.QuizQuestion{
		{Question: "Q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0, Explanation: "because"},
		{Question: "Q2", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 2},
		{Question: "Q3", Options: []string{"a", "b"}, CorrectAnswer: 1, Explanation: "obvious"},
	}
}

func TestGradeQuizAllCorrect(t *testing.T) {
	graded := GradeQuiz("Go", sampleQuestions(), []int{0, 2, 1})

	if graded.Score != 3 || graded.Total != 3 {
		t.Errorf("score = %d/%d, want 3/3", graded.Score, graded.Total)
	}
	if !almostEqual(graded.Percentage, 100) {
		t.Errorf("percentage = %v, want 100", graded.Percentage)
	}
	if graded.Feedback != util.FeedbackExcellent {
		t.Errorf("feedback = %q", graded.Feedback)
	}
}

func TestGradeQuizPartial(t *testing.T) {
	graded := GradeQuiz("Go", sampleQuestions(), []int{0, 1, 0})

	if graded.Score != 1 {
		t.Errorf("score = %d, want 1", graded.Score)
	}
	if graded.Feedback != util.FeedbackStudyMore {
		t.Errorf("feedback = %q", graded.Feedback)
	}

	second := graded.Results[1]
	if second.Correct || second.UserAnswer != "b" || second.CorrectAnswer != "c" {
		t.Errorf("result = %+v", second)
	}
	// 没给解释时填默认文案
	if second.Explanation != "No explanation provided" {
		t.Errorf("explanation = %q", second.Explanation)
	}
}

func TestGradeQuizOutOfRangeAnswerIsWrong(t *testing.T) {
	graded := GradeQuiz("Go", sampleQuestions(), []int{-1, 7, 1})

	if graded.Score != 1 {
		t.Errorf("score = %d, want 1", graded.Score)
	}
	first := graded.Results[0]
	if first.Correct || first.UserAnswer != "" {
		t.Errorf("out-of-range answer graded as %+v", first)
	}
	// 正确答案原文始终给出，方便前端展示
	if first.CorrectAnswer != "a" {
		t.Errorf("correct answer = %q", first.CorrectAnswer)
	}
}

func TestGradeQuizEmpty(t *testing.T) {
	graded := GradeQuiz("Go", nil, nil)
	if graded.Total != 0 || graded.Percentage != 0 {
		t.Errorf("graded = %+v", graded)
	}
	if graded.Feedback != util.FeedbackStudyMore {
		t.Errorf("feedback = %q", graded.Feedback)
	}
}
