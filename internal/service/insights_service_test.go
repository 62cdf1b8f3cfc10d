package service

import (
	"learning_coach_backend/internal/model"
	"testing"
)

func TestOverallScore(t *testing.T) {
	tests := []struct {
		name   string
		github *model.GitHubSummary
		udemy  *model.UdemySummary
		want   int
	}{
		{
			"both platforms add up",
			&model.GitHubSummary{TotalCommits: 100, Languages: []string{"Go", "Python", "SQL"}},
			&model.UdemySummary{CompletionRate: 80, Categories: []string{"DevOps", "Web"}},
			71, // 10 + 15 + 40 + 6
		},
		{
			"commit score caps at 30",
			&model.GitHubSummary{TotalCommits: 1000},
			nil,
			30,
		},
		{
			"total clamps at 100",
			&model.GitHubSummary{TotalCommits: 1000, Languages: []string{"Go", "Python", "Java", "C++", "Rust", "Ruby", "PHP", "Swift", "Kotlin", "Scala", "Perl", "Haskell", "Elixir", "Lua", "Dart"}},
			nil,
			100,
		},
		{"missing platforms score zero", nil, nil, 0},
		{
			"udemy only",
			nil,
			&model.UdemySummary{CompletionRate: 50, Categories: []string{"Design"}},
			28, // 25 + 3
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverallScore(tt.github, tt.udemy); got != tt.want {
				t.Errorf("OverallScore = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCrossPlatformRecommendations(t *testing.T) {
	tests := []struct {
		name      string
		github    *model.GitHubSummary
		udemy     *model.UdemySummary
		wantTypes []string
	}{
		{
			"python coder without data science course",
			&model.GitHubSummary{TotalCommits: 10, Languages: []string{"Python"}},
			&model.UdemySummary{Categories: []string{"Web"}},
			[]string{"course_suggestion"},
		},
		{
			"heavy committer without devops course",
			&model.GitHubSummary{TotalCommits: 60, Languages: []string{"Go"}},
			&model.UdemySummary{Categories: []string{"Web"}},
			[]string{"skill_development"},
		},
		{
			"both rules can fire together",
			&model.GitHubSummary{TotalCommits: 60, Languages: []string{"Python"}},
			&model.UdemySummary{Categories: []string{"Web"}},
			[]string{"course_suggestion", "skill_development"},
		},
		{
			"existing courses suppress suggestions",
			&model.GitHubSummary{TotalCommits: 60, Languages: []string{"Python"}},
			&model.UdemySummary{Categories: []string{"Data Science", "DevOps"}},
			[]string{},
		},
		{
			"udemy only suggests connecting github",
			nil,
			&model.UdemySummary{Categories: []string{"Web"}},
			[]string{"platform_integration"},
		},
		{
			"github only suggests structured learning",
			&model.GitHubSummary{TotalCommits: 5},
			nil,
			[]string{"learning_enhancement"},
		},
		{"nothing connected", nil, nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := CrossPlatformRecommendations(tt.github, tt.udemy)
			if len(recs) != len(tt.wantTypes) {
				t.Fatalf("got %d recommendations, want %d: %+v", len(recs), len(tt.wantTypes), recs)
			}
			for i, r := range recs {
				if r.Type != tt.wantTypes[i] {
					t.Errorf("rec %d type = %q, want %q", i, r.Type, tt.wantTypes[i])
				}
			}
		})
	}
}

func TestGitHubInsightSummary(t *testing.T) {
	activity := &model.GitHubActivity{
		TotalCommits:  42,
		ActiveRepos:   []string{"api", "web"},
		LanguagesUsed: map[string]int{"Python": 3, "Go": 5},
	}

	summary := GitHubInsightSummary(activity)

	if summary.TotalCommits != 42 || summary.ActiveRepos != 2 {
		t.Errorf("summary = %+v", summary)
	}
	// 语言按字典序输出，保证响应稳定
	if len(summary.Languages) != 2 || summary.Languages[0] != "Go" || summary.Languages[1] != "Python" {
		t.Errorf("Languages = %v", summary.Languages)
	}
}

func TestUdemyInsightSummary(t *testing.T) {
	activity := &model.UdemyActivity{
		TotalCourses:           4,
		CompletionRate:         25,
		CompletedLearningHours: 12.5,
		Categories: map[string]model.CategoryStats{
			"Web":    {Count: 2},
			"Design": {Count: 2},
		},
	}

	summary := UdemyInsightSummary(activity)

	if summary.CoursesCount != 4 || summary.CompletionRate != 25 || summary.LearningHours != 12.5 {
		t.Errorf("summary = %+v", summary)
	}
	if len(summary.Categories) != 2 || summary.Categories[0] != "Design" {
		t.Errorf("Categories = %v", summary.Categories)
	}
}
