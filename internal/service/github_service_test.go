package service

import (
	"reflect"
	"testing"
)

func TestSuggestLearningPaths(t *testing.T) {
	tests := []struct {
		name      string
		languages []string
		want      []string
	}{
		{
			"single language",
			[]string{"Python"},
			[]string{"Data Science with Python", "Django Web Development", "Machine Learning"},
		},
		{
			"shared paths dedupe in first-seen order",
			[]string{"Java", "Go"},
			[]string{"Spring Framework", "Android Development", "Microservices", "Cloud Computing", "DevOps"},
		},
		{"unknown language yields nothing", []string{"COBOL"}, []string{}},
		{"no languages", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestLearningPaths(tt.languages)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SuggestLearningPaths(%v) = %v, want %v", tt.languages, got, tt.want)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"abcdef", 3, "abc"},
		{"abc", 10, "abc"},
		{"修复数据库连接泄漏", 4, "修复数据"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := truncateRunes(tt.in, tt.n); got != tt.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
