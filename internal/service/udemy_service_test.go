package service

import (
	"learning_coach_backend/internal/model"
	"testing"
	"time"
)

func rawCourse(title, category string, lectures, completed int) model.UdemyRawCourse {
	c := model.UdemyRawCourse{
		Title:                title,
		NumLectures:          lectures,
		NumCompletedLectures: completed,
	}
	c.PrimaryCategory.Title = category
	return c
}

func TestProcessUdemyCourseStatus(t *testing.T) {
	tests := []struct {
		name       string
		completed  int
		wantStatus string
	}{
		{"90 percent is completed", 18, "Completed"},
		{"50 percent is in progress", 10, "In Progress"},
		{"10 percent is started", 2, "Started"},
		{"under 10 percent is enrolled", 1, "Enrolled"},
		{"untouched is enrolled", 0, "Enrolled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			course := ProcessUdemyCourse(rawCourse("Course", "Web", 20, tt.completed))
			if course.Status != tt.wantStatus {
				t.Errorf("progress %v status = %q, want %q", course.Progress, course.Status, tt.wantStatus)
			}
		})
	}
}

func TestProcessUdemyCourseDefaults(t *testing.T) {
	raw := rawCourse("Course", "", 0, 0)
	raw.ContentLengthVideo = 7200 // 秒
	raw.CompletionTime = 1800

	course := ProcessUdemyCourse(raw)

	if course.Category != "General" {
		t.Errorf("category = %q, want General", course.Category)
	}
	// 没有课时信息时进度保持 0，不做除零
	if course.Progress != 0 {
		t.Errorf("progress = %v, want 0", course.Progress)
	}
	if course.TotalDurationMinutes != 120 || course.ProgressMinutes != 30 {
		t.Errorf("durations = %d/%d", course.ProgressMinutes, course.TotalDurationMinutes)
	}
}

func TestAggregateUdemyCoursesEmpty(t *testing.T) {
	activity := AggregateUdemyCourses(nil, time.Now())

	if activity.TotalCourses != 0 || activity.CompletionRate != 0 {
		t.Errorf("activity = %+v", activity)
	}
	if activity.Categories == nil || activity.NeedingAttention == nil || activity.HighPerforming == nil || activity.Courses == nil {
		t.Error("empty snapshot must keep non-nil collections")
	}
}

func TestAggregateUdemyCourses(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	recent := rawCourse("Go Deep Dive", "Programming", 10, 10)
	recent.LastAccessedTime = now.AddDate(0, 0, -2).Format(time.RFC3339)

	stalled := rawCourse("SQL Basics", "Data", 10, 2)
	stalled.LastAccessedTime = "2025-11-01"

	untouched := rawCourse("Design 101", "Design", 10, 0)

	activity := AggregateUdemyCourses([]model.UdemyRawCourse{recent, stalled, untouched}, now)

	if activity.TotalCourses != 3 {
		t.Fatalf("TotalCourses = %d", activity.TotalCourses)
	}
	if activity.CompletedCourses != 1 || activity.InProgressCourses != 1 || activity.NotStartedCourses != 1 {
		t.Errorf("split = %d/%d/%d", activity.CompletedCourses, activity.InProgressCourses, activity.NotStartedCourses)
	}
	if !almostEqual(activity.CompletionRate, 33.3) {
		t.Errorf("CompletionRate = %v, want 33.3", activity.CompletionRate)
	}
	if !almostEqual(activity.AverageProgress, 40) {
		t.Errorf("AverageProgress = %v, want 40", activity.AverageProgress)
	}

	// 进度 <30 的课程需要关注，>70 的表现好
	if len(activity.NeedingAttention) != 2 {
		t.Errorf("NeedingAttention = %v", activity.NeedingAttention)
	}
	if len(activity.HighPerforming) != 1 || activity.HighPerforming[0] != "Go Deep Dive" {
		t.Errorf("HighPerforming = %v", activity.HighPerforming)
	}

	// 7 天窗口内只有一门课有访问记录
	if activity.RecentActivityCourses != 1 {
		t.Errorf("RecentActivityCourses = %d, want 1", activity.RecentActivityCourses)
	}

	if stats := activity.Categories["Programming"]; stats.Count != 1 || !almostEqual(stats.AvgProgress, 100) {
		t.Errorf("Programming stats = %+v", stats)
	}
}

func TestDaysSinceAccess(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		in       string
		wantDays int
		wantOK   bool
	}{
		{"rfc3339", "2026-03-08T12:00:00Z", 2, true},
		{"date only", "2026-03-05", 5, true},
		{"empty", "", 0, false},
		{"garbage", "last week", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, ok := daysSinceAccess(tt.in, now)
			if ok != tt.wantOK || (ok && days != tt.wantDays) {
				t.Errorf("daysSinceAccess(%q) = %d, %v; want %d, %v", tt.in, days, ok, tt.wantDays, tt.wantOK)
			}
		})
	}
}
