package service

import (
	"testing"
	"time"
)

func TestBuildStudyEvent(t *testing.T) {
	start := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	event := BuildStudyEvent("Study Session: Go", "Scheduled study session for Go", start, 2)

	if event.Summary != "Study Session: Go" {
		t.Errorf("summary = %q", event.Summary)
	}
	if event.Start.DateTime != "2026-03-10T18:00:00Z" || event.Start.TimeZone != "UTC" {
		t.Errorf("start = %+v", event.Start)
	}
	if event.End.DateTime != "2026-03-10T20:00:00Z" {
		t.Errorf("end = %+v", event.End)
	}
}

func TestBuildStudyEventDefaultDuration(t *testing.T) {
	start := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	event := BuildStudyEvent("Session", "", start, 0)

	if event.End.DateTime != "2026-03-10T19:00:00Z" {
		t.Errorf("end = %q, want one hour after start", event.End.DateTime)
	}
}

func TestBuildStudyEventReminders(t *testing.T) {
	event := BuildStudyEvent("Session", "", time.Now(), 1)

	reminders := event.Reminders
	if reminders == nil || reminders.UseDefault {
		t.Fatalf("reminders = %+v", reminders)
	}
	if len(reminders.Overrides) != 2 {
		t.Fatalf("overrides = %+v", reminders.Overrides)
	}

	// 邮件提前一天，弹窗提前半小时
	email, popup := reminders.Overrides[0], reminders.Overrides[1]
	if email.Method != "email" || email.Minutes != 24*60 {
		t.Errorf("email reminder = %+v", email)
	}
	if popup.Method != "popup" || popup.Minutes != 30 {
		t.Errorf("popup reminder = %+v", popup)
	}

	// UseDefault=false 是零值，必须强制序列化
	found := false
	for _, f := range reminders.ForceSendFields {
		if f == "UseDefault" {
			found = true
		}
	}
	if !found {
		t.Errorf("ForceSendFields = %v, must include UseDefault", reminders.ForceSendFields)
	}
}
