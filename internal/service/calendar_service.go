package service

import (
	"context"
	"fmt"
	"learning_coach_backend/internal/config"
	"learning_coach_backend/internal/model"
	"learning_coach_backend/internal/util"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// 默认取未来 7 天的日程
const calendarLookaheadDays = 7

type CalendarService struct {
	oauth *oauth2.Config
}

func NewCalendarService(cfg config.IntegrationsConfig) *CalendarService {
	return &CalendarService{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{calendar.CalendarScope},
		},
	}
}

// BuildStudyEvent 组装学习日程：UTC 起止时间，邮件提前一天、弹窗提前半小时提醒
func BuildStudyEvent(title, description string, start time.Time, durationHours int) *calendar.Event {
	if durationHours <= 0 {
		durationHours = 1
	}
	end := start.Add(time.Duration(durationHours) * time.Hour)

	return &calendar.Event{
		Summary:     title,
		Description: description,
		Start: &calendar.EventDateTime{
			DateTime: start.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &calendar.EventDateTime{
			DateTime: end.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 30},
			},
			// false 是零值，必须显式带上，否则序列化时被省略
			ForceSendFields: []string{"UseDefault"},
		},
	}
}

// Authenticate 用存储的令牌列一次日历，验证授权仍然有效
func (s *CalendarService) Authenticate(ctx context.Context, creds model.CalendarCredentials) error {
	svc, err := s.service(ctx, creds)
	if err != nil {
		return err
	}
	if _, err := svc.CalendarList.List().MaxResults(1).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: %v", util.ErrUpstreamFailure, err)
	}
	return nil
}

// CreateStudyEvent 在主日历上创建学习日程
func (s *CalendarService) CreateStudyEvent(ctx context.Context, creds model.CalendarCredentials, title, description string, start time.Time, durationHours int) (*model.CalendarEvent, error) {
	svc, err := s.service(ctx, creds)
	if err != nil {
		return nil, err
	}

	created, err := svc.Events.Insert("primary", BuildStudyEvent(title, description, start, durationHours)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUpstreamFailure, err)
	}

	return &model.CalendarEvent{
		ID:        created.Id,
		Title:     created.Summary,
		StartTime: eventStart(created),
		HTMLLink:  created.HtmlLink,
	}, nil
}

// UpcomingEvents 主日历未来 days 天的日程，按开始时间排序
func (s *CalendarService) UpcomingEvents(ctx context.Context, creds model.CalendarCredentials, days int) ([]model.CalendarEvent, error) {
	svc, err := s.service(ctx, creds)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = calendarLookaheadDays
	}

	now := time.Now().UTC()
	list, err := svc.Events.List("primary").
		TimeMin(now.Format(time.RFC3339)).
		TimeMax(now.AddDate(0, 0, days).Format(time.RFC3339)).
		MaxResults(50).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUpstreamFailure, err)
	}

	events := make([]model.CalendarEvent, 0, len(list.Items))
	for _, item := range list.Items {
		events = append(events, model.CalendarEvent{
			ID:        item.Id,
			Title:     item.Summary,
			StartTime: eventStart(item),
			Location:  item.Location,
			Attendees: len(item.Attendees),
			HTMLLink:  item.HtmlLink,
		})
	}
	return events, nil
}

// FetchActivity 未来一周的日程快照
func (s *CalendarService) FetchActivity(ctx context.Context, creds model.CalendarCredentials) (*model.CalendarActivity, error) {
	events, err := s.UpcomingEvents(ctx, creds, calendarLookaheadDays)
	if err != nil {
		return nil, err
	}
	return &model.CalendarActivity{UpcomingEvents: events, SyncedAt: time.Now()}, nil
}

func (s *CalendarService) service(ctx context.Context, creds model.CalendarCredentials) (*calendar.Service, error) {
	token := &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		TokenType:    creds.TokenType,
		Expiry:       creds.Expiry,
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(s.oauth.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUpstreamFailure, err)
	}
	return svc, nil
}

// eventStart 全天事件只有日期，优先取精确时间
func eventStart(e *calendar.Event) string {
	if e.Start == nil {
		return ""
	}
	if e.Start.DateTime != "" {
		return e.Start.DateTime
	}
	return e.Start.Date
}
