package calendar

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	gcalendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/marceelkacz03/lola-crm/config"
)

// GoogleProvider writes bookings to a single Google Calendar using a service
// account credentials file.
type GoogleProvider struct {
	svc        *gcalendar.Service
	calendarID string
	timezone   string
}

// NewGoogleProvider builds the calendar client. When the integration is not
// fully configured it falls back to the disabled provider instead of failing,
// so environments without calendar credentials keep working.
func NewGoogleProvider(ctx context.Context, cfg config.CalendarConfig) (Provider, error) {
	if !cfg.Enabled || cfg.CredentialsFile == "" || cfg.CalendarID == "" {
		return NewDisabledProvider(), nil
	}

	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, gcalendar.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar credentials: %w", err)
	}

	svc, err := gcalendar.NewService(ctx, option.WithTokenSource(creds.TokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &GoogleProvider{
		svc:        svc,
		calendarID: cfg.CalendarID,
		timezone:   cfg.Timezone,
	}, nil
}

func (p *GoogleProvider) Enabled() bool { return true }

func (p *GoogleProvider) Insert(ctx context.Context, booking *Booking) (string, error) {
	created, err := p.svc.Events.Insert(p.calendarID, p.toEvent(booking)).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to insert calendar event: %w", err)
	}
	return created.Id, nil
}

func (p *GoogleProvider) Patch(ctx context.Context, eventID string, booking *Booking) error {
	_, err := p.svc.Events.Patch(p.calendarID, eventID, p.toEvent(booking)).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to patch calendar event: %w", err)
	}
	return nil
}

func (p *GoogleProvider) List(ctx context.Context, from, to time.Time, maxResults int64) ([]*Entry, error) {
	if maxResults <= 0 {
		maxResults = 50
	}
	result, err := p.svc.Events.List(p.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxResults).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}

	entries := make([]*Entry, 0, len(result.Items))
	for _, item := range result.Items {
		entry := &Entry{ID: item.Id}
		entry.Summary = item.Summary
		entry.Description = item.Description
		entry.Location = item.Location
		if item.Start != nil {
			entry.Start = item.Start.DateTime
		}
		if item.End != nil {
			entry.End = item.End.DateTime
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (p *GoogleProvider) toEvent(booking *Booking) *gcalendar.Event {
	return &gcalendar.Event{
		Summary:     booking.Summary,
		Description: booking.Description,
		Location:    booking.Location,
		Start: &gcalendar.EventDateTime{
			DateTime: booking.Start,
			TimeZone: p.timezone,
		},
		End: &gcalendar.EventDateTime{
			DateTime: booking.End,
			TimeZone: p.timezone,
		},
	}
}
