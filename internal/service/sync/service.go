package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/marceelkacz03/lola-crm/internal/calendar"
	"github.com/marceelkacz03/lola-crm/internal/model"
	"github.com/marceelkacz03/lola-crm/internal/repository"
	"github.com/marceelkacz03/lola-crm/pkg/logger"
	"github.com/marceelkacz03/lola-crm/pkg/metrics"
)

// Calendar text for the two sync paths. Both fall back to a placeholder name
// when the account has no name; downstream consumers filter on the
// "Reserved:"/"Confirmed:" prefixes, so they must not drift.
const (
	reservedFallbackName  = "Premium Event"
	confirmedFallbackName = "Event"
	reservedDescription   = "Auto-created from CRM reserved deal."
	confirmedDescription  = "Confirmed event synced from CRM"
	resyncDescription     = "Synced after CRM update"
	reservedLocation      = "Premium Venue"
	autoCreatedNotes      = "Auto-created from reserved deal"
	defaultHall           = "TBD"
	defaultStartTime      = "10:00"
	defaultEndTime        = "14:00"
)

// Outcome reports what the calendar side of a sync actually did.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
	OutcomeSkipped Outcome = "skipped"
)

type Result struct {
	Outcome         Outcome `json:"outcome"`
	CalendarEventID *string `json:"calendar_event_id,omitempty"`
}

// Service keeps deals, operational events and the external calendar aligned.
type Service struct {
	deals    repository.DealRepository
	events   repository.EventRepository
	outbox   repository.OutboxRepository
	provider calendar.Provider
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

func NewService(
	deals repository.DealRepository,
	events repository.EventRepository,
	outbox repository.OutboxRepository,
	provider calendar.Provider,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Service {
	return &Service{
		deals:    deals,
		events:   events,
		outbox:   outbox,
		provider: provider,
		metrics:  metrics,
		logger:   logger,
	}
}

// EnsureEventForDeal materializes the operational event for a reserved deal
// and pushes a tentative booking to the calendar. Safe to call repeatedly:
// the event row is keyed on deal_id and an existing calendar entry is patched
// rather than duplicated.
func (s *Service) EnsureEventForDeal(ctx context.Context, deal *model.DealWithAccount) (*model.Event, *Result, error) {
	existing, err := s.events.GetByDealID(ctx, deal.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up event for deal: %w", err)
	}

	event := &model.Event{
		DealID:         deal.ID,
		EventDate:      eventDateOrToday(deal.EventDate),
		FinalValue:     deal.EstimatedValue,
		NumberOfGuests: guestsOrOne(deal.EstimatedGuests),
		Hall:           defaultHall,
		Status:         model.EventStatusPlanned,
	}
	notes := autoCreatedNotes
	event.OperationalNotes = &notes
	if existing != nil {
		// Carry the calendar ref and hand-edited fields through the upsert.
		event.Hall = existing.Hall
		event.OperationalNotes = existing.OperationalNotes
		event.EventStartTime = existing.EventStartTime
		event.EventEndTime = existing.EventEndTime
		event.GoogleCalendarEventID = existing.GoogleCalendarEventID
	}

	if err := s.events.UpsertByDealID(ctx, event); err != nil {
		return nil, nil, fmt.Errorf("failed to upsert event: %w", err)
	}

	booking := &calendar.Booking{
		Summary:     reservedTitle(deal.AccountName),
		Description: reservedDescription,
		Location:    reservedLocation,
		Start:       calendar.LocalDateTime(dateString(event.EventDate), timeOrDefault(event.EventStartTime, defaultStartTime)),
		End:         calendar.LocalDateTime(dateString(event.EventDate), timeOrDefault(event.EventEndTime, defaultEndTime)),
	}

	result, err := s.syncBooking(ctx, event, booking, resyncDescription)
	if err != nil {
		return nil, nil, err
	}

	s.publishOutbox(ctx, "deal.reserved", map[string]interface{}{
		"deal_id":  deal.ID,
		"event_id": event.ID,
		"outcome":  result.Outcome,
	})

	return event, result, nil
}

// SyncConfirmedEvent pushes a confirmed event to the calendar, creating the
// entry on first sync and patching it afterwards.
func (s *Service) SyncConfirmedEvent(ctx context.Context, event *model.Event) (*Result, error) {
	deal, err := s.deals.GetWithAccount(ctx, event.DealID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deal for event: %w", err)
	}

	description := confirmedDescription
	if event.GoogleCalendarEventID != nil {
		description = resyncDescription
	}

	booking := &calendar.Booking{
		Summary:     confirmedTitle(deal.AccountName),
		Description: description,
		Location:    event.Hall,
		Start:       calendar.LocalDateTime(dateString(event.EventDate), timeOrDefault(event.EventStartTime, defaultStartTime)),
		End:         calendar.LocalDateTime(dateString(event.EventDate), timeOrDefault(event.EventEndTime, defaultEndTime)),
	}

	result, err := s.syncBooking(ctx, event, booking, description)
	if err != nil {
		return nil, err
	}

	s.publishOutbox(ctx, "event.synced", map[string]interface{}{
		"event_id": event.ID,
		"deal_id":  event.DealID,
		"outcome":  result.Outcome,
	})

	return result, nil
}

// syncBooking performs the remote write. A disabled provider is reported as a
// skip with the previous calendar ref, never as an error; a configured
// provider failing is surfaced to the caller.
func (s *Service) syncBooking(ctx context.Context, event *model.Event, booking *calendar.Booking, patchDescription string) (*Result, error) {
	if !s.provider.Enabled() {
		s.metrics.CalendarSyncs.WithLabelValues(string(OutcomeSkipped)).Inc()
		return &Result{Outcome: OutcomeSkipped, CalendarEventID: event.GoogleCalendarEventID}, nil
	}

	timer := prometheus.NewTimer(s.metrics.CalendarSyncLatency)
	defer timer.ObserveDuration()

	if event.GoogleCalendarEventID != nil {
		patched := *booking
		patched.Description = patchDescription
		if err := s.provider.Patch(ctx, *event.GoogleCalendarEventID, &patched); err != nil {
			s.metrics.CalendarSyncs.WithLabelValues("failed").Inc()
			return nil, fmt.Errorf("failed to patch calendar event: %w", err)
		}
		s.metrics.CalendarSyncs.WithLabelValues(string(OutcomeUpdated)).Inc()
		return &Result{Outcome: OutcomeUpdated, CalendarEventID: event.GoogleCalendarEventID}, nil
	}

	remoteID, err := s.provider.Insert(ctx, booking)
	if err != nil {
		s.metrics.CalendarSyncs.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to insert calendar event: %w", err)
	}

	if err := s.events.UpdateCalendarRef(ctx, event.ID, &remoteID); err != nil {
		return nil, fmt.Errorf("failed to store calendar ref: %w", err)
	}
	event.GoogleCalendarEventID = &remoteID

	s.metrics.CalendarSyncs.WithLabelValues(string(OutcomeCreated)).Inc()
	return &Result{Outcome: OutcomeCreated, CalendarEventID: &remoteID}, nil
}

func (s *Service) publishOutbox(ctx context.Context, eventType string, payload map[string]interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error(err, "Failed to marshal outbox payload", "event_type", eventType)
		return
	}
	if err := s.outbox.Create(ctx, &model.OutboxEvent{EventType: eventType, Payload: raw}); err != nil {
		s.logger.Error(err, "Failed to enqueue outbox event", "event_type", eventType)
	}
}

func reservedTitle(accountName string) string {
	if accountName == "" {
		accountName = reservedFallbackName
	}
	return "Reserved: " + accountName
}

func confirmedTitle(accountName string) string {
	if accountName == "" {
		accountName = confirmedFallbackName
	}
	return "Confirmed: " + accountName
}

func eventDateOrToday(date *time.Time) time.Time {
	if date != nil {
		return *date
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func guestsOrOne(guests *int) int {
	if guests != nil && *guests > 0 {
		return *guests
	}
	return 1
}

func timeOrDefault(hhmm *string, fallback string) string {
	if hhmm != nil && *hhmm != "" {
		return *hhmm
	}
	return fallback
}

func dateString(t time.Time) string {
	return t.Format("2006-01-02")
}
