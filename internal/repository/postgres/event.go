package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/marceelkacz03/lola-crm/internal/model"
)

const eventColumns = `id, deal_id, event_date, event_start_time, event_end_time,
	final_value, number_of_guests, hall, operational_notes, status,
	google_calendar_event_id, created_at`

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `
		INSERT INTO events (
			id, deal_id, event_date, event_start_time, event_end_time,
			final_value, number_of_guests, hall, operational_notes, status,
			google_calendar_event_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	event.ID = uuid.New()
	event.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.DealID,
		event.EventDate,
		event.EventStartTime,
		event.EventEndTime,
		event.FinalValue,
		event.NumberOfGuests,
		event.Hall,
		event.OperationalNotes,
		event.Status,
		event.GoogleCalendarEventID,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *eventRepository) Get(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event model.Event
	err := r.db.GetContext(ctx, &event, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

// GetByDealID returns nil without error when no event exists for the deal yet.
func (r *eventRepository) GetByDealID(ctx context.Context, dealID uuid.UUID) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE deal_id = $1`

	var event model.Event
	err := r.db.GetContext(ctx, &event, query, dealID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event by deal: %w", err)
	}
	return &event, nil
}

func (r *eventRepository) Update(ctx context.Context, event *model.Event) error {
	query := `
		UPDATE events
		SET event_date = $1, event_start_time = $2, event_end_time = $3,
			final_value = $4, number_of_guests = $5, hall = $6,
			operational_notes = $7, status = $8, google_calendar_event_id = $9
		WHERE id = $10
	`
	result, err := r.db.ExecContext(ctx, query,
		event.EventDate,
		event.EventStartTime,
		event.EventEndTime,
		event.FinalValue,
		event.NumberOfGuests,
		event.Hall,
		event.OperationalNotes,
		event.Status,
		event.GoogleCalendarEventID,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("event not found")
	}
	return nil
}

func (r *eventRepository) UpsertByDealID(ctx context.Context, event *model.Event) error {
	query := `
		INSERT INTO events (
			id, deal_id, event_date, event_start_time, event_end_time,
			final_value, number_of_guests, hall, operational_notes, status,
			google_calendar_event_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (deal_id) DO UPDATE
		SET event_date = EXCLUDED.event_date,
			final_value = EXCLUDED.final_value,
			number_of_guests = EXCLUDED.number_of_guests,
			status = EXCLUDED.status,
			google_calendar_event_id = EXCLUDED.google_calendar_event_id
		RETURNING id, created_at
	`
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	row := r.db.QueryRowxContext(ctx, query,
		event.ID,
		event.DealID,
		event.EventDate,
		event.EventStartTime,
		event.EventEndTime,
		event.FinalValue,
		event.NumberOfGuests,
		event.Hall,
		event.OperationalNotes,
		event.Status,
		event.GoogleCalendarEventID,
		event.CreatedAt,
	)
	if err := row.Scan(&event.ID, &event.CreatedAt); err != nil {
		return fmt.Errorf("failed to upsert event: %w", err)
	}
	return nil
}

func (r *eventRepository) UpdateCalendarRef(ctx context.Context, id uuid.UUID, calendarEventID *string) error {
	query := `UPDATE events SET google_calendar_event_id = $1 WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, calendarEventID, id)
	if err != nil {
		return fmt.Errorf("failed to update calendar reference: %w", err)
	}
	return nil
}

func (r *eventRepository) List(ctx context.Context, statuses ...model.EventStatus) ([]*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	args := []interface{}{}

	if len(statuses) > 0 {
		query += ` WHERE status = ANY($1)`
		args = append(args, pq.Array(statuses))
	}
	query += ` ORDER BY event_date ASC`

	var events []*model.Event
	err := r.db.SelectContext(ctx, &events, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (r *eventRepository) ListUpcoming(ctx context.Context, from time.Time, limit int, statuses ...model.EventStatus) ([]*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE event_date >= $1 AND status = ANY($2)
		ORDER BY event_date ASC
		LIMIT $3`

	var events []*model.Event
	err := r.db.SelectContext(ctx, &events, query, from, pq.Array(statuses), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}
	return events, nil
}

func (r *eventRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE created_at >= $1 AND created_at <= $2`

	var events []*model.Event
	err := r.db.SelectContext(ctx, &events, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list events by creation window: %w", err)
	}
	return events, nil
}

func (r *eventRepository) ListByDateRange(ctx context.Context, status model.EventStatus, from, to time.Time) ([]*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE status = $1 AND event_date >= $2 AND event_date <= $3
		ORDER BY event_date ASC`

	var events []*model.Event
	err := r.db.SelectContext(ctx, &events, query, status, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list events by date range: %w", err)
	}
	return events, nil
}
