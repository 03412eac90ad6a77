package model

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventStatusPlanned   EventStatus = "planned"
	EventStatusConfirmed EventStatus = "confirmed"
	EventStatusCompleted EventStatus = "completed"
)

// Event is the operational booking record materialized once a deal is reserved.
// At most one event exists per deal; the events table enforces a unique
// constraint on deal_id.
type Event struct {
	ID                    uuid.UUID   `db:"id" json:"id"`
	DealID                uuid.UUID   `db:"deal_id" json:"deal_id"`
	EventDate             time.Time   `db:"event_date" json:"event_date"`
	EventStartTime        *string     `db:"event_start_time" json:"event_start_time,omitempty"`
	EventEndTime          *string     `db:"event_end_time" json:"event_end_time,omitempty"`
	FinalValue            float64     `db:"final_value" json:"final_value"`
	NumberOfGuests        int         `db:"number_of_guests" json:"number_of_guests"`
	Hall                  string      `db:"hall" json:"hall"`
	OperationalNotes      *string     `db:"operational_notes" json:"operational_notes,omitempty"`
	Status                EventStatus `db:"status" json:"status"`
	GoogleCalendarEventID *string     `db:"google_calendar_event_id" json:"google_calendar_event_id,omitempty"`
	CreatedAt             time.Time   `db:"created_at" json:"created_at"`
}

type CreateEventRequest struct {
	DealID           uuid.UUID   `json:"deal_id" binding:"required"`
	EventDate        string      `json:"event_date" binding:"required,datetime=2006-01-02"`
	EventStartTime   *string     `json:"event_start_time" binding:"omitempty,hhmm"`
	EventEndTime     *string     `json:"event_end_time" binding:"omitempty,hhmm"`
	FinalValue       float64     `json:"final_value" binding:"gte=0"`
	NumberOfGuests   int         `json:"number_of_guests" binding:"required,gte=1"`
	Hall             string      `json:"hall" binding:"required,min=1"`
	OperationalNotes *string     `json:"operational_notes"`
	Status           EventStatus `json:"status" binding:"required,oneof=planned confirmed completed"`
}

type UpdateEventRequest struct {
	Status           *EventStatus `json:"status" binding:"omitempty,oneof=planned confirmed completed"`
	EventDate        *string      `json:"event_date" binding:"omitempty,datetime=2006-01-02"`
	EventStartTime   *string      `json:"event_start_time" binding:"omitempty,hhmm"`
	EventEndTime     *string      `json:"event_end_time" binding:"omitempty,hhmm"`
	Hall             *string      `json:"hall" binding:"omitempty,min=1"`
	OperationalNotes *string      `json:"operational_notes"`
}
