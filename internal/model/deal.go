package model

import (
	"time"

	"github.com/google/uuid"
)

type DealEventType string

const (
	DealEventTypeCorporate DealEventType = "corporate"
	DealEventTypeWedding   DealEventType = "wedding"
	DealEventTypePrivate   DealEventType = "private"
	DealEventTypeOther     DealEventType = "other"
)

type DealStatus string

const (
	DealStatusNewLead     DealStatus = "new_lead"
	DealStatusContacted   DealStatus = "contacted"
	DealStatusOfferSent   DealStatus = "offer_sent"
	DealStatusNegotiation DealStatus = "negotiation"
	DealStatusReserved    DealStatus = "reserved"
	DealStatusLost        DealStatus = "lost"
)

type Deal struct {
	ID               uuid.UUID     `db:"id" json:"id"`
	AccountID        uuid.UUID     `db:"account_id" json:"account_id"`
	EventType        DealEventType `db:"event_type" json:"event_type"`
	EstimatedValue   float64       `db:"estimated_value" json:"estimated_value"`
	EstimatedGuests  *int          `db:"estimated_guests" json:"estimated_guests,omitempty"`
	EventDate        *time.Time    `db:"event_date" json:"event_date,omitempty"`
	Status           DealStatus    `db:"status" json:"status"`
	Probability      int           `db:"probability" json:"probability"`
	OwnerID          uuid.UUID     `db:"owner_id" json:"owner_id"`
	NextFollowupDate *time.Time    `db:"next_followup_date" json:"next_followup_date,omitempty"`
	Notes            *string       `db:"notes" json:"notes,omitempty"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
}

// IsOpen reports whether the deal is still being worked: neither reserved nor lost.
func (d *Deal) IsOpen() bool {
	return d.Status != DealStatusReserved && d.Status != DealStatusLost
}

// DealWithAccount carries the owning account's name resolved by the repository
// join, so callers never deal with an optional relation shape.
type DealWithAccount struct {
	Deal
	AccountName string `db:"account_name" json:"account_name"`
}

type CreateDealRequest struct {
	AccountID        uuid.UUID     `json:"account_id" binding:"required"`
	EventType        DealEventType `json:"event_type" binding:"required,oneof=corporate wedding private other"`
	EstimatedValue   float64       `json:"estimated_value" binding:"gte=0"`
	EstimatedGuests  *int          `json:"estimated_guests" binding:"omitempty,gte=0"`
	EventDate        *string       `json:"event_date" binding:"omitempty,datetime=2006-01-02"`
	Status           DealStatus    `json:"status" binding:"required,oneof=new_lead contacted offer_sent negotiation reserved lost"`
	Probability      int           `json:"probability" binding:"gte=0,lte=100"`
	OwnerID          uuid.UUID     `json:"owner_id" binding:"required"`
	NextFollowupDate *string       `json:"next_followup_date" binding:"omitempty,datetime=2006-01-02"`
	Notes            *string       `json:"notes"`
}

type UpdateDealRequest struct {
	Status           *DealStatus `json:"status" binding:"omitempty,oneof=new_lead contacted offer_sent negotiation reserved lost"`
	Probability      *int        `json:"probability" binding:"omitempty,gte=0,lte=100"`
	NextFollowupDate *string     `json:"next_followup_date" binding:"omitempty,datetime=2006-01-02"`
}
