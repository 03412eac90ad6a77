package model

import (
	"time"

	"github.com/google/uuid"
)

type ActivityType string

const (
	ActivityTypeCall    ActivityType = "call"
	ActivityTypeEmail   ActivityType = "email"
	ActivityTypeMeeting ActivityType = "meeting"
	ActivityTypeOther   ActivityType = "other"
)

// Activity is an append-only log entry against a deal.
type Activity struct {
	ID               uuid.UUID    `db:"id" json:"id"`
	DealID           uuid.UUID    `db:"deal_id" json:"deal_id"`
	Type             ActivityType `db:"type" json:"type"`
	Description      string       `db:"description" json:"description"`
	NextStep         *string      `db:"next_step" json:"next_step,omitempty"`
	NextFollowupDate *time.Time   `db:"next_followup_date" json:"next_followup_date,omitempty"`
	CreatedBy        uuid.UUID    `db:"created_by" json:"created_by"`
	CreatedAt        time.Time    `db:"created_at" json:"created_at"`
}

type CreateActivityRequest struct {
	DealID           uuid.UUID    `json:"deal_id" binding:"required"`
	Type             ActivityType `json:"type" binding:"required,oneof=call email meeting other"`
	Description      string       `json:"description" binding:"required,min=3"`
	NextStep         *string      `json:"next_step"`
	NextFollowupDate *string      `json:"next_followup_date" binding:"omitempty,datetime=2006-01-02"`
}
