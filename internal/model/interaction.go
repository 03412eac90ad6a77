package model

import (
	"time"

	"github.com/google/uuid"
)

type InteractionType string

const (
	InteractionTypeCall    InteractionType = "call"
	InteractionTypeEmail   InteractionType = "email"
	InteractionTypeMeeting InteractionType = "meeting"
	InteractionTypeNote    InteractionType = "note"
)

// Interaction is an append-only touchpoint against an account. Recording one
// with a follow-up date also advances the account's next_followup_date.
type Interaction struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	AccountID        uuid.UUID       `db:"account_id" json:"account_id"`
	Type             InteractionType `db:"type" json:"type"`
	Note             string          `db:"note" json:"note"`
	NextFollowupDate *time.Time      `db:"next_followup_date" json:"next_followup_date,omitempty"`
	CreatedBy        uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}

type CreateInteractionRequest struct {
	AccountID        uuid.UUID       `json:"account_id" binding:"required"`
	Type             InteractionType `json:"type" binding:"required,oneof=call email meeting note"`
	Note             string          `json:"note" binding:"required,min=2"`
	NextFollowupDate *string         `json:"next_followup_date" binding:"omitempty,datetime=2006-01-02"`
}
