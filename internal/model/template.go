package model

import (
	"time"

	"github.com/google/uuid"
)

type MessageTemplateType string

const (
	MessageTemplateTypeFirstContact MessageTemplateType = "first_contact"
	MessageTemplateTypeFollowup     MessageTemplateType = "followup"
	MessageTemplateTypeOffer        MessageTemplateType = "offer"
	MessageTemplateTypeOther        MessageTemplateType = "other"
)

type MessageTemplate struct {
	ID        uuid.UUID           `db:"id" json:"id"`
	Title     string              `db:"title" json:"title"`
	Type      MessageTemplateType `db:"type" json:"type"`
	Content   string              `db:"content" json:"content"`
	CreatedBy uuid.UUID           `db:"created_by" json:"created_by"`
	CreatedAt time.Time           `db:"created_at" json:"created_at"`
}

type CreateTemplateRequest struct {
	Title   string              `json:"title" binding:"required,min=2"`
	Type    MessageTemplateType `json:"type" binding:"required,oneof=first_contact followup offer other"`
	Content string              `json:"content" binding:"required,min=5"`
}
