package model

import (
	"time"

	"github.com/google/uuid"
)

type AccountType string

const (
	AccountTypeCompany        AccountType = "company"
	AccountTypePrivate        AccountType = "private"
	AccountTypeWeddingPlanner AccountType = "wedding_planner"
)

type AccountSource string

const (
	AccountSourceInternalBase AccountSource = "internal_base"
	AccountSourceOwnPortfolio AccountSource = "own_portfolio"
	AccountSourcePlanner      AccountSource = "planner"
	AccountSourceNetworking   AccountSource = "networking"
	AccountSourceOther        AccountSource = "other"
)

type SalesStatus string

const (
	SalesStatusNew         SalesStatus = "new"
	SalesStatusContacted   SalesStatus = "contacted"
	SalesStatusOfferSent   SalesStatus = "offer_sent"
	SalesStatusNegotiation SalesStatus = "negotiation"
	SalesStatusWon         SalesStatus = "won"
	SalesStatusLost        SalesStatus = "lost"
)

type Account struct {
	ID               uuid.UUID     `db:"id" json:"id"`
	Type             AccountType   `db:"type" json:"type"`
	Name             string        `db:"name" json:"name"`
	ContactPerson    *string       `db:"contact_person" json:"contact_person,omitempty"`
	Email            *string       `db:"email" json:"email,omitempty"`
	Phone            *string       `db:"phone" json:"phone,omitempty"`
	Source           AccountSource `db:"source" json:"source"`
	SalesStatus      SalesStatus   `db:"sales_status" json:"sales_status"`
	EstimatedValue   *float64      `db:"estimated_value" json:"estimated_value,omitempty"`
	NextFollowupDate *time.Time    `db:"next_followup_date" json:"next_followup_date,omitempty"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
}

type CreateAccountRequest struct {
	Type             AccountType   `json:"type" binding:"required,oneof=company private wedding_planner"`
	Name             string        `json:"name" binding:"required,min=2"`
	ContactPerson    *string       `json:"contact_person"`
	Email            *string       `json:"email" binding:"omitempty,email"`
	Phone            *string       `json:"phone"`
	Source           AccountSource `json:"source" binding:"required,oneof=internal_base own_portfolio planner networking other"`
	SalesStatus      *SalesStatus  `json:"sales_status" binding:"omitempty,oneof=new contacted offer_sent negotiation won lost"`
	EstimatedValue   *float64      `json:"estimated_value" binding:"omitempty,gte=0"`
	NextFollowupDate *string       `json:"next_followup_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateAccountSalesRequest is the quick-edit payload used from the sales views.
type UpdateAccountSalesRequest struct {
	SalesStatus      *SalesStatus `json:"sales_status" binding:"omitempty,oneof=new contacted offer_sent negotiation won lost"`
	EstimatedValue   *float64     `json:"estimated_value" binding:"omitempty,gte=0"`
	NextFollowupDate *string      `json:"next_followup_date" binding:"omitempty,datetime=2006-01-02"`
}
