package model

import (
	"time"

	"github.com/google/uuid"
)

// DealAlert is a deal flagged by the alert engine, with the owning account's
// name already resolved.
type DealAlert struct {
	ID               uuid.UUID  `json:"id"`
	Status           DealStatus `json:"status"`
	NextFollowupDate *time.Time `json:"next_followup_date,omitempty"`
	AccountName      string     `json:"account_name"`
}

type InactiveDealAlert struct {
	ID             uuid.UUID  `json:"id"`
	Status         DealStatus `json:"status"`
	LastActivityAt time.Time  `json:"last_activity_at"`
	AccountName    string     `json:"account_name"`
}

type SalesAlerts struct {
	InactiveDays      int                 `json:"inactiveDays"`
	OverdueFollowups  []DealAlert         `json:"overdueFollowups"`
	InactiveDeals     []InactiveDealAlert `json:"inactiveDeals"`
	MissingFollowups  []DealAlert         `json:"missingFollowups"`
}

type FollowupDeal struct {
	ID               uuid.UUID  `json:"id"`
	Status           DealStatus `json:"status"`
	NextFollowupDate *time.Time `json:"next_followup_date,omitempty"`
	AccountID        uuid.UUID  `json:"account_id"`
	AccountName      string     `json:"account_name"`
}

type FollowupActivity struct {
	ID               uuid.UUID    `json:"id"`
	Type             ActivityType `json:"type"`
	NextFollowupDate *time.Time   `json:"next_followup_date,omitempty"`
	DealID           uuid.UUID    `json:"deal_id"`
	AccountName      string       `json:"account_name"`
}

type DailyFollowups struct {
	Deals      []FollowupDeal     `json:"deals"`
	Activities []FollowupActivity `json:"activities"`
}

type WeeklyReport struct {
	PeriodStart      string  `json:"periodStart"`
	PeriodEnd        string  `json:"periodEnd"`
	PipelineValue    float64 `json:"pipelineValue"`
	ConversionRate   float64 `json:"conversionRate"`
	ConfirmedRevenue float64 `json:"confirmedRevenue"`
}

type UpcomingEvent struct {
	ID             uuid.UUID   `json:"id"`
	EventDate      time.Time   `json:"event_date"`
	Hall           string      `json:"hall"`
	Status         EventStatus `json:"status"`
	NumberOfGuests int         `json:"number_of_guests"`
}

type SourceValue struct {
	Source AccountSource `json:"source"`
	Value  float64       `json:"value"`
}

type DashboardStats struct {
	TotalPipelineValue float64         `json:"totalPipelineValue"`
	MonthlySalesValue  float64         `json:"monthlySalesValue"`
	ConversionRate     float64         `json:"conversionRate"`
	AverageEventValue  float64         `json:"averageEventValue"`
	SalesBySource      []SourceValue   `json:"salesBySource"`
	UpcomingEvents     []UpcomingEvent `json:"upcomingEvents"`
}

type ChecklistItem struct {
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

type EventChecklist struct {
	ID             uuid.UUID `json:"id"`
	AccountName    string    `json:"account_name"`
	EventDate      time.Time `json:"event_date"`
	Hall           string    `json:"hall"`
	CompletedItems int       `json:"completedItems"`
	TotalItems     int       `json:"totalItems"`
	PendingItems   []string  `json:"pendingItems"`
}

type ChecklistTotals struct {
	EventsInWeek      int `json:"eventsInWeek"`
	EventsToday       int `json:"eventsToday"`
	TotalPendingItems int `json:"totalPendingItems"`
}

type OperationalChecklist struct {
	Events []EventChecklist `json:"events"`
	Totals ChecklistTotals  `json:"totals"`
}

type SellerKpis struct {
	NewThisWeek   int `json:"newThisWeek"`
	OffersSent    int `json:"offersSent"`
	InNegotiation int `json:"inNegotiation"`
	Completed     int `json:"completed"`
}
