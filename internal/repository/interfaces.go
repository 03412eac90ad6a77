package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marceelkacz03/lola-crm/internal/model"
)

// All repository interfaces in one file
type (
	// AccountRepository handles account operations
	AccountRepository interface {
		Create(ctx context.Context, account *model.Account) error
		Get(ctx context.Context, id uuid.UUID) (*model.Account, error)
		Update(ctx context.Context, account *model.Account) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Account, error)
		// AdvanceFollowup moves the account's next follow-up date forward and
		// marks it contacted; used when an interaction with a follow-up is
		// recorded.
		AdvanceFollowup(ctx context.Context, id uuid.UUID, followupDate time.Time) error
	}

	DealRepository interface {
		Create(ctx context.Context, deal *model.Deal) error
		Get(ctx context.Context, id uuid.UUID) (*model.Deal, error)
		GetWithAccount(ctx context.Context, id uuid.UUID) (*model.DealWithAccount, error)
		Update(ctx context.Context, deal *model.Deal) error
		List(ctx context.Context) ([]*model.Deal, error)
		ListWithAccounts(ctx context.Context) ([]*model.DealWithAccount, error)
		ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*model.Deal, error)
		ListDueFollowups(ctx context.Context, from, to time.Time) ([]*model.DealWithAccount, error)
	}

	EventRepository interface {
		Create(ctx context.Context, event *model.Event) error
		Get(ctx context.Context, id uuid.UUID) (*model.Event, error)
		GetByDealID(ctx context.Context, dealID uuid.UUID) (*model.Event, error)
		Update(ctx context.Context, event *model.Event) error
		// UpsertByDealID inserts the event or, when a row for the deal already
		// exists, overwrites its operational fields. Keyed on the deal_id
		// unique constraint so concurrent inserts collapse to one row.
		UpsertByDealID(ctx context.Context, event *model.Event) error
		UpdateCalendarRef(ctx context.Context, id uuid.UUID, calendarEventID *string) error
		List(ctx context.Context, statuses ...model.EventStatus) ([]*model.Event, error)
		ListUpcoming(ctx context.Context, from time.Time, limit int, statuses ...model.EventStatus) ([]*model.Event, error)
		ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*model.Event, error)
		ListByDateRange(ctx context.Context, status model.EventStatus, from, to time.Time) ([]*model.Event, error)
	}

	ActivityRepository interface {
		Create(ctx context.Context, activity *model.Activity) error
		List(ctx context.Context) ([]*model.Activity, error)
		// LatestActivityByDeal returns max(created_at) per deal_id.
		LatestActivityByDeal(ctx context.Context) (map[uuid.UUID]time.Time, error)
		ListDueFollowups(ctx context.Context, from, to time.Time) ([]*model.Activity, error)
	}

	InteractionRepository interface {
		Create(ctx context.Context, interaction *model.Interaction) error
		List(ctx context.Context) ([]*model.Interaction, error)
	}

	TemplateRepository interface {
		Create(ctx context.Context, template *model.MessageTemplate) error
		Get(ctx context.Context, id uuid.UUID) (*model.MessageTemplate, error)
		Update(ctx context.Context, template *model.MessageTemplate) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.MessageTemplate, error)
	}

	UserRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		UpdateRole(ctx context.Context, id uuid.UUID, role model.AppRole) error
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMessage *string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}

	// ExportRepository reads whole tables as generic rows for CSV export.
	ExportRepository interface {
		ListRows(ctx context.Context, table string) ([]map[string]interface{}, error)
	}
)
