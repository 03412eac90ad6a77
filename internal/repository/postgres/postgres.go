package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/marceelkacz03/lola-crm/internal/repository"
)

type accountRepository struct {
	db *sqlx.DB
}

type dealRepository struct {
	db *sqlx.DB
}

type eventRepository struct {
	db *sqlx.DB
}

type activityRepository struct {
	db *sqlx.DB
}

type interactionRepository struct {
	db *sqlx.DB
}

type templateRepository struct {
	db *sqlx.DB
}

type userRepository struct {
	db *sqlx.DB
}

type outboxRepository struct {
	db *sqlx.DB
}

type exportRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func NewDealRepository(db *sqlx.DB) repository.DealRepository {
	return &dealRepository{db: db}
}

func NewEventRepository(db *sqlx.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func NewActivityRepository(db *sqlx.DB) repository.ActivityRepository {
	return &activityRepository{db: db}
}

func NewInteractionRepository(db *sqlx.DB) repository.InteractionRepository {
	return &interactionRepository{db: db}
}

func NewTemplateRepository(db *sqlx.DB) repository.TemplateRepository {
	return &templateRepository{db: db}
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{db: db}
}

func NewExportRepository(db *sqlx.DB) repository.ExportRepository {
	return &exportRepository{db: db}
}
