package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marceelkacz03/lola-crm/internal/model"
)

const dealColumns = `id, account_id, event_type, estimated_value, estimated_guests,
	event_date, status, probability, owner_id, next_followup_date, notes, created_at`

func (r *dealRepository) Create(ctx context.Context, deal *model.Deal) error {
	query := `
		INSERT INTO deals (
			id, account_id, event_type, estimated_value, estimated_guests,
			event_date, status, probability, owner_id, next_followup_date,
			notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	deal.ID = uuid.New()
	deal.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		deal.ID,
		deal.AccountID,
		deal.EventType,
		deal.EstimatedValue,
		deal.EstimatedGuests,
		deal.EventDate,
		deal.Status,
		deal.Probability,
		deal.OwnerID,
		deal.NextFollowupDate,
		deal.Notes,
		deal.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create deal: %w", err)
	}
	return nil
}

func (r *dealRepository) Get(ctx context.Context, id uuid.UUID) (*model.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id = $1`

	var deal model.Deal
	err := r.db.GetContext(ctx, &deal, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}
	return &deal, nil
}

func (r *dealRepository) GetWithAccount(ctx context.Context, id uuid.UUID) (*model.DealWithAccount, error) {
	query := `
		SELECT d.id, d.account_id, d.event_type, d.estimated_value, d.estimated_guests,
			   d.event_date, d.status, d.probability, d.owner_id, d.next_followup_date,
			   d.notes, d.created_at, a.name AS account_name
		FROM deals d
		JOIN accounts a ON a.id = d.account_id
		WHERE d.id = $1
	`
	var deal model.DealWithAccount
	err := r.db.GetContext(ctx, &deal, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get deal with account: %w", err)
	}
	return &deal, nil
}

func (r *dealRepository) Update(ctx context.Context, deal *model.Deal) error {
	query := `
		UPDATE deals
		SET status = $1, probability = $2, next_followup_date = $3,
			event_date = $4, estimated_value = $5, estimated_guests = $6, notes = $7
		WHERE id = $8
	`
	result, err := r.db.ExecContext(ctx, query,
		deal.Status,
		deal.Probability,
		deal.NextFollowupDate,
		deal.EventDate,
		deal.EstimatedValue,
		deal.EstimatedGuests,
		deal.Notes,
		deal.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update deal: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("deal not found")
	}
	return nil
}

func (r *dealRepository) List(ctx context.Context) ([]*model.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals ORDER BY created_at DESC`

	var deals []*model.Deal
	err := r.db.SelectContext(ctx, &deals, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	return deals, nil
}

func (r *dealRepository) ListWithAccounts(ctx context.Context) ([]*model.DealWithAccount, error) {
	query := `
		SELECT d.id, d.account_id, d.event_type, d.estimated_value, d.estimated_guests,
			   d.event_date, d.status, d.probability, d.owner_id, d.next_followup_date,
			   d.notes, d.created_at, a.name AS account_name
		FROM deals d
		JOIN accounts a ON a.id = d.account_id
		ORDER BY d.created_at DESC
	`
	var deals []*model.DealWithAccount
	err := r.db.SelectContext(ctx, &deals, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals with accounts: %w", err)
	}
	return deals, nil
}

func (r *dealRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*model.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals
		WHERE created_at >= $1 AND created_at <= $2
		ORDER BY created_at DESC`

	var deals []*model.Deal
	err := r.db.SelectContext(ctx, &deals, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals by creation window: %w", err)
	}
	return deals, nil
}

func (r *dealRepository) ListDueFollowups(ctx context.Context, from, to time.Time) ([]*model.DealWithAccount, error) {
	query := `
		SELECT d.id, d.account_id, d.event_type, d.estimated_value, d.estimated_guests,
			   d.event_date, d.status, d.probability, d.owner_id, d.next_followup_date,
			   d.notes, d.created_at, a.name AS account_name
		FROM deals d
		JOIN accounts a ON a.id = d.account_id
		WHERE d.next_followup_date >= $1 AND d.next_followup_date < $2
		ORDER BY d.next_followup_date ASC
	`
	var deals []*model.DealWithAccount
	err := r.db.SelectContext(ctx, &deals, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list due deal followups: %w", err)
	}
	return deals, nil
}
