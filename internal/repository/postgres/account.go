package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marceelkacz03/lola-crm/internal/model"
)

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO accounts (
			id, type, name, contact_person, email, phone,
			source, sales_status, estimated_value, next_followup_date, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	account.ID = uuid.New()
	account.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Type,
		account.Name,
		account.ContactPerson,
		account.Email,
		account.Phone,
		account.Source,
		account.SalesStatus,
		account.EstimatedValue,
		account.NextFollowupDate,
		account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	query := `
		SELECT id, type, name, contact_person, email, phone,
			   source, sales_status, estimated_value, next_followup_date, created_at
		FROM accounts
		WHERE id = $1
	`
	var account model.Account
	err := r.db.GetContext(ctx, &account, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	query := `
		UPDATE accounts
		SET sales_status = $1, estimated_value = $2, next_followup_date = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query,
		account.SalesStatus,
		account.EstimatedValue,
		account.NextFollowupDate,
		account.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("account not found")
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("account not found")
	}
	return nil
}

func (r *accountRepository) List(ctx context.Context) ([]*model.Account, error) {
	query := `
		SELECT id, type, name, contact_person, email, phone,
			   source, sales_status, estimated_value, next_followup_date, created_at
		FROM accounts
		ORDER BY created_at DESC
	`
	var accounts []*model.Account
	err := r.db.SelectContext(ctx, &accounts, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (r *accountRepository) AdvanceFollowup(ctx context.Context, id uuid.UUID, followupDate time.Time) error {
	// Only fresh accounts get bumped to contacted; later stages keep theirs.
	query := `
		UPDATE accounts
		SET next_followup_date = $1,
			sales_status = CASE WHEN sales_status = $2 THEN $3 ELSE sales_status END
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, followupDate, model.SalesStatusNew, model.SalesStatusContacted, id)
	if err != nil {
		return fmt.Errorf("failed to advance account followup: %w", err)
	}
	return nil
}
