package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marceelkacz03/lola-crm/internal/model"
)

func (r *interactionRepository) Create(ctx context.Context, interaction *model.Interaction) error {
	query := `
		INSERT INTO client_interactions (
			id, account_id, type, note, next_followup_date, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	interaction.ID = uuid.New()
	interaction.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		interaction.ID,
		interaction.AccountID,
		interaction.Type,
		interaction.Note,
		interaction.NextFollowupDate,
		interaction.CreatedBy,
		interaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create interaction: %w", err)
	}
	return nil
}

func (r *interactionRepository) List(ctx context.Context) ([]*model.Interaction, error) {
	query := `
		SELECT id, account_id, type, note, next_followup_date, created_by, created_at
		FROM client_interactions
		ORDER BY created_at DESC
	`
	var interactions []*model.Interaction
	err := r.db.SelectContext(ctx, &interactions, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	return interactions, nil
}
