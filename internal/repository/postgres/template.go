package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marceelkacz03/lola-crm/internal/model"
)

func (r *templateRepository) Create(ctx context.Context, template *model.MessageTemplate) error {
	query := `
		INSERT INTO message_templates (
			id, title, type, content, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	template.ID = uuid.New()
	template.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		template.ID,
		template.Title,
		template.Type,
		template.Content,
		template.CreatedBy,
		template.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

func (r *templateRepository) Get(ctx context.Context, id uuid.UUID) (*model.MessageTemplate, error) {
	query := `
		SELECT id, title, type, content, created_by, created_at
		FROM message_templates
		WHERE id = $1
	`
	var template model.MessageTemplate
	err := r.db.GetContext(ctx, &template, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return &template, nil
}

func (r *templateRepository) Update(ctx context.Context, template *model.MessageTemplate) error {
	query := `
		UPDATE message_templates
		SET title = $1, type = $2, content = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query,
		template.Title,
		template.Type,
		template.Content,
		template.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("template not found")
	}
	return nil
}

func (r *templateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM message_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("template not found")
	}
	return nil
}

func (r *templateRepository) List(ctx context.Context) ([]*model.MessageTemplate, error) {
	query := `
		SELECT id, title, type, content, created_by, created_at
		FROM message_templates
		ORDER BY created_at DESC
	`
	var templates []*model.MessageTemplate
	err := r.db.SelectContext(ctx, &templates, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}
