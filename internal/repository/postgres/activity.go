package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marceelkacz03/lola-crm/internal/model"
)

func (r *activityRepository) Create(ctx context.Context, activity *model.Activity) error {
	query := `
		INSERT INTO activities (
			id, deal_id, type, description, next_step,
			next_followup_date, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	activity.ID = uuid.New()
	activity.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		activity.ID,
		activity.DealID,
		activity.Type,
		activity.Description,
		activity.NextStep,
		activity.NextFollowupDate,
		activity.CreatedBy,
		activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (r *activityRepository) List(ctx context.Context) ([]*model.Activity, error) {
	query := `
		SELECT id, deal_id, type, description, next_step,
			   next_followup_date, created_by, created_at
		FROM activities
		ORDER BY created_at DESC
	`
	var activities []*model.Activity
	err := r.db.SelectContext(ctx, &activities, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// LatestActivityByDeal aggregates max(created_at) per deal so the alert engine
// never depends on row ordering.
func (r *activityRepository) LatestActivityByDeal(ctx context.Context) (map[uuid.UUID]time.Time, error) {
	query := `
		SELECT deal_id, MAX(created_at) AS last_activity_at
		FROM activities
		GROUP BY deal_id
	`
	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate latest activities: %w", err)
	}
	defer rows.Close()

	latest := make(map[uuid.UUID]time.Time)
	for rows.Next() {
		var dealID uuid.UUID
		var lastActivityAt time.Time
		if err := rows.Scan(&dealID, &lastActivityAt); err != nil {
			return nil, fmt.Errorf("failed to scan latest activity row: %w", err)
		}
		latest[dealID] = lastActivityAt
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate latest activity rows: %w", err)
	}
	return latest, nil
}

func (r *activityRepository) ListDueFollowups(ctx context.Context, from, to time.Time) ([]*model.Activity, error) {
	query := `
		SELECT id, deal_id, type, description, next_step,
			   next_followup_date, created_by, created_at
		FROM activities
		WHERE next_followup_date >= $1 AND next_followup_date < $2
		ORDER BY next_followup_date ASC
	`
	var activities []*model.Activity
	err := r.db.SelectContext(ctx, &activities, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list due activity followups: %w", err)
	}
	return activities, nil
}
