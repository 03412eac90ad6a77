package activity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marceelkacz03/lola-crm/internal/model"
	"github.com/marceelkacz03/lola-crm/internal/repository"
	apperrors "github.com/marceelkacz03/lola-crm/pkg/errors"
)

// Service keeps the append-only activity log per deal.
type Service struct {
	repo repository.ActivityRepository
}

func NewService(repo repository.ActivityRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateActivity(ctx context.Context, req *model.CreateActivityRequest, createdBy uuid.UUID) (*model.Activity, error) {
	activity := &model.Activity{
		DealID:      req.DealID,
		Type:        req.Type,
		Description: req.Description,
		NextStep:    req.NextStep,
		CreatedBy:   createdBy,
	}
	if req.NextFollowupDate != nil && *req.NextFollowupDate != "" {
		t, err := time.Parse("2006-01-02", *req.NextFollowupDate)
		if err != nil {
			return nil, apperrors.Validation("invalid follow-up date", err)
		}
		activity.NextFollowupDate = &t
	}

	if err := s.repo.Create(ctx, activity); err != nil {
		return nil, apperrors.Internal(err)
	}
	return activity, nil
}

func (s *Service) ListActivities(ctx context.Context) ([]*model.Activity, error) {
	activities, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return activities, nil
}
