package interaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marceelkacz03/lola-crm/internal/model"
	"github.com/marceelkacz03/lola-crm/internal/repository"
	apperrors "github.com/marceelkacz03/lola-crm/pkg/errors"
	"github.com/marceelkacz03/lola-crm/pkg/logger"
)

// Service records touchpoints against accounts. An interaction carrying a
// follow-up date also advances the account's next_followup_date and marks it
// contacted; a failure on that side step does not fail the interaction.
type Service struct {
	repo     repository.InteractionRepository
	accounts repository.AccountRepository
	logger   *logger.Logger
}

func NewService(repo repository.InteractionRepository, accounts repository.AccountRepository, logger *logger.Logger) *Service {
	return &Service{repo: repo, accounts: accounts, logger: logger}
}

func (s *Service) CreateInteraction(ctx context.Context, req *model.CreateInteractionRequest, createdBy uuid.UUID) (*model.Interaction, error) {
	interaction := &model.Interaction{
		AccountID: req.AccountID,
		Type:      req.Type,
		Note:      req.Note,
		CreatedBy: createdBy,
	}
	if req.NextFollowupDate != nil && *req.NextFollowupDate != "" {
		t, err := time.Parse("2006-01-02", *req.NextFollowupDate)
		if err != nil {
			return nil, apperrors.Validation("invalid follow-up date", err)
		}
		interaction.NextFollowupDate = &t
	}

	if err := s.repo.Create(ctx, interaction); err != nil {
		return nil, apperrors.Internal(err)
	}

	if interaction.NextFollowupDate != nil {
		if err := s.accounts.AdvanceFollowup(ctx, req.AccountID, *interaction.NextFollowupDate); err != nil {
			s.logger.Error(err, "Failed to advance account follow-up",
				"account_id", req.AccountID.String())
		}
	}

	return interaction, nil
}

func (s *Service) ListInteractions(ctx context.Context) ([]*model.Interaction, error) {
	interactions, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return interactions, nil
}
