package deal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marceelkacz03/lola-crm/internal/model"
	"github.com/marceelkacz03/lola-crm/internal/repository"
	"github.com/marceelkacz03/lola-crm/internal/service/sync"
	apperrors "github.com/marceelkacz03/lola-crm/pkg/errors"
)

// Service owns the deal pipeline. Moving a deal to reserved triggers the
// event materialization and calendar sync through the sync service.
type Service struct {
	repo    repository.DealRepository
	syncSvc *sync.Service
}

func NewService(repo repository.DealRepository, syncSvc *sync.Service) *Service {
	return &Service{repo: repo, syncSvc: syncSvc}
}

// CreateDealResult is returned from creates and updates so callers see what
// the sync side actually did.
type CreateDealResult struct {
	Deal *model.Deal  `json:"deal"`
	Sync *sync.Result `json:"sync,omitempty"`
}

func (s *Service) CreateDeal(ctx context.Context, req *model.CreateDealRequest) (*CreateDealResult, error) {
	deal := &model.Deal{
		AccountID:        req.AccountID,
		EventType:        req.EventType,
		EstimatedValue:   req.EstimatedValue,
		EstimatedGuests:  req.EstimatedGuests,
		EventDate:        parseDate(req.EventDate),
		Status:           req.Status,
		Probability:      req.Probability,
		OwnerID:          req.OwnerID,
		NextFollowupDate: parseDate(req.NextFollowupDate),
		Notes:            req.Notes,
	}

	if err := s.repo.Create(ctx, deal); err != nil {
		return nil, apperrors.Internal(err)
	}

	result := &CreateDealResult{Deal: deal}
	if deal.Status == model.DealStatusReserved {
		syncResult, err := s.ensureEvent(ctx, deal.ID)
		if err != nil {
			return nil, err
		}
		result.Sync = syncResult
	}
	return result, nil
}

func (s *Service) GetDeal(ctx context.Context, id uuid.UUID) (*model.DealWithAccount, error) {
	deal, err := s.repo.GetWithAccount(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("deal", err)
		}
		return nil, apperrors.Internal(err)
	}
	return deal, nil
}

func (s *Service) ListDeals(ctx context.Context) ([]*model.DealWithAccount, error) {
	deals, err := s.repo.ListWithAccounts(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return deals, nil
}

// UpdateDeal applies the patch and, when the deal ends up reserved, ensures
// the operational event exists and is on the calendar. Re-sending reserved is
// idempotent on the event side.
func (s *Service) UpdateDeal(ctx context.Context, id uuid.UUID, req *model.UpdateDealRequest) (*CreateDealResult, error) {
	deal, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("deal", err)
		}
		return nil, apperrors.Internal(err)
	}

	if req.Status != nil {
		deal.Status = *req.Status
	}
	if req.Probability != nil {
		deal.Probability = *req.Probability
	}
	if req.NextFollowupDate != nil {
		deal.NextFollowupDate = parseDate(req.NextFollowupDate)
	}

	if err := s.repo.Update(ctx, deal); err != nil {
		return nil, apperrors.Internal(err)
	}

	result := &CreateDealResult{Deal: deal}
	// Any update landing on reserved re-runs the sync; the event upsert and
	// calendar patch make repeats harmless.
	if deal.Status == model.DealStatusReserved {
		syncResult, err := s.ensureEvent(ctx, deal.ID)
		if err != nil {
			return nil, err
		}
		result.Sync = syncResult
	}
	return result, nil
}

func (s *Service) ensureEvent(ctx context.Context, dealID uuid.UUID) (*sync.Result, error) {
	withAccount, err := s.repo.GetWithAccount(ctx, dealID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to load deal for sync: %w", err))
	}
	_, syncResult, err := s.syncSvc.EnsureEventForDeal(ctx, withAccount)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return syncResult, nil
}

func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}
