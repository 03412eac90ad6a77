package account

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/marceelkacz03/lola-crm/internal/model"
	"github.com/marceelkacz03/lola-crm/internal/repository"
	apperrors "github.com/marceelkacz03/lola-crm/pkg/errors"
)

type Service struct {
	repo repository.AccountRepository
}

func NewService(repo repository.AccountRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateAccount(ctx context.Context, req *model.CreateAccountRequest) (*model.Account, error) {
	account := &model.Account{
		Type:             req.Type,
		Name:             req.Name,
		ContactPerson:    req.ContactPerson,
		Email:            req.Email,
		Phone:            req.Phone,
		Source:           req.Source,
		SalesStatus:      model.SalesStatusNew,
		EstimatedValue:   req.EstimatedValue,
		NextFollowupDate: parseDate(req.NextFollowupDate),
	}
	if req.SalesStatus != nil {
		account.SalesStatus = *req.SalesStatus
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, apperrors.Internal(err)
	}
	return account, nil
}

func (s *Service) GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("account", err)
		}
		return nil, apperrors.Internal(err)
	}
	return account, nil
}

func (s *Service) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return accounts, nil
}

// UpdateSales is the quick-edit used from the sales views: status, estimated
// value and next follow-up only.
func (s *Service) UpdateSales(ctx context.Context, id uuid.UUID, req *model.UpdateAccountSalesRequest) (*model.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("account", err)
		}
		return nil, apperrors.Internal(err)
	}

	if req.SalesStatus != nil {
		account.SalesStatus = *req.SalesStatus
	}
	if req.EstimatedValue != nil {
		account.EstimatedValue = req.EstimatedValue
	}
	if req.NextFollowupDate != nil {
		account.NextFollowupDate = parseDate(req.NextFollowupDate)
	}

	if err := s.repo.Update(ctx, account); err != nil {
		return nil, apperrors.Internal(err)
	}
	return account, nil
}

func (s *Service) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("account", err)
		}
		return apperrors.Internal(err)
	}
	return nil
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
