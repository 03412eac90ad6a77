package template

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/marceelkacz03/lola-crm/internal/model"
	"github.com/marceelkacz03/lola-crm/internal/repository"
	apperrors "github.com/marceelkacz03/lola-crm/pkg/errors"
)

type Service struct {
	repo repository.TemplateRepository
}

func NewService(repo repository.TemplateRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateTemplate(ctx context.Context, req *model.CreateTemplateRequest, createdBy uuid.UUID) (*model.MessageTemplate, error) {
	template := &model.MessageTemplate{
		Title:     req.Title,
		Type:      req.Type,
		Content:   req.Content,
		CreatedBy: createdBy,
	}
	if err := s.repo.Create(ctx, template); err != nil {
		return nil, apperrors.Internal(err)
	}
	return template, nil
}

func (s *Service) GetTemplate(ctx context.Context, id uuid.UUID) (*model.MessageTemplate, error) {
	template, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("template", err)
		}
		return nil, apperrors.Internal(err)
	}
	return template, nil
}

func (s *Service) UpdateTemplate(ctx context.Context, id uuid.UUID, req *model.CreateTemplateRequest) (*model.MessageTemplate, error) {
	template, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("template", err)
		}
		return nil, apperrors.Internal(err)
	}

	template.Title = req.Title
	template.Type = req.Type
	template.Content = req.Content

	if err := s.repo.Update(ctx, template); err != nil {
		return nil, apperrors.Internal(err)
	}
	return template, nil
}

func (s *Service) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) ListTemplates(ctx context.Context) ([]*model.MessageTemplate, error) {
	templates, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return templates, nil
}
