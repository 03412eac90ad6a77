package event

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/marceelkacz03/lola-crm/internal/model"
	"github.com/marceelkacz03/lola-crm/internal/repository"
	"github.com/marceelkacz03/lola-crm/internal/service/sync"
	apperrors "github.com/marceelkacz03/lola-crm/pkg/errors"
)

// Service manages operational events. Confirming an event pushes it to the
// external calendar through the sync service.
type Service struct {
	repo    repository.EventRepository
	syncSvc *sync.Service
}

func NewService(repo repository.EventRepository, syncSvc *sync.Service) *Service {
	return &Service{repo: repo, syncSvc: syncSvc}
}

type EventResult struct {
	Event *model.Event `json:"event"`
	Sync  *sync.Result `json:"sync,omitempty"`
}

func (s *Service) CreateEvent(ctx context.Context, req *model.CreateEventRequest) (*EventResult, error) {
	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, apperrors.Validation("invalid event date", err)
	}

	event := &model.Event{
		DealID:           req.DealID,
		EventDate:        eventDate,
		EventStartTime:   req.EventStartTime,
		EventEndTime:     req.EventEndTime,
		FinalValue:       req.FinalValue,
		NumberOfGuests:   req.NumberOfGuests,
		Hall:             req.Hall,
		OperationalNotes: req.OperationalNotes,
		Status:           req.Status,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, apperrors.Internal(err)
	}

	result := &EventResult{Event: event}
	if event.Status == model.EventStatusConfirmed {
		syncResult, err := s.syncSvc.SyncConfirmedEvent(ctx, event)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		result.Sync = syncResult
	}
	return result, nil
}

func (s *Service) GetEvent(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	event, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("event", err)
		}
		return nil, apperrors.Internal(err)
	}
	return event, nil
}

func (s *Service) ListEvents(ctx context.Context, statuses ...model.EventStatus) ([]*model.Event, error) {
	events, err := s.repo.List(ctx, statuses...)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return events, nil
}

// UpdateEvent applies the patch and re-syncs the calendar whenever the event
// is confirmed after the update, whether or not this call confirmed it.
func (s *Service) UpdateEvent(ctx context.Context, id uuid.UUID, req *model.UpdateEventRequest) (*EventResult, error) {
	event, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("event", err)
		}
		return nil, apperrors.Internal(err)
	}

	if req.Status != nil {
		event.Status = *req.Status
	}
	if req.EventDate != nil {
		eventDate, err := time.Parse("2006-01-02", *req.EventDate)
		if err != nil {
			return nil, apperrors.Validation("invalid event date", err)
		}
		event.EventDate = eventDate
	}
	if req.EventStartTime != nil {
		event.EventStartTime = req.EventStartTime
	}
	if req.EventEndTime != nil {
		event.EventEndTime = req.EventEndTime
	}
	if req.Hall != nil {
		event.Hall = *req.Hall
	}
	if req.OperationalNotes != nil {
		event.OperationalNotes = req.OperationalNotes
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, apperrors.Internal(err)
	}

	result := &EventResult{Event: event}
	if event.Status == model.EventStatusConfirmed {
		syncResult, err := s.syncSvc.SyncConfirmedEvent(ctx, event)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		result.Sync = syncResult
	}
	return result, nil
}
