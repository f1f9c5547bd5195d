package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"smorg/backend/internal/domain"
	"smorg/backend/internal/repository"
)

type EventService interface {
	CreateEvent(ctx context.Context, event *domain.Event) error
	UpdateEvent(ctx context.Context, id string, event *domain.Event) error
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	BatchCreateEvents(ctx context.Context, events []*domain.Event) error
	// PruneEvents deletes events that started before the cutoff.
	PruneEvents(ctx context.Context, before time.Time) (int, error)
}

type eventService struct {
	repo repository.EventRepository
	now  func() time.Time
}

func NewEventService(repo repository.EventRepository) EventService {
	return &eventService{repo: repo, now: time.Now}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	if err := checkEvent(event); err != nil {
		return err
	}
	s.stamp(event, s.now().UTC())
	return s.repo.Save(ctx, event)
}

// UpdateEvent replaces the stored event. The id and creation time are kept.
func (s *eventService) UpdateEvent(ctx context.Context, id string, event *domain.Event) error {
	if id == "" {
		return domain.ErrValidation("id is required for update")
	}
	if err := checkEvent(event); err != nil {
		return err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	event.Id = existing.Id
	event.CreatedAt = existing.CreatedAt
	return s.repo.Save(ctx, event)
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	if id == "" {
		return nil, domain.ErrValidation("id is required")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrValidation("id is required")
	}
	return s.repo.Delete(ctx, id)
}

func (s *eventService) BatchCreateEvents(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return domain.ErrValidation("no events to create")
	}

	now := s.now().UTC()
	for _, event := range events {
		if err := checkEvent(event); err != nil {
			return err
		}
		s.stamp(event, now)
	}
	return s.repo.BatchSave(ctx, events)
}

func (s *eventService) PruneEvents(ctx context.Context, before time.Time) (int, error) {
	if before.IsZero() {
		return 0, domain.ErrValidation("cutoff is required")
	}
	return s.repo.DeleteBefore(ctx, before)
}

func (s *eventService) stamp(event *domain.Event, now time.Time) {
	if event.Id == "" {
		event.Id = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
}

func checkEvent(event *domain.Event) error {
	if event == nil || event.Title == "" {
		return domain.ErrValidation("event title is required")
	}
	if event.Date.IsZero() {
		return domain.ErrValidation("event date is required")
	}
	if event.Cost < 0 {
		return domain.ErrValidation("cost cannot be negative")
	}
	return nil
}
