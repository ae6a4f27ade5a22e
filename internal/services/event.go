package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"portalevents/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	imageService   domain.ImageService
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	imageService domain.ImageService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		imageService:   imageService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// CreateEvent validates the draft and persists it. Nothing reaches the repository when validation fails.
func (s *eventService) CreateEvent(ctx context.Context, draft domain.EventDraft) (*domain.Event, error) {
	draft = domain.NewEventDraft(draft.Title, draft.Description, draft.Category, draft.Images)
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event := domain.NewEvent(draft)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	s.logger.InfoContext(ctx, "event created", "id", event.ID, "category", event.Category, "images", len(event.Images))
	return event, nil
}

// PublishEvent uploads files and then creates the event with the returned URLs.
// Any upload failure aborts before the event is created.
func (s *eventService) PublishEvent(ctx context.Context, draft domain.EventDraft, files []domain.ImageFile) (*domain.Event, error) {
	draft = domain.NewEventDraft(draft.Title, draft.Description, draft.Category, nil)
	if err := draft.ValidateFields(len(files)); err != nil {
		return nil, err
	}

	urls, err := s.imageService.UploadImages(ctx, files, draft.Category)
	if err != nil {
		return nil, err
	}
	draft.Images = urls
	return s.CreateEvent(ctx, draft)
}

// ListEventsByCategory returns the events of a category, newest first. Unknown categories yield an empty list.
func (s *eventService) ListEventsByCategory(ctx context.Context, category domain.Category) ([]*domain.Event, error) {
	if !category.Valid() {
		return []*domain.Event{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrQuery, err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %w", domain.ErrDeletion, domain.ErrNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDeletion, err)
	}
	s.logger.InfoContext(ctx, "event deleted", "id", id)
	return nil
}

func (s *eventService) ListCategories() []domain.CategoryInfo {
	return domain.Categories()
}
