package service

import (
	"context"
	"math"
	"time"

	"go-campus-events/internal/model"
	"go-campus-events/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
	// Offsets stay within a Postgres int4 and never overflow int.
	maxOffset = math.MaxInt32
)

type EventService interface {
	List(ctx context.Context, q ListEventsQuery) (*model.EventPage, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Event, error)
	Create(ctx context.Context, req *CreateEventRequest, creatorID uuid.UUID) (*model.Event, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateEventRequest) (*model.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Upcoming(ctx context.Context) ([]model.Event, error)
	Registrations(ctx context.Context, id uuid.UUID) ([]model.EventRegistration, error)
	ByCreator(ctx context.Context, userID uuid.UUID) ([]model.Event, error)
}

type ListEventsQuery struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
}

type CreateEventRequest struct {
	Name        string     `json:"name" validate:"required,max=255"`
	Description string     `json:"description"`
	Slots       *int       `json:"slots" validate:"omitempty,min=0"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	IsPublic    *bool      `json:"isPublic"`
}

type UpdateEventRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description"`
	Slots       *int       `json:"slots" validate:"omitempty,min=0"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	IsPublic    *bool      `json:"isPublic"`
}

type eventService struct {
	eventRepo        repository.EventRepository
	registrationRepo repository.RegistrationRepository
	now              func() time.Time
}

func NewEventService(eventRepo repository.EventRepository, registrationRepo repository.RegistrationRepository) EventService {
	return &eventService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		now:              time.Now,
	}
}

// List returns one page of events, newest first. The page and the total
// count are fetched concurrently.
func (s *eventService) List(ctx context.Context, q ListEventsQuery) (*model.EventPage, error) {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	if q.Page-1 > maxOffset/q.Limit {
		q.Page = maxOffset/q.Limit + 1
	}
	filter := repository.EventFilter{
		Search: q.Search,
		Offset: (q.Page - 1) * q.Limit,
		Limit:  q.Limit,
	}

	var (
		events []model.Event
		total  int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.eventRepo.List(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.eventRepo.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if events == nil {
		events = []model.Event{}
	}
	return &model.EventPage{
		Events:      events,
		CurrentPage: q.Page,
		TotalPages:  int((total + int64(q.Limit) - 1) / int64(q.Limit)),
		TotalCount:  total,
	}, nil
}

func (s *eventService) Get(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	return s.eventRepo.FindByID(ctx, id)
}

func (s *eventService) Create(ctx context.Context, req *CreateEventRequest, creatorID uuid.UUID) (*model.Event, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := checkWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	event := &model.Event{
		Name:        req.Name,
		Description: req.Description,
		Slots:       req.Slots,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsPublic:    true,
	}
	if req.IsPublic != nil {
		event.IsPublic = *req.IsPublic
	}
	if creatorID != uuid.Nil {
		event.CreatedByID = &creatorID
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, id uuid.UUID, req *UpdateEventRequest) (*model.Event, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Slots != nil {
		event.Slots = req.Slots
	}
	if req.StartTime != nil {
		event.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = req.EndTime
	}
	if req.IsPublic != nil {
		event.IsPublic = *req.IsPublic
	}
	// The merged window must still be ordered.
	if err := checkWindow(event.StartTime, event.EndTime); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.eventRepo.Delete(ctx, id)
}

func (s *eventService) Upcoming(ctx context.Context) ([]model.Event, error) {
	return s.eventRepo.Upcoming(ctx, s.now())
}

func (s *eventService) Registrations(ctx context.Context, id uuid.UUID) ([]model.EventRegistration, error) {
	if _, err := s.eventRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.registrationRepo.FindByEvent(ctx, id)
}

func (s *eventService) ByCreator(ctx context.Context, userID uuid.UUID) ([]model.Event, error) {
	return s.eventRepo.FindByCreator(ctx, userID)
}

func checkWindow(start, end *time.Time) error {
	if start != nil && end != nil && !end.After(*start) {
		return ErrInvalidTime
	}
	return nil
}
