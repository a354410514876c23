package service

import (
	"context"

	"go-campus-events/internal/model"
	"go-campus-events/internal/repository"

	"github.com/google/uuid"
)

// Actor is the authenticated caller as described by its token.
type Actor struct {
	ID   uuid.UUID
	Kind string
}

func (a Actor) IsFaculty() bool { return a.Kind == model.UserKindFaculty }

type RegistrationService interface {
	List(ctx context.Context) ([]model.EventRegistration, error)
	Get(ctx context.Context, id uuid.UUID) (*model.EventRegistration, error)
	ByEvent(ctx context.Context, eventID uuid.UUID) ([]model.EventRegistration, error)
	Create(ctx context.Context, req *CreateRegistrationRequest) (*model.EventRegistration, error)
	// Update changes the status. Only faculty or the event's creator may do it.
	Update(ctx context.Context, id uuid.UUID, req *UpdateRegistrationRequest, actor Actor) (*model.EventRegistration, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateRegistrationRequest struct {
	UserID  uuid.UUID `json:"userId" validate:"uuid_required"`
	EventID uuid.UUID `json:"eventId" validate:"uuid_required"`
	Status  string    `json:"status" validate:"omitempty,max=32"`
}

type UpdateRegistrationRequest struct {
	Status string `json:"status" validate:"required,max=32"`
}

type registrationService struct {
	registrationRepo repository.RegistrationRepository
	eventRepo        repository.EventRepository
}

func NewRegistrationService(registrationRepo repository.RegistrationRepository, eventRepo repository.EventRepository) RegistrationService {
	return &registrationService{registrationRepo: registrationRepo, eventRepo: eventRepo}
}

func (s *registrationService) List(ctx context.Context) ([]model.EventRegistration, error) {
	return s.registrationRepo.FindAll(ctx)
}

func (s *registrationService) Get(ctx context.Context, id uuid.UUID) (*model.EventRegistration, error) {
	return s.registrationRepo.FindByID(ctx, id)
}

func (s *registrationService) ByEvent(ctx context.Context, eventID uuid.UUID) ([]model.EventRegistration, error) {
	return s.registrationRepo.FindByEvent(ctx, eventID)
}

func (s *registrationService) Create(ctx context.Context, req *CreateRegistrationRequest) (*model.EventRegistration, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	reg := &model.EventRegistration{
		UserID:  req.UserID,
		EventID: req.EventID,
		Status:  req.Status,
	}
	if reg.Status == "" {
		reg.Status = model.RegistrationConfirmed
	}
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *registrationService) Update(ctx context.Context, id uuid.UUID, req *UpdateRegistrationRequest, actor Actor) (*model.EventRegistration, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	reg, err := s.registrationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event := reg.Event
	if event == nil {
		if event, err = s.eventRepo.FindByID(ctx, reg.EventID); err != nil {
			return nil, err
		}
	}
	if !actor.IsFaculty() && !event.IsCreatedBy(actor.ID) {
		return nil, ErrForbidden
	}

	reg.Status = req.Status
	if err := s.registrationRepo.Update(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *registrationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.registrationRepo.Delete(ctx, id)
}
