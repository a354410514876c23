package service

import (
	"context"

	"go-campus-events/internal/model"
	"go-campus-events/internal/repository"

	"github.com/google/uuid"
)

type UserService interface {
	List(ctx context.Context, username string) ([]model.User, error)
	ListFaculty(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	Create(ctx context.Context, req *CreateUserRequest) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CreatedEvents(ctx context.Context, id uuid.UUID) ([]model.Event, error)
	Attendance(ctx context.Context, id uuid.UUID) ([]model.Attendance, error)
}

type CreateUserRequest struct {
	Kid      string `json:"kid" validate:"required,max=64"`
	Username string `json:"username" validate:"required,max=255"`
	Kmail    string `json:"kmail" validate:"required,email"`
	Role     string `json:"role" validate:"omitempty,oneof=student faculty boss"`
}

// UpdateUserRequest patches the fields that are present.
type UpdateUserRequest struct {
	Kid      *string `json:"kid" validate:"omitempty,max=64"`
	Username *string `json:"username" validate:"omitempty,max=255"`
	Kmail    *string `json:"kmail" validate:"omitempty,email"`
	Role     *string `json:"role" validate:"omitempty,oneof=student faculty boss"`
}

type userService struct {
	userRepo       repository.UserRepository
	eventRepo      repository.EventRepository
	attendanceRepo repository.AttendanceRepository
}

func NewUserService(userRepo repository.UserRepository, eventRepo repository.EventRepository, attendanceRepo repository.AttendanceRepository) UserService {
	return &userService{
		userRepo:       userRepo,
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
	}
}

func (s *userService) List(ctx context.Context, username string) ([]model.User, error) {
	return s.userRepo.FindAll(ctx, username)
}

func (s *userService) ListFaculty(ctx context.Context) ([]model.User, error) {
	return s.userRepo.FindByKind(ctx, model.UserKindFaculty)
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *userService) Create(ctx context.Context, req *CreateUserRequest) (*model.User, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	user := &model.User{
		Kid:      req.Kid,
		Username: req.Username,
		Kmail:    req.Kmail,
		Kind:     req.Role,
	}
	if user.Kind == "" {
		user.Kind = model.UserKindStudent
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*model.User, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Kid != nil {
		user.Kid = *req.Kid
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Kmail != nil {
		user.Kmail = *req.Kmail
	}
	if req.Role != nil {
		user.Kind = *req.Role
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.userRepo.Delete(ctx, id)
}

func (s *userService) CreatedEvents(ctx context.Context, id uuid.UUID) ([]model.Event, error) {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.eventRepo.FindByCreator(ctx, id)
}

func (s *userService) Attendance(ctx context.Context, id uuid.UUID) ([]model.Attendance, error) {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.attendanceRepo.FindByUser(ctx, id)
}
