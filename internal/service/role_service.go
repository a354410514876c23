package service

import (
	"context"
	"errors"

	"go-campus-events/internal/model"
	"go-campus-events/internal/permission"
	"go-campus-events/internal/repository"
	"go-campus-events/pkg/validator"

	"github.com/google/uuid"
)

// RoleService manages the role catalogue of one scope.
type RoleService[R any] interface {
	List(ctx context.Context) ([]R, error)
	Get(ctx context.Context, id uint) (*R, error)
	Create(ctx context.Context, req *CreateRoleRequest) (*R, error)
	Update(ctx context.Context, id uint, req *UpdateRoleRequest) (*R, error)
	Delete(ctx context.Context, id uint) error
}

// A role's rights are given either as a raw bitmask or as a list of flag
// names of the role's scope, never both. Bitmasks are decoded as int64 so an
// out-of-range value is reported as a validation failure rather than a JSON
// error.
type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Bitmask     *int64   `json:"bitmask" validate:"omitempty,min=0,max=4294967295"`
	Permissions []string `json:"permissions" validate:"omitempty,dive,required"`
}

type UpdateRoleRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Bitmask     *int64   `json:"bitmask" validate:"omitempty,min=0,max=4294967295"`
	Permissions []string `json:"permissions" validate:"omitempty,dive,required"`
}

type roleService[R any] struct {
	repo  repository.RoleRepository[R]
	parse func(names []string) (uint32, error)
	apply func(role *R, name *string, mask *uint32)
}

func NewUserRoleService(repo repository.RoleRepository[model.UserRole]) RoleService[model.UserRole] {
	return &roleService[model.UserRole]{
		repo:  repo,
		parse: parseNames[permission.UserMask],
		apply: func(r *model.UserRole, name *string, mask *uint32) {
			if name != nil {
				r.Name = *name
			}
			if mask != nil {
				r.Bitmask = permission.UserMask(*mask)
			}
		},
	}
}

func NewEventRoleService(repo repository.RoleRepository[model.EventRole]) RoleService[model.EventRole] {
	return &roleService[model.EventRole]{
		repo:  repo,
		parse: parseNames[permission.EventMask],
		apply: func(r *model.EventRole, name *string, mask *uint32) {
			if name != nil {
				r.Name = *name
			}
			if mask != nil {
				r.Bitmask = permission.EventMask(*mask)
			}
		},
	}
}

func parseNames[M permission.Mask](names []string) (uint32, error) {
	m, err := permission.Parse[M](names...)
	return uint32(m), err
}

// mask resolves the requested rights. It returns nil when neither form was
// given.
func (s *roleService[R]) mask(bitmask *int64, names []string) (*uint32, error) {
	switch {
	case bitmask != nil && names != nil:
		return nil, &ValidationError{Errors: []*validator.ErrorResponse{{FailedField: "permissions", Tag: "excluded_with", Value: "bitmask"}}}
	case bitmask != nil:
		m := uint32(*bitmask)
		return &m, nil
	case names != nil:
		m, err := s.parse(names)
		if err != nil {
			return nil, &ValidationError{Errors: []*validator.ErrorResponse{{FailedField: "permissions", Tag: "permission"}}}
		}
		return &m, nil
	}
	return nil, nil
}

func (s *roleService[R]) List(ctx context.Context) ([]R, error) {
	return s.repo.FindAll(ctx)
}

func (s *roleService[R]) Get(ctx context.Context, id uint) (*R, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *roleService[R]) Create(ctx context.Context, req *CreateRoleRequest) (*R, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	mask, err := s.mask(req.Bitmask, req.Permissions)
	if err != nil {
		return nil, err
	}
	if mask == nil {
		return nil, &ValidationError{Errors: []*validator.ErrorResponse{{FailedField: "bitmask", Tag: "required_without", Value: "permissions"}}}
	}
	var role R
	s.apply(&role, &req.Name, mask)
	if err := s.repo.Create(ctx, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *roleService[R]) Update(ctx context.Context, id uint, req *UpdateRoleRequest) (*R, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	mask, err := s.mask(req.Bitmask, req.Permissions)
	if err != nil {
		return nil, err
	}
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.apply(role, req.Name, mask)
	if err := s.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *roleService[R]) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// AssignmentService grants and revokes roles.
type AssignmentService interface {
	AssignUserRole(ctx context.Context, req *UserRoleAssignmentRequest) (*model.UserRoleAssignment, error)
	RemoveUserRole(ctx context.Context, req *UserRoleAssignmentRequest) error
	AssignEventRole(ctx context.Context, req *EventRoleAssignmentRequest) (*model.EventRoleAssignment, error)
	RemoveEventRole(ctx context.Context, req *EventRoleAssignmentRequest) error
	// ReplaceEventRoles sets the user's roles for eventID to exactly RoleIDs.
	ReplaceEventRoles(ctx context.Context, eventID uuid.UUID, req *ReplaceEventRolesRequest) error
}

type UserRoleAssignmentRequest struct {
	UserID uuid.UUID `json:"userId" validate:"uuid_required"`
	RoleID uint      `json:"roleId" validate:"required"`
}

type EventRoleAssignmentRequest struct {
	UserID  uuid.UUID `json:"userId" validate:"uuid_required"`
	EventID uuid.UUID `json:"eventId" validate:"uuid_required"`
	RoleID  uint      `json:"roleId" validate:"required"`
}

type ReplaceEventRolesRequest struct {
	UserID  uuid.UUID `json:"userId" validate:"uuid_required"`
	RoleIDs []uint    `json:"roleIds" validate:"required,dive,required"`
}

type assignmentService struct {
	users      repository.UserRoleAssignmentRepository
	events     repository.EventRoleAssignmentRepository
	eventRepo  repository.EventRepository
	eventRoles repository.RoleRepository[model.EventRole]
}

func NewAssignmentService(
	users repository.UserRoleAssignmentRepository,
	events repository.EventRoleAssignmentRepository,
	eventRepo repository.EventRepository,
	eventRoles repository.RoleRepository[model.EventRole],
) AssignmentService {
	return &assignmentService{users: users, events: events, eventRepo: eventRepo, eventRoles: eventRoles}
}

func (s *assignmentService) AssignUserRole(ctx context.Context, req *UserRoleAssignmentRequest) (*model.UserRoleAssignment, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return s.users.Assign(ctx, req.UserID, req.RoleID)
}

func (s *assignmentService) RemoveUserRole(ctx context.Context, req *UserRoleAssignmentRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	return s.users.Remove(ctx, req.UserID, req.RoleID)
}

func (s *assignmentService) AssignEventRole(ctx context.Context, req *EventRoleAssignmentRequest) (*model.EventRoleAssignment, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return s.events.Assign(ctx, req.UserID, req.EventID, req.RoleID)
}

func (s *assignmentService) RemoveEventRole(ctx context.Context, req *EventRoleAssignmentRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	return s.events.Remove(ctx, req.UserID, req.EventID, req.RoleID)
}

func (s *assignmentService) ReplaceEventRoles(ctx context.Context, eventID uuid.UUID, req *ReplaceEventRolesRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return err
	}
	for _, id := range req.RoleIDs {
		if _, err := s.eventRoles.FindByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return repository.ErrReference
			}
			return err
		}
	}
	return s.events.Replace(ctx, req.UserID, eventID, req.RoleIDs)
}
