package service

import (
	"context"
	"fmt"
	"log/slog"

	"go-campus-events/internal/metrics"
	"go-campus-events/internal/permission"
	"go-campus-events/internal/repository"

	"github.com/google/uuid"
)

// AccessService answers authorization questions by loading the caller's
// roles and running them through the evaluator. Roles are read on every
// call so a changed bitmask applies to the next request.
type AccessService interface {
	AuthorizeUser(ctx context.Context, userID uuid.UUID, required permission.UserMask) (bool, error)
	AuthorizeEvent(ctx context.Context, userID, eventID uuid.UUID, required permission.EventMask) (bool, error)
	EffectiveUserMask(ctx context.Context, userID uuid.UUID) (permission.UserMask, error)
	EffectiveEventMask(ctx context.Context, userID, eventID uuid.UUID) (permission.EventMask, error)
}

type accessService struct {
	userRoles  repository.UserRoleAssignmentRepository
	eventRoles repository.EventRoleAssignmentRepository
	metrics    *metrics.Metrics
	log        *slog.Logger
}

func NewAccessService(
	userRoles repository.UserRoleAssignmentRepository,
	eventRoles repository.EventRoleAssignmentRepository,
	m *metrics.Metrics,
	log *slog.Logger,
) AccessService {
	return &accessService{userRoles: userRoles, eventRoles: eventRoles, metrics: m, log: log}
}

func (s *accessService) AuthorizeUser(ctx context.Context, userID uuid.UUID, required permission.UserMask) (bool, error) {
	roles, err := s.userRoles.ListAssignedRoles(ctx, userID)
	if err != nil {
		s.metrics.ObserveDecision(metrics.ScopeUser, false)
		return false, fmt.Errorf("load user roles: %w", err)
	}
	ok := permission.IsAuthorized(roles, required)
	s.metrics.ObserveDecision(metrics.ScopeUser, ok)
	if !ok {
		s.log.Debug("user permission denied", "user_id", userID, "required", required)
	}
	return ok, nil
}

func (s *accessService) AuthorizeEvent(ctx context.Context, userID, eventID uuid.UUID, required permission.EventMask) (bool, error) {
	roles, err := s.eventRoles.ListAssignedRoles(ctx, userID, eventID)
	if err != nil {
		s.metrics.ObserveDecision(metrics.ScopeEvent, false)
		return false, fmt.Errorf("load event roles: %w", err)
	}
	ok := permission.IsAuthorized(roles, required)
	s.metrics.ObserveDecision(metrics.ScopeEvent, ok)
	if !ok {
		s.log.Debug("event permission denied", "user_id", userID, "event_id", eventID, "required", required)
	}
	return ok, nil
}

func (s *accessService) EffectiveUserMask(ctx context.Context, userID uuid.UUID) (permission.UserMask, error) {
	roles, err := s.userRoles.ListAssignedRoles(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("load user roles: %w", err)
	}
	return permission.Aggregate[permission.UserMask](roles), nil
}

func (s *accessService) EffectiveEventMask(ctx context.Context, userID, eventID uuid.UUID) (permission.EventMask, error) {
	roles, err := s.eventRoles.ListAssignedRoles(ctx, userID, eventID)
	if err != nil {
		return 0, fmt.Errorf("load event roles: %w", err)
	}
	return permission.Aggregate[permission.EventMask](roles), nil
}
