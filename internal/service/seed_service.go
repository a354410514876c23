package service

import (
	"context"
	"fmt"
	"log/slog"

	"go-campus-events/internal/model"
	"go-campus-events/internal/repository"
)

// Boss account created by the seeder.
const (
	BossKmail    = "boss@karunya.edu"
	BossKid      = "bosskid"
	BossUsername = "Boss User"
)

// Seeder installs the default roles and the boss account, then grants the
// boss every user role. Existing roles keep their bitmasks.
type Seeder struct {
	users       repository.UserRepository
	userRoles   repository.RoleRepository[model.UserRole]
	eventRoles  repository.RoleRepository[model.EventRole]
	assignments repository.UserRoleAssignmentRepository
	log         *slog.Logger
}

func NewSeeder(
	users repository.UserRepository,
	userRoles repository.RoleRepository[model.UserRole],
	eventRoles repository.RoleRepository[model.EventRole],
	assignments repository.UserRoleAssignmentRepository,
	log *slog.Logger,
) *Seeder {
	return &Seeder{users: users, userRoles: userRoles, eventRoles: eventRoles, assignments: assignments, log: log}
}

func (s *Seeder) Seed(ctx context.Context) error {
	if err := s.userRoles.SeedDefaults(ctx, model.DefaultUserRoles); err != nil {
		return fmt.Errorf("seed user roles: %w", err)
	}
	if err := s.eventRoles.SeedDefaults(ctx, model.DefaultEventRoles); err != nil {
		return fmt.Errorf("seed event roles: %w", err)
	}

	boss := &model.User{
		Kid:      BossKid,
		Username: BossUsername,
		Kmail:    BossKmail,
		Kind:     model.UserKindBoss,
	}
	if err := s.users.UpsertByKmail(ctx, boss); err != nil {
		return fmt.Errorf("seed boss user: %w", err)
	}

	roles, err := s.userRoles.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("list user roles: %w", err)
	}
	for _, role := range roles {
		if _, err := s.assignments.Assign(ctx, boss.ID, role.ID); err != nil {
			return fmt.Errorf("assign %q to boss: %w", role.Name, err)
		}
	}

	s.log.Info("seed complete", "user_roles", len(roles), "boss_id", boss.ID)
	return nil
}

// ResetDefaults overwrites the bitmasks of the default roles with their
// shipped values. Roles outside the defaults are left alone.
func (s *Seeder) ResetDefaults(ctx context.Context) error {
	for _, def := range model.DefaultUserRoles {
		role := def
		if err := s.userRoles.Upsert(ctx, &role); err != nil {
			return fmt.Errorf("reset user role %q: %w", def.Name, err)
		}
	}
	for _, def := range model.DefaultEventRoles {
		role := def
		if err := s.eventRoles.Upsert(ctx, &role); err != nil {
			return fmt.Errorf("reset event role %q: %w", def.Name, err)
		}
	}
	s.log.Info("default role bitmasks reset")
	return nil
}
