package repository

import (
	"context"

	"go-campus-events/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRoleAssignmentRepository links users to global roles.
type UserRoleAssignmentRepository interface {
	// ListAssignedRoles returns the roles currently held by userID, read
	// fresh from the role table.
	ListAssignedRoles(ctx context.Context, userID uuid.UUID) ([]model.UserRole, error)
	// Assign is idempotent: assigning a held role returns the existing row.
	Assign(ctx context.Context, userID uuid.UUID, roleID uint) (*model.UserRoleAssignment, error)
	Remove(ctx context.Context, userID uuid.UUID, roleID uint) error
}

// EventRoleAssignmentRepository links users to roles inside one event.
type EventRoleAssignmentRepository interface {
	ListAssignedRoles(ctx context.Context, userID, eventID uuid.UUID) ([]model.EventRole, error)
	Assign(ctx context.Context, userID, eventID uuid.UUID, roleID uint) (*model.EventRoleAssignment, error)
	Remove(ctx context.Context, userID, eventID uuid.UUID, roleID uint) error
	// Replace swaps the user's whole role set for the event atomically.
	Replace(ctx context.Context, userID, eventID uuid.UUID, roleIDs []uint) error
}

type userRoleAssignmentRepo struct {
	db *gorm.DB
}

func NewUserRoleAssignmentRepo(db *gorm.DB) UserRoleAssignmentRepository {
	return &userRoleAssignmentRepo{db}
}

func (r *userRoleAssignmentRepo) ListAssignedRoles(ctx context.Context, userID uuid.UUID) ([]model.UserRole, error) {
	var roles []model.UserRole
	err := r.db.WithContext(ctx).
		Joins("JOIN user_role_assignments ura ON ura.role_id = user_roles.id").
		Where("ura.user_id = ?", userID).
		Order("user_roles.id ASC").
		Find(&roles).Error
	return roles, translate(err)
}

func (r *userRoleAssignmentRepo) Assign(ctx context.Context, userID uuid.UUID, roleID uint) (*model.UserRoleAssignment, error) {
	a := model.UserRoleAssignment{UserID: userID, RoleID: roleID}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&a).Error
	if err != nil {
		return nil, translate(err)
	}
	var stored model.UserRoleAssignment
	err = r.db.WithContext(ctx).Preload("Role").
		Where("user_id = ? AND role_id = ?", userID, roleID).
		First(&stored).Error
	if err != nil {
		return nil, translate(err)
	}
	return &stored, nil
}

func (r *userRoleAssignmentRepo) Remove(ctx context.Context, userID uuid.UUID, roleID uint) error {
	return affected(r.db.WithContext(ctx).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&model.UserRoleAssignment{}))
}

type eventRoleAssignmentRepo struct {
	db *gorm.DB
}

func NewEventRoleAssignmentRepo(db *gorm.DB) EventRoleAssignmentRepository {
	return &eventRoleAssignmentRepo{db}
}

func (r *eventRoleAssignmentRepo) ListAssignedRoles(ctx context.Context, userID, eventID uuid.UUID) ([]model.EventRole, error) {
	var roles []model.EventRole
	err := r.db.WithContext(ctx).
		Joins("JOIN event_role_assignments era ON era.role_id = event_roles.id").
		Where("era.user_id = ? AND era.event_id = ?", userID, eventID).
		Order("event_roles.id ASC").
		Find(&roles).Error
	return roles, translate(err)
}

func (r *eventRoleAssignmentRepo) Assign(ctx context.Context, userID, eventID uuid.UUID, roleID uint) (*model.EventRoleAssignment, error) {
	a := model.EventRoleAssignment{UserID: userID, EventID: eventID, RoleID: roleID}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&a).Error
	if err != nil {
		return nil, translate(err)
	}
	var stored model.EventRoleAssignment
	err = r.db.WithContext(ctx).Preload("Role").
		Where("user_id = ? AND event_id = ? AND role_id = ?", userID, eventID, roleID).
		First(&stored).Error
	if err != nil {
		return nil, translate(err)
	}
	return &stored, nil
}

func (r *eventRoleAssignmentRepo) Remove(ctx context.Context, userID, eventID uuid.UUID, roleID uint) error {
	return affected(r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ? AND role_id = ?", userID, eventID, roleID).
		Delete(&model.EventRoleAssignment{}))
}

func (r *eventRoleAssignmentRepo) Replace(ctx context.Context, userID, eventID uuid.UUID, roleIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND event_id = ?", userID, eventID).
			Delete(&model.EventRoleAssignment{}).Error; err != nil {
			return translate(err)
		}
		if len(roleIDs) == 0 {
			return nil
		}
		rows := make([]model.EventRoleAssignment, 0, len(roleIDs))
		for _, id := range roleIDs {
			rows = append(rows, model.EventRoleAssignment{UserID: userID, EventID: eventID, RoleID: id})
		}
		return translate(tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error)
	})
}
