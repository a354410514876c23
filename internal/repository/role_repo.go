package repository

import (
	"context"

	"go-campus-events/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoleRepository stores the roles of one scope. R is model.UserRole or
// model.EventRole; the two scopes live in separate tables.
type RoleRepository[R any] interface {
	FindAll(ctx context.Context) ([]R, error)
	FindByID(ctx context.Context, id uint) (*R, error)
	FindByName(ctx context.Context, name string) (*R, error)
	Create(ctx context.Context, role *R) error
	Update(ctx context.Context, role *R) error
	// Upsert inserts role or, when the name exists, overwrites its bitmask.
	Upsert(ctx context.Context, role *R) error
	// Delete removes the role together with every assignment of it.
	Delete(ctx context.Context, id uint) error
	// SeedDefaults inserts roles whose names are missing and leaves
	// existing rows untouched.
	SeedDefaults(ctx context.Context, defaults []R) error
}

type roleRepo[R any] struct {
	db         *gorm.DB
	assignment any
}

func NewUserRoleRepo(db *gorm.DB) RoleRepository[model.UserRole] {
	return &roleRepo[model.UserRole]{db: db, assignment: &model.UserRoleAssignment{}}
}

func NewEventRoleRepo(db *gorm.DB) RoleRepository[model.EventRole] {
	return &roleRepo[model.EventRole]{db: db, assignment: &model.EventRoleAssignment{}}
}

func (r *roleRepo[R]) FindAll(ctx context.Context) ([]R, error) {
	var roles []R
	err := r.db.WithContext(ctx).Order("id ASC").Find(&roles).Error
	return roles, translate(err)
}

func (r *roleRepo[R]) FindByID(ctx context.Context, id uint) (*R, error) {
	var role R
	if err := r.db.WithContext(ctx).First(&role, id).Error; err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

func (r *roleRepo[R]) FindByName(ctx context.Context, name string) (*R, error) {
	var role R
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

func (r *roleRepo[R]) Create(ctx context.Context, role *R) error {
	return translate(r.db.WithContext(ctx).Create(role).Error)
}

func (r *roleRepo[R]) Update(ctx context.Context, role *R) error {
	return translate(r.db.WithContext(ctx).Save(role).Error)
}

func (r *roleRepo[R]) Upsert(ctx context.Context, role *R) error {
	return translate(r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"bitmask", "updated_at"}),
	}).Create(role).Error)
}

func (r *roleRepo[R]) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(r.assignment).Error; err != nil {
			return translate(err)
		}
		var role R
		return affected(tx.Delete(&role, id))
	})
}

func (r *roleRepo[R]) SeedDefaults(ctx context.Context, defaults []R) error {
	for i := range defaults {
		role := defaults[i]
		err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&role).Error
		if err != nil {
			return translate(err)
		}
	}
	return nil
}
