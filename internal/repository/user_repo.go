package repository

import (
	"context"

	"go-campus-events/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	// FindAll lists users; a non-empty username filters by case-insensitive
	// substring.
	FindAll(ctx context.Context, username string) ([]model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByKmail(ctx context.Context, kmail string) (*model.User, error)
	FindByKind(ctx context.Context, kind string) ([]model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	// UpsertByKmail creates the user, or refreshes only the kind of the row
	// holding the same kmail. user is filled with the stored row.
	UpsertByKmail(ctx context.Context, user *model.User) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) FindAll(ctx context.Context, username string) ([]model.User, error) {
	var users []model.User
	q := r.db.WithContext(ctx).Order("username ASC")
	if username != "" {
		q = q.Where("username ILIKE ?", "%"+username+"%")
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepo) FindByKmail(ctx context.Context, kmail string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("kmail = ?", kmail).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepo) FindByKind(ctx context.Context, kind string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Where("kind = ?", kind).Order("username ASC").Find(&users).Error
	return users, translate(err)
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return translate(r.db.WithContext(ctx).Save(user).Error)
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id))
}

func (r *userRepo) UpsertByKmail(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kmail"}},
		DoUpdates: clause.AssignmentColumns([]string{"kind", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return translate(err)
	}
	// On conflict the generated id is not the stored one.
	var stored model.User
	if err := r.db.WithContext(ctx).Where("kmail = ?", user.Kmail).First(&stored).Error; err != nil {
		return translate(err)
	}
	*user = stored
	return nil
}
