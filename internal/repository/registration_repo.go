package repository

import (
	"context"

	"go-campus-events/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegistrationRepository interface {
	FindAll(ctx context.Context) ([]model.EventRegistration, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.EventRegistration, error)
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]model.EventRegistration, error)
	Create(ctx context.Context, reg *model.EventRegistration) error
	Update(ctx context.Context, reg *model.EventRegistration) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type registrationRepo struct {
	db *gorm.DB
}

func NewRegistrationRepo(db *gorm.DB) RegistrationRepository {
	return &registrationRepo{db}
}

func (r *registrationRepo) FindAll(ctx context.Context) ([]model.EventRegistration, error) {
	var regs []model.EventRegistration
	err := r.db.WithContext(ctx).Preload("User").Preload("Event").
		Order("created_at DESC").Find(&regs).Error
	return regs, translate(err)
}

func (r *registrationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.EventRegistration, error) {
	var reg model.EventRegistration
	err := r.db.WithContext(ctx).Preload("User").Preload("Event").First(&reg, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &reg, nil
}

func (r *registrationRepo) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]model.EventRegistration, error) {
	var regs []model.EventRegistration
	err := r.db.WithContext(ctx).Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&regs).Error
	return regs, translate(err)
}

func (r *registrationRepo) Create(ctx context.Context, reg *model.EventRegistration) error {
	return translate(r.db.WithContext(ctx).Create(reg).Error)
}

func (r *registrationRepo) Update(ctx context.Context, reg *model.EventRegistration) error {
	return translate(r.db.WithContext(ctx).Omit("User", "Event").Save(reg).Error)
}

func (r *registrationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&model.EventRegistration{}, "id = ?", id))
}
