package repository

import (
	"context"
	"time"

	"go-campus-events/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventFilter narrows the event listing.
type EventFilter struct {
	Search string
	Offset int
	Limit  int
}

type EventRepository interface {
	List(ctx context.Context, f EventFilter) ([]model.Event, error)
	Count(ctx context.Context, f EventFilter) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	FindByCreator(ctx context.Context, userID uuid.UUID) ([]model.Event, error)
	Upcoming(ctx context.Context, now time.Time) ([]model.Event, error)
	Create(ctx context.Context, event *model.Event) error
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type eventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db}
}

func (r *eventRepo) filtered(ctx context.Context, f EventFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Event{})
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}
	return q
}

func (r *eventRepo) List(ctx context.Context, f EventFilter) ([]model.Event, error) {
	var events []model.Event
	q := r.filtered(ctx, f).Preload("CreatedBy").Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Find(&events).Error; err != nil {
		return nil, translate(err)
	}
	return events, nil
}

func (r *eventRepo) Count(ctx context.Context, f EventFilter) (int64, error) {
	var n int64
	err := r.filtered(ctx, f).Count(&n).Error
	return n, translate(err)
}

func (r *eventRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).Preload("CreatedBy").First(&event, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (r *eventRepo) FindByCreator(ctx context.Context, userID uuid.UUID) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("created_by_id = ?", userID).
		Order("created_at DESC").
		Find(&events).Error
	return events, translate(err)
}

func (r *eventRepo) Upcoming(ctx context.Context, now time.Time) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("start_time >= ?", now).
		Order("start_time ASC").
		Find(&events).Error
	return events, translate(err)
}

func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	return translate(r.db.WithContext(ctx).Create(event).Error)
}

func (r *eventRepo) Update(ctx context.Context, event *model.Event) error {
	return translate(r.db.WithContext(ctx).Omit("CreatedBy").Save(event).Error)
}

func (r *eventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&model.Event{}, "id = ?", id))
}
