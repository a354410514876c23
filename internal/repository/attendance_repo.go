package repository

import (
	"context"

	"go-campus-events/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceSessionRepository interface {
	FindAll(ctx context.Context) ([]model.AttendanceSession, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.AttendanceSession, error)
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]model.AttendanceSession, error)
	Create(ctx context.Context, s *model.AttendanceSession) error
	Update(ctx context.Context, s *model.AttendanceSession) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type AttendanceRepository interface {
	FindAll(ctx context.Context) ([]model.Attendance, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Attendance, error)
	FindBySession(ctx context.Context, sessionID uuid.UUID) ([]model.Attendance, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Attendance, error)
	Create(ctx context.Context, a *model.Attendance) error
	// CreateIfAbsent inserts a unless the user is already marked in the
	// session. It reports whether a row was written.
	CreateIfAbsent(ctx context.Context, a *model.Attendance) (bool, error)
	Update(ctx context.Context, a *model.Attendance) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type attendanceSessionRepo struct {
	db *gorm.DB
}

func NewAttendanceSessionRepo(db *gorm.DB) AttendanceSessionRepository {
	return &attendanceSessionRepo{db}
}

func (r *attendanceSessionRepo) FindAll(ctx context.Context) ([]model.AttendanceSession, error) {
	var sessions []model.AttendanceSession
	err := r.db.WithContext(ctx).Preload("Event").Order("session_date DESC").Find(&sessions).Error
	return sessions, translate(err)
}

func (r *attendanceSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AttendanceSession, error) {
	var s model.AttendanceSession
	if err := r.db.WithContext(ctx).Preload("Event").First(&s, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *attendanceSessionRepo) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]model.AttendanceSession, error) {
	var sessions []model.AttendanceSession
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("session_date ASC").Find(&sessions).Error
	return sessions, translate(err)
}

func (r *attendanceSessionRepo) Create(ctx context.Context, s *model.AttendanceSession) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *attendanceSessionRepo) Update(ctx context.Context, s *model.AttendanceSession) error {
	return translate(r.db.WithContext(ctx).Omit("Event").Save(s).Error)
}

func (r *attendanceSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&model.AttendanceSession{}, "id = ?", id))
}

type attendanceRepo struct {
	db *gorm.DB
}

func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db}
}

func (r *attendanceRepo) FindAll(ctx context.Context) ([]model.Attendance, error) {
	var rows []model.Attendance
	err := r.db.WithContext(ctx).Preload("User").Order("created_at DESC").Find(&rows).Error
	return rows, translate(err)
}

func (r *attendanceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Attendance, error) {
	var a model.Attendance
	err := r.db.WithContext(ctx).Preload("User").Preload("AttendanceSession").First(&a, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *attendanceRepo) FindBySession(ctx context.Context, sessionID uuid.UUID) ([]model.Attendance, error) {
	var rows []model.Attendance
	err := r.db.WithContext(ctx).Preload("User").
		Where("attendance_session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, translate(err)
}

func (r *attendanceRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Attendance, error) {
	var rows []model.Attendance
	err := r.db.WithContext(ctx).Preload("AttendanceSession").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, translate(err)
}

func (r *attendanceRepo) Create(ctx context.Context, a *model.Attendance) error {
	return translate(r.db.WithContext(ctx).Create(a).Error)
}

func (r *attendanceRepo) CreateIfAbsent(ctx context.Context, a *model.Attendance) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(a)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *attendanceRepo) Update(ctx context.Context, a *model.Attendance) error {
	return translate(r.db.WithContext(ctx).Omit("User", "AttendanceSession").Save(a).Error)
}

func (r *attendanceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&model.Attendance{}, "id = ?", id))
}
