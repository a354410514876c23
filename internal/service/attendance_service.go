package service

import (
	"context"
	"errors"
	"time"

	"go-campus-events/internal/model"
	"go-campus-events/internal/repository"

	"github.com/google/uuid"
)

type AttendanceService interface {
	ListSessions(ctx context.Context) ([]model.AttendanceSession, error)
	GetSession(ctx context.Context, id uuid.UUID) (*model.AttendanceSession, error)
	SessionsByEvent(ctx context.Context, eventID uuid.UUID) ([]model.AttendanceSession, error)
	CreateSession(ctx context.Context, req *SessionRequest) (*model.AttendanceSession, error)
	UpdateSession(ctx context.Context, id uuid.UUID, req *UpdateSessionRequest) (*model.AttendanceSession, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	// MarkBulk records attendance for each entry, skipping users already
	// marked in the session, and returns only the new records.
	MarkBulk(ctx context.Context, sessionID uuid.UUID, req *MarkBulkRequest) ([]model.Attendance, error)

	List(ctx context.Context) ([]model.Attendance, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Attendance, error)
	BySession(ctx context.Context, sessionID uuid.UUID) ([]model.Attendance, error)
	Create(ctx context.Context, req *CreateAttendanceRequest) (*model.Attendance, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateAttendanceRequest) (*model.Attendance, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SessionRequest struct {
	EventID     uuid.UUID  `json:"eventId" validate:"uuid_required"`
	SessionDate *time.Time `json:"sessionDate"`
}

type UpdateSessionRequest struct {
	EventID     *uuid.UUID `json:"eventId"`
	SessionDate *time.Time `json:"sessionDate"`
}

type AttendanceEntry struct {
	UserID   uuid.UUID `json:"userId" validate:"uuid_required"`
	Status   string    `json:"status" validate:"omitempty,max=32"`
	Location string    `json:"location" validate:"omitempty,max=255"`
}

type MarkBulkRequest struct {
	AttendanceData []AttendanceEntry `json:"attendance_data" validate:"required,dive"`
}

type CreateAttendanceRequest struct {
	UserID              uuid.UUID `json:"userId" validate:"uuid_required"`
	AttendanceSessionID uuid.UUID `json:"attendanceSessionId" validate:"uuid_required"`
	Status              string    `json:"status" validate:"omitempty,max=32"`
	Location            string    `json:"location" validate:"omitempty,max=255"`
}

type UpdateAttendanceRequest struct {
	Status   *string `json:"status" validate:"omitempty,max=32"`
	Location *string `json:"location" validate:"omitempty,max=255"`
}

type attendanceService struct {
	sessionRepo    repository.AttendanceSessionRepository
	attendanceRepo repository.AttendanceRepository
	now            func() time.Time
}

func NewAttendanceService(sessionRepo repository.AttendanceSessionRepository, attendanceRepo repository.AttendanceRepository) AttendanceService {
	return &attendanceService{
		sessionRepo:    sessionRepo,
		attendanceRepo: attendanceRepo,
		now:            time.Now,
	}
}

func (s *attendanceService) ListSessions(ctx context.Context) ([]model.AttendanceSession, error) {
	return s.sessionRepo.FindAll(ctx)
}

func (s *attendanceService) GetSession(ctx context.Context, id uuid.UUID) (*model.AttendanceSession, error) {
	return s.sessionRepo.FindByID(ctx, id)
}

func (s *attendanceService) SessionsByEvent(ctx context.Context, eventID uuid.UUID) ([]model.AttendanceSession, error) {
	return s.sessionRepo.FindByEvent(ctx, eventID)
}

func (s *attendanceService) CreateSession(ctx context.Context, req *SessionRequest) (*model.AttendanceSession, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	session := &model.AttendanceSession{EventID: req.EventID, SessionDate: s.now()}
	if req.SessionDate != nil {
		session.SessionDate = *req.SessionDate
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *attendanceService) UpdateSession(ctx context.Context, id uuid.UUID, req *UpdateSessionRequest) (*model.AttendanceSession, error) {
	session, err := s.sessionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.EventID != nil && *req.EventID != uuid.Nil {
		session.EventID = *req.EventID
		session.Event = nil
	}
	if req.SessionDate != nil {
		session.SessionDate = *req.SessionDate
	}
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *attendanceService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	return s.sessionRepo.Delete(ctx, id)
}

func (s *attendanceService) MarkBulk(ctx context.Context, sessionID uuid.UUID, req *MarkBulkRequest) ([]model.Attendance, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if _, err := s.sessionRepo.FindByID(ctx, sessionID); err != nil {
		return nil, err
	}

	created := make([]model.Attendance, 0, len(req.AttendanceData))
	for _, entry := range req.AttendanceData {
		record := newAttendance(entry.UserID, sessionID, entry.Status, entry.Location)
		ok, err := s.attendanceRepo.CreateIfAbsent(ctx, record)
		if errors.Is(err, repository.ErrReference) {
			// Unknown user: skip like a duplicate.
			continue
		}
		if err != nil {
			return nil, err
		}
		if ok {
			created = append(created, *record)
		}
	}
	return created, nil
}

func (s *attendanceService) List(ctx context.Context) ([]model.Attendance, error) {
	return s.attendanceRepo.FindAll(ctx)
}

func (s *attendanceService) Get(ctx context.Context, id uuid.UUID) (*model.Attendance, error) {
	return s.attendanceRepo.FindByID(ctx, id)
}

func (s *attendanceService) BySession(ctx context.Context, sessionID uuid.UUID) ([]model.Attendance, error) {
	return s.attendanceRepo.FindBySession(ctx, sessionID)
}

func (s *attendanceService) Create(ctx context.Context, req *CreateAttendanceRequest) (*model.Attendance, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	record := newAttendance(req.UserID, req.AttendanceSessionID, req.Status, req.Location)
	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *attendanceService) Update(ctx context.Context, id uuid.UUID, req *UpdateAttendanceRequest) (*model.Attendance, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	record, err := s.attendanceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != nil {
		record.Status = *req.Status
	}
	if req.Location != nil {
		record.Location = *req.Location
	}
	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *attendanceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.attendanceRepo.Delete(ctx, id)
}

func newAttendance(userID, sessionID uuid.UUID, status, location string) *model.Attendance {
	if status == "" {
		status = model.AttendancePresent
	}
	return &model.Attendance{
		UserID:              userID,
		AttendanceSessionID: sessionID,
		Status:              status,
		Location:            location,
	}
}
