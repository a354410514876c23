package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-campus-events/internal/ws"

	"github.com/google/uuid"
)

type NotificationService interface {
	Send(ctx context.Context, req *NotificationRequest) (*Notification, error)
	// SendForEvent is Send with the payload tagged by the event it concerns.
	SendForEvent(ctx context.Context, eventID uuid.UUID, req *NotificationRequest) (*Notification, error)
}

type NotificationRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=2000"`
}

// Notification is the payload pushed to WebSocket clients.
type Notification struct {
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Timestamp time.Time  `json:"timestamp"`
	EventID   *uuid.UUID `json:"eventId,omitempty"`
}

type notificationService struct {
	publisher ws.Publisher
	now       func() time.Time
}

func NewNotificationService(publisher ws.Publisher) NotificationService {
	return &notificationService{publisher: publisher, now: time.Now}
}

func (s *notificationService) Send(ctx context.Context, req *NotificationRequest) (*Notification, error) {
	return s.send(ctx, nil, req)
}

func (s *notificationService) SendForEvent(ctx context.Context, eventID uuid.UUID, req *NotificationRequest) (*Notification, error) {
	return s.send(ctx, &eventID, req)
}

func (s *notificationService) send(ctx context.Context, eventID *uuid.UUID, req *NotificationRequest) (*Notification, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	n := &Notification{
		Title:     req.Title,
		Message:   req.Message,
		Timestamp: s.now().UTC(),
		EventID:   eventID,
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		return nil, fmt.Errorf("broadcast notification: %w", err)
	}
	return n, nil
}
