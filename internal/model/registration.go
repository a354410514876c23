package model

import "github.com/google/uuid"

const (
	RegistrationConfirmed = "confirmed"
)

// EventRegistration records that a user signed up for an event. A user
// registers at most once per event.
type EventRegistration struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_registration_user_event" json:"userId"`
	User    *User     `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	EventID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_registration_user_event;index" json:"eventId"`
	Event   *Event    `gorm:"constraint:OnDelete:CASCADE" json:"event,omitempty"`
	Status  string    `gorm:"type:varchar(32);not null;default:confirmed" json:"status"`
}
