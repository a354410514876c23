package model

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	BaseModel
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Slots       *int       `json:"slots"`
	StartTime   *time.Time `gorm:"index" json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	IsPublic    bool       `gorm:"not null" json:"isPublic"`

	CreatedByID *uuid.UUID `gorm:"type:uuid;index" json:"createdById"`
	CreatedBy   *User      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"createdBy,omitempty"`
}

// IsCreatedBy reports whether userID created the event.
func (e *Event) IsCreatedBy(userID uuid.UUID) bool {
	return e.CreatedByID != nil && *e.CreatedByID == userID
}

// EventPage is one page of the event listing.
type EventPage struct {
	Events      []Event `json:"events"`
	CurrentPage int     `json:"currentPage"`
	TotalPages  int     `json:"totalPages"`
	TotalCount  int64   `json:"totalCount"`
}
