package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	AttendancePresent = "present"
)

// AttendanceSession is one roll-call occasion of an event.
type AttendanceSession struct {
	BaseModel
	EventID     uuid.UUID `gorm:"type:uuid;not null;index" json:"eventId"`
	Event       *Event    `gorm:"constraint:OnDelete:CASCADE" json:"event,omitempty"`
	SessionDate time.Time `gorm:"not null" json:"sessionDate"`
}

// Attendance is a user's mark in a session; one per (session, user).
type Attendance struct {
	BaseModel
	UserID              uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_session_user" json:"userId"`
	User                *User              `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	AttendanceSessionID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_session_user;index" json:"attendanceSessionId"`
	AttendanceSession   *AttendanceSession `gorm:"constraint:OnDelete:CASCADE" json:"attendanceSession,omitempty"`
	Location            string             `gorm:"type:varchar(255);not null;default:''" json:"location"`
	Status              string             `gorm:"type:varchar(32);not null;default:present" json:"status"`
}
