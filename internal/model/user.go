package model

import "github.com/google/uuid"

// User kinds reported by the campus credential service.
const (
	UserKindStudent = "student"
	UserKindFaculty = "faculty"
	UserKindBoss    = "boss"
)

// User is a campus member. Kind is the coarse account type handed out by the
// credential service; fine-grained rights come from role assignments.
type User struct {
	BaseModel
	Kid      string `gorm:"type:varchar(64);uniqueIndex;not null" json:"kid"`
	Username string `gorm:"type:varchar(255);not null" json:"username"`
	Kmail    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"kmail"`
	Kind     string `gorm:"type:varchar(32);not null;default:student" json:"role"`
}

// IsFaculty reports whether the user may perform faculty-only actions.
func (u *User) IsFaculty() bool {
	return u.Kind == UserKindFaculty
}

// UserSummary is the trimmed user returned next to auth tokens.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Kmail    string    `json:"kmail"`
	Role     string    `json:"role"`
}

// ToSummary converts User to UserSummary
func (u *User) ToSummary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Kmail:    u.Kmail,
		Role:     u.Kind,
	}
}
