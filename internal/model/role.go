package model

import (
	"time"

	"go-campus-events/internal/permission"

	"github.com/google/uuid"
)

// UserRole is a named set of global permissions.
type UserRole struct {
	ID        uint                `gorm:"primaryKey" json:"id"`
	Name      string              `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Bitmask   permission.UserMask `gorm:"type:bigint;not null;default:0" json:"bitmask"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// PermissionMask implements permission.Grant.
func (r UserRole) PermissionMask() permission.UserMask { return r.Bitmask }

// EventRole is a named set of permissions applied within a single event.
type EventRole struct {
	ID        uint                 `gorm:"primaryKey" json:"id"`
	Name      string               `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Bitmask   permission.EventMask `gorm:"type:bigint;not null;default:0" json:"bitmask"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// PermissionMask implements permission.Grant.
func (r EventRole) PermissionMask() permission.EventMask { return r.Bitmask }

// UserRoleAssignment links a user to a global role. The composite primary
// key keeps one row per (user, role).
type UserRoleAssignment struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	RoleID    uint      `gorm:"primaryKey" json:"roleId"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Role      *UserRole `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE" json:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// EventRoleAssignment links a user to a role within one event.
type EventRoleAssignment struct {
	UserID    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"userId"`
	EventID   uuid.UUID  `gorm:"type:uuid;primaryKey;index" json:"eventId"`
	RoleID    uint       `gorm:"primaryKey" json:"roleId"`
	User      *User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Event     *Event     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Role      *EventRole `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE" json:"role,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Role names seeded on first start.
const (
	RoleAdmin            = "Admin"
	RoleManager          = "Manager"
	RoleUser             = "User"
	RoleEventManager     = "Event Manager"
	RoleEventCoordinator = "Event Coordinator"
	RoleEventViewer      = "Event Viewer"
)

// DefaultUserRoles defines the global roles created by the seeder.
var DefaultUserRoles = []UserRole{
	{Name: RoleAdmin, Bitmask: 63},   // 1 + 2 + 4 + 8 + 16 + 32
	{Name: RoleManager, Bitmask: 23}, // 1 + 2 + 4 + 16
	{Name: RoleUser, Bitmask: 13},    // 1 + 4 + 8
}

// DefaultEventRoles defines the event roles created by the seeder.
var DefaultEventRoles = []EventRole{
	{Name: RoleEventManager, Bitmask: 31},     // 1 + 2 + 4 + 8 + 16
	{Name: RoleEventCoordinator, Bitmask: 15}, // 1 + 2 + 4 + 8
	{Name: RoleEventViewer, Bitmask: 9},       // 1 + 8
}

// AllModels lists every table for AutoMigrate, parents first.
func AllModels() []any {
	return []any{
		&User{},
		&Event{},
		&EventRegistration{},
		&AttendanceSession{},
		&Attendance{},
		&UserRole{},
		&EventRole{},
		&UserRoleAssignment{},
		&EventRoleAssignment{},
	}
}
