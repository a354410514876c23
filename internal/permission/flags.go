// Package permission holds the bit-flag vocabulary for the two role scopes
// and the evaluator that decides whether a set of roles grants a requirement.
//
// User-scope and event-scope flags reuse bit positions 0-4, so they are kept
// in distinct types. A UserMask is never compared to an EventMask.
package permission

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrUnknownFlag is returned by Parse for a name outside the scope's table.
var ErrUnknownFlag = errors.New("permission: unknown flag")

// Mask is the constraint satisfied by both scope types.
type Mask interface {
	~uint32
}

// UserMask is a set of global (user-scope) permissions.
type UserMask uint32

// EventMask is a set of permissions bound to one event.
type EventMask uint32

// User-scope permissions.
const (
	CreateEvent       UserMask = 1 << 0 // 1
	ManageUserRoles   UserMask = 1 << 1 // 2
	ViewAttendance    UserMask = 1 << 2 // 4
	ManageUsers       UserMask = 1 << 3 // 8
	SendNotifications UserMask = 1 << 4 // 16
	ManagePermissions UserMask = 1 << 5 // 32
	ViewEvents        UserMask = 1 << 6 // 64
	DeleteEvents      UserMask = 1 << 7 // 128
	ModifyEvents      UserMask = 1 << 8 // 256
	MarkAttendance    UserMask = 1 << 9 // 512
)

// Event-scope permissions.
const (
	EventMarkAttendance    EventMask = 1 << 0 // 1
	EventModifyEvent       EventMask = 1 << 1 // 2
	EventDeleteEvent       EventMask = 1 << 2 // 4
	EventViewAttendance    EventMask = 1 << 3 // 8
	EventSendNotifications EventMask = 1 << 4 // 16
)

// Flag is one row of a scope's permission table.
type Flag[M Mask] struct {
	Name  string `json:"name"`
	Bit   int    `json:"bit"`
	Value M      `json:"value"`
}

var userFlags = []Flag[UserMask]{
	{Name: "CREATE_EVENT", Bit: 0, Value: CreateEvent},
	{Name: "MANAGE_USER_ROLES", Bit: 1, Value: ManageUserRoles},
	{Name: "VIEW_ATTENDANCE", Bit: 2, Value: ViewAttendance},
	{Name: "MANAGE_USERS", Bit: 3, Value: ManageUsers},
	{Name: "SEND_NOTIFICATIONS", Bit: 4, Value: SendNotifications},
	{Name: "MANAGE_PERMISSIONS", Bit: 5, Value: ManagePermissions},
	{Name: "VIEW_EVENTS", Bit: 6, Value: ViewEvents},
	{Name: "DELETE_EVENTS", Bit: 7, Value: DeleteEvents},
	{Name: "MODIFY_EVENTS", Bit: 8, Value: ModifyEvents},
	{Name: "MARK_ATTENDANCE", Bit: 9, Value: MarkAttendance},
}

var eventFlags = []Flag[EventMask]{
	{Name: "EVENT_MARK_ATTENDANCE", Bit: 0, Value: EventMarkAttendance},
	{Name: "EVENT_MODIFY_EVENT", Bit: 1, Value: EventModifyEvent},
	{Name: "EVENT_DELETE_EVENT", Bit: 2, Value: EventDeleteEvent},
	{Name: "EVENT_VIEW_ATTENDANCE", Bit: 3, Value: EventViewAttendance},
	{Name: "EVENT_SEND_NOTIFICATIONS", Bit: 4, Value: EventSendNotifications},
}

// UserPermissions returns a copy of the user-scope table ordered by bit.
func UserPermissions() []Flag[UserMask] {
	return append([]Flag[UserMask](nil), userFlags...)
}

// EventPermissions returns a copy of the event-scope table ordered by bit.
func EventPermissions() []Flag[EventMask] {
	return append([]Flag[EventMask](nil), eventFlags...)
}

// AllUser is the union of every defined user-scope flag.
func AllUser() UserMask { return union(userFlags) }

// AllEvent is the union of every defined event-scope flag.
func AllEvent() EventMask { return union(eventFlags) }

func union[M Mask](table []Flag[M]) M {
	var m M
	for _, f := range table {
		m |= f.Value
	}
	return m
}

func tableFor[M Mask]() []Flag[M] {
	var zero M
	switch any(zero).(type) {
	case UserMask:
		return any(userFlags).([]Flag[M])
	case EventMask:
		return any(eventFlags).([]Flag[M])
	}
	return nil
}

// Has reports whether every bit of required is set in m.
func (m UserMask) Has(required UserMask) bool { return m&required == required }

// Has reports whether every bit of required is set in m.
func (m EventMask) Has(required EventMask) bool { return m&required == required }

// Names decodes m into the names of the defined flags it contains, ordered
// by bit. Bits outside the table are skipped.
func Names[M Mask](m M) []string {
	table := tableFor[M]()
	names := make([]string, 0, bits.OnesCount32(uint32(m)))
	for _, f := range table {
		if m&f.Value != 0 {
			names = append(names, f.Name)
		}
	}
	return names
}

// Parse builds a mask from flag names of the scope M.
func Parse[M Mask](names ...string) (M, error) {
	table := tableFor[M]()
	var m M
	for _, name := range names {
		found := false
		for _, f := range table {
			if f.Name == name {
				m |= f.Value
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w %q", ErrUnknownFlag, name)
		}
	}
	return m, nil
}

func (m UserMask) String() string  { return fmt.Sprintf("%#b", uint32(m)) }
func (m EventMask) String() string { return fmt.Sprintf("%#b", uint32(m)) }
