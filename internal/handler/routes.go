package handler

import (
	"go-campus-events/internal/middleware"
	"go-campus-events/internal/model"
	"go-campus-events/internal/permission"

	"github.com/gofiber/fiber/v2"
)

// Router holds every handler and the guards placed in front of them.
type Router struct {
	Auth          *AuthHandler
	Users         *UserHandler
	Events        *EventHandler
	Registrations *RegistrationHandler
	Attendance    *AttendanceHandler
	UserRoles     *RoleHandler[model.UserRole]
	EventRoles    *RoleHandler[model.EventRole]
	Assignments   *AssignmentHandler
	Notifications *NotificationHandler

	Authn    fiber.Handler
	Authz    *middleware.Authorizer
	Sessions middleware.SessionLookup
}

// Mount registers the /api routes on api.
func (r *Router) Mount(api fiber.Router) {
	authz := r.Authz
	manageRoles := authz.Require(permission.ManageUserRoles)

	// ============ PUBLIC ROUTES ============
	api.Post("/users/external-auth", r.Auth.ExternalAuth)

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication
	protected := api.Group("", r.Authn)

	users := protected.Group("/users")
	users.Get("/", r.Users.GetUsers)
	users.Post("/", authz.Require(permission.ManageUsers), r.Users.CreateUser)
	users.Get("/faculty", r.Users.GetFaculty)
	users.Get("/me/permissions", r.Users.MyPermissions)
	users.Get("/:id", r.Users.GetUser)
	users.Patch("/:id", authz.Require(permission.ManageUsers), r.Users.UpdateUser)
	users.Delete("/:id", authz.Require(permission.ManageUsers), r.Users.DeleteUser)
	users.Get("/:id/events", r.Users.GetUserEvents)
	users.Get("/:id/attendance", r.Users.GetUserAttendance)

	eventID := middleware.EventParam("id")
	events := protected.Group("/events")
	events.Get("/", r.Events.GetEvents)
	events.Post("/", authz.Require(permission.CreateEvent), r.Events.CreateEvent)
	events.Get("/upcoming", r.Events.GetUpcoming)
	events.Get("/by-faculty/:facultyId", r.Events.GetByFaculty)
	events.Get("/:id", r.Events.GetEvent)
	events.Patch("/:id", authz.RequireEither(permission.ModifyEvents, permission.EventModifyEvent, eventID), r.Events.UpdateEvent)
	events.Delete("/:id", authz.RequireEither(permission.DeleteEvents, permission.EventDeleteEvent, eventID), r.Events.DeleteEvent)
	events.Get("/:id/registrations", r.Events.GetRegistrations)
	events.Put("/:id/roles", manageRoles, r.Events.ReplaceRoles)
	events.Get("/:id/my-permissions", r.Events.MyPermissions)
	events.Post("/:id/notify", authz.RequireEither(permission.SendNotifications, permission.EventSendNotifications, eventID), r.Events.Notify)

	regs := protected.Group("/event-registrations")
	regs.Get("/", r.Registrations.GetRegistrations)
	regs.Post("/", r.Registrations.CreateRegistration)
	regs.Get("/by-event/:eventId", r.Registrations.GetByEvent)
	regs.Get("/:id", r.Registrations.GetRegistration)
	regs.Patch("/:id", r.Registrations.UpdateRegistration)
	regs.Delete("/:id", r.Registrations.DeleteRegistration)

	sessions := protected.Group("/attendance-sessions")
	sessions.Get("/", r.Attendance.GetSessions)
	sessions.Post("/", r.Attendance.CreateSession)
	sessions.Get("/by-event/:eventId",
		authz.RequireEither(permission.ViewAttendance, permission.EventViewAttendance, middleware.EventParam("eventId")),
		r.Attendance.GetSessionsByEvent)
	sessions.Get("/:id", r.Attendance.GetSession)
	sessions.Patch("/:id", r.Attendance.UpdateSession)
	sessions.Delete("/:id", r.Attendance.DeleteSession)
	sessions.Post("/:id/mark-attendance",
		authz.RequireEither(permission.MarkAttendance, permission.EventMarkAttendance, middleware.SessionEvent(r.Sessions, "id")),
		r.Attendance.MarkBulk)

	attendance := protected.Group("/attendance")
	attendance.Get("/", r.Attendance.GetAttendance)
	attendance.Post("/", r.Attendance.CreateAttendance)
	attendance.Get("/by-session/:sessionId", r.Attendance.GetBySession)
	attendance.Patch("/mark/:id", middleware.RequireFaculty(), r.Attendance.UpdateAttendance)
	attendance.Get("/:id", r.Attendance.GetAttendanceRecord)
	attendance.Patch("/:id", r.Attendance.UpdateAttendance)
	attendance.Delete("/:id", r.Attendance.DeleteAttendance)

	mountRoles(protected.Group("/user-roles", manageRoles), r.UserRoles)
	mountRoles(protected.Group("/event-roles", manageRoles), r.EventRoles)

	userAssign := protected.Group("/user-role-assignments", manageRoles)
	userAssign.Post("/assign", r.Assignments.AssignUserRole)
	userAssign.Post("/remove", r.Assignments.RemoveUserRole)

	eventAssign := protected.Group("/event-role-assignments", manageRoles)
	eventAssign.Post("/assign", r.Assignments.AssignEventRole)
	eventAssign.Post("/remove", r.Assignments.RemoveEventRole)

	protected.Get("/permissions", GetPermissions)
	protected.Post("/notifications/send", authz.Require(permission.SendNotifications), r.Notifications.Send)
}

func mountRoles[R any](g fiber.Router, h *RoleHandler[R]) {
	g.Get("/", h.GetRoles)
	g.Post("/", h.CreateRole)
	g.Get("/:id", h.GetRole)
	g.Patch("/:id", h.UpdateRole)
	g.Delete("/:id", h.DeleteRole)
}
