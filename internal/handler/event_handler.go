package handler

import (
	"go-campus-events/internal/middleware"
	"go-campus-events/internal/permission"
	"go-campus-events/internal/service"

	"github.com/gofiber/fiber/v2"
)

type EventHandler struct {
	eventService        service.EventService
	assignmentService   service.AssignmentService
	accessService       service.AccessService
	notificationService service.NotificationService
}

func NewEventHandler(
	eventService service.EventService,
	assignmentService service.AssignmentService,
	accessService service.AccessService,
	notificationService service.NotificationService,
) *EventHandler {
	return &EventHandler{
		eventService:        eventService,
		assignmentService:   assignmentService,
		accessService:       accessService,
		notificationService: notificationService,
	}
}

// GetEvents returns one page of events
// GET /api/events?page=&limit=&search=
func (h *EventHandler) GetEvents(c *fiber.Ctx) error {
	var q service.ListEventsQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	page, err := h.eventService.List(c.UserContext(), q)
	if err != nil {
		return fail(c, err, "Event")
	}
	return ok(c, page)
}

// CreateEvent creates an event owned by the caller
// POST /api/events
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req service.CreateEventRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	creatorID, _ := middleware.UserID(c)

	event, err := h.eventService.Create(c.UserContext(), &req, creatorID)
	if err != nil {
		return fail(c, err, "Event")
	}
	return created(c, event)
}

// GET /api/events/upcoming
func (h *EventHandler) GetUpcoming(c *fiber.Ctx) error {
	events, err := h.eventService.Upcoming(c.UserContext())
	if err != nil {
		return fail(c, err, "Event")
	}
	return ok(c, events)
}

// GET /api/events/:id
func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	event, err := h.eventService.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "Event")
	}
	return ok(c, event)
}

// PATCH /api/events/:id
func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateEventRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	event, err := h.eventService.Update(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err, "Event")
	}
	return ok(c, event)
}

// DELETE /api/events/:id
func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.eventService.Delete(c.UserContext(), id); err != nil {
		return fail(c, err, "Event")
	}
	return message(c, "Event deleted successfully.")
}

// GET /api/events/:id/registrations
func (h *EventHandler) GetRegistrations(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	regs, err := h.eventService.Registrations(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "Event")
	}
	return ok(c, regs)
}

// GET /api/events/by-faculty/:facultyId
func (h *EventHandler) GetByFaculty(c *fiber.Ctx) error {
	id, err := uuidParam(c, "facultyId")
	if err != nil {
		return err
	}
	events, err := h.eventService.ByCreator(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "Event")
	}
	return ok(c, events)
}

// ReplaceRoles sets a user's roles within the event
// PUT /api/events/:id/roles
func (h *EventHandler) ReplaceRoles(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req service.ReplaceEventRolesRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.assignmentService.ReplaceEventRoles(c.UserContext(), id, &req); err != nil {
		return fail(c, err, "Event")
	}
	return message(c, "Event roles updated successfully.")
}

// MyPermissions reports the caller's effective permissions on the event
// GET /api/events/:id/my-permissions
func (h *EventHandler) MyPermissions(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	userID, _ := middleware.UserID(c)
	mask, err := h.accessService.EffectiveEventMask(c.UserContext(), userID, id)
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{
		"eventId":     id,
		"bitmask":     uint32(mask),
		"permissions": permission.Names(mask),
	})
}

// Notify broadcasts a notification tagged with the event
// POST /api/events/:id/notify
func (h *EventHandler) Notify(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.eventService.Get(c.UserContext(), id); err != nil {
		return fail(c, err, "Event")
	}
	var req service.NotificationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if _, err := h.notificationService.SendForEvent(c.UserContext(), id, &req); err != nil {
		return fail(c, err, "Event")
	}
	return message(c, "Notification broadcasted successfully.")
}
