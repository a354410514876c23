package handler

import (
	"go-campus-events/internal/middleware"
	"go-campus-events/internal/permission"
	"go-campus-events/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService   service.UserService
	accessService service.AccessService
}

func NewUserHandler(userService service.UserService, accessService service.AccessService) *UserHandler {
	return &UserHandler{userService: userService, accessService: accessService}
}

// GetUsers returns all users, optionally filtered by username
// GET /api/users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.userService.List(c.UserContext(), c.Query("username"))
	if err != nil {
		return fail(c, err, "User")
	}
	return ok(c, users)
}

// CreateUser handles user creation
// POST /api/users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.userService.Create(c.UserContext(), &req)
	if err != nil {
		return fail(c, err, "User")
	}
	return created(c, user)
}

// GET /api/users/faculty
func (h *UserHandler) GetFaculty(c *fiber.Ctx) error {
	users, err := h.userService.ListFaculty(c.UserContext())
	if err != nil {
		return fail(c, err, "User")
	}
	return ok(c, users)
}

// GetUser returns a single user by ID
// GET /api/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.userService.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "User")
	}
	return ok(c, user)
}

// UpdateUser patches the fields present in the body
// PATCH /api/users/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.userService.Update(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err, "User")
	}
	return ok(c, user)
}

// DELETE /api/users/:id
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.userService.Delete(c.UserContext(), id); err != nil {
		return fail(c, err, "User")
	}
	return message(c, "User deleted successfully.")
}

// GetUserEvents lists the events a user created
// GET /api/users/:id/events
func (h *UserHandler) GetUserEvents(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	events, err := h.userService.CreatedEvents(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "User")
	}
	return ok(c, events)
}

// GET /api/users/:id/attendance
func (h *UserHandler) GetUserAttendance(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	records, err := h.userService.Attendance(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "User")
	}
	return ok(c, records)
}

// MyPermissions reports the caller's effective global permissions
// GET /api/users/me/permissions
func (h *UserHandler) MyPermissions(c *fiber.Ctx) error {
	userID, _ := middleware.UserID(c)
	mask, err := h.accessService.EffectiveUserMask(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{
		"bitmask":     uint32(mask),
		"permissions": permission.Names(mask),
	})
}
