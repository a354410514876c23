package handler

import (
	"go-campus-events/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AssignmentHandler struct {
	assignmentService service.AssignmentService
}

func NewAssignmentHandler(assignmentService service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// AssignUserRole grants a global role; granting it twice is a no-op
// POST /api/user-role-assignments/assign
func (h *AssignmentHandler) AssignUserRole(c *fiber.Ctx) error {
	var req service.UserRoleAssignmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	assignment, err := h.assignmentService.AssignUserRole(c.UserContext(), &req)
	if err != nil {
		return fail(c, err, "Role assignment")
	}
	return ok(c, assignment)
}

// POST /api/user-role-assignments/remove
func (h *AssignmentHandler) RemoveUserRole(c *fiber.Ctx) error {
	var req service.UserRoleAssignmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.assignmentService.RemoveUserRole(c.UserContext(), &req); err != nil {
		return fail(c, err, "Role assignment")
	}
	return message(c, "Role removed successfully.")
}

// POST /api/event-role-assignments/assign
func (h *AssignmentHandler) AssignEventRole(c *fiber.Ctx) error {
	var req service.EventRoleAssignmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	assignment, err := h.assignmentService.AssignEventRole(c.UserContext(), &req)
	if err != nil {
		return fail(c, err, "Role assignment")
	}
	return ok(c, assignment)
}

// POST /api/event-role-assignments/remove
func (h *AssignmentHandler) RemoveEventRole(c *fiber.Ctx) error {
	var req service.EventRoleAssignmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.assignmentService.RemoveEventRole(c.UserContext(), &req); err != nil {
		return fail(c, err, "Role assignment")
	}
	return message(c, "Role removed successfully.")
}
