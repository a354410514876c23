package handler

import (
	"go-campus-events/internal/permission"
	"go-campus-events/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RoleHandler serves the role catalogue of one scope.
type RoleHandler[R any] struct {
	roleService service.RoleService[R]
}

func NewRoleHandler[R any](roleService service.RoleService[R]) *RoleHandler[R] {
	return &RoleHandler[R]{roleService: roleService}
}

// GetRoles returns all roles of the scope
// GET /api/user-roles, /api/event-roles
func (h *RoleHandler[R]) GetRoles(c *fiber.Ctx) error {
	roles, err := h.roleService.List(c.UserContext())
	if err != nil {
		return fail(c, err, "Role")
	}
	return ok(c, roles)
}

func (h *RoleHandler[R]) CreateRole(c *fiber.Ctx) error {
	var req service.CreateRoleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	role, err := h.roleService.Create(c.UserContext(), &req)
	if err != nil {
		return fail(c, err, "Role")
	}
	return created(c, role)
}

func (h *RoleHandler[R]) GetRole(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	role, err := h.roleService.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "Role")
	}
	return ok(c, role)
}

func (h *RoleHandler[R]) UpdateRole(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateRoleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	role, err := h.roleService.Update(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err, "Role")
	}
	return ok(c, role)
}

// DeleteRole removes the role together with its assignments
func (h *RoleHandler[R]) DeleteRole(c *fiber.Ctx) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.roleService.Delete(c.UserContext(), id); err != nil {
		return fail(c, err, "Role")
	}
	return message(c, "Role deleted successfully.")
}

// GetPermissions returns the flag tables of both scopes
// GET /api/permissions
func GetPermissions(c *fiber.Ctx) error {
	return ok(c, fiber.Map{
		"user":  permission.UserPermissions(),
		"event": permission.EventPermissions(),
	})
}
