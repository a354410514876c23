package handler

import (
	"go-campus-events/internal/middleware"
	"go-campus-events/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RegistrationHandler struct {
	registrationService service.RegistrationService
}

func NewRegistrationHandler(registrationService service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// GET /api/event-registrations
func (h *RegistrationHandler) GetRegistrations(c *fiber.Ctx) error {
	regs, err := h.registrationService.List(c.UserContext())
	if err != nil {
		return fail(c, err, "Registration")
	}
	return ok(c, regs)
}

// POST /api/event-registrations
func (h *RegistrationHandler) CreateRegistration(c *fiber.Ctx) error {
	var req service.CreateRegistrationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	reg, err := h.registrationService.Create(c.UserContext(), &req)
	if err != nil {
		return fail(c, err, "Registration")
	}
	return created(c, reg)
}

// GET /api/event-registrations/:id
func (h *RegistrationHandler) GetRegistration(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	reg, err := h.registrationService.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "Registration")
	}
	return ok(c, reg)
}

// UpdateRegistration changes the status; faculty or the event creator only
// PATCH /api/event-registrations/:id
func (h *RegistrationHandler) UpdateRegistration(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateRegistrationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	reg, err := h.registrationService.Update(c.UserContext(), id, &req, middleware.CurrentActor(c))
	if err != nil {
		return fail(c, err, "Registration")
	}
	return ok(c, reg)
}

// DELETE /api/event-registrations/:id
func (h *RegistrationHandler) DeleteRegistration(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.registrationService.Delete(c.UserContext(), id); err != nil {
		return fail(c, err, "Registration")
	}
	return message(c, "Registration deleted successfully.")
}

// GET /api/event-registrations/by-event/:eventId
func (h *RegistrationHandler) GetByEvent(c *fiber.Ctx) error {
	id, err := uuidParam(c, "eventId")
	if err != nil {
		return err
	}
	regs, err := h.registrationService.ByEvent(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "Registration")
	}
	return ok(c, regs)
}
