package handler

import (
	"errors"
	"fmt"
	"log/slog"

	"go-campus-events/internal/repository"
	"go-campus-events/internal/service"
	"go-campus-events/pkg/extauth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

func message(c *fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{"success": true, "message": msg})
}

func failure(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": msg})
}

// fail maps a service or repository error onto a response. resource names
// the thing being handled in not-found and conflict messages. Unknown
// errors are returned to the app's ErrorHandler.
func fail(c *fiber.Ctx, err error, resource string) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation error",
			"errors":  verr.Errors,
		})
	case errors.Is(err, repository.ErrNotFound):
		return failure(c, fiber.StatusNotFound, fmt.Sprintf("%s not found.", resource))
	case errors.Is(err, repository.ErrDuplicate):
		return failure(c, fiber.StatusConflict, fmt.Sprintf("%s already exists.", resource))
	case errors.Is(err, repository.ErrReference):
		return failure(c, fiber.StatusBadRequest, "Referenced record does not exist.")
	case errors.Is(err, service.ErrForbidden):
		return failure(c, fiber.StatusForbidden, "Not allowed.")
	case errors.Is(err, service.ErrInvalidTime):
		return failure(c, fiber.StatusBadRequest, "End time must be after start time.")
	case errors.Is(err, extauth.ErrRejected):
		return failure(c, fiber.StatusUnauthorized, "Invalid credentials.")
	case errors.Is(err, extauth.ErrUnavailable):
		return failure(c, fiber.StatusServiceUnavailable, "Failed to connect to external auth server.")
	case errors.Is(err, extauth.ErrNoEmail):
		return failure(c, fiber.StatusInternalServerError, "No email returned from external server.")
	}
	return err
}

// ErrorHandler answers anything a handler could not map itself.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return failure(c, fe.Code, fe.Message)
		}
		log.Error("unhandled request error", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":    "error",
			"errorCode": "SERVER_ERROR",
			"message":   "Something went wrong on our end. Please try again later.",
		})
	}
}

var (
	errInvalidJSON = fiber.NewError(fiber.StatusBadRequest, "Invalid JSON")
	errInvalidID   = fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
)

// bind decodes the request body into dst. The returned *fiber.Error is
// rendered by ErrorHandler.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return errInvalidJSON
	}
	return nil
}

func uuidParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, errInvalidID
	}
	return id, nil
}

func uintParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}
