package middleware

import (
	"context"
	"fmt"
	"log/slog"

	"go-campus-events/internal/model"
	"go-campus-events/internal/permission"
	"go-campus-events/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const forbiddenMessage = "You do not have the required permissions."

// EventResolver finds the event a request targets.
type EventResolver func(c *fiber.Ctx) (uuid.UUID, error)

// EventParam reads the event id from the named route parameter.
func EventParam(name string) EventResolver {
	return func(c *fiber.Ctx) (uuid.UUID, error) {
		id, err := uuid.Parse(c.Params(name))
		if err != nil {
			return uuid.Nil, fmt.Errorf("event id %q: %w", c.Params(name), err)
		}
		return id, nil
	}
}

// SessionLookup loads an attendance session; service.AttendanceService
// satisfies it.
type SessionLookup interface {
	GetSession(ctx context.Context, id uuid.UUID) (*model.AttendanceSession, error)
}

// SessionEvent resolves the event through the attendance session named by
// the route parameter.
func SessionEvent(sessions SessionLookup, name string) EventResolver {
	return func(c *fiber.Ctx) (uuid.UUID, error) {
		id, err := uuid.Parse(c.Params(name))
		if err != nil {
			return uuid.Nil, fmt.Errorf("session id %q: %w", c.Params(name), err)
		}
		session, err := sessions.GetSession(c.UserContext(), id)
		if err != nil {
			return uuid.Nil, err
		}
		return session.EventID, nil
	}
}

// Authorizer builds permission-checking handlers. A failed role lookup is
// logged and answered with 403.
type Authorizer struct {
	access service.AccessService
	log    *slog.Logger
}

func NewAuthorizer(access service.AccessService, log *slog.Logger) *Authorizer {
	return &Authorizer{access: access, log: log}
}

// Require passes callers whose global roles cover every bit of required.
func (a *Authorizer) Require(required permission.UserMask) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if a.userAllowed(c, required) {
			return c.Next()
		}
		return deny(c, fiber.StatusForbidden, forbiddenMessage)
	}
}

// RequireEvent passes callers whose roles on the resolved event cover
// every bit of required.
func (a *Authorizer) RequireEvent(required permission.EventMask, resolve EventResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if a.eventAllowed(c, required, resolve) {
			return c.Next()
		}
		return deny(c, fiber.StatusForbidden, forbiddenMessage)
	}
}

// RequireEither passes callers holding the global permission, or failing
// that, the event permission on the resolved event.
func (a *Authorizer) RequireEither(user permission.UserMask, event permission.EventMask, resolve EventResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if a.userAllowed(c, user) || a.eventAllowed(c, event, resolve) {
			return c.Next()
		}
		return deny(c, fiber.StatusForbidden, forbiddenMessage)
	}
}

func (a *Authorizer) userAllowed(c *fiber.Ctx, required permission.UserMask) bool {
	userID, ok := UserID(c)
	if !ok {
		return false
	}
	allowed, err := a.access.AuthorizeUser(c.UserContext(), userID, required)
	if err != nil {
		a.log.Error("authorization lookup failed", "scope", "user", "user_id", userID, "error", err)
		return false
	}
	return allowed
}

func (a *Authorizer) eventAllowed(c *fiber.Ctx, required permission.EventMask, resolve EventResolver) bool {
	userID, ok := UserID(c)
	if !ok {
		return false
	}
	eventID, err := resolve(c)
	if err != nil {
		a.log.Warn("event not resolved for authorization", "path", c.Path(), "error", err)
		return false
	}
	allowed, err := a.access.AuthorizeEvent(c.UserContext(), userID, eventID, required)
	if err != nil {
		a.log.Error("authorization lookup failed", "scope", "event", "user_id", userID, "event_id", eventID, "error", err)
		return false
	}
	return allowed
}
