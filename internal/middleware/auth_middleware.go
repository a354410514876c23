package middleware

import (
	"strings"

	"go-campus-events/internal/model"
	"go-campus-events/internal/service"
	"go-campus-events/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys set by RequireAuth.
const (
	LocalUserID = "user_id"
	LocalRole   = "user_role"
	LocalKmail  = "user_kmail"
)

// TokenValidator checks a bearer token; service.AuthService and
// *jwt.Manager both satisfy it.
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// RequireAuth is middleware that validates the bearer token and puts the
// caller's id, role and kmail into the request locals.
func RequireAuth(auth TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return deny(c, fiber.StatusUnauthorized, "No token provided.")
		}

		// Extract token from "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return deny(c, fiber.StatusUnauthorized, "Invalid authorization format. Use: Bearer <token>")
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			return deny(c, fiber.StatusUnauthorized, "Invalid token.")
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalKmail, claims.Kmail)
		return c.Next()
	}
}

// RequireFaculty rejects callers whose token role is not faculty.
func RequireFaculty() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals(LocalRole).(string); role != model.UserKindFaculty {
			return deny(c, fiber.StatusForbidden, "Only faculty can access this.")
		}
		return c.Next()
	}
}

// UserID returns the authenticated caller's id.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(LocalUserID).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// CurrentActor builds the service-level view of the caller.
func CurrentActor(c *fiber.Ctx) service.Actor {
	id, _ := UserID(c)
	role, _ := c.Locals(LocalRole).(string)
	return service.Actor{ID: id, Kind: role}
}

func deny(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
