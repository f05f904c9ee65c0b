package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"quartermaster/internal/config"
	"quartermaster/internal/core/domain"
	"quartermaster/internal/core/policy"
	"quartermaster/internal/pkg/response"
	"quartermaster/internal/pkg/token"
)

// AuthTokenCookie is the session cookie name
const AuthTokenCookie = "auth_token"

// actorKey is the fiber locals key the verified actor is stored under
const actorKey = "actor"

// extractToken pulls the session token from the request. The bearer header
// takes precedence over the cookie.
func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Cookies(AuthTokenCookie)
}

// Auth creates the authentication middleware. Any verification failure is
// treated as unauthenticated and ends the request with 401 before any
// handler work happens.
func Auth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractToken(c)
		if raw == "" {
			return response.Unauthorized(c, "Authentication required")
		}

		claims := token.Verify(raw, cfg.JWT.Secret)
		if claims == nil {
			return response.Unauthorized(c, "Invalid or expired token")
		}

		c.Locals(actorKey, policy.Actor{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
			BaseID:   claims.BaseID,
		})

		return c.Next()
	}
}

// ActorFromCtx returns the verified actor set by Auth
func ActorFromCtx(c *fiber.Ctx) policy.Actor {
	actor, _ := c.Locals(actorKey).(policy.Actor)
	return actor
}

// RequireRoles creates role-based authorization middleware
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := c.Locals(actorKey).(policy.Actor)
		if !ok {
			return response.Unauthorized(c, "Authentication required")
		}

		if !policy.HasRole(actor, allowed...) {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}

		return c.Next()
	}
}

// AdminOnly allows only the admin role
func AdminOnly() fiber.Handler {
	return RequireRoles(domain.RoleAdmin)
}
