package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/unifriend-api/services"
	"github.com/sahilchouksey/unifriend-api/utils/response"
)

const callerKey = "caller"

// AuthMiddleware verifies bearer identity tokens
type AuthMiddleware struct {
	auth *services.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(auth *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. It returns "" when the header is absent or malformed.
func BearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// Required is middleware that requires a valid identity token
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return response.Unauthorized(c, "No token provided. Please include Authorization header with Bearer token.")
		}

		caller, err := m.auth.Authenticate(c.UserContext(), token)
		if err != nil {
			return response.FromError(c, err)
		}

		c.Locals(callerKey, caller)
		return c.Next()
	}
}

// RequireGlobalAdmin rejects callers without a global admin grant. It must
// run after Required.
func (m *AuthMiddleware) RequireGlobalAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := services.RequireGlobalAdmin(c.UserContext(), GetCaller(c)); err != nil {
			return response.FromError(c, err)
		}
		return c.Next()
	}
}

// RequireUniversityAdmin rejects callers without a university admin grant
func (m *AuthMiddleware) RequireUniversityAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := services.RequireUniversityAdmin(c.UserContext(), GetCaller(c)); err != nil {
			return response.FromError(c, err)
		}
		return c.Next()
	}
}

// GetCaller returns the authenticated caller, or nil on public routes
func GetCaller(c *fiber.Ctx) *services.Caller {
	caller, _ := c.Locals(callerKey).(*services.Caller)
	return caller
}
