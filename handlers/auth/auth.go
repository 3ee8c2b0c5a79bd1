package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/unifriend-api/services"
	"github.com/sahilchouksey/unifriend-api/utils/middleware"
	"github.com/sahilchouksey/unifriend-api/utils/response"
)

// AuthHandler handles identity token exchange
type AuthHandler struct {
	auth *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// VerifyRequest represents a token verification request
type VerifyRequest struct {
	Token string `json:"token"`
}

// VerifyToken handles POST /api/auth/verify
func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	session, err := h.auth.VerifyToken(c.UserContext(), req.Token)
	if err != nil {
		return response.FromError(c, err)
	}

	user, err := session.UserDocument()
	if err != nil {
		return response.FromError(c, services.Internal("Failed to encode user.", err))
	}

	return response.Success(c, fiber.Map{
		"user":  user,
		"roles": session.Roles,
	})
}

// GetCurrentUser handles GET /api/auth/me
func (h *AuthHandler) GetCurrentUser(c *fiber.Ctx) error {
	profile, roles, err := h.auth.Me(c.UserContext(), middleware.GetCaller(c))
	if err != nil {
		return response.FromError(c, err)
	}

	body, err := response.Document(profile, fiber.Map{"roles": roles})
	if err != nil {
		return response.FromError(c, services.Internal("Failed to encode user.", err))
	}
	return response.Success(c, body)
}
