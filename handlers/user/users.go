package user

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/unifriend-api/services"
	"github.com/sahilchouksey/unifriend-api/utils/middleware"
	"github.com/sahilchouksey/unifriend-api/utils/response"
)

// UserHandler handles profile requests
type UserHandler struct {
	profiles *services.ProfileService
}

// NewUserHandler creates a new user handler
func NewUserHandler(profiles *services.ProfileService) *UserHandler {
	return &UserHandler{profiles: profiles}
}

// GetCurrentUserProfile handles GET /api/users/me. The profile is created
// on first access.
func (h *UserHandler) GetCurrentUserProfile(c *fiber.Ctx) error {
	profile, err := h.profiles.GetOrCreateOwn(c.UserContext(), middleware.GetCaller(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, profile)
}

// UpdateCurrentUserProfile handles PUT /api/users/me
func (h *UserHandler) UpdateCurrentUserProfile(c *fiber.Ctx) error {
	caller := middleware.GetCaller(c)
	if caller == nil {
		return response.FromError(c, services.Unauthenticated("Authentication required.", nil))
	}
	return h.update(c, caller, caller.ID())
}

// GetUserProfile handles GET /api/users/:userId
func (h *UserHandler) GetUserProfile(c *fiber.Ctx) error {
	profile, err := h.profiles.Get(c.UserContext(), middleware.GetCaller(c), c.Params("userId"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, profile)
}

// UpdateUserProfile handles PUT /api/users/:userId
func (h *UserHandler) UpdateUserProfile(c *fiber.Ctx) error {
	return h.update(c, middleware.GetCaller(c), c.Params("userId"))
}

func (h *UserHandler) update(c *fiber.Ctx, caller *services.Caller, userID string) error {
	patch := map[string]interface{}{}
	if body := c.Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &patch); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	profile, err := h.profiles.Update(c.UserContext(), caller, userID, patch)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, fiber.StatusOK, profile, "Profile updated successfully.")
}
