package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/unifriend-api/services"
	"github.com/sahilchouksey/unifriend-api/utils/middleware"
	"github.com/sahilchouksey/unifriend-api/utils/response"
)

// AdminHandler handles role grant management
type AdminHandler struct {
	admin *services.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// GrantRoleRequest represents a grant request. UniversityID is only read
// for university admin grants.
type GrantRoleRequest struct {
	UserID       string `json:"userId"`
	UniversityID string `json:"universityId"`
}

// GrantAdminRole grants global admin
// POST /api/admin/roles/admin
func (h *AdminHandler) GrantAdminRole(c *fiber.Ctx) error {
	var req GrantRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.admin.GrantGlobalAdmin(c.UserContext(), middleware.GetCaller(c), req.UserID); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{
		"message": "Admin role granted successfully.",
		"userId":  req.UserID,
	})
}

// RevokeAdminRole revokes global admin
// DELETE /api/admin/roles/admin/:userId
func (h *AdminHandler) RevokeAdminRole(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if err := h.admin.RevokeGlobalAdmin(c.UserContext(), middleware.GetCaller(c), userID); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{
		"message": "Admin role revoked successfully.",
		"userId":  userID,
	})
}

// GetAdminUsers lists global admins
// GET /api/admin/roles/admin
func (h *AdminHandler) GetAdminUsers(c *fiber.Ctx) error {
	admins, err := h.admin.ListGlobalAdmins(c.UserContext(), middleware.GetCaller(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{"admins": admins})
}

// GrantUniversityRole scopes a user to one university
// POST /api/admin/roles/university
func (h *AdminHandler) GrantUniversityRole(c *fiber.Ctx) error {
	var req GrantRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.admin.GrantUniversityAdmin(c.UserContext(), middleware.GetCaller(c), req.UserID, req.UniversityID); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{
		"message":      "University admin role granted successfully.",
		"userId":       req.UserID,
		"universityId": req.UniversityID,
	})
}

// RevokeUniversityRole
// DELETE /api/admin/roles/university/:userId
func (h *AdminHandler) RevokeUniversityRole(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if err := h.admin.RevokeUniversityAdmin(c.UserContext(), middleware.GetCaller(c), userID); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{
		"message": "University admin role revoked successfully.",
		"userId":  userID,
	})
}

// GetUniversityAdmins lists university admins
// GET /api/admin/roles/university
func (h *AdminHandler) GetUniversityAdmins(c *fiber.Ctx) error {
	admins, err := h.admin.ListUniversityAdmins(c.UserContext(), middleware.GetCaller(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{"universityAdmins": admins})
}
