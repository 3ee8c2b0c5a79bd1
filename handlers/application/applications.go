package application

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/unifriend-api/services"
	"github.com/sahilchouksey/unifriend-api/utils/middleware"
	queryHelper "github.com/sahilchouksey/unifriend-api/utils/query"
	"github.com/sahilchouksey/unifriend-api/utils/response"
)

const defaultListLimit = 100

// ApplicationHandler handles application submission and review
type ApplicationHandler struct {
	applications *services.ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(applications *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

// UpdateStatusRequest represents a status transition request
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListApplications handles GET /api/applications
func (h *ApplicationHandler) ListApplications(c *fiber.Ctx) error {
	page, err := queryHelper.ParsePage(c, defaultListLimit)
	if err != nil {
		return response.FromError(c, err)
	}

	applications, err := h.applications.ListOwn(c.UserContext(), middleware.GetCaller(c), page)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{"applications": applications})
}

// GetApplication handles GET /api/applications/:id
func (h *ApplicationHandler) GetApplication(c *fiber.Ctx) error {
	application, err := h.applications.Get(c.UserContext(), middleware.GetCaller(c), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, application)
}

// CreateApplication handles POST /api/applications
func (h *ApplicationHandler) CreateApplication(c *fiber.Ctx) error {
	var req services.CreateApplicationInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	application, err := h.applications.Create(c.UserContext(), middleware.GetCaller(c), req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, fiber.StatusCreated, application, "Application submitted successfully.")
}

// UpdateApplicationStatus handles PUT /api/applications/:id/status
func (h *ApplicationHandler) UpdateApplicationStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	application, err := h.applications.SetStatus(c.UserContext(), middleware.GetCaller(c), c.Params("id"), req.Status)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, fiber.StatusOK, application, "Application status updated successfully.")
}

// ListUniversityApplications handles GET /api/applications/university/:universityId
func (h *ApplicationHandler) ListUniversityApplications(c *fiber.Ctx) error {
	page, err := queryHelper.ParsePage(c, defaultListLimit)
	if err != nil {
		return response.FromError(c, err)
	}

	applications, err := h.applications.ListForUniversity(c.UserContext(), middleware.GetCaller(c), c.Params("universityId"), page)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{
		"applications": applications,
		"total":        len(applications),
	})
}

// ListManagedApplications handles GET /api/applications/managed, listing
// the applications of the caller's own university.
func (h *ApplicationHandler) ListManagedApplications(c *fiber.Ctx) error {
	page, err := queryHelper.ParsePage(c, defaultListLimit)
	if err != nil {
		return response.FromError(c, err)
	}

	universityID, applications, err := h.applications.ListManaged(c.UserContext(), middleware.GetCaller(c), page)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{
		"universityId": universityID,
		"applications": applications,
		"total":        len(applications),
	})
}
