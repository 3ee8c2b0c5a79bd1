package registration

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/unifriend-api/services"
	queryHelper "github.com/sahilchouksey/unifriend-api/utils/query"
	"github.com/sahilchouksey/unifriend-api/utils/response"
)

// RegistrationHandler handles the public enquiry form
type RegistrationHandler struct {
	leads *services.LeadService
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(leads *services.LeadService) *RegistrationHandler {
	return &RegistrationHandler{leads: leads}
}

// CreateRegistration handles POST /api/registrations
func (h *RegistrationHandler) CreateRegistration(c *fiber.Ctx) error {
	var req services.CreateRegistrationInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	registration, err := h.leads.CreateRegistration(c.UserContext(), req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, fiber.StatusCreated, registration, "Registration submitted successfully.")
}

// ListRegistrations handles GET /api/registrations
func (h *RegistrationHandler) ListRegistrations(c *fiber.Ctx) error {
	page, err := queryHelper.ParsePage(c, 100)
	if err != nil {
		return response.FromError(c, err)
	}

	registrations, err := h.leads.ListRegistrations(c.UserContext(), page)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{
		"registrations": registrations,
		"total":         len(registrations),
		"limit":         page.Limit,
		"offset":        page.Offset,
	})
}
