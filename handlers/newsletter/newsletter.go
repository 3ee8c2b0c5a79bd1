package newsletter

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/unifriend-api/services"
	queryHelper "github.com/sahilchouksey/unifriend-api/utils/query"
	"github.com/sahilchouksey/unifriend-api/utils/response"
)

type NewsletterHandler struct {
	leads *services.LeadService
}

func NewNewsletterHandler(leads *services.LeadService) *NewsletterHandler {
	return &NewsletterHandler{leads: leads}
}

// Subscribe handles POST /api/newsletter/subscribe
func (h *NewsletterHandler) Subscribe(c *fiber.Ctx) error {
	var req services.SubscribeInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	subscription, err := h.leads.Subscribe(c.UserContext(), req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, fiber.StatusCreated, subscription, "Successfully subscribed to newsletter.")
}

// ListSubscriptions handles GET /api/newsletter/subscriptions
func (h *NewsletterHandler) ListSubscriptions(c *fiber.Ctx) error {
	page, err := queryHelper.ParsePage(c, 100)
	if err != nil {
		return response.FromError(c, err)
	}

	subscriptions, err := h.leads.ListSubscriptions(c.UserContext(), page)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{
		"subscriptions": subscriptions,
		"total":         len(subscriptions),
		"limit":         page.Limit,
		"offset":        page.Offset,
	})
}
