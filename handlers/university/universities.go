package university

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/unifriend-api/database"
	"github.com/sahilchouksey/unifriend-api/services"
	"github.com/sahilchouksey/unifriend-api/utils/middleware"
	queryHelper "github.com/sahilchouksey/unifriend-api/utils/query"
	"github.com/sahilchouksey/unifriend-api/utils/response"
)

const defaultListLimit = 50

// UniversityHandler handles university-related requests
type UniversityHandler struct {
	universities *services.UniversityService
}

// NewUniversityHandler creates a new university handler
func NewUniversityHandler(universities *services.UniversityService) *UniversityHandler {
	return &UniversityHandler{universities: universities}
}

// ListUniversities handles GET /api/universities
func (h *UniversityHandler) ListUniversities(c *fiber.Ctx) error {
	page, err := queryHelper.ParsePage(c, defaultListLimit)
	if err != nil {
		return response.FromError(c, err)
	}
	minRating, err := queryHelper.ParseFloat(c, "minRating")
	if err != nil {
		return response.FromError(c, err)
	}
	maxRating, err := queryHelper.ParseFloat(c, "maxRating")
	if err != nil {
		return response.FromError(c, err)
	}

	universities, err := h.universities.List(c.UserContext(), database.UniversityFilter{
		Location:  c.Query("location"),
		Type:      c.Query("type"),
		MinRating: minRating,
		MaxRating: maxRating,
		Search:    c.Query("search"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, fiber.Map{
		"universities": universities,
		"total":        len(universities),
		"limit":        page.Limit,
		"offset":       page.Offset,
	})
}

// GetUniversity handles GET /api/universities/:id
func (h *UniversityHandler) GetUniversity(c *fiber.Ctx) error {
	university, err := h.universities.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, university)
}

// CreateUniversity handles POST /api/universities
func (h *UniversityHandler) CreateUniversity(c *fiber.Ctx) error {
	patch, err := services.ParseUniversityPatch(c.Body())
	if err != nil {
		return response.FromError(c, err)
	}

	university, err := h.universities.Create(c.UserContext(), patch)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, fiber.StatusCreated, university, "University created successfully.")
}

// UpdateUniversity handles PUT /api/universities/:id
func (h *UniversityHandler) UpdateUniversity(c *fiber.Ctx) error {
	patch, err := services.ParseUniversityPatch(c.Body())
	if err != nil {
		return response.FromError(c, err)
	}

	university, err := h.universities.Update(c.UserContext(), middleware.GetCaller(c), c.Params("id"), patch)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, fiber.StatusOK, university, "University updated successfully.")
}

// DeleteUniversity handles DELETE /api/universities/:id
func (h *UniversityHandler) DeleteUniversity(c *fiber.Ctx) error {
	if err := h.universities.Delete(c.UserContext(), c.Params("id")); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{"message": "University deleted successfully."})
}
