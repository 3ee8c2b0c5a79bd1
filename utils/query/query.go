package queryHelper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/unifriend-api/database"
	"github.com/sahilchouksey/unifriend-api/services"
)

// MaxLimit caps caller-supplied page sizes
const MaxLimit = 500

// ParsePage reads limit and offset from the query string. A missing limit
// falls back to defaultLimit.
func ParsePage(c *fiber.Ctx, defaultLimit int) (database.Page, error) {
	page := database.Page{Limit: defaultLimit}

	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return page, services.Validation("limit must be a positive integer.")
		}
		if limit > MaxLimit {
			limit = MaxLimit
		}
		page.Limit = limit
	}

	if raw := strings.TrimSpace(c.Query("offset")); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return page, services.Validation("offset must be a non-negative integer.")
		}
		page.Offset = offset
	}

	return page, nil
}

// ParseFloat reads an optional float query parameter
func ParseFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, services.Validation("%s must be a number.", key)
	}
	return &value, nil
}
